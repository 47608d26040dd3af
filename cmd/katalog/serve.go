package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/katalog/internal/api"
	"github.com/erazemk/katalog/internal/cache"
	"github.com/erazemk/katalog/internal/catalog"
	"github.com/erazemk/katalog/internal/config"
	"github.com/erazemk/katalog/internal/events"
	"github.com/erazemk/katalog/internal/media"
	"github.com/erazemk/katalog/internal/store"
	"github.com/erazemk/katalog/internal/web"
)

func newServeCmd(o *rootOptions) *cobra.Command {
	var addr, logPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard and API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = addr
			}
			if flags.Changed("log") {
				cfg.LogPath = logPath
			}
			if o.dbPath != "" {
				cfg.DBPath = o.dbPath
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return serve(cfg)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default: :8080)")
	cmd.Flags().StringVarP(&logPath, "log", "l", "", "log file path (default: stdout/stderr only)")
	return cmd
}

func serve(cfg *config.Config) error {
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	closeLog, err := setupLogger(cfg.LogPath, level)
	if err != nil {
		return err
	}
	if closeLog != nil {
		defer closeLog()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing database is created with an admin account on first start.
	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		database, password, err := initDatabase(ctx, cfg.DBPath, adminUsername)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		database.Close()
		printInitResult(cfg.DBPath, adminUsername, password)
		fmt.Println()
	}

	database, err := openDatabase(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()
	slog.Info("database ready", "path", cfg.DBPath)

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		if jwtSecret, err = store.GetJWTSecret(ctx, database); err != nil {
			return fmt.Errorf("loading JWT secret: %w", err)
		}
	}

	if n, err := store.PurgeExpiredTokens(ctx, database, time.Now()); err != nil {
		slog.Warn("failed to purge revoked sessions", "error", err)
	} else if n > 0 {
		slog.Info("purged expired revoked sessions", "count", n)
	}

	var listCache catalog.Cache
	switch cfg.Cache.Driver {
	case "memory":
		mem := cache.NewMemory(cfg.Cache.TTL)
		if cfg.Cache.TTL > 0 {
			go mem.Sweep(ctx, cfg.Cache.TTL)
		}
		listCache = mem
	case "redis":
		r := cache.NewRedis(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB, cfg.Cache.TTL)
		defer r.Close()
		if err := r.Ping(ctx); err != nil {
			slog.Warn("redis unreachable, lists will be served from the database", "addr", cfg.Cache.Addr, "error", err)
		}
		listCache = r
	}

	var publisher catalog.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		k := events.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer k.Close()
		publisher = k
		slog.Info("publishing catalog events", "brokers", strings.Join(cfg.Kafka.Brokers, ","), "topic", cfg.Kafka.Topic)
	}

	svc := catalog.NewService(database, listCache, publisher)

	mux := http.NewServeMux()

	var uploader *media.Uploader
	switch cfg.Uploads.Backend {
	case "local":
		local, err := media.NewLocal(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
		if err != nil {
			return err
		}
		uploader = &media.Uploader{Storage: local}
		// An absolute base URL means another server hosts the files.
		if strings.HasPrefix(cfg.Uploads.BaseURL, "/") {
			prefix := strings.TrimSuffix(cfg.Uploads.BaseURL, "/") + "/"
			mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Uploads.Dir))))
		}
	case "s3":
		s3c := cfg.Uploads.S3
		remote, err := media.NewS3(ctx, media.S3Config{
			Endpoint:  s3c.Endpoint,
			Region:    s3c.Region,
			Bucket:    s3c.Bucket,
			AccessKey: s3c.AccessKey,
			SecretKey: s3c.SecretKey,
			PublicURL: s3c.PublicURL,
		})
		if err != nil {
			return fmt.Errorf("configuring S3 uploads: %w", err)
		}
		uploader = &media.Uploader{Storage: remote}
	}

	var limiter *api.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = api.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute)
		go limiter.Sweep(ctx, time.Minute)
	}

	apiRouter := api.NewRouter(api.Options{
		Service:     svc,
		JWTSecret:   jwtSecret,
		Uploader:    uploader,
		Limiter:     limiter,
		CORSOrigins: cfg.CORSOrigins,
	})
	webRouter, err := web.NewRouter(svc, jwtSecret, cfg.APIBase)
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	mux.Handle("/api/", apiRouter)
	mux.Handle("GET /health", api.Health(database))
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", cfg.Addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}

	slog.Info("server stopped, closing database")
	return nil
}
