// Package config loads server settings from defaults, an optional YAML file,
// a .env file and KATALOG_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "KATALOG_"

type Config struct {
	Addr        string   `yaml:"addr"`
	DBPath      string   `yaml:"db"`
	LogPath     string   `yaml:"log"`
	LogLevel    string   `yaml:"log_level"`
	JWTSecret   string   `yaml:"jwt_secret"` // empty: generated and stored in the database
	APIBase     string   `yaml:"api_base"`
	CORSOrigins []string `yaml:"cors_origins"`

	RateLimit RateLimit `yaml:"rate_limit"`
	Cache     Cache     `yaml:"cache"`
	Kafka     Kafka     `yaml:"kafka"`
	Uploads   Uploads   `yaml:"uploads"`
}

// RateLimit configures the per-client limiter. RPS 0 disables it.
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type Cache struct {
	Driver   string        `yaml:"driver"` // none, memory or redis
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// Kafka enables mutation events when Brokers is set.
type Kafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type Uploads struct {
	Backend string `yaml:"backend"` // none, local or s3
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"base_url"`
	S3      S3     `yaml:"s3"`
}

type S3 struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	PublicURL string `yaml:"public_url"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Addr:     ":8080",
		DBPath:   "katalog.sqlite3",
		LogLevel: "info",
		RateLimit: RateLimit{
			RPS:   20,
			Burst: 40,
		},
		Cache: Cache{
			Driver: "memory",
			TTL:    5 * time.Minute,
		},
		Kafka: Kafka{Topic: "katalog.events"},
		Uploads: Uploads{
			Backend: "local",
			Dir:     "uploads",
			BaseURL: "/uploads",
		},
	}
}

// Load reads the YAML file at path (skipped when empty), then .env from the
// working directory if present, then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}
	list := func(name string, dst *[]string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = splitList(v)
		}
	}

	str("ADDR", &c.Addr)
	str("DB", &c.DBPath)
	str("LOG", &c.LogPath)
	str("LOG_LEVEL", &c.LogLevel)
	str("JWT_SECRET", &c.JWTSecret)
	str("API_BASE", &c.APIBase)
	list("CORS_ORIGINS", &c.CORSOrigins)

	str("CACHE_DRIVER", &c.Cache.Driver)
	str("REDIS_ADDR", &c.Cache.Addr)
	str("REDIS_PASSWORD", &c.Cache.Password)

	list("KAFKA_BROKERS", &c.Kafka.Brokers)
	str("KAFKA_TOPIC", &c.Kafka.Topic)

	str("UPLOAD_BACKEND", &c.Uploads.Backend)
	str("UPLOAD_DIR", &c.Uploads.Dir)
	str("UPLOAD_BASE_URL", &c.Uploads.BaseURL)
	str("S3_ENDPOINT", &c.Uploads.S3.Endpoint)
	str("S3_REGION", &c.Uploads.S3.Region)
	str("S3_BUCKET", &c.Uploads.S3.Bucket)
	str("S3_ACCESS_KEY", &c.Uploads.S3.AccessKey)
	str("S3_SECRET_KEY", &c.Uploads.S3.SecretKey)
	str("S3_PUBLIC_URL", &c.Uploads.S3.PublicURL)

	if v, ok := os.LookupEnv(EnvPrefix + "RATE_LIMIT_RPS"); ok {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT_RPS: %w", EnvPrefix, err)
		}
		c.RateLimit.RPS = rps
	}
	if v, ok := os.LookupEnv(EnvPrefix + "RATE_LIMIT_BURST"); ok {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT_BURST: %w", EnvPrefix, err)
		}
		c.RateLimit.Burst = burst
	}
	if v, ok := os.LookupEnv(EnvPrefix + "REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", EnvPrefix, err)
		}
		c.Cache.DB = n
	}
	if v, ok := os.LookupEnv(EnvPrefix + "CACHE_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sCACHE_TTL: %w", EnvPrefix, err)
		}
		c.Cache.TTL = ttl
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks required values and enumerations.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db is required"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.RateLimit.RPS < 0 {
		errs = append(errs, errors.New("rate_limit.rps must not be negative"))
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("rate_limit.burst must be at least 1"))
	}

	switch c.Cache.Driver {
	case "none", "memory":
	case "redis":
		if c.Cache.Addr == "" {
			errs = append(errs, errors.New("cache.addr is required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cache driver %q", c.Cache.Driver))
	}

	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka.topic is required when brokers are set"))
	}

	switch c.Uploads.Backend {
	case "none":
	case "local":
		if c.Uploads.Dir == "" {
			errs = append(errs, errors.New("uploads.dir is required for the local backend"))
		}
	case "s3":
		if c.Uploads.S3.Bucket == "" {
			errs = append(errs, errors.New("uploads.s3.bucket is required for the s3 backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown upload backend %q", c.Uploads.Backend))
	}

	return errors.Join(errs...)
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return level, nil
}
