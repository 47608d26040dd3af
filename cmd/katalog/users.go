package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/erazemk/katalog/internal/auth"
	"github.com/erazemk/katalog/internal/config"
	"github.com/erazemk/katalog/internal/db"
	"github.com/erazemk/katalog/internal/store"
)

const adminUsername = "admin"

func newInitCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := o.resolveDBPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("database already exists: %s", path)
			}

			database, password, err := initDatabase(cmd.Context(), path, adminUsername)
			if err != nil {
				return err
			}
			database.Close()

			printInitResult(path, adminUsername, password)
			return nil
		},
	}
}

func newUserCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage owner accounts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <username>",
		Short: "Create an owner account with a generated password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := o.resolveDBPath()
			if err != nil {
				return err
			}
			database, err := openDatabase(path)
			if err != nil {
				return err
			}
			defer database.Close()

			password, err := addUser(cmd.Context(), database, args[0])
			if errors.Is(err, store.ErrDuplicate) {
				return fmt.Errorf("username %q is already taken", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Printf("Account created:\n  Username: %s\n  Password: %s\n", args[0], password)
			return nil
		},
	})
	return cmd
}

// resolveDBPath applies --db over the configured path.
func (o *rootOptions) resolveDBPath() (string, error) {
	if o.dbPath != "" {
		return o.dbPath, nil
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return "", err
	}
	return cfg.DBPath, nil
}

func openDatabase(path string) (*sqlx.DB, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}
	return database, nil
}

// initDatabase creates a new database with the schema and one account. The
// file is removed again if any step fails.
func initDatabase(ctx context.Context, path, username string) (*sqlx.DB, string, error) {
	database, err := openDatabase(path)
	if err != nil {
		os.Remove(path)
		return nil, "", err
	}

	password, err := addUser(ctx, database, username)
	if err != nil {
		database.Close()
		os.Remove(path)
		return nil, "", fmt.Errorf("creating admin user: %w", err)
	}
	return database, password, nil
}

func addUser(ctx context.Context, database *sqlx.DB, username string) (string, error) {
	password, err := generatePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	if _, err := store.CreateUser(ctx, database, username, hash); err != nil {
		return "", err
	}
	return password, nil
}

func printInitResult(dbPath, username, password string) {
	fmt.Printf("Database created: %s\n", dbPath)
	fmt.Println("Schema initialized.")
	fmt.Println()
	fmt.Println("Admin account created:")
	fmt.Printf("  Username: %s\n", username)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
	fmt.Println("It can be changed after logging in.")
}

func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
