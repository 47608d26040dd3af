package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const jwtSecretKey = "jwt_secret"

// GetSetting returns a stored setting. ok is false when the key is unset.
func GetSetting(ctx context.Context, db *sqlx.DB, key string) (value string, ok bool, err error) {
	err = db.GetContext(ctx, &value, `SELECT value FROM settings WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying setting %s: %w", key, err)
	}
	return value, true, nil
}

// ensureSetting stores generate's value unless key is already set, then
// returns whatever is stored. Concurrent first calls agree on one value.
func ensureSetting(ctx context.Context, db *sqlx.DB, key string, generate func() (string, error)) (string, error) {
	if v, ok, err := GetSetting(ctx, db, key); err != nil || ok {
		return v, err
	}

	v, err := generate()
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", key, err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, key, v,
	); err != nil {
		return "", fmt.Errorf("storing %s: %w", key, err)
	}

	stored, _, err := GetSetting(ctx, db, key)
	return stored, err
}

// GetJWTSecret returns the session signing secret, creating a random one on
// first use.
func GetJWTSecret(ctx context.Context, db *sqlx.DB) (string, error) {
	return ensureSetting(ctx, db, jwtSecretKey, func() (string, error) {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		return hex.EncodeToString(buf), nil
	})
}
