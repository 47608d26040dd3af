package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/katalog/internal/model"
)

// CreateUser creates a new account. A taken username yields ErrDuplicate.
func CreateUser(ctx context.Context, db *sqlx.DB, username, passwordHash string) (*model.User, error) {
	id := newID()
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)`,
		id, username, passwordHash,
	)
	if err != nil {
		return nil, writeErr("creating user", err)
	}
	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID, or nil.
func GetUser(ctx context.Context, db *sqlx.DB, id string) (*model.User, error) {
	var u model.User
	err := db.GetContext(ctx, &u,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return &u, nil
}

// GetUserByUsername returns a user by username, or nil.
func GetUserByUsername(ctx context.Context, db *sqlx.DB, username string) (*model.User, error) {
	var u model.User
	err := db.GetContext(ctx, &u,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by username: %w", err)
	}
	return &u, nil
}

// UpdateUserPassword updates a user's password hash.
func UpdateUserPassword(ctx context.Context, db *sqlx.DB, id, passwordHash string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err := checkAffected(rowsAffected(res, err)); err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}

func rowsAffected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
