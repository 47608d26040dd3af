package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/katalog/internal/model"
)

// Sizes and colors share one table shape (name, value), so the queries are
// written once and parameterised by table. Table names are constants, never
// caller input.

const attributeColumns = `id, store_id, name, value, created_at, updated_at`

func createAttribute[T any](ctx context.Context, db *sqlx.DB, table, noun, storeID, name, value string) (*T, error) {
	id := newID()
	_, err := db.ExecContext(ctx,
		`INSERT INTO `+table+` (id, store_id, name, value) VALUES (?, ?, ?, ?)`,
		id, storeID, name, value,
	)
	if err != nil {
		return nil, writeErr("creating "+noun, err)
	}
	return getAttribute[T](ctx, db, table, noun, storeID, id)
}

func getAttribute[T any](ctx context.Context, db *sqlx.DB, table, noun, storeID, id string) (*T, error) {
	var v T
	err := db.GetContext(ctx, &v,
		`SELECT `+attributeColumns+` FROM `+table+` WHERE id = ? AND store_id = ?`, id, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", noun, err)
	}
	return &v, nil
}

func listAttributes[T any](ctx context.Context, db *sqlx.DB, table, noun, storeID string) ([]T, error) {
	out := []T{}
	err := db.SelectContext(ctx, &out,
		`SELECT `+attributeColumns+` FROM `+table+` WHERE store_id = ?
		 ORDER BY created_at DESC, rowid DESC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", table, err)
	}
	return out, nil
}

func updateAttribute[T any](ctx context.Context, db *sqlx.DB, table, noun, storeID, id, name, value string) (*T, error) {
	res, err := db.ExecContext(ctx,
		`UPDATE `+table+` SET name = ?, value = ?, updated_at = `+now+`
		 WHERE id = ? AND store_id = ?`,
		name, value, id, storeID,
	)
	if err != nil {
		return nil, writeErr("updating "+noun, err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return nil, fmt.Errorf("updating %s: %w", noun, err)
	}
	return getAttribute[T](ctx, db, table, noun, storeID, id)
}

func deleteAttribute[T any](ctx context.Context, db *sqlx.DB, table, noun, storeID, id string) (*T, error) {
	v, err := getAttribute[T](ctx, db, table, noun, storeID, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("deleting %s: %w", noun, ErrNotFound)
	}

	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ? AND store_id = ?`, id, storeID)
	if err != nil {
		return nil, deleteErr("deleting "+noun, err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return nil, fmt.Errorf("deleting %s: %w", noun, err)
	}
	return v, nil
}

// CreateSize inserts a size.
func CreateSize(ctx context.Context, db *sqlx.DB, storeID string, in model.SizeInput) (*model.Size, error) {
	return createAttribute[model.Size](ctx, db, "sizes", "size", storeID, in.Name, in.Value)
}

// GetSize returns a size of the store, or nil.
func GetSize(ctx context.Context, db *sqlx.DB, storeID, id string) (*model.Size, error) {
	return getAttribute[model.Size](ctx, db, "sizes", "size", storeID, id)
}

// ListSizes returns the store's sizes, newest first.
func ListSizes(ctx context.Context, db *sqlx.DB, storeID string) ([]model.Size, error) {
	return listAttributes[model.Size](ctx, db, "sizes", "size", storeID)
}

// UpdateSize replaces the name and value of a size of the store.
func UpdateSize(ctx context.Context, db *sqlx.DB, storeID, id string, in model.SizeInput) (*model.Size, error) {
	return updateAttribute[model.Size](ctx, db, "sizes", "size", storeID, id, in.Name, in.Value)
}

// DeleteSize deletes a size; ErrReferenced while a product uses it.
func DeleteSize(ctx context.Context, db *sqlx.DB, storeID, id string) (*model.Size, error) {
	return deleteAttribute[model.Size](ctx, db, "sizes", "size", storeID, id)
}

// CreateColor inserts a color.
func CreateColor(ctx context.Context, db *sqlx.DB, storeID string, in model.ColorInput) (*model.Color, error) {
	return createAttribute[model.Color](ctx, db, "colors", "color", storeID, in.Name, in.Value)
}

// GetColor returns a color of the store, or nil.
func GetColor(ctx context.Context, db *sqlx.DB, storeID, id string) (*model.Color, error) {
	return getAttribute[model.Color](ctx, db, "colors", "color", storeID, id)
}

// ListColors returns the store's colors, newest first.
func ListColors(ctx context.Context, db *sqlx.DB, storeID string) ([]model.Color, error) {
	return listAttributes[model.Color](ctx, db, "colors", "color", storeID)
}

// UpdateColor replaces the name and value of a color of the store.
func UpdateColor(ctx context.Context, db *sqlx.DB, storeID, id string, in model.ColorInput) (*model.Color, error) {
	return updateAttribute[model.Color](ctx, db, "colors", "color", storeID, id, in.Name, in.Value)
}

// DeleteColor deletes a color; ErrReferenced while a product uses it.
func DeleteColor(ctx context.Context, db *sqlx.DB, storeID, id string) (*model.Color, error) {
	return deleteAttribute[model.Color](ctx, db, "colors", "color", storeID, id)
}
