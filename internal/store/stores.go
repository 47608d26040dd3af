package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/katalog/internal/model"
)

const storeColumns = `id, name, user_id, created_at, updated_at`

// CreateStore creates a store owned by userID.
func CreateStore(ctx context.Context, db *sqlx.DB, userID, name string) (*model.Store, error) {
	id := newID()
	_, err := db.ExecContext(ctx,
		`INSERT INTO stores (id, name, user_id) VALUES (?, ?, ?)`,
		id, name, userID,
	)
	if err != nil {
		return nil, writeErr("creating store", err)
	}
	return GetStore(ctx, db, id)
}

// GetStore returns a store by ID, or nil if it does not exist.
func GetStore(ctx context.Context, db *sqlx.DB, id string) (*model.Store, error) {
	var s model.Store
	err := db.GetContext(ctx, &s, `SELECT `+storeColumns+` FROM stores WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting store: %w", err)
	}
	return &s, nil
}

// GetOwnedStore returns the store only if userID owns it.
func GetOwnedStore(ctx context.Context, db *sqlx.DB, id, userID string) (*model.Store, error) {
	var s model.Store
	err := db.GetContext(ctx, &s,
		`SELECT `+storeColumns+` FROM stores WHERE id = ? AND user_id = ?`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting owned store: %w", err)
	}
	return &s, nil
}

// ListStores returns the stores owned by userID, oldest first.
func ListStores(ctx context.Context, db *sqlx.DB, userID string) ([]model.Store, error) {
	stores := []model.Store{}
	err := db.SelectContext(ctx, &stores,
		`SELECT `+storeColumns+` FROM stores WHERE user_id = ? ORDER BY created_at, rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing stores: %w", err)
	}
	return stores, nil
}

// UpdateStore renames a store. The filter includes the owner, so a caller
// can never rename someone else's store.
func UpdateStore(ctx context.Context, db *sqlx.DB, id, userID, name string) (*model.Store, error) {
	res, err := db.ExecContext(ctx,
		`UPDATE stores SET name = ?, updated_at = `+now+` WHERE id = ? AND user_id = ?`,
		name, id, userID,
	)
	if err != nil {
		return nil, writeErr("updating store", err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return nil, fmt.Errorf("updating store: %w", err)
	}
	return GetStore(ctx, db, id)
}

// DeleteStore deletes an owned store. It fails with ErrReferenced while the
// store still has catalog rows.
func DeleteStore(ctx context.Context, db *sqlx.DB, id, userID string) (*model.Store, error) {
	s, err := GetOwnedStore(ctx, db, id, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("deleting store: %w", ErrNotFound)
	}

	res, err := db.ExecContext(ctx, `DELETE FROM stores WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, deleteErr("deleting store", err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return nil, fmt.Errorf("deleting store: %w", err)
	}
	return s, nil
}

// StoreCounts summarises a store's catalog for the dashboard overview.
type StoreCounts struct {
	Billboards int `db:"billboards"`
	Categories int `db:"categories"`
	Sizes      int `db:"sizes"`
	Colors     int `db:"colors"`
	Products   int `db:"products"`
	InStock    int `db:"in_stock"`
}

// CountStore returns row counts for each catalog table of a store.
func CountStore(ctx context.Context, db *sqlx.DB, storeID string) (*StoreCounts, error) {
	var c StoreCounts
	err := db.GetContext(ctx, &c, `SELECT
		(SELECT COUNT(*) FROM billboards WHERE store_id = ?) AS billboards,
		(SELECT COUNT(*) FROM categories WHERE store_id = ?) AS categories,
		(SELECT COUNT(*) FROM sizes WHERE store_id = ?) AS sizes,
		(SELECT COUNT(*) FROM colors WHERE store_id = ?) AS colors,
		(SELECT COUNT(*) FROM products WHERE store_id = ?) AS products,
		(SELECT COUNT(*) FROM products WHERE store_id = ? AND is_archived = 0) AS in_stock`,
		storeID, storeID, storeID, storeID, storeID, storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("counting store rows: %w", err)
	}
	return &c, nil
}
