package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/katalog/internal/model"
)

const billboardColumns = `id, store_id, label, image_url, created_at, updated_at`

// CreateBillboard inserts a billboard. A label already used in the store
// yields ErrDuplicate.
func CreateBillboard(ctx context.Context, db *sqlx.DB, storeID string, in model.BillboardInput) (*model.Billboard, error) {
	id := newID()
	_, err := db.ExecContext(ctx,
		`INSERT INTO billboards (id, store_id, label, image_url) VALUES (?, ?, ?, ?)`,
		id, storeID, in.Label, in.ImageURL,
	)
	if err != nil {
		return nil, writeErr("creating billboard", err)
	}
	return GetBillboard(ctx, db, storeID, id)
}

// GetBillboard returns a billboard of the store, or nil.
func GetBillboard(ctx context.Context, db *sqlx.DB, storeID, id string) (*model.Billboard, error) {
	var b model.Billboard
	err := db.GetContext(ctx, &b,
		`SELECT `+billboardColumns+` FROM billboards WHERE id = ? AND store_id = ?`, id, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting billboard: %w", err)
	}
	return &b, nil
}

// ListBillboards returns the store's billboards, newest first.
func ListBillboards(ctx context.Context, db *sqlx.DB, storeID string) ([]model.Billboard, error) {
	billboards := []model.Billboard{}
	err := db.SelectContext(ctx, &billboards,
		`SELECT `+billboardColumns+` FROM billboards WHERE store_id = ?
		 ORDER BY created_at DESC, rowid DESC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("listing billboards: %w", err)
	}
	return billboards, nil
}

// UpdateBillboard replaces the mutable fields of a billboard of the store.
func UpdateBillboard(ctx context.Context, db *sqlx.DB, storeID, id string, in model.BillboardInput) (*model.Billboard, error) {
	res, err := db.ExecContext(ctx,
		`UPDATE billboards SET label = ?, image_url = ?, updated_at = `+now+`
		 WHERE id = ? AND store_id = ?`,
		in.Label, in.ImageURL, id, storeID,
	)
	if err != nil {
		return nil, writeErr("updating billboard", err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return nil, fmt.Errorf("updating billboard: %w", err)
	}
	return GetBillboard(ctx, db, storeID, id)
}

// DeleteBillboard deletes a billboard of the store and returns it. It fails
// with ErrReferenced while a category uses the billboard.
func DeleteBillboard(ctx context.Context, db *sqlx.DB, storeID, id string) (*model.Billboard, error) {
	b, err := GetBillboard(ctx, db, storeID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("deleting billboard: %w", ErrNotFound)
	}

	res, err := db.ExecContext(ctx, `DELETE FROM billboards WHERE id = ? AND store_id = ?`, id, storeID)
	if err != nil {
		return nil, deleteErr("deleting billboard", err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return nil, fmt.Errorf("deleting billboard: %w", err)
	}
	return b, nil
}
