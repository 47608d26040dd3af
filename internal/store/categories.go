package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/katalog/internal/model"
)

const categoryColumns = `id, store_id, billboard_id, name, created_at, updated_at`

// CreateCategory inserts a category. The billboard must belong to the same
// store (ErrInvalidReference otherwise) and the name must be unused in the
// store (ErrDuplicate otherwise).
func CreateCategory(ctx context.Context, db *sqlx.DB, storeID string, in model.CategoryInput) (*model.Category, error) {
	id := newID()
	_, err := db.ExecContext(ctx,
		`INSERT INTO categories (id, store_id, billboard_id, name) VALUES (?, ?, ?, ?)`,
		id, storeID, in.BillboardID, in.Name,
	)
	if err != nil {
		return nil, writeErr("creating category", err)
	}
	return GetCategory(ctx, db, storeID, id)
}

// GetCategory returns a category of the store with its billboard, or nil.
func GetCategory(ctx context.Context, db *sqlx.DB, storeID, id string) (*model.Category, error) {
	var c model.Category
	err := db.GetContext(ctx, &c,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ? AND store_id = ?`, id, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}

	c.Billboard, err = GetBillboard(ctx, db, storeID, c.BillboardID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns the store's categories with their billboards,
// newest first.
func ListCategories(ctx context.Context, db *sqlx.DB, storeID string) ([]model.Category, error) {
	categories := []model.Category{}
	err := db.SelectContext(ctx, &categories,
		`SELECT `+categoryColumns+` FROM categories WHERE store_id = ?
		 ORDER BY created_at DESC, rowid DESC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	if len(categories) == 0 {
		return categories, nil
	}

	billboards, err := ListBillboards(ctx, db, storeID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Billboard, len(billboards))
	for i := range billboards {
		byID[billboards[i].ID] = &billboards[i]
	}
	for i := range categories {
		categories[i].Billboard = byID[categories[i].BillboardID]
	}
	return categories, nil
}

// UpdateCategory replaces the mutable fields of a category of the store.
func UpdateCategory(ctx context.Context, db *sqlx.DB, storeID, id string, in model.CategoryInput) (*model.Category, error) {
	res, err := db.ExecContext(ctx,
		`UPDATE categories SET name = ?, billboard_id = ?, updated_at = `+now+`
		 WHERE id = ? AND store_id = ?`,
		in.Name, in.BillboardID, id, storeID,
	)
	if err != nil {
		return nil, writeErr("updating category", err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}
	return GetCategory(ctx, db, storeID, id)
}

// DeleteCategory deletes a category of the store and returns it. It fails
// with ErrReferenced while a product uses the category.
func DeleteCategory(ctx context.Context, db *sqlx.DB, storeID, id string) (*model.Category, error) {
	c, err := GetCategory(ctx, db, storeID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("deleting category: %w", ErrNotFound)
	}

	res, err := db.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND store_id = ?`, id, storeID)
	if err != nil {
		return nil, deleteErr("deleting category", err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return nil, fmt.Errorf("deleting category: %w", err)
	}
	return c, nil
}
