package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/katalog/internal/model"
)

const productColumns = `id, store_id, category_id, size_id, color_id, name, price,
	is_featured, is_archived, created_at, updated_at`

// CreateProduct inserts a product and its images in one transaction.
func CreateProduct(ctx context.Context, db *sqlx.DB, storeID string, in model.ProductInput) (*model.Product, error) {
	id := newID()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO products (id, store_id, category_id, size_id, color_id, name, price, is_featured, is_archived)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, storeID, in.CategoryID, in.SizeID, in.ColorID, in.Name, in.Price, in.IsFeatured, in.IsArchived,
	)
	if err != nil {
		return nil, writeErr("creating product", err)
	}
	if err := insertImages(ctx, tx, id, in.Images); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing product: %w", err)
	}
	return GetProduct(ctx, db, storeID, id)
}

func insertImages(ctx context.Context, tx *sqlx.Tx, productID string, images []model.ImageInput) error {
	for _, img := range images {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO images (id, product_id, url) VALUES (?, ?, ?)`,
			newID(), productID, img.URL,
		)
		if err != nil {
			return writeErr("creating product image", err)
		}
	}
	return nil
}

// GetProduct returns a product of the store with images, category, size and
// color, or nil. Archived products are returned.
func GetProduct(ctx context.Context, db *sqlx.DB, storeID, id string) (*model.Product, error) {
	var p model.Product
	err := db.GetContext(ctx, &p,
		`SELECT `+productColumns+` FROM products WHERE id = ? AND store_id = ?`, id, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}

	products := []model.Product{p}
	if err := attachRelations(ctx, db, storeID, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// ListProducts returns the store's non-archived products matching the
// filter, newest first, with relations attached.
func ListProducts(ctx context.Context, db *sqlx.DB, storeID string, f model.ProductFilter) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = ? AND is_archived = 0`
	args := []any{storeID}

	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.ColorID != "" {
		query += ` AND color_id = ?`
		args = append(args, f.ColorID)
	}
	if f.SizeID != "" {
		query += ` AND size_id = ?`
		args = append(args, f.SizeID)
	}
	if f.FeaturedOnly {
		query += ` AND is_featured = 1`
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	return selectProducts(ctx, db, storeID, query, args...)
}

// ListAllProducts returns every product of the store, archived included, for
// the dashboard.
func ListAllProducts(ctx context.Context, db *sqlx.DB, storeID string) ([]model.Product, error) {
	return selectProducts(ctx, db, storeID,
		`SELECT `+productColumns+` FROM products WHERE store_id = ? ORDER BY created_at DESC, rowid DESC`,
		storeID)
}

func selectProducts(ctx context.Context, db *sqlx.DB, storeID, query string, args ...any) ([]model.Product, error) {
	products := []model.Product{}
	if err := db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	if err := attachRelations(ctx, db, storeID, products); err != nil {
		return nil, err
	}
	return products, nil
}

// attachRelations loads images, categories, sizes and colors for the given
// products with one query per table.
func attachRelations(ctx context.Context, db *sqlx.DB, storeID string, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	query, args, err := sqlx.In(
		`SELECT id, product_id, url, created_at, updated_at FROM images
		 WHERE product_id IN (?) ORDER BY created_at, rowid`, ids)
	if err != nil {
		return fmt.Errorf("building image query: %w", err)
	}
	var images []model.Image
	if err := db.SelectContext(ctx, &images, db.Rebind(query), args...); err != nil {
		return fmt.Errorf("loading product images: %w", err)
	}
	byProduct := make(map[string][]model.Image)
	for _, img := range images {
		byProduct[img.ProductID] = append(byProduct[img.ProductID], img)
	}

	var categories []model.Category
	if err := db.SelectContext(ctx, &categories,
		`SELECT `+categoryColumns+` FROM categories WHERE store_id = ?`, storeID); err != nil {
		return fmt.Errorf("loading product categories: %w", err)
	}
	sizes, err := ListSizes(ctx, db, storeID)
	if err != nil {
		return err
	}
	colors, err := ListColors(ctx, db, storeID)
	if err != nil {
		return err
	}

	catByID := make(map[string]*model.Category, len(categories))
	for i := range categories {
		catByID[categories[i].ID] = &categories[i]
	}
	sizeByID := make(map[string]*model.Size, len(sizes))
	for i := range sizes {
		sizeByID[sizes[i].ID] = &sizes[i]
	}
	colorByID := make(map[string]*model.Color, len(colors))
	for i := range colors {
		colorByID[colors[i].ID] = &colors[i]
	}

	for i := range products {
		p := &products[i]
		p.Images = byProduct[p.ID]
		if p.Images == nil {
			p.Images = []model.Image{}
		}
		p.Category = catByID[p.CategoryID]
		p.Size = sizeByID[p.SizeID]
		p.Color = colorByID[p.ColorID]
	}
	return nil
}

// UpdateProduct replaces the mutable fields and the image set of a product
// of the store in one transaction.
func UpdateProduct(ctx context.Context, db *sqlx.DB, storeID, id string, in model.ProductInput) (*model.Product, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE products SET name = ?, price = ?, category_id = ?, size_id = ?, color_id = ?,
		     is_featured = ?, is_archived = ?, updated_at = `+now+`
		 WHERE id = ? AND store_id = ?`,
		in.Name, in.Price, in.CategoryID, in.SizeID, in.ColorID, in.IsFeatured, in.IsArchived,
		id, storeID,
	)
	if err != nil {
		return nil, writeErr("updating product", err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM images WHERE product_id = ?`, id); err != nil {
		return nil, fmt.Errorf("clearing product images: %w", err)
	}
	if err := insertImages(ctx, tx, id, in.Images); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing product: %w", err)
	}
	return GetProduct(ctx, db, storeID, id)
}

// DeleteProduct deletes a product of the store together with its images.
func DeleteProduct(ctx context.Context, db *sqlx.DB, storeID, id string) (*model.Product, error) {
	p, err := GetProduct(ctx, db, storeID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("deleting product: %w", ErrNotFound)
	}

	res, err := db.ExecContext(ctx, `DELETE FROM products WHERE id = ? AND store_id = ?`, id, storeID)
	if err != nil {
		return nil, deleteErr("deleting product", err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return nil, fmt.Errorf("deleting product: %w", err)
	}
	return p, nil
}
