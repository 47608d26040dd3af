package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migrations are applied in order after schema creation and recorded in
// schema_migrations. Append new migrations at the end; never reorder.
var migrations = []string{
	// 1: storefront lookups of featured products.
	`CREATE INDEX IF NOT EXISTS idx_products_featured
	     ON products(store_id, is_featured) WHERE is_archived = 0`,
}

// EnsureSchema creates all tables and indexes and applies pending migrations.
func EnsureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	var applied int
	if err := db.Get(&applied, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := applied; i < len(migrations); i++ {
		version := i + 1
		tx, err := db.Beginx()
		if err != nil {
			return fmt.Errorf("starting migration %d: %w", version, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("running migration %d: %w", version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}

// SchemaVersion returns the number of applied migrations.
func SchemaVersion(db *sqlx.DB) (int, error) {
	var v int
	if err := db.Get(&v, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}
