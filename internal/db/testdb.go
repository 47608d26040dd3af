package db

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
)

// NewTestDB returns a private in-memory database with the current schema.
// It is closed when the test ends.
func NewTestDB(t testing.TB) *sqlx.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("applying test schema: %v", err)
	}
	return db
}
