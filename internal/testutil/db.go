package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/atomicstack/tabdeck/internal/storage"
)

// NewDB opens a migrated database in a per-test directory and closes it on
// cleanup. It returns the handle and the file path.
func NewDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tabdeck.db")
	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}
