// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"

	"github.com/blogly/blogly/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemoryURL returns a connection URL for a private in-memory SQLite database.
func MemoryURL() string {
	return "file:blogly-" + uuid.NewString() + "?mode=memory&cache=shared"
}

// OpenDB returns a migrated in-memory database that is closed when the test ends.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(db.Options{
		URL:          MemoryURL(),
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(gdb)
	})

	if err := db.InitDatabase(gdb); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return gdb
}
