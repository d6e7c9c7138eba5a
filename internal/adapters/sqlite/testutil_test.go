// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for
// tests. All test setup functions use db.GetSchemaSQL() so tests always run
// against the authoritative schema, preventing drift between test and
// production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/hivemind/internal/db"
)

// setupTestDB creates a temporary file-backed database with the
// authoritative schema. File-backed rather than :memory: because several
// tests exercise concurrent access through the connection pool, and each
// :memory: connection would get its own private database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	testDB, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedSubscriber inserts a test subscriber and returns its identity.
func seedSubscriber(t *testing.T, db *sql.DB, identity string) string {
	t.Helper()
	if identity == "" {
		identity = "+15550001111"
	}
	_, err := db.Exec("INSERT INTO subscribers (phone, active) VALUES (?, 1)", identity)
	if err != nil {
		t.Fatalf("failed to seed subscriber: %v", err)
	}
	return identity
}

// seedProblem inserts a test problem and returns its ID.
func seedProblem(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	if name == "" {
		name = "P vs NP"
	}
	res, err := db.Exec("INSERT INTO problems (name, description, active) VALUES (?, 'test problem', 1)", name)
	if err != nil {
		t.Fatalf("failed to seed problem: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read seeded problem id: %v", err)
	}
	return id
}
