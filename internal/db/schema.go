package db

// SchemaSQL is the complete schema for fresh hivemind installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(): if repository code references a column that
// doesn't exist here, tests fail immediately with "no such column", catching
// drift at development time rather than in production.
const SchemaSQL = `
-- Subscribers (contact identity -> subscription state)
CREATE TABLE IF NOT EXISTS subscribers (
	phone TEXT PRIMARY KEY,
	active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Problems (registered problem catalog)
CREATE TABLE IF NOT EXISTS problems (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	description TEXT,
	active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Contribution queue (durable FIFO; rows are deleted on pop).
-- AUTOINCREMENT guarantees ids are never reused, so insertion order
-- and pop order stay aligned even across deletes.
CREATE TABLE IF NOT EXISTS contribution_queue (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	phone TEXT NOT NULL,
	problem_ref TEXT NOT NULL,
	body TEXT NOT NULL,
	clarified INTEGER NOT NULL DEFAULT 0,
	enqueued_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// GetSchemaSQL returns the authoritative schema. Tests must use this instead
// of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}
