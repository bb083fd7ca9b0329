package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const drugSchema = `
CREATE TABLE IF NOT EXISTS drugs (
	drugbank_id  TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	generic_name TEXT NOT NULL DEFAULT '',
	synonyms     TEXT NOT NULL DEFAULT '',
	drug_class   TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	alternatives TEXT NOT NULL DEFAULT '',
	side_effects TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_drugs_name ON drugs(name);
`

// Connect opens an in-memory SQLite database and creates the drug schema.
// An in-memory DB exists per connection, so the pool is pinned to one.
func Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, drugSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create drug schema: %w", err)
	}
	return db, nil
}
