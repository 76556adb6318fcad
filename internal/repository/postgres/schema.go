package postgres

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		name            TEXT PRIMARY KEY,
		category        TEXT NOT NULL,
		price           INTEGER NOT NULL CHECK (price >= 0),
		stock           INTEGER NOT NULL CHECK (stock >= 0),
		safety_stock    INTEGER NOT NULL CHECK (safety_stock >= 0),
		expiration_date DATE,
		volume_ml       INTEGER,
		position        SERIAL,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS daily_sales (
		sale_date    DATE NOT NULL,
		product_name TEXT NOT NULL,
		quantity     INTEGER NOT NULL CHECK (quantity >= 0),
		position     SERIAL,
		PRIMARY KEY (sale_date, product_name)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_commits (
		commit_date  DATE PRIMARY KEY,
		updated      INTEGER NOT NULL,
		committed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS stock_commit_lines (
		commit_date  DATE NOT NULL REFERENCES stock_commits (commit_date) DEFERRABLE INITIALLY DEFERRED,
		product_name TEXT NOT NULL,
		opening      INTEGER NOT NULL,
		PRIMARY KEY (commit_date, product_name)
	)`,
}

// Migrate creates the inventory tables when they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
