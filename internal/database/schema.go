package database

import (
	"context"
	"fmt"
)

// The DDL sticks to types both sqlite and mysql accept: VARCHAR keys,
// DATETIME timestamps, INTEGER counters. Statements are idempotent and
// executed one at a time (the mysql driver rejects multi-statement exec
// by default).
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		display_name VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'staff',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		parent_id VARCHAR(36),
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id VARCHAR(36) PRIMARY KEY,
		sku VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		category_id VARCHAR(36),
		price_cents BIGINT NOT NULL DEFAULT 0,
		stock INTEGER NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(50),
		address TEXT,
		notes TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR(36) PRIMARY KEY,
		order_no VARCHAR(32) NOT NULL UNIQUE,
		customer_id VARCHAR(36) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		total_cents BIGINT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id VARCHAR(36) PRIMARY KEY,
		order_id VARCHAR(36) NOT NULL,
		product_id VARCHAR(36) NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price_cents BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id)`,
}

// mysql (before 8.0.13 workalikes) has no CREATE INDEX IF NOT EXISTS, and
// duplicate-index errors are harmless here, so index failures are tolerated.
func isIndexStatement(stmt string) bool {
	return len(stmt) > 12 && stmt[:12] == "CREATE INDEX"
}

// EnsureSchema creates all tables and indexes if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if isIndexStatement(stmt) {
				continue
			}
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
