package repository

import (
	"context"
	"database/sql"
)

// Address columns are embedded on the owning table; no table of their own.
// Member names intentionally carry no UNIQUE constraint: uniqueness is a
// service-level policy.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS members (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		city       TEXT NOT NULL DEFAULT '',
		street     TEXT NOT NULL DEFAULT '',
		zipcode    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id             TEXT PRIMARY KEY,
		kind           TEXT NOT NULL,
		name           TEXT NOT NULL,
		price          INTEGER NOT NULL,
		stock_quantity INTEGER NOT NULL CHECK (stock_quantity >= 0),
		author         TEXT NOT NULL DEFAULT '',
		isbn           TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id      TEXT PRIMARY KEY,
		city    TEXT NOT NULL DEFAULT '',
		street  TEXT NOT NULL DEFAULT '',
		zipcode TEXT NOT NULL DEFAULT '',
		status  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id          TEXT PRIMARY KEY,
		member_id   TEXT NOT NULL REFERENCES members(id),
		delivery_id TEXT NOT NULL REFERENCES deliveries(id),
		status      TEXT NOT NULL,
		ordered_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id          TEXT PRIMARY KEY,
		order_id    TEXT NOT NULL REFERENCES orders(id),
		item_id     TEXT NOT NULL REFERENCES items(id),
		order_price INTEGER NOT NULL,
		quantity    INTEGER NOT NULL CHECK (quantity > 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_member_id ON orders(member_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`,
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
