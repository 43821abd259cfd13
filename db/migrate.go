package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS food_items (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		category    TEXT NOT NULL,
		price       NUMERIC(10,2) NOT NULL CHECK (price > 0),
		image_url   TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_food_items_category ON food_items (category)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id              BIGSERIAL PRIMARY KEY,
		customer_name   TEXT NOT NULL,
		customer_phone  TEXT,
		payment_method  TEXT,
		notes           TEXT,
		total_amount    NUMERIC(12,2) NOT NULL DEFAULT 0,
		status          TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'paid')),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders (status, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         BIGSERIAL PRIMARY KEY,
		order_id   BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		position   INT NOT NULL,
		item_name  TEXT NOT NULL,
		price      NUMERIC(10,2) NOT NULL,
		quantity   INT NOT NULL CHECK (quantity > 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id, position)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id          BIGSERIAL PRIMARY KEY,
		order_id    BIGINT UNIQUE REFERENCES orders(id) ON DELETE SET NULL,
		amount      NUMERIC(12,2) NOT NULL CHECK (amount > 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_created ON sales (created_at DESC)`,
}

// Migrate creates the tables the service needs if they do not exist yet.
func Migrate(ctx context.Context, conn *sql.DB) error {
	for i, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d failed: %w", i+1, err)
		}
	}
	log.Printf("✓ Database schema is up to date (%d statements)", len(schema))
	return nil
}
