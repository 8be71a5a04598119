// Package migrate creates the PostgreSQL schema.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
)

// statements are idempotent and applied in order.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS vendors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		contact_details TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		vendor_code TEXT NOT NULL UNIQUE,
		on_time_delivery_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		quality_rating_avg DOUBLE PRECISION NOT NULL DEFAULT 0,
		average_response_time DOUBLE PRECISION NOT NULL DEFAULT 0,
		fulfillment_rate DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id TEXT PRIMARY KEY,
		po_number TEXT NOT NULL UNIQUE,
		vendor_id TEXT REFERENCES vendors(id) ON DELETE SET NULL,
		order_date TIMESTAMPTZ NOT NULL,
		expected_delivery_date TIMESTAMPTZ NOT NULL,
		delivery_date TIMESTAMPTZ,
		items JSONB,
		quantity INT NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		quality_rating DOUBLE PRECISION,
		issue_date TIMESTAMPTZ NOT NULL,
		acknowledgment_date TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS purchase_orders_vendor_id_idx ON purchase_orders (vendor_id)`,
}

// Up applies the schema.
func Up(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
