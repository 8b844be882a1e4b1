package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// order_items.product_id is intentionally not a foreign key: products may be
// deleted at any time and placed orders must keep working off their
// product_name/product_price snapshots.
const schema = `
CREATE TABLE IF NOT EXISTS products (
    id                INTEGER PRIMARY KEY,
    name              TEXT NOT NULL,
    description       TEXT NOT NULL,
    short_description TEXT,
    price             REAL NOT NULL CHECK (price > 0),
    category          TEXT NOT NULL,
    image_url         TEXT,
    image             BLOB,
    image_mime        TEXT,
    options           TEXT,
    created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at        DATETIME
);

CREATE TABLE IF NOT EXISTS orders (
    id               INTEGER PRIMARY KEY,
    first_name       TEXT NOT NULL,
    last_name        TEXT NOT NULL,
    email            TEXT NOT NULL,
    phone            TEXT,
    shipping_address TEXT NOT NULL,
    note             TEXT,
    status           TEXT NOT NULL DEFAULT 'NEW'
                     CHECK (status IN ('NEW', 'IN_PROGRESS', 'COMPLETED', 'CANCELED')),
    total            REAL NOT NULL,
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       DATETIME
);

CREATE TABLE IF NOT EXISTS order_items (
    id               INTEGER PRIMARY KEY,
    order_id         INTEGER NOT NULL REFERENCES orders(id),
    product_id       INTEGER NOT NULL,
    product_name     TEXT NOT NULL,
    product_price    REAL NOT NULL,
    quantity         INTEGER NOT NULL CHECK (quantity >= 1),
    selected_options TEXT,
    custom_engraving TEXT
);

CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);

CREATE TABLE IF NOT EXISTS admins (
    id            INTEGER PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
}

// Migrate creates the schema and runs the migrations.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
