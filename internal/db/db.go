package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id               TEXT PRIMARY KEY,
    name             TEXT NOT NULL UNIQUE,
    category         TEXT NOT NULL DEFAULT '',
    unit_price       REAL NOT NULL CHECK(unit_price >= 0),
    competitor_price REAL NOT NULL DEFAULT 0,
    current_stock    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sales_records (
    id               TEXT PRIMARY KEY,
    product_id       TEXT NOT NULL REFERENCES products(id),
    transaction_date TEXT NOT NULL,
    quantity_sold    INTEGER NOT NULL CHECK(quantity_sold > 0),
    unit_price       REAL NOT NULL CHECK(unit_price > 0),
    discount         REAL NOT NULL DEFAULT 0 CHECK(discount BETWEEN 0 AND 100),
    promotion        INTEGER NOT NULL DEFAULT 0 CHECK(promotion IN (0,1)),
    created_at       TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);

CREATE TABLE IF NOT EXISTS purchase_orders (
    id                     TEXT PRIMARY KEY,
    supplier_name          TEXT NOT NULL,
    order_date             TEXT NOT NULL,
    expected_delivery_date TEXT,
    status                 TEXT NOT NULL CHECK(status IN ('Ordered','Received')),
    notes                  TEXT,
    created_at             TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);

CREATE TABLE IF NOT EXISTS purchase_order_items (
    id                INTEGER PRIMARY KEY,
    purchase_order_id TEXT NOT NULL REFERENCES purchase_orders(id),
    position          INTEGER NOT NULL,
    name              TEXT NOT NULL,
    quantity          INTEGER NOT NULL CHECK(quantity > 0),
    price             REAL NOT NULL CHECK(price >= 0)
);

CREATE TABLE IF NOT EXISTS contacts (
    id         INTEGER PRIMARY KEY,
    kind       TEXT NOT NULL CHECK(kind IN ('vendor','customer')),
    company    TEXT NOT NULL,
    name       TEXT NOT NULL,
    email      TEXT,
    phone      TEXT,
    notes      TEXT,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);

CREATE TABLE IF NOT EXISTS account (
    id            INTEGER PRIMARY KEY CHECK(id = 1),
    name          TEXT NOT NULL,
    date_of_birth TEXT
);

CREATE TABLE IF NOT EXISTS profile (
    id           INTEGER PRIMARY KEY CHECK(id = 1),
    first_name   TEXT NOT NULL,
    last_name    TEXT NOT NULL,
    bio          TEXT,
    emails       TEXT NOT NULL,
    picture_path TEXT
);

CREATE INDEX IF NOT EXISTS idx_sales_records_product_id ON sales_records(product_id);
CREATE INDEX IF NOT EXISTS idx_sales_records_date ON sales_records(transaction_date DESC);
CREATE INDEX IF NOT EXISTS idx_purchase_order_items_order ON purchase_order_items(purchase_order_id, position);
CREATE INDEX IF NOT EXISTS idx_contacts_kind ON contacts(kind, company);
`

// Open opens or creates the SQLite database and initializes the schema.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

const dateLayout = "2006-01-02"

func formatDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

func parseDate(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func timestampOrNow(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
