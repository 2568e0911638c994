package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// stock_logs and prices are append-only: rows are never updated or deleted
// except through the barang cascade. The stock_logs integer primary key
// doubles as a monotonic tie-break for entries sharing a created_at second,
// so (created_at, id) is a total order per barang.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS barang (
    id         TEXT PRIMARY KEY,
    nama       TEXT NOT NULL,
    kode       TEXT NOT NULL UNIQUE,
    stok       INTEGER NOT NULL DEFAULT 0,
    harga_text TEXT,
    foto       BLOB,
    foto_mime  TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS stock_logs (
    id         INTEGER PRIMARY KEY,
    barang_id  TEXT NOT NULL REFERENCES barang(id) ON DELETE CASCADE,
    delta      INTEGER NOT NULL,
    stok_after INTEGER NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_stock_logs_barang
    ON stock_logs(barang_id, created_at);

CREATE TABLE IF NOT EXISTS prices (
    id              INTEGER PRIMARY KEY,
    barang_id       TEXT NOT NULL REFERENCES barang(id) ON DELETE CASCADE,
    harga           TEXT NOT NULL,
    tanggal_berlaku TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_prices_tanggal
    ON prices(tanggal_berlaku);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{}

// Migrate creates the schema and runs pending migrations.
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
