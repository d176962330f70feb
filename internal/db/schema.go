package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Dependent rows are removed by the
// store's explicit cascade routines, so no foreign key cascades on delete.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS inventories (
    id                 INTEGER PRIMARY KEY,
    name               TEXT NOT NULL,
    created_by_user_id INTEGER REFERENCES users(id),
    created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS inventory_members (
    id           INTEGER PRIMARY KEY,
    user_id      INTEGER NOT NULL REFERENCES users(id),
    inventory_id INTEGER NOT NULL REFERENCES inventories(id),
    role         TEXT NOT NULL DEFAULT 'manager' CHECK (role IN ('manager', 'staff')),
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CONSTRAINT uq_user_inventory UNIQUE (user_id, inventory_id)
);

CREATE INDEX IF NOT EXISTS idx_inventory_members_inventory
    ON inventory_members(inventory_id);

CREATE TABLE IF NOT EXISTS items (
    id           INTEGER PRIMARY KEY,
    inventory_id INTEGER REFERENCES inventories(id),
    user_id      INTEGER REFERENCES users(id),
    name         TEXT NOT NULL,
    quantity     INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    unit         TEXT,
    par_level    INTEGER NOT NULL DEFAULT 0 CHECK (par_level >= 0),
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK ((inventory_id IS NULL) <> (user_id IS NULL))
);

CREATE INDEX IF NOT EXISTS idx_items_user ON items(user_id);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
