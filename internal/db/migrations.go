package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: listings are ordered by id within a scope.
	`CREATE INDEX IF NOT EXISTS idx_items_inventory_id_desc
	     ON items(inventory_id, id DESC)`,
	// Migration 2: lookups of memberships by user for the inventory list.
	`CREATE INDEX IF NOT EXISTS idx_inventory_members_user
	     ON inventory_members(user_id)`,
	// Migration 3: idx_items_inventory_id_desc covers inventory_id lookups.
	`DROP INDEX IF EXISTS idx_items_inventory`,
}

// Migrate ensures the schema and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
