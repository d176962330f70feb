package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/zaloga/internal/model"
)

// CreateInventory inserts an inventory row. The caller is responsible for
// creating the owning membership in the same transaction.
func CreateInventory(ctx context.Context, q Querier, name string, createdBy int64) (*model.Inventory, error) {
	result, err := q.ExecContext(ctx,
		`INSERT INTO inventories (name, created_by_user_id) VALUES (?, ?)`,
		name, createdBy,
	)
	if err != nil {
		return nil, wrapWrite("creating inventory", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting inventory id: %w", err)
	}

	return GetInventory(ctx, q, id)
}

// GetInventory returns an inventory by ID, or nil if it does not exist.
func GetInventory(ctx context.Context, q Querier, id int64) (*model.Inventory, error) {
	inv := &model.Inventory{}
	err := q.QueryRowContext(ctx,
		`SELECT id, name, created_by_user_id, created_at FROM inventories WHERE id = ?`, id,
	).Scan(&inv.ID, &inv.Name, &inv.CreatedByUserID, &inv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting inventory: %w", err)
	}
	return inv, nil
}

// ListInventoriesForUser returns the inventories the user is a member of,
// newest first, with the user's role in each.
func ListInventoriesForUser(ctx context.Context, q Querier, userID int64) ([]model.InventoryAccess, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT i.id, i.name, i.created_by_user_id, i.created_at, m.role
		 FROM inventories i
		 JOIN inventory_members m ON m.inventory_id = i.id
		 WHERE m.user_id = ?
		 ORDER BY i.id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing inventories: %w", err)
	}
	defer rows.Close()

	var invs []model.InventoryAccess
	for rows.Next() {
		var a model.InventoryAccess
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedByUserID, &a.CreatedAt, &a.Role); err != nil {
			return nil, fmt.Errorf("scanning inventory: %w", err)
		}
		invs = append(invs, a)
	}
	return invs, rows.Err()
}

// DeleteInventory deletes the inventory row only. Memberships and items must
// already be gone or the foreign keys reject the delete.
func DeleteInventory(ctx context.Context, q Querier, id int64) error {
	_, err := q.ExecContext(ctx, `DELETE FROM inventories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting inventory: %w", err)
	}
	return nil
}

// ClearInventoryCreator drops the creator reference from every inventory the
// user created, so the inventories outlive the account.
func ClearInventoryCreator(ctx context.Context, q Querier, userID int64) error {
	_, err := q.ExecContext(ctx,
		`UPDATE inventories SET created_by_user_id = NULL WHERE created_by_user_id = ?`, userID,
	)
	if err != nil {
		return fmt.Errorf("clearing inventory creator: %w", err)
	}
	return nil
}
