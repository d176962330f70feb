package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/zaloga/internal/model"
)

// ItemScope selects the items of one inventory or of one user.
type ItemScope struct {
	InventoryID int64
	UserID      int64
}

// InventoryScope returns the scope of an inventory's items.
func InventoryScope(inventoryID int64) ItemScope { return ItemScope{InventoryID: inventoryID} }

// UserScope returns the scope of a user's own items.
func UserScope(userID int64) ItemScope { return ItemScope{UserID: userID} }

func (s ItemScope) where() (string, int64) {
	if s.InventoryID != 0 {
		return "inventory_id = ?", s.InventoryID
	}
	return "user_id = ?", s.UserID
}

const itemColumns = `id, inventory_id, user_id, name, quantity, unit, par_level, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	it := &model.Item{}
	err := row.Scan(&it.ID, &it.InventoryID, &it.UserID, &it.Name, &it.Quantity,
		&it.Unit, &it.ParLevel, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

// CreateItem inserts an item. Exactly one of item.InventoryID and item.UserID
// must be set.
func CreateItem(ctx context.Context, q Querier, item *model.Item) (*model.Item, error) {
	result, err := q.ExecContext(ctx,
		`INSERT INTO items (inventory_id, user_id, name, quantity, unit, par_level)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.InventoryID, item.UserID, item.Name, item.Quantity, item.Unit, item.ParLevel,
	)
	if err != nil {
		return nil, wrapWrite("creating item", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, q, id)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, q Querier, id int64) (*model.Item, error) {
	it, err := scanItem(q.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return it, nil
}

// ListItems returns one window of a scope's items, newest first.
func ListItems(ctx context.Context, q Querier, scope ItemScope, limit, offset int) ([]model.Item, error) {
	cond, arg := scope.where()
	rows, err := q.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE `+cond+` ORDER BY id DESC LIMIT ? OFFSET ?`,
		arg, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// CountItems returns the number of items in a scope.
func CountItems(ctx context.Context, q Querier, scope ItemScope) (int, error) {
	cond, arg := scope.where()
	var n int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE `+cond, arg).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// UpdateItem writes the mutable fields of an item.
func UpdateItem(ctx context.Context, q Querier, item *model.Item) error {
	_, err := q.ExecContext(ctx,
		`UPDATE items SET name = ?, quantity = ?, unit = ?, par_level = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		item.Name, item.Quantity, item.Unit, item.ParLevel, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem deletes an item.
func DeleteItem(ctx context.Context, q Querier, id int64) error {
	_, err := q.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// DeleteItemsInScope deletes every item of a scope and returns how many were
// removed.
func DeleteItemsInScope(ctx context.Context, q Querier, scope ItemScope) (int64, error) {
	cond, arg := scope.where()
	result, err := q.ExecContext(ctx, `DELETE FROM items WHERE `+cond, arg)
	if err != nil {
		return 0, fmt.Errorf("deleting items: %w", err)
	}
	return result.RowsAffected()
}
