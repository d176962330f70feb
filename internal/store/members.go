package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/zaloga/internal/model"
)

const membershipColumns = `m.id, m.user_id, m.inventory_id, m.role, m.created_at, u.username`

func scanMembership(row interface{ Scan(...any) error }) (*model.Membership, error) {
	m := &model.Membership{}
	err := row.Scan(&m.ID, &m.UserID, &m.InventoryID, &m.Role, &m.CreatedAt, &m.Username)
	return m, err
}

// CreateMembership adds a user to an inventory. An existing membership for the
// same pair yields ErrConflict.
func CreateMembership(ctx context.Context, q Querier, userID, inventoryID int64, role string) (*model.Membership, error) {
	result, err := q.ExecContext(ctx,
		`INSERT INTO inventory_members (user_id, inventory_id, role) VALUES (?, ?, ?)`,
		userID, inventoryID, role,
	)
	if err != nil {
		return nil, wrapWrite("creating membership", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting membership id: %w", err)
	}

	m, err := scanMembership(q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+`
		 FROM inventory_members m JOIN users u ON u.id = m.user_id
		 WHERE m.id = ?`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("reading membership: %w", err)
	}
	return m, nil
}

// GetMembership returns the membership of a user in an inventory, or nil.
func GetMembership(ctx context.Context, q Querier, userID, inventoryID int64) (*model.Membership, error) {
	m, err := scanMembership(q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+`
		 FROM inventory_members m JOIN users u ON u.id = m.user_id
		 WHERE m.user_id = ? AND m.inventory_id = ?`, userID, inventoryID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting membership: %w", err)
	}
	return m, nil
}

// ListMembers returns the memberships of an inventory in creation order.
func ListMembers(ctx context.Context, q Querier, inventoryID int64) ([]model.Membership, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+membershipColumns+`
		 FROM inventory_members m JOIN users u ON u.id = m.user_id
		 WHERE m.inventory_id = ?
		 ORDER BY m.id`, inventoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []model.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning membership: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// DeleteMembershipsByInventory removes every membership of an inventory.
func DeleteMembershipsByInventory(ctx context.Context, q Querier, inventoryID int64) (int64, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM inventory_members WHERE inventory_id = ?`, inventoryID)
	if err != nil {
		return 0, fmt.Errorf("deleting inventory memberships: %w", err)
	}
	return result.RowsAffected()
}

// DeleteMembershipsByUser removes every membership of a user.
func DeleteMembershipsByUser(ctx context.Context, q Querier, userID int64) (int64, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM inventory_members WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting user memberships: %w", err)
	}
	return result.RowsAffected()
}
