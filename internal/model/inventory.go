package model

import "time"

// Inventory is a shared collection of items.
type Inventory struct {
	ID              int64
	Name            string
	CreatedByUserID *int64
	CreatedAt       time.Time
}

// InventoryAccess is an inventory together with the caller's role in it.
type InventoryAccess struct {
	Inventory
	Role string
}

// Membership binds a user to an inventory with a role.
type Membership struct {
	ID          int64
	UserID      int64
	InventoryID int64
	Role        string
	CreatedAt   time.Time

	// Joined field (not always populated).
	Username string
}

// Membership roles.
const (
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Tenancy modes.
const (
	TenancyMulti  = "multi"
	TenancySingle = "single"
)
