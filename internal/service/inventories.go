package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/erazemk/zaloga/internal/apperr"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
)

// CreateInventory creates an inventory with the principal as its manager.
func (s *Service) CreateInventory(ctx context.Context, p *model.Principal, name string) (*model.InventoryAccess, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}
	name, err := model.NormalizeInventoryName(name)
	if err != nil {
		return nil, err
	}

	var inv *model.Inventory
	err = store.WithTx(ctx, s.db, func(tx store.Querier) error {
		var err error
		if inv, err = store.CreateInventory(ctx, tx, name, p.UserID); err != nil {
			return err
		}
		_, err = store.CreateMembership(ctx, tx, p.UserID, inv.ID, model.RoleManager)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating inventory: %w", err)
	}

	s.log.Info("inventory created", zap.Int64("inventory_id", inv.ID), zap.Int64("user_id", p.UserID))
	return &model.InventoryAccess{Inventory: *inv, Role: model.RoleManager}, nil
}

// DeleteInventory deletes an inventory with its items and memberships. Only
// the creator may delete it.
func (s *Service) DeleteInventory(ctx context.Context, p *model.Principal, inventoryID int64) error {
	if err := requirePrincipal(p); err != nil {
		return err
	}

	inv, err := store.GetInventory(ctx, s.db, inventoryID)
	if err != nil {
		return err
	}
	if inv == nil {
		return apperr.NotFound("Inventory not found.")
	}
	if inv.CreatedByUserID == nil || *inv.CreatedByUserID != p.UserID {
		return apperr.Permission("Only the creator can delete this inventory.")
	}

	var items, members int64
	err = store.WithTx(ctx, s.db, func(tx store.Querier) error {
		var err error
		if items, err = store.DeleteItemsInScope(ctx, tx, store.InventoryScope(inventoryID)); err != nil {
			return err
		}
		if members, err = store.DeleteMembershipsByInventory(ctx, tx, inventoryID); err != nil {
			return err
		}
		return store.DeleteInventory(ctx, tx, inventoryID)
	})
	if err != nil {
		return fmt.Errorf("deleting inventory %d: %w", inventoryID, err)
	}

	s.log.Info("inventory deleted",
		zap.Int64("inventory_id", inventoryID),
		zap.Int64("items", items),
		zap.Int64("members", members),
	)
	return nil
}

// ListInventories returns the inventories the principal is a member of,
// newest first.
func (s *Service) ListInventories(ctx context.Context, p *model.Principal) ([]model.InventoryAccess, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}
	return store.ListInventoriesForUser(ctx, s.db, p.UserID)
}

// AddMember shares an inventory with another user. If the user is already a
// member the existing membership is returned and created is false.
func (s *Service) AddMember(ctx context.Context, p *model.Principal, inventoryID int64, username, role string) (m *model.Membership, created bool, err error) {
	if _, err := s.Authorize(ctx, p, inventoryID); err != nil {
		return nil, false, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false, apperr.Validation("username is required.")
	}

	user, err := store.GetUserByUsername(ctx, s.db, username)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, apperr.NotFound("User not found.")
	}

	existing, err := store.GetMembership(ctx, s.db, user.ID, inventoryID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	m, err = store.CreateMembership(ctx, s.db, user.ID, inventoryID, model.NormalizeRole(role))
	if errors.Is(err, store.ErrConflict) {
		// Lost a race with a concurrent insert of the same pair.
		existing, err := store.GetMembership(ctx, s.db, user.ID, inventoryID)
		if err != nil {
			return nil, false, err
		}
		if existing == nil {
			return nil, false, fmt.Errorf("membership vanished after conflict: %w", store.ErrConflict)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	s.log.Info("member added",
		zap.Int64("inventory_id", inventoryID),
		zap.String("username", user.Username),
		zap.String("role", m.Role),
	)
	return m, true, nil
}

// ListMembers returns the memberships of an inventory the principal belongs to.
func (s *Service) ListMembers(ctx context.Context, p *model.Principal, inventoryID int64) ([]model.Membership, error) {
	if _, err := s.Authorize(ctx, p, inventoryID); err != nil {
		return nil, err
	}
	return store.ListMembers(ctx, s.db, inventoryID)
}
