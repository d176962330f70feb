package service

import (
	"context"

	"github.com/erazemk/zaloga/internal/apperr"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
)

func requirePrincipal(p *model.Principal) error {
	if p == nil {
		return apperr.Auth("You must be logged in.")
	}
	return nil
}

// Authorize returns the principal's membership in an inventory. It fails with
// an auth error when there is no principal and a permission error when the
// principal is not a member. The role is not checked.
func (s *Service) Authorize(ctx context.Context, p *model.Principal, inventoryID int64) (*model.Membership, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}

	m, err := store.GetMembership(ctx, s.db, p.UserID, inventoryID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.Permission("You do not have access to this inventory.")
	}
	return m, nil
}

// AuthorizeOwner reports whether the principal owns a single-tenant item.
func AuthorizeOwner(p *model.Principal, item *model.Item) bool {
	return p != nil && item.UserID != nil && *item.UserID == p.UserID
}
