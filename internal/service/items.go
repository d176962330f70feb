package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/erazemk/zaloga/internal/apperr"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
)

// Item listing page sizes.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Paginate normalizes listing parameters: page below 1 becomes 1, a page size
// below 1 becomes the default and anything above the maximum is clamped.
func Paginate(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}
	return page, perPage
}

// itemScope authorizes the principal on an item scope. In single-tenant mode
// the scope is the principal's own items and inventoryID is ignored.
func (s *Service) itemScope(ctx context.Context, p *model.Principal, inventoryID int64) (store.ItemScope, error) {
	if err := requirePrincipal(p); err != nil {
		return store.ItemScope{}, err
	}
	if s.single() {
		return store.UserScope(p.UserID), nil
	}
	if _, err := s.Authorize(ctx, p, inventoryID); err != nil {
		return store.ItemScope{}, err
	}
	return store.InventoryScope(inventoryID), nil
}

// resolveItem loads an item and authorizes the principal on its scope.
func (s *Service) resolveItem(ctx context.Context, p *model.Principal, itemID int64) (*model.Item, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}

	item, err := store.GetItem(ctx, s.db, itemID)
	if err != nil {
		return nil, err
	}
	notFound := apperr.NotFound("Item not found.")
	if item == nil {
		return nil, notFound
	}

	if s.single() {
		if item.UserID == nil {
			return nil, notFound
		}
		if !AuthorizeOwner(p, item) {
			return nil, apperr.Permission("You do not have access to this item.")
		}
		return item, nil
	}

	if item.InventoryID == nil {
		return nil, notFound
	}
	if _, err := s.Authorize(ctx, p, *item.InventoryID); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns one page of a scope's items, newest first. Pages past the
// end are empty.
func (s *Service) ListItems(ctx context.Context, p *model.Principal, inventoryID int64, page, perPage int) (*model.ItemPage, error) {
	scope, err := s.itemScope(ctx, p, inventoryID)
	if err != nil {
		return nil, err
	}
	page, perPage = Paginate(page, perPage)

	total, err := store.CountItems(ctx, s.db, scope)
	if err != nil {
		return nil, err
	}
	// A page past the end is empty. Checking before computing the offset
	// also keeps (page-1)*perPage from overflowing.
	var items []model.Item
	if total > 0 && page-1 <= (total-1)/perPage {
		items, err = store.ListItems(ctx, s.db, scope, perPage, (page-1)*perPage)
		if err != nil {
			return nil, err
		}
	}
	if items == nil {
		items = []model.Item{}
	}

	return &model.ItemPage{Items: items, Page: page, PageSize: perPage, Total: total}, nil
}

// CreateItem adds an item to a scope. par_level is only kept in single-tenant
// mode.
func (s *Service) CreateItem(ctx context.Context, p *model.Principal, inventoryID int64, in model.ItemInput) (*model.Item, error) {
	scope, err := s.itemScope(ctx, p, inventoryID)
	if err != nil {
		return nil, err
	}

	item := &model.Item{}
	if scope.InventoryID != 0 {
		item.InventoryID = &scope.InventoryID
	} else {
		item.UserID = &scope.UserID
	}

	if item.Name, err = model.NormalizeItemName(in.Name.Value); err != nil {
		return nil, err
	}
	if item.Quantity, err = model.ParseCount(in.Quantity.Value, "Quantity"); err != nil {
		return nil, err
	}
	if item.Unit, err = model.NormalizeUnit(in.Unit.Value); err != nil {
		return nil, err
	}
	if s.single() {
		if item.ParLevel, err = model.ParseCount(in.ParLevel.Value, "Par level"); err != nil {
			return nil, err
		}
	}

	created, err := store.CreateItem(ctx, s.db, item)
	if errors.Is(err, store.ErrMissingReference) {
		// The scope was deleted after authorization.
		if scope.InventoryID != 0 {
			return nil, apperr.NotFound("Inventory not found.")
		}
		return nil, apperr.NotFound("User not found.")
	}
	if err != nil {
		return nil, err
	}
	s.log.Debug("item created", zap.Int64("item_id", created.ID), zap.Int64("user_id", p.UserID))
	return created, nil
}

// GetItem returns an item the principal may access.
func (s *Service) GetItem(ctx context.Context, p *model.Principal, itemID int64) (*model.Item, error) {
	return s.resolveItem(ctx, p, itemID)
}

// UpdateItem applies the fields present in in and returns the updated item.
// Absent fields keep their values.
func (s *Service) UpdateItem(ctx context.Context, p *model.Principal, itemID int64, in model.ItemInput) (*model.Item, error) {
	item, err := s.resolveItem(ctx, p, itemID)
	if err != nil {
		return nil, err
	}

	if in.Name.Set {
		if item.Name, err = model.NormalizeItemName(in.Name.Value); err != nil {
			return nil, err
		}
	}
	if in.Quantity.Set {
		if item.Quantity, err = model.ParseCount(in.Quantity.Value, "Quantity"); err != nil {
			return nil, err
		}
	}
	if in.Unit.Set {
		if item.Unit, err = model.NormalizeUnit(in.Unit.Value); err != nil {
			return nil, err
		}
	}
	if in.ParLevel.Set && s.single() {
		if item.ParLevel, err = model.ParseCount(in.ParLevel.Value, "Par level"); err != nil {
			return nil, err
		}
	}

	if err := store.UpdateItem(ctx, s.db, item); err != nil {
		return nil, err
	}
	updated, err := store.GetItem(ctx, s.db, item.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("Item not found.")
	}
	return updated, nil
}

// DeleteItem removes an item the principal may access.
func (s *Service) DeleteItem(ctx context.Context, p *model.Principal, itemID int64) error {
	item, err := s.resolveItem(ctx, p, itemID)
	if err != nil {
		return err
	}
	if err := store.DeleteItem(ctx, s.db, item.ID); err != nil {
		return err
	}
	s.log.Debug("item deleted", zap.Int64("item_id", item.ID), zap.Int64("user_id", p.UserID))
	return nil
}
