package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/model"
)

func newInventory(t *testing.T, ctx context.Context, database Querier) int64 {
	t.Helper()
	u, err := CreateUser(ctx, database, "owner", "h")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	inv, err := CreateInventory(ctx, database, "Kitchen", u.ID)
	if err != nil {
		t.Fatalf("CreateInventory: %v", err)
	}
	return inv.ID
}

func TestCreateItemMissingScope(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	missing := int64(999)
	_, err := CreateItem(ctx, database, &model.Item{InventoryID: &missing, Name: "Flour"})
	if !errors.Is(err, ErrMissingReference) {
		t.Errorf("expected ErrMissingReference, got %v", err)
	}

	_, err = CreateItem(ctx, database, &model.Item{UserID: &missing, Name: "Flour"})
	if !errors.Is(err, ErrMissingReference) {
		t.Errorf("expected ErrMissingReference for user scope, got %v", err)
	}
	if errors.Is(err, ErrConflict) {
		t.Error("a dangling reference is not a conflict")
	}
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	invID := newInventory(t, ctx, database)

	unit := "kg"
	item, err := CreateItem(ctx, database, &model.Item{InventoryID: &invID, Name: "Flour", Quantity: 3, Unit: &unit})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Name != "Flour" || item.Quantity != 3 {
		t.Errorf("unexpected item %+v", item)
	}
	if item.Unit == nil || *item.Unit != "kg" {
		t.Errorf("expected unit kg, got %v", item.Unit)
	}
	if item.UserID != nil {
		t.Errorf("expected no user scope, got %d", *item.UserID)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got == nil || got.ID != item.ID {
		t.Fatalf("GetItem returned %+v", got)
	}
}

func TestListItemsPaginates(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	invID := newInventory(t, ctx, database)

	for _, name := range []string{"One", "Two", "Three"} {
		if _, err := CreateItem(ctx, database, &model.Item{InventoryID: &invID, Name: name}); err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
	}

	scope := InventoryScope(invID)
	page, err := ListItems(ctx, database, scope, 2, 0)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(page) != 2 || page[0].Name != "Three" || page[1].Name != "Two" {
		t.Errorf("expected [Three Two], got %+v", page)
	}

	page, _ = ListItems(ctx, database, scope, 2, 2)
	if len(page) != 1 || page[0].Name != "One" {
		t.Errorf("expected [One], got %+v", page)
	}

	page, _ = ListItems(ctx, database, scope, 2, 10)
	if len(page) != 0 {
		t.Errorf("expected empty page past the end, got %d items", len(page))
	}

	total, _ := CountItems(ctx, database, scope)
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
}

func TestUserScopedItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	alice, _ := CreateUser(ctx, database, "alice", "h")
	bob, _ := CreateUser(ctx, database, "bob", "h")
	CreateItem(ctx, database, &model.Item{UserID: &alice.ID, Name: "Salt", ParLevel: 2})
	CreateItem(ctx, database, &model.Item{UserID: &bob.ID, Name: "Sugar"})

	items, _ := ListItems(ctx, database, UserScope(alice.ID), 10, 0)
	if len(items) != 1 || items[0].Name != "Salt" || items[0].ParLevel != 2 {
		t.Errorf("expected alice's Salt with par 2, got %+v", items)
	}

	n, err := DeleteItemsInScope(ctx, database, UserScope(alice.ID))
	if err != nil || n != 1 {
		t.Errorf("DeleteItemsInScope = %d, %v; want 1, nil", n, err)
	}
	if total, _ := CountItems(ctx, database, UserScope(bob.ID)); total != 1 {
		t.Errorf("expected bob's item untouched, got %d", total)
	}
}

func TestUpdateAndDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	invID := newInventory(t, ctx, database)

	item, _ := CreateItem(ctx, database, &model.Item{InventoryID: &invID, Name: "Rice", Quantity: 1})
	item.Quantity = 5
	if err := UpdateItem(ctx, database, item); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Quantity != 5 || got.Name != "Rice" {
		t.Errorf("unexpected item after update %+v", got)
	}

	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if got, _ := GetItem(ctx, database, item.ID); got != nil {
		t.Error("expected item to be deleted")
	}
}

func TestNegativeQuantityRejectedByStore(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	invID := newInventory(t, ctx, database)

	if _, err := CreateItem(ctx, database, &model.Item{InventoryID: &invID, Name: "Bad", Quantity: -1}); err == nil {
		t.Error("expected check constraint to reject negative quantity")
	}
}
