package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/zaloga/internal/apperr"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
)

func TestSignupValidation(t *testing.T) {
	s := newService(t, model.TenancyMulti)
	ctx := context.Background()

	_, err := s.Signup(ctx, "  al ", "secret1")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = s.Signup(ctx, "alice", "12345")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	u, err := s.Signup(ctx, "  bob  ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)
	assert.NotEqual(t, "secret1", u.PasswordHash)
}

func TestSignupDuplicate(t *testing.T) {
	s := newService(t, model.TenancyMulti)
	ctx := context.Background()

	_, err := s.Signup(ctx, "bob", "secret1")
	require.NoError(t, err)

	_, err = s.Signup(ctx, "bob", "secret2")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	s := newService(t, model.TenancyMulti)
	ctx := context.Background()
	p := signup(t, s, "bob")

	u, err := s.Login(ctx, "bob", "secret1")
	require.NoError(t, err)
	assert.Equal(t, p.UserID, u.ID)

	_, err = s.Login(ctx, "bob", "wrong-password")
	assert.ErrorIs(t, err, apperr.ErrAuth)
	wrongMsg, _ := apperr.MessageOf(err)

	_, err = s.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, apperr.ErrAuth)
	unknownMsg, _ := apperr.MessageOf(err)

	assert.Equal(t, wrongMsg, unknownMsg)
}

func TestCheckSession(t *testing.T) {
	s := newService(t, model.TenancyMulti)
	ctx := context.Background()
	p := signup(t, s, "bob")

	u, err := s.CheckSession(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)

	_, err = s.CheckSession(ctx, nil)
	assert.ErrorIs(t, err, apperr.ErrAuth)

	_, err = s.CheckSession(ctx, &model.Principal{UserID: 999, Username: "ghost"})
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestDeleteAccountMultiTenant(t *testing.T) {
	s := newService(t, model.TenancyMulti)
	ctx := context.Background()
	alice := signup(t, s, "alice")
	bob := signup(t, s, "bob")

	aliceInv := createInventory(t, s, alice, "Pantry")
	bobInv := createInventory(t, s, bob, "Garage")
	_, _, err := s.AddMember(ctx, bob, bobInv, "alice", "staff")
	require.NoError(t, err)
	createItem(t, s, alice, aliceInv, "Flour")

	require.NoError(t, s.DeleteAccount(ctx, "alice"))

	u, err := store.GetUserByUsername(ctx, s.db, "alice")
	require.NoError(t, err)
	assert.Nil(t, u)

	// Alice's inventory survives without a creator, its items untouched.
	inv, err := store.GetInventory(ctx, s.db, aliceInv)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Nil(t, inv.CreatedByUserID)
	n, err := store.CountItems(ctx, s.db, store.InventoryScope(aliceInv))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	members, err := s.ListMembers(ctx, bob, bobInv)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "bob", members[0].Username)
}

func TestDeleteAccountSingleTenant(t *testing.T) {
	s := newService(t, model.TenancySingle)
	ctx := context.Background()
	alice := signup(t, s, "alice")
	createItem(t, s, alice, 0, "Milk")
	createItem(t, s, alice, 0, "Eggs")

	require.NoError(t, s.DeleteAccount(ctx, "alice"))

	n, err := store.CountItems(ctx, s.db, store.UserScope(alice.UserID))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDeleteAccountUnknown(t *testing.T) {
	s := newService(t, model.TenancyMulti)
	err := s.DeleteAccount(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
