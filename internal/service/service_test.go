package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/zaloga/internal/auth"
	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/model"
)

func newService(t *testing.T, mode string) *Service {
	t.Helper()
	return New(db.NewTestDB(t), auth.NewHasher(bcrypt.MinCost), mode, nil)
}

// newFileService is newService over a pooled file database, for tests that
// race several connections.
func newFileService(t *testing.T, mode string) *Service {
	t.Helper()
	return New(db.NewTestFileDB(t), auth.NewHasher(bcrypt.MinCost), mode, nil)
}

func signup(t *testing.T, s *Service, username string) *model.Principal {
	t.Helper()
	u, err := s.Signup(context.Background(), username, "secret1")
	require.NoError(t, err)
	return model.PrincipalOf(u)
}

func createInventory(t *testing.T, s *Service, p *model.Principal, name string) int64 {
	t.Helper()
	inv, err := s.CreateInventory(context.Background(), p, name)
	require.NoError(t, err)
	return inv.ID
}

func createItem(t *testing.T, s *Service, p *model.Principal, inventoryID int64, name string) *model.Item {
	t.Helper()
	it, err := s.CreateItem(context.Background(), p, inventoryID, model.ItemInput{
		Name:     model.Present(name),
		Quantity: model.Present(1),
		Unit:     model.Present("kg"),
	})
	require.NoError(t, err)
	return it
}
