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

var errBadCredentials = apperr.Auth("Invalid username or password.")

// Signup registers a new user.
func (s *Service) Signup(ctx context.Context, username, password string) (*model.User, error) {
	username, err := model.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := store.CreateUser(ctx, s.db, username, hash)
	if errors.Is(err, store.ErrConflict) {
		return nil, apperr.Conflict("Username is already taken.", err)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("user signed up", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks credentials and returns the user. Unknown users and wrong
// passwords fail the same way.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := store.GetUserByUsername(ctx, s.db, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.hasher.VerifyNone(password)
		return nil, errBadCredentials
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		s.log.Warn("login failed", zap.String("username", user.Username))
		return nil, errBadCredentials
	}
	return user, nil
}

// CheckSession returns the principal's user.
func (s *Service) CheckSession(ctx context.Context, p *model.Principal) (*model.User, error) {
	if p == nil {
		return nil, apperr.Auth("Not logged in.")
	}
	user, err := store.GetUser(ctx, s.db, p.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Auth("Not logged in.")
	}
	return user, nil
}

// ListUsers returns all users for operators.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return store.ListUsers(ctx, s.db)
}

// DeleteAccount removes a user together with their memberships and own items.
// Inventories the user created are kept with no creator.
func (s *Service) DeleteAccount(ctx context.Context, username string) error {
	user, err := store.GetUserByUsername(ctx, s.db, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("User not found.")
	}

	var memberships, items int64
	err = store.WithTx(ctx, s.db, func(tx store.Querier) error {
		var err error
		if memberships, err = store.DeleteMembershipsByUser(ctx, tx, user.ID); err != nil {
			return err
		}
		if items, err = store.DeleteItemsInScope(ctx, tx, store.UserScope(user.ID)); err != nil {
			return err
		}
		if err := store.ClearInventoryCreator(ctx, tx, user.ID); err != nil {
			return err
		}
		return store.DeleteUser(ctx, tx, user.ID)
	})
	if err != nil {
		return fmt.Errorf("deleting account %q: %w", user.Username, err)
	}

	s.log.Info("account deleted",
		zap.String("username", user.Username),
		zap.Int64("memberships", memberships),
		zap.Int64("items", items),
	)
	return nil
}
