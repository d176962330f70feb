// Package session binds authenticated users to requests through a signed
// session cookie. It is the only package that reads or writes that cookie.
package session

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/zaloga/internal/auth"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
)

// Manager issues, resolves and clears session cookies.
type Manager struct {
	DB         *sql.DB
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
	Revoker    Revoker
	Logger     *zap.Logger
}

func (m *Manager) ttl() time.Duration {
	if m.TTL <= 0 {
		return auth.DefaultTokenTTL
	}
	return m.TTL
}

func (m *Manager) cookieName() string {
	if m.CookieName == "" {
		return "session"
	}
	return m.CookieName
}

// Issue starts a session for user by setting the session cookie on w.
func (m *Manager) Issue(w http.ResponseWriter, user *model.User) error {
	token, claims, err := auth.GenerateToken(m.Secret, m.ttl(), user.ID, user.Username)
	if err != nil {
		return fmt.Errorf("issuing session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName(),
		Value:    token,
		Path:     "/",
		Expires:  claims.ExpiresAt.Time,
		MaxAge:   int(time.Until(claims.ExpiresAt.Time).Seconds()),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Resolve returns the principal of the request's session. A missing, invalid,
// expired or revoked token, or one whose user no longer exists, resolves to
// nil without error. Errors are reserved for backend failures.
func (m *Manager) Resolve(r *http.Request) (*model.Principal, error) {
	claims := m.claims(r)
	if claims == nil {
		return nil, nil
	}

	revoked, err := m.Revoker.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, nil
	}

	user, err := store.GetUser(r.Context(), m.DB, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return model.PrincipalOf(user), nil
}

// Clear ends the request's session: the cookie is expired on w and, if the
// request carried a valid token, its ID is revoked. Clearing without a
// session is not an error.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName(),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	claims := m.claims(r)
	if claims == nil {
		return nil
	}
	if err := m.Revoker.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}
	if m.Logger != nil {
		m.Logger.Debug("session revoked", zap.Int64("user_id", claims.UserID), zap.String("jti", claims.ID))
	}
	return nil
}

func (m *Manager) claims(r *http.Request) *auth.Claims {
	cookie, err := r.Cookie(m.cookieName())
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := auth.ValidateToken(m.Secret, cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}
