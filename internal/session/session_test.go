package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
)

func newManager(t *testing.T) (*Manager, *model.User) {
	t.Helper()
	database := db.NewTestDB(t)

	user, err := store.CreateUser(context.Background(), database, "bob", "hash")
	require.NoError(t, err)

	return &Manager{
		DB:         database,
		Secret:     "test-secret",
		TTL:        time.Hour,
		CookieName: "session",
		Revoker:    &SQLRevoker{DB: database},
	}, user
}

func issue(t *testing.T, m *Manager, user *model.User) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Issue(rec, user))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func requestWith(cookie *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/check_session", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	return r
}

func TestIssueSetsHardenedCookie(t *testing.T) {
	m, user := newManager(t)
	m.Secure = true

	cookie := issue(t, m, user)
	assert.Equal(t, "session", cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.NotEmpty(t, cookie.Value)
}

func TestResolve(t *testing.T) {
	m, user := newManager(t)
	cookie := issue(t, m, user)

	p, err := m.Resolve(requestWith(cookie))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, "bob", p.Username)
}

func TestResolveAnonymous(t *testing.T) {
	m, _ := newManager(t)

	p, err := m.Resolve(requestWith(nil))
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = m.Resolve(requestWith(&http.Cookie{Name: "session", Value: "garbage"}))
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestResolveRejectsForeignSecret(t *testing.T) {
	m, user := newManager(t)
	other := *m
	other.Secret = "other-secret"

	cookie := issue(t, &other, user)
	p, err := m.Resolve(requestWith(cookie))
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestResolveDeletedUser(t *testing.T) {
	m, user := newManager(t)
	cookie := issue(t, m, user)

	require.NoError(t, store.DeleteUser(context.Background(), m.DB, user.ID))

	p, err := m.Resolve(requestWith(cookie))
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestClearRevokesSession(t *testing.T) {
	m, user := newManager(t)
	cookie := issue(t, m, user)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Clear(rec, requestWith(cookie)))

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "", cleared[0].Value)
	assert.Less(t, cleared[0].MaxAge, 0)

	// The old cookie value no longer authenticates.
	p, err := m.Resolve(requestWith(cookie))
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestClearWithoutSession(t *testing.T) {
	m, _ := newManager(t)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Clear(rec, requestWith(nil)))
	assert.Len(t, rec.Result().Cookies(), 1)
}
