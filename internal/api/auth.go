package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/erazemk/zaloga/internal/apperr"
	"github.com/erazemk/zaloga/internal/metrics"
	"github.com/erazemk/zaloga/internal/service"
	"github.com/erazemk/zaloga/internal/session"
)

// AuthHandler handles signup, login and session endpoints.
type AuthHandler struct {
	Service  *service.Service
	Sessions *session.Manager
	Metrics  *metrics.Metrics
	Log      *zap.Logger
}

// Signup handles POST /api/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	body, err := decodeJSON(w, r)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	user, err := h.Service.Signup(r.Context(), stringField(body, "username"), stringField(body, "password"))
	if apperr.KindOf(err) == apperr.KindConflict {
		// A taken username is reported as bad input.
		msg, _ := apperr.MessageOf(err)
		jsonError(w, http.StatusBadRequest, msg, apperr.KindConflict)
		return
	}
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	if err := h.Sessions.Issue(w, user); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	h.Metrics.AuthEvent(metrics.EventSignup)
	jsonResponse(w, http.StatusCreated, userJSON(user))
}

// Login handles POST /api/login. A failed login leaves the session cookie
// untouched.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := decodeJSON(w, r)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	user, err := h.Service.Login(r.Context(), stringField(body, "username"), stringField(body, "password"))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindAuth {
			h.Metrics.AuthEvent(metrics.EventLoginFailure)
		}
		writeError(w, r, h.Log, err)
		return
	}

	if err := h.Sessions.Issue(w, user); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	h.Metrics.AuthEvent(metrics.EventLogin)
	h.Log.Info("user logged in", zap.String("user", user.Username))
	jsonResponse(w, http.StatusOK, userJSON(user))
}

// Logout handles DELETE /api/logout. It succeeds without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Clear(w, r); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	h.Metrics.AuthEvent(metrics.EventLogout)
	w.WriteHeader(http.StatusNoContent)
}

// CheckSession handles GET /api/check_session.
func (h *AuthHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.CheckSession(r.Context(), GetPrincipal(r.Context()))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	jsonResponse(w, http.StatusOK, userJSON(user))
}

// Health handles GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}
