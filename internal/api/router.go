package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/erazemk/zaloga/internal/config"
	"github.com/erazemk/zaloga/internal/metrics"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/service"
	"github.com/erazemk/zaloga/internal/session"
)

// Deps are the collaborators of the HTTP API. Metrics may be nil.
type Deps struct {
	Service     *service.Service
	Sessions    *session.Manager
	Metrics     *metrics.Metrics
	MetricsPath string
	CORS        config.CORSConfig
	Logger      *zap.Logger
}

// NewRouter creates the API router with all endpoints for the service's
// tenancy mode registered.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	authHandler := &AuthHandler{Service: d.Service, Sessions: d.Sessions, Metrics: d.Metrics, Log: log}
	inventoriesHandler := &InventoriesHandler{Service: d.Service, Log: log}
	itemsHandler := &ItemsHandler{Service: d.Service, Log: log}

	sessionMW := SessionMiddleware(d.Sessions, log)
	handle := func(pattern string, h http.HandlerFunc, withSession bool) {
		var handler http.Handler = h
		if withSession {
			handler = sessionMW(handler)
		}
		mux.Handle(pattern, d.Metrics.Instrument(pattern, handler))
	}

	// Public.
	handle("GET /api/health", Health, false)
	handle("POST /api/signup", authHandler.Signup, false)
	handle("POST /api/login", authHandler.Login, false)
	handle("DELETE /api/logout", authHandler.Logout, false)
	handle("GET /api/check_session", authHandler.CheckSession, true)

	if d.Service.Mode() == model.TenancySingle {
		// Own items.
		handle("GET /api/items", itemsHandler.List, true)
		handle("POST /api/items", itemsHandler.Create, true)
	} else {
		// Inventories, sharing and inventory items.
		handle("GET /api/inventories", inventoriesHandler.List, true)
		handle("POST /api/inventories", inventoriesHandler.Create, true)
		handle("DELETE /api/inventories/{id}", inventoriesHandler.Delete, true)
		handle("GET /api/inventories/{id}/members", inventoriesHandler.ListMembers, true)
		handle("POST /api/inventories/{id}/members", inventoriesHandler.AddMember, true)
		handle("GET /api/inventories/{id}/items", itemsHandler.List, true)
		handle("POST /api/inventories/{id}/items", itemsHandler.Create, true)
	}

	handle("GET /api/items/{id}", itemsHandler.Get, true)
	handle("PATCH /api/items/{id}", itemsHandler.Update, true)
	handle("DELETE /api/items/{id}", itemsHandler.Delete, true)

	if d.Metrics != nil {
		path := d.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, d.Metrics.Handler())
	}

	var h http.Handler = mux
	h = CORSMiddleware(d.CORS)(h)
	h = RecoverMiddleware(log)(h)
	h = LoggingMiddleware(log.Named("http"))(h)
	h = RequestIDMiddleware(h)
	return h
}
