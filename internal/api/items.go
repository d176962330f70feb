package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/service"
)

// ItemsHandler handles item endpoints for both tenancy modes.
type ItemsHandler struct {
	Service *service.Service
	Log     *zap.Logger
}

func (h *ItemsHandler) single() bool {
	return h.Service.Mode() == model.TenancySingle
}

// scopeID returns the inventory ID of an inventory-scoped route. Own-item
// routes have no inventory and use 0.
func (h *ItemsHandler) scopeID(r *http.Request) (int64, error) {
	if h.single() {
		return 0, nil
	}
	return pathID(r, "inventory")
}

// queryInt parses a query parameter; missing or malformed values yield 0.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

// List handles GET /api/inventories/{id}/items and GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, err := h.scopeID(r)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	page, err := h.Service.ListItems(r.Context(), GetPrincipal(r.Context()), scope,
		queryInt(r, "page"), queryInt(r, "per_page"))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	items := make([]map[string]any, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, itemJSON(&page.Items[i], h.single()))
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"items":    items,
		"page":     page.Page,
		"per_page": page.PageSize,
		"total":    page.Total,
	})
}

// Create handles POST /api/inventories/{id}/items and POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, err := h.scopeID(r)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	body, err := decodeJSON(w, r)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	item, err := h.Service.CreateItem(r.Context(), GetPrincipal(r.Context()), scope, itemInput(body))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	jsonResponse(w, http.StatusCreated, itemJSON(item, h.single()))
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "item")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	item, err := h.Service.GetItem(r.Context(), GetPrincipal(r.Context()), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	jsonResponse(w, http.StatusOK, itemJSON(item, h.single()))
}

// Update handles PATCH /api/items/{id}. Only keys present in the body change.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "item")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	body, err := decodeJSON(w, r)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	item, err := h.Service.UpdateItem(r.Context(), GetPrincipal(r.Context()), id, itemInput(body))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	jsonResponse(w, http.StatusOK, itemJSON(item, h.single()))
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "item")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	if err := h.Service.DeleteItem(r.Context(), GetPrincipal(r.Context()), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
