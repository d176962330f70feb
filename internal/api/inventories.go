package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/erazemk/zaloga/internal/apperr"
	"github.com/erazemk/zaloga/internal/service"
)

// InventoriesHandler handles inventory and membership endpoints.
type InventoriesHandler struct {
	Service *service.Service
	Log     *zap.Logger
}

// pathID parses the {id} path value.
func pathID(r *http.Request, what string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.Validation("invalid " + what + " id")
	}
	return id, nil
}

// List handles GET /api/inventories.
func (h *InventoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	invs, err := h.Service.ListInventories(r.Context(), GetPrincipal(r.Context()))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	out := make([]map[string]any, 0, len(invs))
	for i := range invs {
		out = append(out, inventoryJSON(&invs[i]))
	}
	jsonResponse(w, http.StatusOK, out)
}

// Create handles POST /api/inventories.
func (h *InventoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeJSON(w, r)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	inv, err := h.Service.CreateInventory(r.Context(), GetPrincipal(r.Context()), stringField(body, "name"))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	jsonResponse(w, http.StatusCreated, inventoryJSON(inv))
}

// Delete handles DELETE /api/inventories/{id}.
func (h *InventoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "inventory")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	if err := h.Service.DeleteInventory(r.Context(), GetPrincipal(r.Context()), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMembers handles GET /api/inventories/{id}/members.
func (h *InventoriesHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "inventory")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	members, err := h.Service.ListMembers(r.Context(), GetPrincipal(r.Context()), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	out := make([]map[string]any, 0, len(members))
	for i := range members {
		out = append(out, membershipJSON(&members[i]))
	}
	jsonResponse(w, http.StatusOK, out)
}

// AddMember handles POST /api/inventories/{id}/members. It answers 201 for a
// new membership and 200 when the user was already a member.
func (h *InventoriesHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "inventory")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	body, err := decodeJSON(w, r)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	m, created, err := h.Service.AddMember(r.Context(), GetPrincipal(r.Context()), id,
		stringField(body, "username"), stringField(body, "role"))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	jsonResponse(w, status, membershipJSON(m))
}
