package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/erazemk/zaloga/internal/apperr"
	"github.com/erazemk/zaloga/internal/model"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var errBadBody = apperr.Validation("invalid request body")

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		// The status line is already sent; a failed encode can only truncate the body.
		_ = json.NewEncoder(w).Encode(data)
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string, kind apperr.Kind) {
	jsonResponse(w, status, map[string]string{"error": message, "kind": string(kind)})
}

var kindStatus = map[apperr.Kind]int{
	apperr.KindValidation: http.StatusBadRequest,
	apperr.KindAuth:       http.StatusUnauthorized,
	apperr.KindPermission: http.StatusForbidden,
	apperr.KindNotFound:   http.StatusNotFound,
	apperr.KindConflict:   http.StatusConflict,
}

// writeError classifies err and writes it. Unclassified errors become a
// generic 500 and are logged.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	msg, ok := apperr.MessageOf(err)
	kind := apperr.KindOf(err)
	status, known := kindStatus[kind]
	if !ok || !known {
		log.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		jsonError(w, http.StatusInternalServerError, "internal error", apperr.KindInternal)
		return
	}
	jsonError(w, status, msg, kind)
}

// decodeJSON decodes a JSON object body. An empty body decodes to an empty
// object. Numbers are kept as json.Number.
func decodeJSON(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, errBadBody
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

// stringField returns body[key] if it is a string, and "" otherwise.
func stringField(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

func field(body map[string]any, key string) model.Field {
	v, ok := body[key]
	return model.Field{Set: ok, Value: v}
}

func itemInput(body map[string]any) model.ItemInput {
	return model.ItemInput{
		Name:     field(body, "name"),
		Quantity: field(body, "quantity"),
		Unit:     field(body, "unit"),
		ParLevel: field(body, "par_level"),
	}
}

// Projections. Only the fields listed here are ever serialized.

func userJSON(u *model.User) map[string]any {
	return map[string]any{"id": u.ID, "username": u.Username}
}

func inventoryJSON(inv *model.InventoryAccess) map[string]any {
	return map[string]any{"id": inv.ID, "name": inv.Name, "role": inv.Role}
}

func membershipJSON(m *model.Membership) map[string]any {
	return map[string]any{
		"id":           m.ID,
		"inventory_id": m.InventoryID,
		"user_id":      m.UserID,
		"role":         m.Role,
		"username":     m.Username,
	}
}

func itemJSON(it *model.Item, single bool) map[string]any {
	out := map[string]any{
		"id":       it.ID,
		"name":     it.Name,
		"quantity": it.Quantity,
		"unit":     it.Unit,
	}
	if single {
		out["par_level"] = it.ParLevel
	}
	return out
}
