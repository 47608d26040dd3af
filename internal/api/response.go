package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/erazemk/katalog/internal/catalog"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// statusOf maps a catalog error kind to an HTTP status.
func statusOf(kind catalog.Kind) int {
	switch kind {
	case catalog.Unauthenticated:
		return http.StatusUnauthorized
	case catalog.Forbidden:
		return http.StatusForbidden
	case catalog.Missing:
		return http.StatusBadRequest
	case catalog.Invalid:
		return http.StatusUnprocessableEntity
	case catalog.NotFound:
		return http.StatusNotFound
	case catalog.Conflict, catalog.ReferentialConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// serviceError writes a catalog error. Unexpected errors are logged with
// their cause; the client only sees the generic message.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := catalog.KindOf(err)
	if kind == catalog.Unexpected {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	jsonError(w, statusOf(kind), catalog.MessageOf(err))
}

// invalidBody reports a body that could not be decoded.
func invalidBody(w http.ResponseWriter) {
	jsonError(w, http.StatusUnprocessableEntity, catalog.MsgInvalid)
}
