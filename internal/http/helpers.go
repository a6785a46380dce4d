package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"financeiro/internal/core"
	"financeiro/internal/ports"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// readJSON decodes the request body, rejecting unknown fields.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request")
		return false
	}
	return true
}

// storeError maps the error taxonomy onto HTTP statuses: validation
// failures are 422, missing ids 404, a broken store 503.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrEmptyName):
		writeError(w, http.StatusUnprocessableEntity, "invalid_input")
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, ports.ErrUnavailable):
		slog.ErrorContext(r.Context(), "Storage unavailable", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusServiceUnavailable, "storage_unavailable")
	default:
		slog.ErrorContext(r.Context(), "Unexpected store error", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}

// pathID parses the {id} path segment.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return 0, false
	}
	return id, true
}

// monthParam reads an optional mm/yyyy query parameter. ok is false
// only when a value was supplied and does not parse.
func monthParam(r *http.Request) (*core.MonthKey, bool) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return nil, true
	}
	key, ok := core.ParseMonthKey(v)
	if !ok {
		return nil, false
	}
	return &key, true
}

// sanitizeInput trims whitespace and drops control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
