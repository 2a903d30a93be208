package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"combine/internal/core"
	"combine/internal/log"
	"combine/internal/sheets"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError maps the error taxonomy onto the wire shape: validation
// failures name the missing fields at 400, store failures are logged with
// their operation and range but surfaced generically at 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var mf *core.MissingFieldsError
	if errors.As(err, &mf) {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": mf.Error()})
		return
	}
	var se *sheets.StoreError
	if errors.As(err, &se) {
		s.logger.ErrorContext(r.Context(), "Store operation failed",
			log.FieldOperation, se.Op,
			log.FieldRange, se.Range,
			log.FieldError, se.Err.Error())
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Spreadsheet operation failed"})
		return
	}
	s.logger.ErrorContext(r.Context(), "Request failed", log.FieldError, err.Error())
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}

func decodeJSON(r *http.Request, dst any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(dst)
}

func badRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	respondJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
}

// clientIP extracts the caller's address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return rip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// spreadsheetParam reads the mandatory spreadsheetId query parameter.
func spreadsheetParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.URL.Query().Get("spreadsheetId"))
	return id, core.RequireFields("spreadsheetId", id)
}
