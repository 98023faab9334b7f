package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ganot/committee/internal/apperror"
)

type errorResponse struct {
	Kind   apperror.Kind         `json:"kind"`
	Error  string                `json:"error"`
	Fields []apperror.FieldError `json:"fields,omitempty"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindConflict:
		return http.StatusBadRequest
	case apperror.KindAuthorization:
		return http.StatusForbidden
	case apperror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	kind := apperror.KindOf(err)
	status := StatusFor(kind)
	resp := errorResponse{Kind: kind, Error: err.Error(), Fields: apperror.FieldsOf(err)}
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		}
		resp = errorResponse{Kind: apperror.KindPersistence, Error: "internal error"}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.Validation(apperror.FieldError{Field: "body", Message: "malformed JSON: " + err.Error()})
	}
	return nil
}
