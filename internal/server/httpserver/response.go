package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/dmitrijs2005/addrkeeper/internal/shared"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error kind to its HTTP status. Ownership violations are
// indistinguishable from a missing entity.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrSessionExpired),
		errors.Is(err, common.ErrSessionClosed):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrOwnershipViolation):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {code, message}. Errors without a code never
// leak their text to the caller.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ce, ok := common.AsCoded(err); ok {
		writeJSON(w, statusFor(err), shared.ErrorResponse{Code: ce.Code, Message: ce.Message})
		return
	}

	h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, shared.ErrorResponse{
		Code:    shared.CodeInternal,
		Message: http.StatusText(http.StatusInternalServerError),
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, shared.ErrorResponse{Code: shared.CodeBadRequest, Message: "malformed request body"})
		return false
	}
	return true
}
