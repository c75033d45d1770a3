package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"dealflow/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	// Remediation tells the caller what to do next.
	Remediation string `json:"remediation,omitempty"`
}

// statusFor maps an error kind to an HTTP status code.
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrInvalidInput, domain.ErrRejected:
		return http.StatusBadRequest
	case domain.ErrInvalidState, domain.ErrConflict:
		return http.StatusConflict
	case domain.ErrPayoutExecutionFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func remediationFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrRejected):
		return "score too low; submit corrected content and request a new audit"
	case errors.Is(err, domain.ErrPayoutExecutionFailed):
		return "payment did not complete; retry the same request"
	default:
		return ""
	}
}

// writeError writes err as JSON. Internal errors are logged and masked.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error(), Kind: "internal", Remediation: remediationFor(err)}
	if kind := domain.KindOf(err); kind != nil {
		resp.Kind = kind.Error()
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		resp.Error = "internal error"
	}
	h.writeJSON(w, status, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// decode reads a JSON body into v, answering 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON", Kind: domain.ErrInvalidInput.Error()})
		return false
	}
	return true
}
