package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/cart"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/remote"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps a failed cart/checkout operation to an HTTP status.
// The UI shows the message and keeps rendering the last-known-good snapshot;
// nothing here is fatal to the session.
func handleServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, cart.ErrOperationInFlight) {
		respondError(w, http.StatusConflict, "operation_in_flight",
			"another cart operation is still running")
		return
	}

	var re *remote.Error
	if errors.As(err, &re) {
		switch re.Kind {
		case remote.KindRequest:
			status := re.StatusCode
			if status < http.StatusBadRequest || status >= http.StatusInternalServerError {
				status = http.StatusBadRequest
			}
			code := "request_failed"
			if status == http.StatusNotFound {
				code = "not_found"
			}
			respondError(w, status, code, re.Message)
		case remote.KindServer:
			respondError(w, http.StatusBadGateway, "upstream_error", "the service is temporarily unavailable")
		case remote.KindNetwork:
			respondError(w, http.StatusServiceUnavailable, "upstream_unreachable", "could not reach the service")
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}

	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
