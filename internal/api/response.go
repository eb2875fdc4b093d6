package api

import (
	"encoding/json"
	"net/http"

	"github.com/recallhq/recall/internal/domain"
)

// RejectResponse is the envelope for rejected requests (malformed input).
type RejectResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Reject writes a 400 response for input that fails validation before
// reaching business logic. Business failures instead travel in-band as
// success=false envelopes with HTTP 200.
func Reject(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, RejectResponse{Success: false, Message: message})
}

// Message returns a human-readable message for an error, unwrapping the
// domain error envelope when present.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if domainErr, ok := err.(*domain.DomainError); ok {
		if domainErr.Err != nil {
			return domainErr.Message + ": " + domainErr.Err.Error()
		}
		return domainErr.Message
	}
	return err.Error()
}
