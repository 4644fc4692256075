// Package httputil provides shared request and response helpers for the
// HTTP API.
package httputil

import (
	"encoding/json"
	"net/http"

	svcerr "github.com/feliks3/asset-finance-backend/internal/errors"
)

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// DecodeJSON decodes the request body into dst. Unknown fields are
// tolerated so clients may send extra properties.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteServiceError renders err as an error response. Errors that are not
// ServiceErrors are treated as internal server faults.
func WriteServiceError(w http.ResponseWriter, err error) {
	serviceErr := svcerr.GetServiceError(err)
	if serviceErr == nil {
		serviceErr = svcerr.Internal("Server error", err)
	}

	body := ErrorBody{Message: serviceErr.Message}
	// Causes are surfaced only for server faults; 4xx bodies carry the
	// message alone.
	if serviceErr.Err != nil && serviceErr.HTTPStatus >= http.StatusInternalServerError {
		body.Error = serviceErr.Err.Error()
	}
	WriteJSON(w, serviceErr.HTTPStatus, body)
}

// Unauthorized writes a 401 response with the given message.
func Unauthorized(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusUnauthorized, ErrorBody{Message: message})
}
