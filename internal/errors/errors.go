// Package errors defines the service error taxonomy and its mapping to HTTP
// status codes. Handlers convert any error reaching the boundary into a JSON
// body via GetServiceError.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error category.
type Code string

const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeDuplicateUser      Code = "DUPLICATE_USER"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeMissingToken       Code = "MISSING_TOKEN"
	CodeInvalidToken       Code = "INVALID_TOKEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInternal           Code = "INTERNAL_ERROR"
)

// ServiceError is an error with an HTTP status and a client-facing message.
// The wrapped cause, when set, is surfaced separately in the response body.
type ServiceError struct {
	Code       Code
	Message    string
	HTTPStatus int
	Details    map[string]interface{}
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *ServiceError) Unwrap() error { return e.Err }

// WithDetails attaches a key/value pair to the error and returns it.
func (e *ServiceError) WithDetails(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Validation reports malformed caller input (HTTP 400).
func Validation(message string) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// DuplicateUser reports a registration attempt for an existing email (HTTP 400).
func DuplicateUser() *ServiceError {
	return &ServiceError{Code: CodeDuplicateUser, Message: "User already exists", HTTPStatus: http.StatusBadRequest}
}

// InvalidCredentials reports a failed login. Unknown email and wrong password
// produce the same message so the two cases are indistinguishable.
func InvalidCredentials() *ServiceError {
	return &ServiceError{Code: CodeInvalidCredentials, Message: "Email or password is incorrect", HTTPStatus: http.StatusUnauthorized}
}

// MissingToken reports an absent Authorization bearer token (HTTP 401).
func MissingToken() *ServiceError {
	return &ServiceError{Code: CodeMissingToken, Message: "No token, authorization denied", HTTPStatus: http.StatusUnauthorized}
}

// InvalidToken reports a token that failed verification (HTTP 401).
func InvalidToken(err error) *ServiceError {
	return &ServiceError{Code: CodeInvalidToken, Message: "Token is not valid", HTTPStatus: http.StatusUnauthorized, Err: err}
}

// NotFound reports a missing or foreign-owned resource (HTTP 404). Missing and
// unauthorized deliberately collapse to one response to avoid existence leaks.
func NotFound(message string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: message, HTTPStatus: http.StatusNotFound}
}

// Internal reports a store, hashing, or signing failure (HTTP 500). The cause
// is propagated to the caller in the response body.
func Internal(message string, err error) *ServiceError {
	return &ServiceError{Code: CodeInternal, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// GetServiceError returns err as a *ServiceError if it is one (directly or
// wrapped), or nil otherwise.
func GetServiceError(err error) *ServiceError {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}
	return nil
}
