// Package domain provides the chat gateway's core types and error taxonomy.
package domain

import (
	"fmt"
	"net/http"
)

// ErrorType represents the category of a gateway error.
type ErrorType string

const (
	// ErrorTypeInvalidRequest indicates a malformed or invalid request.
	ErrorTypeInvalidRequest ErrorType = "invalid_request"

	// ErrorTypeProvider indicates a network/auth/rate-limit failure from an
	// upstream LLM call. Provider errors are surfaced once, never retried.
	ErrorTypeProvider ErrorType = "provider"

	// ErrorTypeParse indicates model output that did not satisfy the JSON
	// contract. Parse errors degrade to raw-text passthrough, never fatal.
	ErrorTypeParse ErrorType = "parse"

	// ErrorTypeProtocol indicates an unreadable or missing stream body on the
	// client side.
	ErrorTypeProtocol ErrorType = "protocol"

	// ErrorTypeNotFound indicates a stored record was not found.
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeServer indicates an internal server error.
	ErrorTypeServer ErrorType = "server"
)

// APIError is the canonical error carried across package boundaries. Handlers
// translate it to an HTTP status; the streaming path translates it to a single
// error event.
type APIError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`

	// StatusCode is the suggested HTTP status code, if known.
	StatusCode int `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// HTTPStatusCode returns the appropriate HTTP status code for this error.
func (e *APIError) HTTPStatusCode() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}
	switch e.Type {
	case ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewAPIError creates a new API error.
func NewAPIError(errType ErrorType, message string) *APIError {
	return &APIError{Type: errType, Message: message}
}

// WithStatusCode sets a specific HTTP status code.
func (e *APIError) WithStatusCode(code int) *APIError {
	e.StatusCode = code
	return e
}

// ErrInvalidRequest creates an invalid request error.
func ErrInvalidRequest(message string) *APIError {
	return NewAPIError(ErrorTypeInvalidRequest, message)
}

// ErrProvider creates a provider error.
func ErrProvider(message string) *APIError {
	return NewAPIError(ErrorTypeProvider, message)
}

// ErrNotFound creates a not found error.
func ErrNotFound(message string) *APIError {
	return NewAPIError(ErrorTypeNotFound, message)
}
