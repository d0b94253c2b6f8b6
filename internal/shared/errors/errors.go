// Package errors provides the HTTP error taxonomy shared by every service.
//
// All request-boundary failures are rendered as a JSON body of the shape
// {"error": message} with the matching status code, which is the contract
// the historical services exposed.
package errors

import (
	"fmt"
	"net/http"
)

// APIError couples a client-facing message with an HTTP status code.
type APIError struct {
	// Status is the HTTP status code for this occurrence.
	Status int `json:"-"`
	// Message is the human-readable explanation returned to the caller.
	Message string `json:"error"`
}

// Error implements the error interface.
func (e APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// WithMessage returns a copy carrying the given message.
func (e APIError) WithMessage(format string, args ...any) APIError {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// Templates for the error kinds the services produce.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = APIError{Status: http.StatusNotFound, Message: "not found"}

	// ErrValidation indicates the request is missing required fields or
	// violates a basic invariant.
	ErrValidation = APIError{Status: http.StatusBadRequest, Message: "validation error"}

	// ErrBadRequest indicates the request body could not be understood.
	ErrBadRequest = APIError{Status: http.StatusBadRequest, Message: "bad request"}

	// ErrInternal indicates an unexpected server failure.
	ErrInternal = APIError{Status: http.StatusInternalServerError, Message: "internal server error"}
)

// NewNotFound builds a 404 for a specific entity.
func NewNotFound(entity string) APIError {
	return ErrNotFound.WithMessage("%s not found", entity)
}

// NewValidation builds a 400 with the supplied detail.
func NewValidation(detail string) APIError {
	return ErrValidation.WithMessage("%s", detail)
}
