package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Respond writes an APIError as {"error": message} with its status code.
func Respond(c *gin.Context, apiErr APIError) {
	c.JSON(apiErr.Status, apiErr)
}

// RespondError converts an arbitrary error to an APIError and responds.
// Unknown errors become 500s so no internal detail leaks a wrong status.
func RespondError(c *gin.Context, err error) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		Respond(c, apiErr)
		return
	}
	Respond(c, ErrInternal.WithMessage("%s", err.Error()))
}

// ErrorMapper translates domain or application errors into APIErrors.
type ErrorMapper func(err error) (APIError, bool)

// Responder resolves errors through a mapper chain before falling back to
// the default conversion. Each bounded context registers its own mappers.
type Responder struct {
	mappers []ErrorMapper
}

// NewResponder builds a responder with the given mapper chain.
func NewResponder(mappers ...ErrorMapper) *Responder {
	return &Responder{mappers: mappers}
}

// AddMapper appends an error mapper to the chain.
func (r *Responder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

// RespondError tries each mapper in order, then falls back to RespondError.
func (r *Responder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if apiErr, ok := mapper(err); ok {
			Respond(c, apiErr)
			return
		}
	}
	RespondError(c, err)
}

// HTTPStatusFromError extracts the HTTP status from an error if possible.
func HTTPStatusFromError(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
