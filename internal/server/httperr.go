package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datadynamo/dynamo/internal/apperr"
)

// httpStatus maps the error taxonomy onto response codes. Anything outside
// the taxonomy is a 500.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error as a JSON body with the mapped status.
func fail(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"detail": err.Error()})
}

// badRequest rejects malformed request payloads.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}
