//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pgEdge/pgedge-secdata/internal/logging"
	"github.com/pgEdge/pgedge-secdata/internal/secdata"
	"github.com/pgEdge/pgedge-secdata/internal/store"
	"github.com/pgEdge/pgedge-secdata/internal/validation"
)

type apiResponse struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Ok writes a 200 response carrying data.
func Ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

// Error writes an error response with the given status.
func Error(c *gin.Context, status int, message string, fields map[string][]string) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Errors:  fields,
	})
}

// decodeError marks a request body or query that could not be decoded.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string {
	return "malformed request: " + e.err.Error()
}

func (e *decodeError) Unwrap() error {
	return e.err
}

// StatusFor maps a service error to an HTTP status.
func StatusFor(err error) int {
	var derr *decodeError
	switch {
	case errors.As(err, &derr):
		return http.StatusBadRequest
	case errors.Is(err, validation.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, secdata.ErrUnsupported):
		return http.StatusNotFound
	case errors.Is(err, secdata.ErrClearForbiddenInProduction):
		return http.StatusForbidden
	case errors.Is(err, secdata.ErrNotInitialized):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail writes the response for a service error. Unexpected failures are
// logged and reported without detail.
func fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logging.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		Error(c, status, "storage failure", nil)
		return
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		Error(c, status, "invalid input", verr.Fields)
		return
	}
	Error(c, status, err.Error(), nil)
}
