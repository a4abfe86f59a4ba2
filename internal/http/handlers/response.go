// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints: a structured error envelope, consistent JSON serialization, and
// helpers for common HTTP patterns. Every error response carries a stable
// machine-readable `code` so clients can branch programmatically, plus the
// request correlation ID for support tickets.
//
// Example error response:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "duplicate_request",
//	  "message": "an unresolved request already targets this entity"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/4Furki4/turkish-dictionary/internal/http/middleware"
	"github.com/4Furki4/turkish-dictionary/internal/validation"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// RequestID correlates server logs with client-side errors. Code is a stable,
// machine-readable string (see errors.go). Fields is populated only for
// validation failures and enumerates every failing payload field.
type ErrorResponse struct {
	RequestID string                  `json:"request_id,omitempty"`
	Code      string                  `json:"code"`
	Message   string                  `json:"message"`
	Fields    []validation.FieldError `json:"fields,omitempty"`
}

// fail aborts the request with a structured error and logs server-side
// errors (>= 500) using the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	failFields(c, status, code, msg, nil)
}

// failFields is fail with per-field validation details attached.
func failFields(c *gin.Context, status int, code, msg string, fields []validation.FieldError) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
		Fields:    fields,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(). External packages (router setup)
// call it to return consistent error envelopes.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
