// Package handlers defines the HTTP-layer error codes used across all API
// endpoints.
//
// Codes are lowercase snake_case. Generic codes (bad_request, unauthorized,
// conflict) mirror common HTTP status semantics; pipeline-specific codes
// (captcha_failed, duplicate_request, already_resolved) convey business
// outcomes that a status alone cannot. Every error response carries exactly
// one of these codes, and clients are expected to branch on them.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/4Furki4/turkish-dictionary/internal/services"
	"github.com/4Furki4/turkish-dictionary/internal/validation"
)

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Pipeline-specific:
	ErrCodeCaptchaFailed     = "captcha_failed"
	ErrCodeValidationFailed  = "validation_failed"
	ErrCodeDuplicateRequest  = "duplicate_request"
	ErrCodeAlreadyResolved   = "already_resolved"
	ErrCodeInvalidTransition = "invalid_transition"
	ErrCodeMethodNotAllowed  = "method_not_allowed"
)

// failService maps a service-layer error to its HTTP status and stable code.
// Unrecognized errors become opaque 500s; their detail reaches the logs via
// failFields, never the client.
func failService(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		failFields(c, http.StatusBadRequest, ErrCodeValidationFailed, "payload validation failed", verr.Fields)
	case errors.Is(err, validation.ErrUnsupportedKind):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unsupported entity type or action")
	case errors.Is(err, services.ErrCaptchaFailed):
		fail(c, http.StatusBadRequest, ErrCodeCaptchaFailed, "captcha verification failed")
	case errors.Is(err, services.ErrAnonymousNotAllowed):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "sign in required")
	case errors.Is(err, services.ErrForbidden):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "insufficient role")
	case errors.Is(err, services.ErrDuplicateRequest):
		fail(c, http.StatusConflict, ErrCodeDuplicateRequest, "an unresolved request already targets this entity")
	case errors.Is(err, services.ErrAlreadyResolved):
		fail(c, http.StatusConflict, ErrCodeAlreadyResolved, "request already resolved")
	case errors.Is(err, services.ErrInvalidTransition):
		fail(c, http.StatusConflict, ErrCodeInvalidTransition, "request is not in a reviewable state")
	case errors.Is(err, services.ErrRequestNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
	case errors.Is(err, services.ErrTargetNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "target entity not found")
	case errors.Is(err, services.ErrWordNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "word not found")
	case errors.Is(err, services.ErrAnnouncementNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "announcement not found")
	case errors.Is(err, services.ErrFeedbackNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "feedback not found")
	case errors.Is(err, services.ErrInvalidFeedback):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid feedback payload")
	case errors.Is(err, services.ErrInvalidAnnouncement):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid announcement payload")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
