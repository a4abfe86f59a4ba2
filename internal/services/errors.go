// Package services defines the business logic of the contribution pipeline
// (requests, votes, moderation, diffs) and the product surface around it.
// This file centralizes common service-level error values so that they can
// be consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed
// at the handler layer. Validation failures are not sentinels: they travel
// as *validation.Error so per-field messages survive to the caller.
package services

import "errors"

// Contribution pipeline errors.
var (
	// ErrCaptchaFailed is returned when the abuse gate rejects a
	// submission. The caller may retry with a fresh token; nothing was
	// persisted.
	ErrCaptchaFailed = errors.New("captcha verification failed")

	// ErrDuplicateRequest is returned when an unresolved request already
	// proposes the same change; the caller should be redirected to it.
	ErrDuplicateRequest = errors.New("an identical request is already pending")

	// ErrRequestNotFound indicates that the referenced request row does
	// not exist.
	ErrRequestNotFound = errors.New("request not found")

	// ErrTargetNotFound indicates that the live entity a request targets
	// does not exist (dangling requestable_id).
	ErrTargetNotFound = errors.New("target entity not found")

	// ErrAlreadyResolved is returned when a terminal transition is
	// attempted on a request that is no longer pending. No action was
	// taken.
	ErrAlreadyResolved = errors.New("request already resolved")

	// ErrInvalidTransition guards against malformed lifecycle state: the
	// persisted status is not part of the request state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTargetWriteFailed wraps unexpected failures while applying an
	// approved change to its target table. The enclosing transaction is
	// rolled back and the request remains pending.
	ErrTargetWriteFailed = errors.New("applying change to target table failed")

	// ErrAnonymousNotAllowed is returned when an operation requires an
	// authenticated caller. Only simple word proposals may be anonymous.
	ErrAnonymousNotAllowed = errors.New("sign in required")

	// ErrForbidden is returned when the caller's role does not permit the
	// operation (moderation and admin surfaces).
	ErrForbidden = errors.New("insufficient role")
)

// Dictionary and product errors.
var (
	// ErrWordNotFound indicates the requested headword does not exist.
	ErrWordNotFound = errors.New("word not found")

	// ErrAnnouncementNotFound indicates the requested announcement does
	// not exist.
	ErrAnnouncementNotFound = errors.New("announcement not found")

	// ErrFeedbackNotFound indicates the referenced feedback item does not
	// exist.
	ErrFeedbackNotFound = errors.New("feedback not found")

	// ErrInvalidFeedback is returned when a feedback submission is
	// malformed (unknown kind, empty title or description).
	ErrInvalidFeedback = errors.New("invalid feedback")

	// ErrInvalidAnnouncement is returned when an announcement payload is
	// malformed (empty title or content).
	ErrInvalidAnnouncement = errors.New("invalid announcement")
)
