// Package services – RequestService
//
// This file implements the intake side of the contribution pipeline: a
// submission passes the captcha gate, then shape validation, then a
// duplicate-pending probe, and only then becomes a persisted Request row in
// "pending" state. Reads (get, review queue, own submissions) live here too.
// Service-level errors (ErrCaptchaFailed, ErrDuplicateRequest,
// ErrTargetNotFound, …) are returned for predictable cases so handlers can
// map them to HTTP results consistently.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/captcha"
	"github.com/4Furki4/turkish-dictionary/internal/domain"
	"github.com/4Furki4/turkish-dictionary/internal/repo"
	"github.com/4Furki4/turkish-dictionary/internal/validation"
)

// turkishLower folds text with Turkish casing rules (dotted/dotless I), so
// "Kitap" and "kitap" normalize to the same headword.
var turkishLower = cases.Lower(language.Turkish)

// NormalizeTurkish trims and lowercases a word name using Turkish casing
// rules. Every name entering the words table goes through this, both on the
// contribution path and in admin CRUD.
func NormalizeTurkish(s string) string {
	return turkishLower.String(strings.TrimSpace(s))
}

// RequestService implements the intake and read use-cases for contribution
// requests.
type RequestService struct {
	// DB is the database handle used for all request operations.
	DB *gorm.DB
	// Captcha is the abuse gate consulted before any persistence. When
	// nil, the gate is considered disabled (tests, trusted environments).
	Captcha captcha.Verifier
}

// CreateRequestInput is the full proposal a contributor submits.
type CreateRequestInput struct {
	EntityType    domain.EntityType
	Action        domain.Action
	RequestableID *uint64
	NewData       map[string]any
	CaptchaToken  string
}

// RequestPage is a paginated slice of requests plus the total row count.
type RequestPage struct {
	Items []domain.Request `json:"items"`
	Total int64            `json:"total"`
}

// defaultPageSize bounds list endpoints when the caller passes no limit.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// clampPage normalizes (page, limit) into a SQL offset/limit pair.
func clampPage(page, limit int) (offset, lim int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return (page - 1) * limit, limit
}

// Create validates and persists a new pending request.
//
// Order of gates (each must pass before the next runs):
//  1. Captcha verification; a failure yields ErrCaptchaFailed and nothing
//     is persisted.
//  2. Anonymous policy: only (word, create) proposals may be anonymous;
//     everything else requires a signed-in caller.
//  3. Shape validation against the (entityType, action) schema; failures
//     surface as *validation.Error or validation.ErrUnsupportedKind.
//  4. Inside one transaction: target existence for update/delete, the
//     unresolved-duplicate probe, and the insert.
//
// Word names are normalized to Turkish lowercase before the duplicate probe
// so casing variants of the same proposal collide.
func (s *RequestService) Create(ctx context.Context, caller Caller, in CreateRequestInput) (*domain.Request, error) {
	if s.Captcha != nil {
		if err := s.Captcha.Verify(ctx, in.CaptchaToken, "submit_request"); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCaptchaFailed, err)
		}
	}

	if caller.Anonymous() && !(in.EntityType == domain.EntityWord && in.Action == domain.ActionCreate) {
		return nil, ErrAnonymousNotAllowed
	}

	normalized, err := validation.Normalize(in.EntityType, in.Action, in.RequestableID, in.NewData)
	if err != nil {
		return nil, err
	}

	proposedName := ""
	if in.EntityType == domain.EntityWord {
		if name, ok := normalized["name"].(string); ok {
			name = NormalizeTurkish(name)
			normalized["name"] = name
			proposedName = name
		}
	}

	payload, err := json.Marshal(normalized)
	if err != nil {
		return nil, err
	}

	var userID *string
	if !caller.Anonymous() {
		uid := caller.UserID
		userID = &uid
	}

	var created *domain.Request
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.Action != domain.ActionCreate {
			ok, err := repo.TargetExists(ctx, tx, in.EntityType, *in.RequestableID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrTargetNotFound
			}
		}

		dupName := ""
		if in.Action == domain.ActionCreate {
			dupName = proposedName
		}
		dup, err := repo.HasPendingDuplicate(ctx, tx, in.EntityType, in.Action, in.RequestableID, dupName)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateRequest
		}

		created, err = repo.CreateRequest(ctx, tx, in.EntityType, in.Action, in.RequestableID, payload, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get returns a request by ID. Requests are community-visible (users vote
// on pending proposals), so there is no ownership restriction on reads.
func (s *RequestService) Get(ctx context.Context, id uint64) (*domain.Request, error) {
	r, err := repo.GetRequest(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return r, nil
}

// ListPending returns the moderation review queue: pending requests in
// first-in-first-out order, optionally narrowed by entity type and a
// payload search term.
func (s *RequestService) ListPending(ctx context.Context, f repo.PendingFilter, page, limit int) (*RequestPage, error) {
	offset, lim := clampPage(page, limit)

	total, err := repo.CountPending(ctx, s.DB, f)
	if err != nil {
		return nil, err
	}
	items, err := repo.ListPendingPage(ctx, s.DB, f, offset, lim)
	if err != nil {
		return nil, err
	}
	return &RequestPage{Items: items, Total: total}, nil
}

// ListMine returns the caller's own submissions, oldest first.
func (s *RequestService) ListMine(ctx context.Context, caller Caller, page, limit int) (*RequestPage, error) {
	if caller.Anonymous() {
		return nil, ErrAnonymousNotAllowed
	}
	offset, lim := clampPage(page, limit)

	total, err := repo.CountByUser(ctx, s.DB, caller.UserID)
	if err != nil {
		return nil, err
	}
	items, err := repo.ListByUserPage(ctx, s.DB, caller.UserID, offset, lim)
	if err != nil {
		return nil, err
	}
	return &RequestPage{Items: items, Total: total}, nil
}

// Stats returns the per-status and per-type request counts for the
// moderation dashboard.
func (s *RequestService) Stats(ctx context.Context) (repo.RequestStats, map[domain.EntityType]int64, error) {
	byStatus, err := repo.RequestStatusStats(ctx, s.DB)
	if err != nil {
		return repo.RequestStats{}, nil, err
	}
	byType, err := repo.PendingByEntityType(ctx, s.DB)
	if err != nil {
		return repo.RequestStats{}, nil, err
	}
	return byStatus, byType, nil
}
