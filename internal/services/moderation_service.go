// Package services – ModerationService
//
// This file implements the terminal transitions of the request lifecycle:
//
//	pending --approve--> approved   (applies the proposed change)
//	pending --reject---> rejected   (never touches the target table)
//
// Approval is a single database transaction covering the re-validation of
// the stored payload, the target-table write, and the optimistic status
// flip. Readers therefore never observe a request as approved without the
// target mutation committed, nor a mutated target while the request is
// still pending. "Exactly one terminal transition" is enforced by the
// status-guarded UPDATE, not by row locks: the second of two concurrent
// approvals updates zero rows, observes ErrAlreadyResolved, and its
// target write rolls back with the transaction.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
	"github.com/4Furki4/turkish-dictionary/internal/repo"
	"github.com/4Furki4/turkish-dictionary/internal/validation"
)

// ModerationService implements approve/reject for contribution requests.
type ModerationService struct {
	// DB is the database handle used for all moderation operations.
	DB *gorm.DB
	// OnWordsChanged, when set, is invoked after a committed approval that
	// mutated the words table, so the suggestion index can rebuild.
	OnWordsChanged func()
}

// Approve applies a pending request's proposed change and marks it
// approved.
//
// Error cases:
//   - ErrForbidden when the caller is neither admin nor moderator.
//   - ErrRequestNotFound when the request row is absent.
//   - ErrAlreadyResolved when the request is no longer pending, whether
//     observed on the initial read or at the status-guarded commit check.
//   - ErrInvalidTransition when the persisted status is malformed.
//   - *validation.Error when the stored payload no longer validates
//     against the current schema (schema drift since submission); the
//     request stays pending.
//   - ErrTargetNotFound when the target row vanished since submission.
//   - ErrTargetWriteFailed for unexpected apply failures; the transaction
//     rolls back, the request stays pending, and the cause is logged for
//     operator investigation.
func (s *ModerationService) Approve(ctx context.Context, caller Caller, requestID uint64) error {
	if !caller.CanModerate() {
		return ErrForbidden
	}

	var touchedWords bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := repo.GetRequest(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if !req.Status.Valid() {
			return ErrInvalidTransition
		}
		if req.Status.Terminal() {
			return ErrAlreadyResolved
		}

		var payload map[string]any
		if err := json.Unmarshal(req.NewData, &payload); err != nil {
			return fmt.Errorf("%w: stored payload is not valid JSON: %v", ErrTargetWriteFailed, err)
		}

		// Re-validate against the live schema; guards against drift
		// between submission and review.
		normalized, err := validation.Normalize(req.EntityType, req.Action, req.RequestableID, payload)
		if err != nil {
			return err
		}

		if err := s.apply(ctx, tx, req, normalized); err != nil {
			return err
		}

		if err := repo.ResolveRequest(ctx, tx, req.ID, domain.StatusApproved, caller.UserID, nil); err != nil {
			if errors.Is(err, repo.ErrAlreadyResolved) {
				return ErrAlreadyResolved
			}
			return err
		}

		touchedWords = req.EntityType == domain.EntityWord
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTargetWriteFailed) {
			log.Error().
				Err(err).
				Uint64("request_id", requestID).
				Str("moderator_id", caller.UserID).
				Msg("approval rolled back")
		}
		return err
	}

	if touchedWords && s.OnWordsChanged != nil {
		s.OnWordsChanged()
	}
	return nil
}

// apply dispatches the proposed change to the target table.
func (s *ModerationService) apply(ctx context.Context, tx *gorm.DB, req *domain.Request, data map[string]any) error {
	var err error
	switch req.Action {
	case domain.ActionCreate:
		_, err = repo.ApplyCreate(ctx, tx, req.EntityType, data)
	case domain.ActionUpdate:
		err = repo.ApplyUpdate(ctx, tx, req.EntityType, *req.RequestableID, data)
	case domain.ActionDelete:
		err = repo.ApplyDelete(ctx, tx, req.EntityType, *req.RequestableID)
	default:
		return ErrInvalidTransition
	}
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTargetNotFound
		}
		return fmt.Errorf("%w: %v", ErrTargetWriteFailed, err)
	}
	return nil
}

// Reject marks a pending request rejected with an optional reason. The
// target table is never touched: only the request's own status, audit
// fields, and updated_at change.
func (s *ModerationService) Reject(ctx context.Context, caller Caller, requestID uint64, reason *string) error {
	if !caller.CanModerate() {
		return ErrForbidden
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := repo.GetRequest(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if !req.Status.Valid() {
			return ErrInvalidTransition
		}
		if req.Status.Terminal() {
			return ErrAlreadyResolved
		}

		if err := repo.ResolveRequest(ctx, tx, req.ID, domain.StatusRejected, caller.UserID, reason); err != nil {
			if errors.Is(err, repo.ErrAlreadyResolved) {
				return ErrAlreadyResolved
			}
			return err
		}
		return nil
	})
}
