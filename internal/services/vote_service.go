// Package services – VoteService
//
// This file implements vote toggling on pending contribution requests.
// Votes prioritize moderator review; they never auto-approve anything.
// Correctness under concurrent toggles rests on the composite unique index
// on (request_id, user_id), not on application-level locking.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/repo"
)

// VoteService implements the use-cases around request votes.
type VoteService struct {
	// DB is the database handle used for all vote operations.
	DB *gorm.DB
}

// Toggle flips the caller's vote on a request.
//
// Semantics:
//   - If a vote by this user on this request exists, it is deleted and
//     voted=false is returned.
//   - Otherwise one is inserted and voted=true is returned.
//   - Voting requires a signed-in caller and a request that is still
//     pending; terminal requests yield ErrAlreadyResolved.
//
// Two concurrent first-time toggles from the same user cannot both insert:
// the unique index rejects the loser, which then observes the vote as
// already present (voted=true, no error).
func (s *VoteService) Toggle(ctx context.Context, caller Caller, requestID uint64) (voted bool, err error) {
	if caller.Anonymous() {
		return false, ErrAnonymousNotAllowed
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := repo.GetRequest(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if req.Status.Terminal() {
			return ErrAlreadyResolved
		}

		deleted, err := repo.DeleteRequestVote(ctx, tx, requestID, caller.UserID)
		if err != nil {
			return err
		}
		if deleted {
			voted = false
			return nil
		}

		if err := repo.CreateRequestVote(ctx, tx, requestID, caller.UserID); err != nil {
			if errors.Is(err, repo.ErrDuplicateVote) {
				// Lost an insert race; the vote exists either way.
				voted = true
				return nil
			}
			return err
		}
		voted = true
		return nil
	})
	return voted, err
}

// Count returns the number of votes on a request, for moderator sorting and
// display only.
func (s *VoteService) Count(ctx context.Context, requestID uint64) (int64, error) {
	return repo.CountRequestVotes(ctx, s.DB, requestID)
}
