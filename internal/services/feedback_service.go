// Package services – FeedbackService
//
// User-filed product feedback (bug reports, feature wishes) with community
// upvotes. The vote uses the same toggle idiom as request votes: one row
// per (feedback_id, user_id), atomicity by unique index.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
	"github.com/4Furki4/turkish-dictionary/internal/repo"
)

// feedbackKinds is the closed set of accepted feedback categories.
var feedbackKinds = map[string]struct{}{
	"bug":     {},
	"feature": {},
	"other":   {},
}

// FeedbackService implements the use-cases around product feedback.
type FeedbackService struct {
	// DB is the database handle used for all feedback operations.
	DB *gorm.DB
}

// FeedbackItem pairs a feedback row with its current vote count.
type FeedbackItem struct {
	domain.Feedback
	Votes int64 `json:"votes"`
}

// Create files a feedback item on behalf of the caller.
func (s *FeedbackService) Create(ctx context.Context, caller Caller, kind, title, description string) (*domain.Feedback, error) {
	if caller.Anonymous() {
		return nil, ErrAnonymousNotAllowed
	}
	kind = strings.ToLower(strings.TrimSpace(kind))
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if _, ok := feedbackKinds[kind]; !ok || title == "" || description == "" {
		return nil, ErrInvalidFeedback
	}
	return repo.CreateFeedback(ctx, s.DB, caller.UserID, kind, title, description)
}

// List returns a page of feedback items, newest first, each with its vote
// count.
func (s *FeedbackService) List(ctx context.Context, page, limit int) ([]FeedbackItem, int64, error) {
	offset, lim := clampPage(page, limit)

	total, err := repo.CountFeedback(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	rows, err := repo.ListFeedbackPage(ctx, s.DB, offset, lim)
	if err != nil {
		return nil, 0, err
	}

	out := make([]FeedbackItem, 0, len(rows))
	for _, f := range rows {
		votes, err := repo.CountFeedbackVotes(ctx, s.DB, f.ID)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, FeedbackItem{Feedback: f, Votes: votes})
	}
	return out, total, nil
}

// ToggleVote flips the caller's upvote on a feedback item, mirroring
// VoteService.Toggle semantics.
func (s *FeedbackService) ToggleVote(ctx context.Context, caller Caller, feedbackID uint64) (voted bool, err error) {
	if caller.Anonymous() {
		return false, ErrAnonymousNotAllowed
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetFeedback(ctx, tx, feedbackID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFeedbackNotFound
			}
			return err
		}

		deleted, err := repo.DeleteFeedbackVote(ctx, tx, feedbackID, caller.UserID)
		if err != nil {
			return err
		}
		if deleted {
			voted = false
			return nil
		}

		if err := repo.CreateFeedbackVote(ctx, tx, feedbackID, caller.UserID); err != nil {
			if errors.Is(err, repo.ErrDuplicateVote) {
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
