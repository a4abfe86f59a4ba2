// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for request votes.
//
// Votes are toggles: one row per (request_id, user_id), inserted on the
// first toggle and deleted on the second. Atomicity under concurrent
// toggles from the same user rests on the composite unique index, never on
// application-level locking.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

// ErrDuplicateVote indicates that a vote row for the (request_id, user_id)
// pair already exists, meaning a concurrent toggle won the insert race.
var ErrDuplicateVote = errors.New("vote already exists")

// CreateRequestVote inserts a vote row for the given request and user.
// A unique violation on (request_id, user_id) is translated to
// ErrDuplicateVote.
func CreateRequestVote(ctx context.Context, db *gorm.DB, requestID uint64, userID string) error {
	v := &domain.RequestVote{
		ID:        uuid.NewString(),
		RequestID: requestID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateVote
		}
		return err
	}
	return nil
}

// DeleteRequestVote removes the vote by (requestID, userID) and reports
// whether a row was actually deleted.
func DeleteRequestVote(ctx context.Context, db *gorm.DB, requestID uint64, userID string) (bool, error) {
	res := db.WithContext(ctx).
		Where("request_id = ? AND user_id = ?", requestID, userID).
		Delete(&domain.RequestVote{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountRequestVotes returns the number of votes on a request. The count
// informs moderator prioritization only; it never drives approval.
func CountRequestVotes(ctx context.Context, db *gorm.DB, requestID uint64) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.RequestVote{}).
		Where("request_id = ?", requestID).
		Count(&n).Error
	return n, err
}

// isUniqueViolation detects unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite: "UNIQUE constraint failed"
	// Postgres: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
