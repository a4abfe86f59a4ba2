// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the
// ContributionKey model used to implement safe-retry semantics for the
// POST /requests endpoint.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

// ErrDuplicateKey indicates that a contribution-key record already exists
// for the given (user_id, entity_type, key) tuple.
var ErrDuplicateKey = errors.New("duplicate contribution key")

// GetContributionKey returns a non-expired record or ErrNotFound.
func GetContributionKey(ctx context.Context, db *gorm.DB, userID string, et domain.EntityType, key string, now time.Time) (*domain.ContributionKey, error) {
	var rec domain.ContributionKey
	err := db.WithContext(ctx).
		Where("user_id = ? AND entity_type = ? AND key = ? AND expires_at > ?", userID, et, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &rec, err
}

// HasContributionKey reports whether any non-expired record exists for the
// (user, key) pair, regardless of entity type. The transport layer uses this
// to flag replays before the body is parsed.
func HasContributionKey(ctx context.Context, db *gorm.DB, userID, key string, now time.Time) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ContributionKey{}).
		Where("user_id = ? AND key = ? AND expires_at > ?", userID, key, now).
		Count(&n).Error
	return n > 0, err
}

// CreateContributionKey inserts a record and returns ErrDuplicateKey on a
// unique violation.
func CreateContributionKey(ctx context.Context, db *gorm.DB, userID string, et domain.EntityType, key string, requestID uint64, status int, ttl time.Duration) (*domain.ContributionKey, error) {
	now := time.Now().UTC()
	rec := &domain.ContributionKey{
		ID:         uuid.NewString(),
		UserID:     userID,
		EntityType: et,
		Key:        key,
		RequestID:  requestID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return rec, nil
}
