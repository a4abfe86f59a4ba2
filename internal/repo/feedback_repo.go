// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for product
// feedback and feedback votes, plus announcements.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

// CreateFeedback inserts a feedback row and returns it with its ID.
func CreateFeedback(ctx context.Context, db *gorm.DB, userID, kind, title, description string) (*domain.Feedback, error) {
	f := &domain.Feedback{
		UserID:      userID,
		Kind:        kind,
		Title:       title,
		Description: description,
		Status:      "open",
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// GetFeedback fetches a feedback item by ID, or ErrNotFound.
func GetFeedback(ctx context.Context, db *gorm.DB, id uint64) (*domain.Feedback, error) {
	var f domain.Feedback
	if err := db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// CountFeedback returns the total number of feedback items.
func CountFeedback(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Feedback{}).Count(&n).Error
	return n, err
}

// ListFeedbackPage returns a page of feedback items, newest first.
func ListFeedbackPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CreateFeedbackVote inserts a vote row; unique violations are translated
// to ErrDuplicateVote.
func CreateFeedbackVote(ctx context.Context, db *gorm.DB, feedbackID uint64, userID string) error {
	v := &domain.FeedbackVote{
		ID:         uuid.NewString(),
		FeedbackID: feedbackID,
		UserID:     userID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateVote
		}
		return err
	}
	return nil
}

// DeleteFeedbackVote removes the vote by pair and reports whether a row was
// deleted.
func DeleteFeedbackVote(ctx context.Context, db *gorm.DB, feedbackID uint64, userID string) (bool, error) {
	res := db.WithContext(ctx).
		Where("feedback_id = ? AND user_id = ?", feedbackID, userID).
		Delete(&domain.FeedbackVote{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountFeedbackVotes returns the vote count for a feedback item.
func CountFeedbackVotes(ctx context.Context, db *gorm.DB, feedbackID uint64) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.FeedbackVote{}).
		Where("feedback_id = ?", feedbackID).
		Count(&n).Error
	return n, err
}

// CreateAnnouncement inserts an announcement row.
func CreateAnnouncement(ctx context.Context, db *gorm.DB, a *domain.Announcement) error {
	a.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(a).Error
}

// GetAnnouncementBySlug fetches a published announcement by slug, or
// ErrNotFound.
func GetAnnouncementBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Announcement, error) {
	var a domain.Announcement
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAnnouncements returns announcements newest first, published only when
// publishedOnly is set.
func ListAnnouncements(ctx context.Context, db *gorm.DB, publishedOnly bool, limit int) ([]domain.Announcement, error) {
	q := db.WithContext(ctx).Model(&domain.Announcement{})
	if publishedOnly {
		q = q.Where("published_at IS NOT NULL")
	}
	var out []domain.Announcement
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// UpdateAnnouncement sparse-patches the fields present in data. Returns
// ErrNotFound when the row does not exist.
func UpdateAnnouncement(ctx context.Context, db *gorm.DB, id uint64, data map[string]any) error {
	res := db.WithContext(ctx).Model(&domain.Announcement{}).
		Where("id = ?", id).
		Updates(data)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAnnouncement soft-deletes an announcement. Returns ErrNotFound when
// the row does not exist.
func DeleteAnnouncement(ctx context.Context, db *gorm.DB, id uint64) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Announcement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
