// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Request
// model, the persisted record of a proposed change awaiting moderation.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business logic, only CRUD persistence and query composition.
//
// Error semantics:
//   - When a request is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - ResolveRequest reports zero affected rows as ErrAlreadyResolved so the
//     service layer can implement the optimistic "exactly one terminal
//     transition" guarantee without row locks.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrAlreadyResolved is returned by ResolveRequest when the targeted request
// row was no longer pending at commit time.
var ErrAlreadyResolved = errors.New("request already resolved")

// PendingFilter narrows the moderation review queue.
type PendingFilter struct {
	// EntityType restricts results to one target table when non-empty.
	EntityType domain.EntityType
	// SearchTerm matches a substring of the serialized proposed payload
	// (e.g. a word name), case-insensitive.
	SearchTerm string
}

// CreateRequest inserts a new pending request row and returns it with its
// generated numeric ID. CreatedAt/UpdatedAt are set to UTC now.
func CreateRequest(ctx context.Context, db *gorm.DB, et domain.EntityType, action domain.Action, requestableID *uint64, newData json.RawMessage, userID *string) (*domain.Request, error) {
	now := time.Now().UTC()
	r := &domain.Request{
		EntityType:    et,
		Action:        action,
		RequestableID: requestableID,
		NewData:       newData,
		Status:        domain.StatusPending,
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetRequest fetches a request by ID, or ErrNotFound.
func GetRequest(ctx context.Context, db *gorm.DB, id uint64) (*domain.Request, error) {
	var r domain.Request
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// HasPendingDuplicate reports whether an unresolved request already targets
// the same (entity type, action, requestable id) triple. For create requests
// (requestableID nil) the probe falls back to the proposed name: two pending
// proposals for the same new word are duplicates even though neither
// references a live row.
func HasPendingDuplicate(ctx context.Context, db *gorm.DB, et domain.EntityType, action domain.Action, requestableID *uint64, proposedName string) (bool, error) {
	q := db.WithContext(ctx).Model(&domain.Request{}).
		Where("entity_type = ? AND action = ? AND status = ?", et, action, domain.StatusPending)

	if requestableID != nil {
		q = q.Where("requestable_id = ?", *requestableID)
	} else if proposedName != "" {
		// NewData is stored as canonical JSON with sorted keys, so a plain
		// substring match on the serialized name field is reliable here.
		q = q.Where("new_data LIKE ?", `%"name":`+string(mustJSON(proposedName))+`%`)
	} else {
		return false, nil
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountPending returns the number of pending requests matching the filter.
func CountPending(ctx context.Context, db *gorm.DB, f PendingFilter) (int64, error) {
	var total int64
	err := pendingQuery(db.WithContext(ctx), f).Count(&total).Error
	return total, err
}

// ListPendingPage returns a page of pending requests in FIFO review order
// (created_at ascending, oldest first). Use CountPending for pagination
// metadata.
func ListPendingPage(ctx context.Context, db *gorm.DB, f PendingFilter, offset, limit int) ([]domain.Request, error) {
	var out []domain.Request
	err := pendingQuery(db.WithContext(ctx), f).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountByUser returns the total number of requests filed by userID.
func CountByUser(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Request{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListByUserPage returns a page of the user's own requests, oldest first to
// mirror the moderation queue ordering.
func ListByUserPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Request, error) {
	var out []domain.Request
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ResolveRequest performs the single terminal transition for a request:
// an optimistic UPDATE guarded by `status = 'pending'`. Zero affected rows
// means another caller resolved the request first (or it never existed) and
// is reported as ErrAlreadyResolved; callers that need to distinguish a
// missing row should load the request beforehand inside the same
// transaction.
func ResolveRequest(ctx context.Context, db *gorm.DB, id uint64, to domain.RequestStatus, moderatorID string, reason *string) error {
	updates := map[string]any{
		"status":       to,
		"moderator_id": moderatorID,
		"updated_at":   time.Now().UTC(),
	}
	if reason != nil {
		updates["reason"] = *reason
	}
	res := db.WithContext(ctx).Model(&domain.Request{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyResolved
	}
	return nil
}

// pendingQuery composes the shared WHERE clause for the review queue.
func pendingQuery(db *gorm.DB, f PendingFilter) *gorm.DB {
	q := db.Model(&domain.Request{}).Where("status = ?", domain.StatusPending)
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.SearchTerm != "" {
		q = q.Where("new_data LIKE ?", "%"+f.SearchTerm+"%")
	}
	return q
}

// mustJSON serializes a value that cannot fail to marshal (plain string).
func mustJSON(v string) []byte {
	b, _ := json.Marshal(v)
	return b
}
