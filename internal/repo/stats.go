// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries for the
// moderation dashboard: request counts broken down by status and by target
// entity type. Each function is context-aware and safe to call from
// services or handlers.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

// RequestStats is the per-status breakdown of the requests table.
type RequestStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// RequestStatusStats returns the number of requests per lifecycle status.
func RequestStatusStats(ctx context.Context, db *gorm.DB) (RequestStats, error) {
	var rows []struct {
		Status domain.RequestStatus
		N      int64
	}
	err := db.WithContext(ctx).Model(&domain.Request{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return RequestStats{}, err
	}

	var out RequestStats
	for _, r := range rows {
		switch r.Status {
		case domain.StatusPending:
			out.Pending = r.N
		case domain.StatusApproved:
			out.Approved = r.N
		case domain.StatusRejected:
			out.Rejected = r.N
		}
	}
	return out, nil
}

// PendingByEntityType returns the pending request count per target entity
// type, so the dashboard can show where the review backlog sits.
func PendingByEntityType(ctx context.Context, db *gorm.DB) (map[domain.EntityType]int64, error) {
	var rows []struct {
		EntityType domain.EntityType
		N          int64
	}
	err := db.WithContext(ctx).Model(&domain.Request{}).
		Select("entity_type, COUNT(*) AS n").
		Where("status = ?", domain.StatusPending).
		Group("entity_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[domain.EntityType]int64, len(rows))
	for _, r := range rows {
		out[r.EntityType] = r.N
	}
	return out, nil
}
