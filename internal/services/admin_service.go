// Package services – AdminService
//
// Direct CRUD over the dictionary entity tables for administrators. It
// deliberately reuses the contribution pipeline's validation schemas and
// apply primitives, so an admin edit and an approved request flow through
// exactly the same sparse-update semantics: absent fields untouched,
// explicit nulls clearing columns.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
	"github.com/4Furki4/turkish-dictionary/internal/repo"
	"github.com/4Furki4/turkish-dictionary/internal/validation"
)

// AdminService implements direct entity CRUD, restricted to role admin.
type AdminService struct {
	// DB is the database handle used for all admin mutations.
	DB *gorm.DB
	// OnWordsChanged, when set, is invoked after a committed mutation of
	// the words table, so the suggestion index can rebuild.
	OnWordsChanged func()
}

// Create validates payload against the (entityType, create) schema and
// inserts the row, returning its generated ID.
func (s *AdminService) Create(ctx context.Context, caller Caller, et domain.EntityType, payload map[string]any) (uint64, error) {
	if !caller.IsAdmin() {
		return 0, ErrForbidden
	}
	normalized, err := validation.Normalize(et, domain.ActionCreate, nil, payload)
	if err != nil {
		return 0, err
	}
	if et == domain.EntityWord {
		if name, ok := normalized["name"].(string); ok {
			normalized["name"] = NormalizeTurkish(name)
		}
	}

	id, err := repo.ApplyCreate(ctx, s.DB, et, normalized)
	if err != nil {
		return 0, err
	}
	s.notify(et)
	return id, nil
}

// Update validates payload against the (entityType, update) schema and
// sparse-patches the row.
func (s *AdminService) Update(ctx context.Context, caller Caller, et domain.EntityType, id uint64, payload map[string]any) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	normalized, err := validation.Normalize(et, domain.ActionUpdate, &id, payload)
	if err != nil {
		return err
	}
	if et == domain.EntityWord {
		if name, ok := normalized["name"].(string); ok {
			normalized["name"] = NormalizeTurkish(name)
		}
	}

	if err := repo.ApplyUpdate(ctx, s.DB, et, id, normalized); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTargetNotFound
		}
		return err
	}
	s.notify(et)
	return nil
}

// Delete removes (or soft-deletes) the row.
func (s *AdminService) Delete(ctx context.Context, caller Caller, et domain.EntityType, id uint64) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	if _, err := validation.Normalize(et, domain.ActionDelete, &id, nil); err != nil {
		return err
	}

	if err := repo.ApplyDelete(ctx, s.DB, et, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTargetNotFound
		}
		return err
	}
	s.notify(et)
	return nil
}

func (s *AdminService) notify(et domain.EntityType) {
	if et == domain.EntityWord && s.OnWordsChanged != nil {
		s.OnWordsChanged()
	}
}
