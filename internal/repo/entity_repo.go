// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file is the apply side of the contribution pipeline:
// a closed table mapping each entity type to its GORM model, plus the three
// write primitives (insert, sparse patch, delete) that the moderation engine
// and the admin CRUD endpoints share.
//
// Sparse updates use GORM's map form of Updates: only keys present in the
// map are written, and a nil value writes SQL NULL (explicit clear). Key
// absence therefore means "leave unchanged" all the way down to the UPDATE
// statement, matching the validator's contract.
package repo

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

// ErrUnknownTarget is returned when an entity type has no registered model.
// The validator rejects such requests before they are stored, so seeing this
// error indicates a row written outside the pipeline.
var ErrUnknownTarget = errors.New("unknown target entity type")

// Identifiable is implemented by every target model so the apply layer can
// report generated primary keys without reflection.
type Identifiable interface {
	PrimaryID() uint64
}

// targets maps each entity type to a constructor for its zero model.
// Adding a new entity type is an entry here plus a validation schema.
var targets = map[domain.EntityType]func() Identifiable{
	domain.EntityWord:             func() Identifiable { return &domain.Word{} },
	domain.EntityMeaning:          func() Identifiable { return &domain.Meaning{} },
	domain.EntityWordAttribute:    func() Identifiable { return &domain.WordAttribute{} },
	domain.EntityMeaningAttribute: func() Identifiable { return &domain.MeaningAttribute{} },
	domain.EntityAuthor:           func() Identifiable { return &domain.Author{} },
	domain.EntityRelatedWord:      func() Identifiable { return &domain.RelatedWord{} },
	domain.EntityRelatedPhrase:    func() Identifiable { return &domain.RelatedPhrase{} },
}

// ApplyCreate inserts a new row of the given entity type from a normalized
// payload map and returns the generated primary key.
//
// Payload keys equal the model's JSON tags, so the map round-trips through
// encoding/json into the concrete struct before the insert.
func ApplyCreate(ctx context.Context, db *gorm.DB, et domain.EntityType, data map[string]any) (uint64, error) {
	newModel, ok := targets[et]
	if !ok {
		return 0, ErrUnknownTarget
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return 0, err
	}
	m := newModel()
	if err := json.Unmarshal(raw, m); err != nil {
		return 0, err
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return 0, err
	}
	return m.PrimaryID(), nil
}

// ApplyUpdate patches only the fields present in data onto the target row.
// Absent fields are untouched; nil values clear their columns. Returns
// ErrNotFound when the row does not exist (zero rows affected).
func ApplyUpdate(ctx context.Context, db *gorm.DB, et domain.EntityType, id uint64, data map[string]any) error {
	newModel, ok := targets[et]
	if !ok {
		return ErrUnknownTarget
	}
	res := db.WithContext(ctx).Model(newModel()).
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

// ApplyDelete removes the target row. Models carrying gorm.DeletedAt are
// soft-deleted (retained for audit); link and attribute rows are removed for
// real. Returns ErrNotFound when no row was affected.
func ApplyDelete(ctx context.Context, db *gorm.DB, et domain.EntityType, id uint64) error {
	newModel, ok := targets[et]
	if !ok {
		return ErrUnknownTarget
	}
	res := db.WithContext(ctx).Where("id = ?", id).Delete(newModel())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TargetExists reports whether a live row of the given type exists. Used
// when accepting update/delete requests so a dangling requestable_id is
// rejected at submission time, not at approval.
func TargetExists(ctx context.Context, db *gorm.DB, et domain.EntityType, id uint64) (bool, error) {
	newModel, ok := targets[et]
	if !ok {
		return false, ErrUnknownTarget
	}
	var n int64
	err := db.WithContext(ctx).Model(newModel()).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// FetchCurrent loads the live row of the given type as a field→value map,
// for diffing against a request's proposed payload. The snapshot is computed
// on demand and never persisted.
func FetchCurrent(ctx context.Context, db *gorm.DB, et domain.EntityType, id uint64) (map[string]any, error) {
	newModel, ok := targets[et]
	if !ok {
		return nil, ErrUnknownTarget
	}
	m := newModel()
	if err := db.WithContext(ctx).Where("id = ?", id).First(m).Error; err != nil {
		return nil, err
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	// Bookkeeping columns are not reviewable fields.
	delete(out, "created_at")
	delete(out, "updated_at")
	delete(out, "meanings")
	return out, nil
}
