// Package services – Diff presenter
//
// Computes the field-level delta a moderator reviews: the live entity's
// current state versus a request's proposed payload. Purely presentational
// and read-only; the current snapshot is fetched on demand and never
// persisted, so the review screen cannot show a stale copy.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
	"github.com/4Furki4/turkish-dictionary/internal/repo"
)

// FieldDiff is one changed field in a review delta.
type FieldDiff struct {
	Field         string `json:"field"`
	CurrentValue  any    `json:"current_value"`
	ProposedValue any    `json:"proposed_value"`
}

// Diff compares a current snapshot with a proposed payload and returns the
// fields whose serialized values differ, sorted by field name.
//
// current may be nil (create requests have no prior state); every proposed
// field is then reported as new. Only fields present in the proposal are
// compared: absent fields are sparse-update no-ops, so they are not deltas.
func Diff(current, proposed map[string]any) []FieldDiff {
	out := make([]FieldDiff, 0, len(proposed))
	for field, proposedVal := range proposed {
		var currentVal any
		if current != nil {
			currentVal = current[field]
		}
		if !jsonEqual(currentVal, proposedVal) {
			out = append(out, FieldDiff{
				Field:         field,
				CurrentValue:  currentVal,
				ProposedValue: proposedVal,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// DiffFor resolves the live snapshot for a stored request and diffs it
// against the proposed payload. A target row that has vanished since
// submission is treated like a create: every proposed field shows as new.
func (s *RequestService) DiffFor(ctx context.Context, req *domain.Request) ([]FieldDiff, error) {
	var proposed map[string]any
	if err := json.Unmarshal(req.NewData, &proposed); err != nil {
		return nil, err
	}

	var current map[string]any
	if req.RequestableID != nil {
		snap, err := repo.FetchCurrent(ctx, s.DB, req.EntityType, *req.RequestableID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		current = snap
	}
	return Diff(current, proposed), nil
}

// jsonEqual compares two values by their serialized JSON form, which makes
// numeric types from different decoding paths (float64 vs uint64) compare
// by value and treats missing as null.
func jsonEqual(a, b any) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ab) == string(bb)
}
