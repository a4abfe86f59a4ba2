// Package validation checks contribution payloads against the closed set of
// (entity type, action) schemas before anything touches the database.
//
// The schema registry is data, not control flow: adding a new entity type is
// a new table entry, not a new branch. Normalize is a pure function: it
// performs no I/O and never mutates its input map.
//
// Sparse-update semantics: for update payloads, a key that is absent means
// "leave the column unchanged", while a key explicitly set to null means
// "clear the column". Normalize preserves that distinction by keeping null
// entries in the returned map only for fields whose rule allows clearing.
package validation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

// ErrUnsupportedKind is returned when the (entity type, action) pair is not
// part of the closed schema registry.
var ErrUnsupportedKind = errors.New("unsupported request kind")

// FieldError describes a single failing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a structured validation failure enumerating every failing field.
// It implements the error interface so services can return it directly.
type Error struct {
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface with a compact per-field summary.
func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Kind is the primitive type a field value must satisfy.
type Kind int

const (
	// KindString accepts non-empty strings (after trimming).
	KindString Kind = iota
	// KindID accepts positive integers referencing another row.
	KindID
	// KindInt accepts any integer (including zero).
	KindInt
)

// Rule constrains a single payload field.
type Rule struct {
	Kind     Kind
	Required bool // enforced for create payloads only
	Nullable bool // explicit null permitted in update payloads (clears the column)
	MaxLen   int  // maximum rune length for strings; 0 means unlimited
}

// Schema maps payload field names (snake_case, matching column names) to
// their rules for one entity type.
type Schema map[string]Rule

// schemas is the closed registry. Field names double as the database column
// names, which keeps the apply layer's sparse Updates(map) free of mapping
// tables.
var schemas = map[domain.EntityType]Schema{
	domain.EntityWord: {
		"name":          {Kind: KindString, Required: true, MaxLen: 255},
		"phonetic":      {Kind: KindString, Nullable: true, MaxLen: 255},
		"prefix":        {Kind: KindString, Nullable: true, MaxLen: 64},
		"suffix":        {Kind: KindString, Nullable: true, MaxLen: 64},
		"root":          {Kind: KindString, Nullable: true, MaxLen: 255},
		"language_code": {Kind: KindString, Nullable: true, MaxLen: 8},
	},
	domain.EntityMeaning: {
		"word_id":           {Kind: KindID, Required: true},
		"meaning":           {Kind: KindString, Required: true},
		"part_of_speech":    {Kind: KindString, Nullable: true, MaxLen: 32},
		"example_sentence":  {Kind: KindString, Nullable: true},
		"example_author_id": {Kind: KindID, Nullable: true},
		"display_order":     {Kind: KindInt},
	},
	domain.EntityWordAttribute: {
		"attribute": {Kind: KindString, Required: true, MaxLen: 255},
	},
	domain.EntityMeaningAttribute: {
		"attribute": {Kind: KindString, Required: true, MaxLen: 255},
	},
	domain.EntityAuthor: {
		"name": {Kind: KindString, Required: true, MaxLen: 255},
	},
	domain.EntityRelatedWord: {
		"word_id":         {Kind: KindID, Required: true},
		"related_word_id": {Kind: KindID, Required: true},
		"relation_type":   {Kind: KindString, Nullable: true, MaxLen: 32},
	},
	domain.EntityRelatedPhrase: {
		"word_id":           {Kind: KindID, Required: true},
		"related_phrase_id": {Kind: KindID, Required: true},
	},
}

// Supported reports whether the (entity type, action) pair is registered.
func Supported(et domain.EntityType, action domain.Action) bool {
	if !et.Valid() || !action.Valid() {
		return false
	}
	_, ok := schemas[et]
	return ok
}

// Normalize validates payload against the schema for (et, action) and
// returns a normalized copy: strings trimmed, identifiers coerced to uint64,
// integers to int64, unknown keys rejected.
//
// Per-action rules:
//   - create: requestableID must be nil; all Required fields must be present
//     and non-null.
//   - update: requestableID must be a positive identifier; at least one
//     schema field must be present; null is accepted only for Nullable
//     fields and survives into the result (explicit clear).
//   - delete: requestableID must be a positive identifier; the payload must
//     be empty. The result is an empty map.
//
// Errors are *Error (per-field) or ErrUnsupportedKind.
func Normalize(et domain.EntityType, action domain.Action, requestableID *uint64, payload map[string]any) (map[string]any, error) {
	if !Supported(et, action) {
		return nil, ErrUnsupportedKind
	}
	schema := schemas[et]

	var fields []FieldError
	addErr := func(field, msg string) { fields = append(fields, FieldError{Field: field, Message: msg}) }

	switch action {
	case domain.ActionCreate:
		if requestableID != nil {
			addErr("requestable_id", "must be absent for create")
		}
	default:
		if requestableID == nil || *requestableID == 0 {
			addErr("requestable_id", "must be a positive integer")
		}
	}

	if action == domain.ActionDelete {
		for k := range payload {
			addErr(k, "unexpected field for delete")
		}
		if len(fields) > 0 {
			return nil, sorted(&Error{Fields: fields})
		}
		return map[string]any{}, nil
	}

	out := make(map[string]any, len(payload))
	for key, val := range payload {
		rule, ok := schema[key]
		if !ok {
			addErr(key, "unknown field")
			continue
		}
		if val == nil {
			if action == domain.ActionUpdate && rule.Nullable {
				out[key] = nil // explicit clear
				continue
			}
			addErr(key, "must not be null")
			continue
		}
		norm, msg := coerce(rule, val)
		if msg != "" {
			addErr(key, msg)
			continue
		}
		out[key] = norm
	}

	switch action {
	case domain.ActionCreate:
		for key, rule := range schema {
			if rule.Required {
				if _, ok := out[key]; !ok {
					if !hasFieldError(fields, key) {
						addErr(key, "required")
					}
				}
			}
		}
	case domain.ActionUpdate:
		if len(out) == 0 && len(fields) == 0 {
			addErr("new_data", "must contain at least one field")
		}
	}

	if len(fields) > 0 {
		return nil, sorted(&Error{Fields: fields})
	}
	return out, nil
}

// coerce validates a single non-null value against its rule and returns the
// normalized value, or a non-empty message describing the failure.
func coerce(rule Rule, val any) (any, string) {
	switch rule.Kind {
	case KindString:
		s, ok := val.(string)
		if !ok {
			return nil, "must be a string"
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, "must not be empty"
		}
		if rule.MaxLen > 0 && len([]rune(s)) > rule.MaxLen {
			return nil, fmt.Sprintf("must be at most %d characters", rule.MaxLen)
		}
		return s, ""
	case KindID:
		n, ok := asInt64(val)
		if !ok || n <= 0 {
			return nil, "must be a positive integer"
		}
		return uint64(n), ""
	case KindInt:
		n, ok := asInt64(val)
		if !ok {
			return nil, "must be an integer"
		}
		return n, ""
	}
	return nil, "unsupported rule"
}

// asInt64 accepts the integer shapes that survive JSON decoding and test
// construction: float64 (integral), int, int64, uint64.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func hasFieldError(fields []FieldError, name string) bool {
	for _, f := range fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

// sorted orders field errors by field name so output is deterministic
// regardless of map iteration order.
func sorted(e *Error) *Error {
	sort.Slice(e.Fields, func(i, j int) bool {
		if e.Fields[i].Field == e.Fields[j].Field {
			return e.Fields[i].Message < e.Fields[j].Message
		}
		return e.Fields[i].Field < e.Fields[j].Field
	})
	return e
}
