// Package domain defines the persistence models for the Turkish dictionary
// backend: the contribution request pipeline (requests and request votes)
// and the live dictionary entity tables they target. These types are mapped
// with GORM and are shared across the repository and service layers.
package domain

import (
	"encoding/json"
	"time"
)

// EntityType identifies which live table a contribution request targets.
type EntityType string

// Known entity types. The set is closed: anything else is rejected by the
// validator before a request row is ever created.
const (
	EntityWord             EntityType = "word"
	EntityMeaning          EntityType = "meaning"
	EntityWordAttribute    EntityType = "word_attribute"
	EntityMeaningAttribute EntityType = "meaning_attribute"
	EntityAuthor           EntityType = "author"
	EntityRelatedWord      EntityType = "related_word"
	EntityRelatedPhrase    EntityType = "related_phrase"
)

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityWord, EntityMeaning, EntityWordAttribute, EntityMeaningAttribute,
		EntityAuthor, EntityRelatedWord, EntityRelatedPhrase:
		return true
	}
	return false
}

// Action is the kind of change a request proposes against its target.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// RequestStatus is the lifecycle state of a contribution request.
//
// The state machine is intentionally small:
//
//	pending --approve--> approved  (terminal)
//	pending --reject---> rejected  (terminal)
//
// No transition is defined out of a terminal state.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s RequestStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Terminal reports whether s permits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Request is a persisted proposal to create, update, or delete a dictionary
// entity, awaiting moderation.
//
// Fields:
//   - ID: numeric primary key, generated on creation.
//   - EntityType / Action: the closed (type, action) pair the proposal targets.
//   - RequestableID: the live row being changed; nil for create requests.
//   - NewData: the proposed payload, validated against the schema for
//     (EntityType, Action) before the row is created. For updates, key
//     absence means "leave unchanged" and an explicit null means "clear".
//   - Status: pending until exactly one terminal transition occurs.
//   - UserID: owning contributor; nil for anonymous word submissions.
//   - ModeratorID / Reason: audit fields set by the terminal transition.
//   - UpdatedAt is touched on every status transition.
type Request struct {
	ID            uint64          `json:"id"             gorm:"primaryKey;autoIncrement"`
	EntityType    EntityType      `json:"entity_type"    gorm:"type:varchar(32);not null;index:idx_requests_review,priority:2"`
	Action        Action          `json:"action"         gorm:"type:varchar(16);not null"`
	RequestableID *uint64         `json:"requestable_id" gorm:"index"`
	NewData       json.RawMessage `json:"new_data"       gorm:"type:TEXT;not null"`
	Status        RequestStatus   `json:"status"         gorm:"type:varchar(16);not null;default:'pending';index:idx_requests_review,priority:1"`
	UserID        *string         `json:"user_id"        gorm:"type:varchar(64);index"`
	ModeratorID   *string         `json:"moderator_id"   gorm:"type:varchar(64)"`
	Reason        *string         `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt     time.Time       `json:"created_at"     gorm:"index"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName returns the database table name for Request.
func (Request) TableName() string { return "requests" }

// RequestVote is a single user's vote on a pending request. Identity is the
// composite (request_id, user_id) pair: a user casts at most one vote per
// request, enforced by the unique index rather than application locking.
// Votes are toggles, not counts; retracting deletes the row.
type RequestVote struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	RequestID uint64    `json:"request_id" gorm:"not null;index;uniqueIndex:ux_request_votes_request_user"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;index;uniqueIndex:ux_request_votes_request_user"`
	CreatedAt time.Time `json:"created_at"`

	// Request is the voted proposal. Votes are cascade-deleted if the
	// request row is removed.
	Request Request `json:"-" gorm:"foreignKey:RequestID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for RequestVote.
func (RequestVote) TableName() string { return "request_votes" }
