// Package domain defines the persistence models for the Turkish dictionary
// backend. This file holds the live entity tables the contribution pipeline
// reads (for diffing) and writes (on approval), plus the product tables
// around them (announcements, user feedback).
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Word is a dictionary headword. Names are stored in Turkish lowercase;
// homographs are allowed, so the name is indexed but not unique.
//
// Optional morphology fields (Prefix, Suffix, Root) and the source language
// code are nullable: an explicit null in an update payload clears them.
type Word struct {
	ID           uint64         `json:"id"            gorm:"primaryKey;autoIncrement"`
	Name         string         `json:"name"          gorm:"type:varchar(255);not null;index"`
	Phonetic     *string        `json:"phonetic"      gorm:"type:varchar(255)"`
	Prefix       *string        `json:"prefix"        gorm:"type:varchar(64)"`
	Suffix       *string        `json:"suffix"        gorm:"type:varchar(64)"`
	Root         *string        `json:"root"          gorm:"type:varchar(255)"`
	LanguageCode *string        `json:"language_code" gorm:"type:varchar(8)"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Meanings []Meaning `json:"meanings,omitempty" gorm:"foreignKey:WordID"`
}

// TableName returns the database table name for Word.
func (Word) TableName() string { return "words" }

// PrimaryID implements the Identifiable contract used by the apply layer.
func (w *Word) PrimaryID() uint64 { return w.ID }

// Meaning is a single sense of a word, optionally carrying a part of speech,
// an example sentence, and the author of that example.
type Meaning struct {
	ID              uint64         `json:"id"               gorm:"primaryKey;autoIncrement"`
	WordID          uint64         `json:"word_id"          gorm:"not null;index"`
	Meaning         string         `json:"meaning"          gorm:"type:text;not null"`
	PartOfSpeech    *string        `json:"part_of_speech"   gorm:"type:varchar(32)"`
	ExampleSentence *string        `json:"example_sentence" gorm:"type:text"`
	ExampleAuthorID *uint64        `json:"example_author_id"`
	DisplayOrder    int            `json:"display_order"    gorm:"not null;default:0"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	// Word is the parent headword. Meanings are cascade-deleted with it.
	Word Word `json:"-" gorm:"foreignKey:WordID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Meaning.
func (Meaning) TableName() string { return "meanings" }

// PrimaryID implements the Identifiable contract used by the apply layer.
func (m *Meaning) PrimaryID() uint64 { return m.ID }

// Author is a cited author of example sentences.
type Author struct {
	ID        uint64         `json:"id"   gorm:"primaryKey;autoIncrement"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the database table name for Author.
func (Author) TableName() string { return "authors" }

// PrimaryID implements the Identifiable contract used by the apply layer.
func (a *Author) PrimaryID() uint64 { return a.ID }

// WordAttribute is a curated label attachable to words (e.g. dialect marks).
type WordAttribute struct {
	ID        uint64    `json:"id"        gorm:"primaryKey;autoIncrement"`
	Attribute string    `json:"attribute" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for WordAttribute.
func (WordAttribute) TableName() string { return "word_attributes" }

// PrimaryID implements the Identifiable contract used by the apply layer.
func (a *WordAttribute) PrimaryID() uint64 { return a.ID }

// MeaningAttribute is a curated label attachable to meanings.
type MeaningAttribute struct {
	ID        uint64    `json:"id"        gorm:"primaryKey;autoIncrement"`
	Attribute string    `json:"attribute" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for MeaningAttribute.
func (MeaningAttribute) TableName() string { return "meaning_attributes" }

// PrimaryID implements the Identifiable contract used by the apply layer.
func (a *MeaningAttribute) PrimaryID() uint64 { return a.ID }

// RelatedWord links two headwords (synonym, antonym, see-also). Link rows
// are hard-deleted on approval of a delete request; they carry no history.
type RelatedWord struct {
	ID            uint64    `json:"id"              gorm:"primaryKey;autoIncrement"`
	WordID        uint64    `json:"word_id"         gorm:"not null;index;uniqueIndex:ux_related_words_pair"`
	RelatedWordID uint64    `json:"related_word_id" gorm:"not null;uniqueIndex:ux_related_words_pair"`
	RelationType  *string   `json:"relation_type"   gorm:"type:varchar(32)"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Word Word `json:"-" gorm:"foreignKey:WordID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for RelatedWord.
func (RelatedWord) TableName() string { return "related_words" }

// PrimaryID implements the Identifiable contract used by the apply layer.
func (r *RelatedWord) PrimaryID() uint64 { return r.ID }

// RelatedPhrase links a headword to a phrase entry that contains it
// (e.g. "kitap" → "kitap kurdu").
type RelatedPhrase struct {
	ID              uint64    `json:"id"                gorm:"primaryKey;autoIncrement"`
	WordID          uint64    `json:"word_id"           gorm:"not null;index;uniqueIndex:ux_related_phrases_pair"`
	RelatedPhraseID uint64    `json:"related_phrase_id" gorm:"not null;uniqueIndex:ux_related_phrases_pair"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Word Word `json:"-" gorm:"foreignKey:WordID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for RelatedPhrase.
func (RelatedPhrase) TableName() string { return "related_phrases" }

// PrimaryID implements the Identifiable contract used by the apply layer.
func (r *RelatedPhrase) PrimaryID() uint64 { return r.ID }

// Announcement is an editorial post shown on the site (releases, notices).
type Announcement struct {
	ID          uint64         `json:"id"    gorm:"primaryKey;autoIncrement"`
	Slug        string         `json:"slug"  gorm:"type:varchar(255);not null;uniqueIndex"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Content     string         `json:"content" gorm:"type:text;not null"`
	PublishedAt *time.Time     `json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the database table name for Announcement.
func (Announcement) TableName() string { return "announcements" }

// Feedback is a user-filed product report (bug, feature wish) that other
// users can upvote. Distinct from the request pipeline: feedback never
// mutates dictionary data.
type Feedback struct {
	ID          uint64         `json:"id"          gorm:"primaryKey;autoIncrement"`
	UserID      string         `json:"user_id"     gorm:"type:varchar(64);not null;index"`
	Kind        string         `json:"kind"        gorm:"type:varchar(16);not null;check:kind IN ('bug','feature','other')"`
	Title       string         `json:"title"       gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Status      string         `json:"status"      gorm:"type:varchar(16);not null;default:'open'"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the database table name for Feedback.
func (Feedback) TableName() string { return "feedback" }

// FeedbackVote mirrors RequestVote for product feedback: one row per
// (feedback_id, user_id), toggled on and off.
type FeedbackVote struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	FeedbackID uint64    `json:"feedback_id" gorm:"not null;index;uniqueIndex:ux_feedback_votes_pair"`
	UserID     string    `json:"user_id"     gorm:"type:varchar(64);not null;uniqueIndex:ux_feedback_votes_pair"`
	CreatedAt  time.Time `json:"created_at"`

	Feedback Feedback `json:"-" gorm:"foreignKey:FeedbackID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for FeedbackVote.
func (FeedbackVote) TableName() string { return "feedback_votes" }
