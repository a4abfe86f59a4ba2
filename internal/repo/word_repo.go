// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read-path repository functions for the
// public dictionary surface: word lookup, search, and listing.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

// GetWordByName fetches a headword (with meanings, ordered) by its
// normalized name, or ErrNotFound. Homographs share a name; the oldest
// entry wins, matching the public word page behavior.
func GetWordByName(ctx context.Context, db *gorm.DB, name string) (*domain.Word, error) {
	var w domain.Word
	err := db.WithContext(ctx).
		Preload("Meanings", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Where("name = ?", name).
		Order("id ASC").
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// GetWordByID fetches a headword by primary key, or ErrNotFound.
func GetWordByID(ctx context.Context, db *gorm.DB, id uint64) (*domain.Word, error) {
	var w domain.Word
	err := db.WithContext(ctx).
		Preload("Meanings", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// CountWords returns the total number of live words, optionally restricted
// to names containing the (already normalized) search term.
func CountWords(ctx context.Context, db *gorm.DB, term string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Word{})
	if term != "" {
		q = q.Where("name LIKE ?", "%"+term+"%")
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// ListWordsPage returns a page of words ordered by name then ID, optionally
// filtered by a normalized substring term.
func ListWordsPage(ctx context.Context, db *gorm.DB, term string, offset, limit int) ([]domain.Word, error) {
	q := db.WithContext(ctx).Model(&domain.Word{})
	if term != "" {
		q = q.Where("name LIKE ?", "%"+term+"%")
	}
	var out []domain.Word
	err := q.Order("name ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// AllWordNames returns every live word name, for (re)building the in-memory
// suggestion index.
func AllWordNames(ctx context.Context, db *gorm.DB) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).Model(&domain.Word{}).
		Order("id ASC").
		Pluck("name", &names).Error
	return names, err
}

// ListRelatedWords returns the outgoing relation rows for a word.
func ListRelatedWords(ctx context.Context, db *gorm.DB, wordID uint64) ([]domain.RelatedWord, error) {
	var out []domain.RelatedWord
	err := db.WithContext(ctx).
		Where("word_id = ?", wordID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// ListRelatedPhrases returns the phrase links for a word.
func ListRelatedPhrases(ctx context.Context, db *gorm.DB, wordID uint64) ([]domain.RelatedPhrase, error) {
	var out []domain.RelatedPhrase
	err := db.WithContext(ctx).
		Where("word_id = ?", wordID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
