// Package services – WordService
//
// The public read path of the dictionary: word detail pages, paginated
// search, and typeahead suggestions. Suggestions come from an in-memory
// index rebuilt from the words table; the service holds the current index
// behind a RWMutex so rebuilds never block readers for long.
package services

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
	"github.com/4Furki4/turkish-dictionary/internal/repo"
	"github.com/4Furki4/turkish-dictionary/internal/search"
)

// WordDetail is the full public view of a headword.
type WordDetail struct {
	Word           domain.Word            `json:"word"`
	RelatedWords   []domain.RelatedWord   `json:"related_words"`
	RelatedPhrases []domain.RelatedPhrase `json:"related_phrases"`
}

// WordPage is a paginated slice of words plus the total row count.
type WordPage struct {
	Items []domain.Word `json:"items"`
	Total int64         `json:"total"`
}

// WordService implements the public dictionary read use-cases.
type WordService struct {
	// DB is the database handle used for all word reads.
	DB *gorm.DB

	mu    sync.RWMutex
	index search.Index
}

// ReloadIndex rebuilds the suggestion index from the live words table.
// Called at startup and after any committed mutation of the words table
// (approved requests, admin CRUD).
func (s *WordService) ReloadIndex(ctx context.Context) error {
	names, err := repo.AllWordNames(ctx, s.DB)
	if err != nil {
		return err
	}
	ix := search.Build(names)

	s.mu.Lock()
	s.index = ix
	s.mu.Unlock()
	return nil
}

// Suggest returns up to k ranked name completions for a partial query.
// Before the first successful ReloadIndex it returns an empty slice.
func (s *WordService) Suggest(query string, k int) []search.Result {
	s.mu.RLock()
	ix := s.index
	s.mu.RUnlock()

	if ix == nil {
		return []search.Result{}
	}
	return ix.TopK(query, k)
}

// Get returns the detail view for a headword by its name, normalized with
// Turkish casing rules first so URL casing does not matter.
func (s *WordService) Get(ctx context.Context, name string) (*WordDetail, error) {
	w, err := repo.GetWordByName(ctx, s.DB, NormalizeTurkish(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, err
	}

	related, err := repo.ListRelatedWords(ctx, s.DB, w.ID)
	if err != nil {
		return nil, err
	}
	phrases, err := repo.ListRelatedPhrases(ctx, s.DB, w.ID)
	if err != nil {
		return nil, err
	}
	return &WordDetail{Word: *w, RelatedWords: related, RelatedPhrases: phrases}, nil
}

// Search returns a page of words whose names contain the normalized term;
// an empty term lists all words alphabetically.
func (s *WordService) Search(ctx context.Context, term string, page, limit int) (*WordPage, error) {
	offset, lim := clampPage(page, limit)
	term = NormalizeTurkish(term)

	total, err := repo.CountWords(ctx, s.DB, term)
	if err != nil {
		return nil, err
	}
	items, err := repo.ListWordsPage(ctx, s.DB, term, offset, lim)
	if err != nil {
		return nil, err
	}
	return &WordPage{Items: items, Total: total}, nil
}
