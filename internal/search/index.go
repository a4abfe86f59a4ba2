// Package search provides a simple, deterministic, concurrency-safe
// in-memory suggestion index over dictionary headwords. It is intentionally
// small, but engineered with production-grade ergonomics:
//
//   - No logging in the library (callers decide how/what to log)
//   - Clear, documented types and functional options (Option pattern)
//   - Turkish-aware case folding (dotted/dotless I handled correctly)
//   - Immutable, read-only index after construction (safe for concurrent use)
//   - Deterministic scoring and sorting (stable order for ties)
//   - Sensible defaults (minimum score cutoff, result caps)
//
// Scoring uses Jaccard similarity between the query's padded rune-bigram
// set and each headword's bigram set: score = |Q ∩ W| / |Q ∪ W|. Headwords
// that start with the query receive a fixed prefix bonus so that completions
// rank above mere near-misses.
package search

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Result is a ranked suggestion with its similarity score.
type Result struct {
	Name  string
	Score float64
}

// Index is the minimal interface implemented by all suggestion indices.
type Index interface {
	TopK(query string, k int) []Result
}

// prefixBonus is added to the Jaccard score when the headword starts with
// the normalized query; the sum is clamped to 1.
const prefixBonus = 0.3

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	minScore   float64
	maxResults int
}

func defaultConfig() config {
	return config{
		minScore:   0.15,
		maxResults: 50,
	}
}

// WithMinScore sets the score below which candidates are dropped entirely.
func WithMinScore(s float64) Option {
	return func(c *config) {
		if s >= 0 && s <= 1 {
			c.minScore = s
		}
	}
}

// WithMaxResults caps how many results TopK may return regardless of k.
func WithMaxResults(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// ----------------------------------------------------------------------------
// Implementation

var foldTurkish = cases.Lower(language.Turkish)

type entry struct {
	name  string
	grams map[string]struct{}
}

type wordIndex struct {
	cfg     config
	entries []entry
}

// Build constructs an immutable suggestion index from headword names.
// Duplicate names are collapsed; order of input does not affect results.
// The returned index is safe for concurrent readers.
func Build(names []string, opts ...Option) Index {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	seen := make(map[string]struct{}, len(names))
	entries := make([]entry, 0, len(names))
	for _, raw := range names {
		name := foldTurkish.String(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		entries = append(entries, entry{name: name, grams: bigrams(name)})
	}

	// Deterministic base order so ties break the same way on every build.
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	return &wordIndex{cfg: cfg, entries: entries}
}

// TopK returns the best k suggestions for query, highest score first, name
// ascending on ties. An empty or unmatched query yields an empty slice,
// never nil-panics.
func (ix *wordIndex) TopK(query string, k int) []Result {
	q := foldTurkish.String(strings.TrimSpace(query))
	if q == "" || k <= 0 {
		return []Result{}
	}
	qGrams := bigrams(q)

	results := make([]Result, 0, 16)
	for _, e := range ix.entries {
		score := jaccard(qGrams, e.grams)
		if strings.HasPrefix(e.name, q) {
			score += prefixBonus
			if score > 1 {
				score = 1
			}
		}
		if score < ix.cfg.minScore {
			continue
		}
		results = append(results, Result{Name: e.name, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Name < results[j].Name
	})

	if k > ix.cfg.maxResults {
		k = ix.cfg.maxResults
	}
	if len(results) > k {
		results = results[:k]
	}
	return results
}

// bigrams returns the set of rune bigrams of s padded with spaces, so
// single-rune inputs still produce usable grams and word boundaries count.
func bigrams(s string) map[string]struct{} {
	runes := []rune(" " + s + " ")
	out := make(map[string]struct{}, len(runes))
	for i := 0; i+1 < len(runes); i++ {
		out[string(runes[i:i+2])] = struct{}{}
	}
	return out
}

// jaccard computes |a ∩ b| / |a ∪ b| for two gram sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for g := range small {
		if _, ok := large[g]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
