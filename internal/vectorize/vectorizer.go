// Package vectorize fits a bounded term vocabulary over tag documents and
// maps each document to a dense count vector.
package vectorize

import (
	"fmt"
	"sort"
	"unicode"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/hyperjump/osusume/internal/models"
)

// ErrEmptyVocabulary is returned when no usable terms remain after
// tokenization and stop-word removal.
var ErrEmptyVocabulary = fmt.Errorf("vectorize: empty vocabulary")

// Vectorizer fits a vocabulary of at most maxFeatures terms, English
// stop-words excluded. A fitted vocabulary is immutable; Fit fully replaces
// it.
type Vectorizer struct {
	maxFeatures int
	stopWords   analysis.TokenMap
	vocabulary  map[string]int // term -> column
	terms       []string       // column -> term
}

// New creates a vectorizer with the given vocabulary cap.
func New(maxFeatures int) (*Vectorizer, error) {
	if maxFeatures <= 0 {
		return nil, fmt.Errorf("max features must be positive")
	}
	stop := analysis.NewTokenMap()
	if err := stop.LoadBytes(en.EnglishStopWords); err != nil {
		return nil, fmt.Errorf("load stop words: %w", err)
	}
	return &Vectorizer{
		maxFeatures: maxFeatures,
		stopWords:   stop,
	}, nil
}

// Fit builds the vocabulary over all documents and returns one count vector
// per document, in input order. Terms are ranked by corpus frequency
// descending with ties broken by term ascending, so the result is
// reproducible for a fixed corpus. Columns are assigned in term order.
func (v *Vectorizer) Fit(docs []models.TagDocument) ([][]float32, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyVocabulary
	}

	docTerms := make([]map[string]int, len(docs))
	corpus := make(map[string]int)
	for i, doc := range docs {
		counts := make(map[string]int)
		for _, term := range tokenize(doc.Tags) {
			if _, isStop := v.stopWords[term]; isStop {
				continue
			}
			counts[term]++
			corpus[term]++
		}
		docTerms[i] = counts
	}
	if len(corpus) == 0 {
		return nil, ErrEmptyVocabulary
	}

	ranked := make([]string, 0, len(corpus))
	for term := range corpus {
		ranked = append(ranked, term)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if corpus[ranked[i]] != corpus[ranked[j]] {
			return corpus[ranked[i]] > corpus[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > v.maxFeatures {
		ranked = ranked[:v.maxFeatures]
	}
	sort.Strings(ranked)

	v.terms = ranked
	v.vocabulary = make(map[string]int, len(ranked))
	for col, term := range ranked {
		v.vocabulary[term] = col
	}

	vectors := make([][]float32, len(docs))
	for i, counts := range docTerms {
		vec := make([]float32, len(ranked))
		for term, n := range counts {
			if col, ok := v.vocabulary[term]; ok {
				vec[col] = float32(n)
			}
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// VocabularySize returns the number of fitted terms (0 before Fit).
func (v *Vectorizer) VocabularySize() int {
	return len(v.terms)
}

// Terms returns the fitted terms in column order.
func (v *Vectorizer) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// tokenize extracts lower-case alphanumeric word tokens of length >= 2.
func tokenize(text string) []string {
	var tokens []string
	start := -1
	runes := []rune(text)
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= 2 {
			tokens = append(tokens, string(runes[start:i]))
		}
		start = -1
	}
	if start >= 0 && len(runes)-start >= 2 {
		tokens = append(tokens, string(runes[start:]))
	}
	return tokens
}
