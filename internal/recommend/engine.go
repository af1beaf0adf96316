// Package recommend builds the content-based recommendation engine and
// answers top-N similar-title queries.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/internal/similarity"
	"github.com/hyperjump/osusume/internal/tags"
	"github.com/hyperjump/osusume/internal/vectorize"
	"go.uber.org/zap"
)

// ErrEmptyCorpus is returned when no usable records remain after validation;
// the engine cannot be constructed.
var ErrEmptyCorpus = fmt.Errorf("recommend: empty corpus")

// Engine holds one catalog load: the records, the fitted vocabulary size,
// and the precomputed similarity matrix. Everything is immutable after
// Build, so queries are safe for unlimited concurrent callers. A catalog
// reload builds a fresh engine; the old one is discarded whole.
type Engine struct {
	records   []models.MovieRecord
	matrix    *similarity.Matrix
	titleRows map[string]int // lower-cased title -> first row index
	vocabSize int
	topN      int
	logger    *zap.Logger
}

// Build runs the full batch pipeline (tag documents, vocabulary fit,
// pairwise matrix) over the records. It blocks until complete and fails
// when the corpus is empty; there is no partial engine.
func Build(records []models.MovieRecord, maxFeatures, topN int, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}
	if topN <= 0 {
		topN = 5
	}

	docs := tags.BuildAll(records)
	v, err := vectorize.New(maxFeatures)
	if err != nil {
		return nil, fmt.Errorf("create vectorizer: %w", err)
	}
	vectors, err := v.Fit(docs)
	if err != nil {
		return nil, fmt.Errorf("fit vocabulary: %w", err)
	}
	matrix := similarity.Build(vectors)

	titleRows := make(map[string]int, len(records))
	for i, rec := range records {
		key := strings.ToLower(rec.Title)
		// first occurrence wins for duplicate titles
		if _, seen := titleRows[key]; !seen {
			titleRows[key] = i
		}
	}

	logger.Info("recommendation engine built",
		zap.Int("records", len(records)),
		zap.Int("vocabulary", v.VocabularySize()),
	)
	return &Engine{
		records:   records,
		matrix:    matrix,
		titleRows: titleRows,
		vocabSize: v.VocabularySize(),
		topN:      topN,
		logger:    logger,
	}, nil
}

// Recommend returns the top-N most similar titles to the given one, best
// first. The match is case-insensitive and exact; an unknown title returns
// an empty result, not an error. The queried row itself is never included.
func (e *Engine) Recommend(title string) ([]models.Recommendation, error) {
	row, ok := e.titleRows[strings.ToLower(title)]
	if !ok {
		e.logger.Debug("recommend: unknown title", zap.String("title", title))
		return nil, nil
	}
	scores, err := e.matrix.Row(row)
	if err != nil {
		return nil, fmt.Errorf("matrix row for %q: %w", title, err)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	// score descending, ties by original row index ascending
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	results := make([]models.Recommendation, 0, e.topN)
	for _, i := range order {
		if i == row {
			continue
		}
		results = append(results, models.Recommendation{
			ID:    e.records[i].ID,
			Title: e.records[i].Title,
			Score: scores[i],
		})
		if len(results) == e.topN {
			break
		}
	}
	return results, nil
}

// SearchTitles returns titles containing the query, case-insensitively, in
// catalog order. An empty query returns all titles.
func (e *Engine) SearchTitles(query string) []string {
	q := strings.ToLower(query)
	var out []string
	for _, rec := range e.records {
		if q == "" || strings.Contains(strings.ToLower(rec.Title), q) {
			out = append(out, rec.Title)
		}
	}
	return out
}

// Size returns the number of catalog records.
func (e *Engine) Size() int {
	return len(e.records)
}

// VocabularySize returns the number of fitted vocabulary terms.
func (e *Engine) VocabularySize() int {
	return e.vocabSize
}
