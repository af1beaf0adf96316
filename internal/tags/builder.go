// Package tags builds the weighted tag document for each catalog record.
package tags

import (
	"strings"

	"github.com/blevesearch/go-porterstemmer"
	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/pkg/utils"
)

// Repetition weights per field group. Genres and keywords carry the most
// signal, cast and director less, overview words the least.
const (
	overviewWeight = 1
	genresWeight   = 3
	keywordsWeight = 3
	castWeight     = 2
	directorWeight = 2
)

// BuildDocument produces the tag document for one record: field tokens are
// repeated by weight, multi-word names are collapsed to single tokens, and
// the joined string is lower-cased and Porter-stemmed word by word.
func BuildDocument(rec *models.MovieRecord) models.TagDocument {
	var tokens []string

	overview := strings.Fields(rec.Overview)
	for i := 0; i < overviewWeight; i++ {
		tokens = append(tokens, overview...)
	}
	for i := 0; i < genresWeight; i++ {
		tokens = appendStripped(tokens, rec.Genres)
	}
	for i := 0; i < keywordsWeight; i++ {
		tokens = appendStripped(tokens, rec.Keywords)
	}
	for i := 0; i < castWeight; i++ {
		tokens = appendStripped(tokens, rec.Cast)
	}
	if rec.Director != "" {
		director := utils.StripSpaces(rec.Director)
		for i := 0; i < directorWeight; i++ {
			tokens = append(tokens, director)
		}
	}

	joined := strings.ToLower(strings.Join(tokens, " "))
	return models.TagDocument{MovieID: rec.ID, Tags: stem(joined)}
}

// BuildAll produces one tag document per record, in record order.
func BuildAll(records []models.MovieRecord) []models.TagDocument {
	docs := make([]models.TagDocument, len(records))
	for i := range records {
		docs[i] = BuildDocument(&records[i])
	}
	return docs
}

func appendStripped(tokens []string, names []string) []string {
	for _, n := range names {
		tokens = append(tokens, utils.StripSpaces(n))
	}
	return tokens
}

// stem applies Porter stemming to each whitespace-separated word. Word order
// is preserved.
func stem(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = porterstemmer.StemString(w)
	}
	return strings.Join(words, " ")
}
