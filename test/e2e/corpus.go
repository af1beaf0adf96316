// Package e2e drives the full HTTP API over a generated catalog and a stub
// metadata backend.
package e2e

import (
	"fmt"

	"github.com/hyperjump/osusume/internal/models"
)

// theme is a cluster of movies that share genres, keywords and crew. Movies
// within a theme should recommend each other before anything cross-theme.
type theme struct {
	name     string
	genres   []string
	keywords []string
	cast     []string
	director string
	overview string
}

var themes = []theme{
	{
		name:     "space",
		genres:   []string{"Science Fiction", "Action"},
		keywords: []string{"space battle", "alien invasion"},
		cast:     []string{"Rex Halley", "Mira Sol", "Juno Vale"},
		director: "Nova Prime",
		overview: "A starship crew fights across the outer colonies.",
	},
	{
		name:     "romance",
		genres:   []string{"Romance", "Drama"},
		keywords: []string{"love letters", "paris"},
		cast:     []string{"Claire Fontaine", "Henri Blanc", "Amelie Roux"},
		director: "Louise Marchand",
		overview: "Two strangers fall in love one rainy autumn.",
	},
	{
		name:     "heist",
		genres:   []string{"Crime", "Thriller"},
		keywords: []string{"bank robbery", "double cross"},
		cast:     []string{"Vince Carlo", "Nina Drake", "Sal Moretti"},
		director: "Marco Stil",
		overview: "A crew plans the perfect vault job and betrays itself.",
	},
	{
		name:     "animation",
		genres:   []string{"Animation", "Family"},
		keywords: []string{"talking animals", "friendship"},
		cast:     []string{"Pip Squeak", "Dot Marble", "Gus Bristle"},
		director: "Wren Doodle",
		overview: "A band of forest friends saves their valley.",
	},
}

// QueryTestCase defines a recommend query and the title(s) that must appear
// in its results. At least one of ExpectedTitles must be present.
type QueryTestCase struct {
	Query          string
	ExpectedTitles []string
	Description    string
}

// Corpus holds generated movie records and recommend test cases.
type Corpus struct {
	Records   []models.MovieRecord
	TestCases []QueryTestCase
}

// BuildCorpus generates perTheme movies for each theme. Titles follow the
// pattern "<Theme> Movie <n>" so test cases can target specific entries.
func BuildCorpus(perTheme int) *Corpus {
	var records []models.MovieRecord
	id := 100
	for _, th := range themes {
		for n := 1; n <= perTheme; n++ {
			records = append(records, models.MovieRecord{
				ID:       id,
				Title:    themeTitle(th.name, n),
				Overview: th.overview,
				Genres:   th.genres,
				Keywords: th.keywords,
				Cast:     th.cast,
				Director: th.director,
			})
			id++
		}
	}

	var cases []QueryTestCase
	for _, th := range themes {
		cases = append(cases, QueryTestCase{
			Query:          themeTitle(th.name, 1),
			ExpectedTitles: []string{themeTitle(th.name, 2), themeTitle(th.name, 3)},
			Description:    fmt.Sprintf("%s movies recommend their own theme", th.name),
		})
	}
	return &Corpus{Records: records, TestCases: cases}
}

func themeTitle(name string, n int) string {
	return fmt.Sprintf("%s movie %d", title(name), n)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
