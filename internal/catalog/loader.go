// Package catalog loads the movie dataset from the TMDB CSV exports and
// produces validated records for the recommendation engine.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/pkg/utils"
	"go.uber.org/zap"
)

const topCastCount = 3

// namedEntity is one entry of the JSON-array columns (genres, keywords, cast).
type namedEntity struct {
	Name string `json:"name"`
}

// crewMember is one entry of the crew column.
type crewMember struct {
	Job  string `json:"job"`
	Name string `json:"name"`
}

// creditRow is one parsed row of the credits file.
type creditRow struct {
	movieID int
	cast    string
	crew    string
}

// Loader reads and merges the movies and credits CSV files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a loader. logger may be nil.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load reads both files, joins them on title, and returns one record per
// usable row in movie-file order. Rows with any missing raw field
// (overview, genres, keywords, cast, crew) are dropped, not defaulted.
func (l *Loader) Load(moviesPath, creditsPath string) ([]models.MovieRecord, error) {
	credits, err := l.loadCredits(creditsPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(moviesPath)
	if err != nil {
		return nil, fmt.Errorf("open movies file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read movies header: %w", err)
	}
	col := columnIndex(header)
	for _, name := range []string{"title", "overview", "genres", "keywords"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("movies file missing column %q", name)
		}
	}

	var records []models.MovieRecord
	dropped := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read movies row: %w", err)
		}
		title := field(row, col, "title")
		overview := field(row, col, "overview")
		rawGenres := field(row, col, "genres")
		rawKeywords := field(row, col, "keywords")
		if title == "" || overview == "" || rawGenres == "" || rawKeywords == "" {
			dropped++
			continue
		}
		// A title can match several credit rows; pandas-style inner join
		// keeps every combination.
		for _, credit := range credits[title] {
			rec, ok := l.mergeRow(title, overview, rawGenres, rawKeywords, credit)
			if !ok {
				dropped++
				continue
			}
			records = append(records, rec)
		}
	}

	l.logger.Info("catalog loaded",
		zap.Int("records", len(records)),
		zap.Int("dropped", dropped),
	)
	return records, nil
}

func (l *Loader) mergeRow(title, overview, rawGenres, rawKeywords string, credit creditRow) (models.MovieRecord, bool) {
	if credit.cast == "" || credit.crew == "" {
		return models.MovieRecord{}, false
	}
	genres, err := parseNames(rawGenres, 0)
	if err != nil {
		l.logger.Debug("bad genres column", zap.String("title", title), zap.Error(err))
		return models.MovieRecord{}, false
	}
	keywords, err := parseNames(rawKeywords, 0)
	if err != nil {
		l.logger.Debug("bad keywords column", zap.String("title", title), zap.Error(err))
		return models.MovieRecord{}, false
	}
	cast, err := parseNames(credit.cast, topCastCount)
	if err != nil {
		l.logger.Debug("bad cast column", zap.String("title", title), zap.Error(err))
		return models.MovieRecord{}, false
	}
	director, err := parseDirector(credit.crew)
	if err != nil {
		l.logger.Debug("bad crew column", zap.String("title", title), zap.Error(err))
		return models.MovieRecord{}, false
	}
	return models.MovieRecord{
		ID:       credit.movieID,
		Title:    title,
		Overview: utils.CollapseWhitespace(overview),
		Genres:   genres,
		Keywords: keywords,
		Cast:     cast,
		Director: director,
	}, true
}

func (l *Loader) loadCredits(path string) (map[string][]creditRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open credits file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read credits header: %w", err)
	}
	col := columnIndex(header)
	for _, name := range []string{"movie_id", "title", "cast", "crew"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("credits file missing column %q", name)
		}
	}

	credits := make(map[string][]creditRow)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read credits row: %w", err)
		}
		id, err := strconv.Atoi(field(row, col, "movie_id"))
		if err != nil {
			continue
		}
		title := field(row, col, "title")
		if title == "" {
			continue
		}
		credits[title] = append(credits[title], creditRow{
			movieID: id,
			cast:    field(row, col, "cast"),
			crew:    field(row, col, "crew"),
		})
	}
	return credits, nil
}

// parseNames decodes a JSON array of {"name": ...} objects. A positive limit
// keeps only the first limit entries.
func parseNames(raw string, limit int) ([]string, error) {
	var entities []namedEntity
	if err := json.Unmarshal([]byte(raw), &entities); err != nil {
		return nil, err
	}
	if limit > 0 && len(entities) > limit {
		entities = entities[:limit]
	}
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Name)
	}
	return names, nil
}

// parseDirector returns the first crew member whose job is "Director", or ""
// when the crew lists none.
func parseDirector(raw string) (string, error) {
	var crew []crewMember
	if err := json.Unmarshal([]byte(raw), &crew); err != nil {
		return "", err
	}
	for _, m := range crew {
		if m.Job == "Director" {
			return m.Name, nil
		}
	}
	return "", nil
}

func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	return col
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
