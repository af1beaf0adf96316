// Package models defines core data structures for catalog records, queries, and results.
package models

// MovieRecord is one usable row of the loaded catalog. Records are created
// once per catalog load and are immutable afterward.
type MovieRecord struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Overview string   `json:"overview"`
	Genres   []string `json:"genres"`
	Keywords []string `json:"keywords"`
	Cast     []string `json:"cast"`     // first 3 billed actors
	Director string   `json:"director"` // empty when the crew lists no director
}

// TagDocument is the weighted, stemmed token string built from one record.
type TagDocument struct {
	MovieID int    `json:"movie_id"`
	Tags    string `json:"tags"`
}

// Recommendation is a single similar-title hit.
type Recommendation struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// CatalogItem is one externally-sourced list entry (trending, category page,
// or an enriched recommendation).
type CatalogItem struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	PosterURL  string `json:"poster_url,omitempty"`
	TrailerURL string `json:"trailer_url,omitempty"`
}

// MovieDetails holds the detail fields fetched for a single title.
type MovieDetails struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage float64  `json:"vote_average"`
	Genres      []string `json:"genres"`
	Overview    string   `json:"overview"`
	PosterURL   string   `json:"poster_url,omitempty"`
}

// Video is one upstream video entry for a title.
type Video struct {
	Site string `json:"site"`
	Type string `json:"type"`
	Key  string `json:"key"`
}
