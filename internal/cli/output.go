// Package cli provides CLI output utilities for Osusume.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch s {
	case "json":
		return OutputJSON, nil
	case "text", "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteItems writes a numbered catalog list to w in the given format.
// In text mode the header line is printed first; poster and trailer URLs
// appear indented under each title when present.
func WriteItems(w io.Writer, header string, items []models.CatalogItem, format OutputFormat) error {
	if format == OutputJSON {
		return WriteJSON(w, map[string]interface{}{"results": items})
	}
	if header != "" {
		fmt.Fprintln(w, header)
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "  (no results)")
		return nil
	}
	for i, item := range items {
		fmt.Fprintf(w, "%2d. %s (id %d)\n", i+1, item.Title, item.ID)
		if item.PosterURL != "" {
			fmt.Fprintf(w, "    poster:  %s\n", item.PosterURL)
		}
		if item.TrailerURL != "" {
			fmt.Fprintf(w, "    trailer: %s\n", item.TrailerURL)
		}
	}
	return nil
}

// WriteDetails writes one movie's details to w in the given format.
func WriteDetails(w io.Writer, d *models.MovieDetails, format OutputFormat) error {
	if format == OutputJSON {
		return WriteJSON(w, d)
	}
	fmt.Fprintf(w, "%s\n", d.Title)
	if d.ReleaseDate != "" {
		fmt.Fprintf(w, "released:  %s\n", d.ReleaseDate)
	}
	if d.VoteAverage > 0 {
		fmt.Fprintf(w, "rating:    %.1f\n", d.VoteAverage)
	}
	if len(d.Genres) > 0 {
		fmt.Fprint(w, "genres:    ")
		for i, g := range d.Genres {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprint(w, g)
		}
		fmt.Fprintln(w)
	}
	if d.Overview != "" {
		fmt.Fprintf(w, "\n%s\n", utils.Truncate(d.Overview, 400))
	}
	if d.PosterURL != "" {
		fmt.Fprintf(w, "\nposter: %s\n", d.PosterURL)
	}
	return nil
}
