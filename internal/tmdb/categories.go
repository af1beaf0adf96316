package tmdb

// categoryFilter is the upstream discover filter for one browse category.
type categoryFilter struct {
	param string
	value string
}

// categoryFilters maps browse categories to discover parameters: three
// original-language filters and sixteen genre-code filters. An unknown
// category gets no extra filter, which leaves a plain popularity sort.
var categoryFilters = map[string]categoryFilter{
	"Hollywood": {"with_original_language", "en"},
	"Bollywood": {"with_original_language", "hi"},
	"K-Drama":   {"with_original_language", "ko"},
	"Action":    {"with_genres", "28"},
	"Comedy":    {"with_genres", "35"},
	"Romance":   {"with_genres", "10749"},
	"Horror":    {"with_genres", "27"},
	"Thriller":  {"with_genres", "53"},
	"Sci-Fi":    {"with_genres", "878"},
	"Animation": {"with_genres", "16"},
	"Drama":     {"with_genres", "18"},
	"Crime":     {"with_genres", "80"},
	"Fantasy":   {"with_genres", "14"},
	"Adventure": {"with_genres", "12"},
	"Family":    {"with_genres", "10751"},
	"Mystery":   {"with_genres", "9648"},
	"War":       {"with_genres", "10752"},
	"Music":     {"with_genres", "10402"},
	"Western":   {"with_genres", "37"},
}

// Categories returns the recognized category identifiers.
func Categories() []string {
	out := make([]string, 0, len(categoryFilters))
	for name := range categoryFilters {
		out = append(out, name)
	}
	return out
}
