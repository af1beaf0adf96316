// Package integration exercises the full dataset-to-recommendation pipeline
// (CSV loading, tag building, vectorization, similarity, ranking).
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/osusume/internal/catalog"
	"github.com/hyperjump/osusume/internal/recommend"
)

const moviesCSV = `budget,genres,id,keywords,overview,title
1,"[{""id"": 878, ""name"": ""Science Fiction""}, {""id"": 28, ""name"": ""Action""}]",1,"[{""id"": 1, ""name"": ""space battle""}, {""id"": 2, ""name"": ""alien invasion""}]","A starship crew defends a distant colony from an alien armada.",Star Quest
2,"[{""id"": 878, ""name"": ""Science Fiction""}, {""id"": 28, ""name"": ""Action""}]",2,"[{""id"": 1, ""name"": ""space battle""}, {""id"": 2, ""name"": ""alien invasion""}]","A starship crew raids alien outposts across the galaxy.",Galaxy Raiders
3,"[{""id"": 878, ""name"": ""Science Fiction""}]",3,"[{""id"": 3, ""name"": ""wormhole""}]","A lone pilot crosses the void between stars.",Void Runner
4,"[{""id"": 10749, ""name"": ""Romance""}]",4,"[{""id"": 4, ""name"": ""love letters""}]","Two strangers exchange letters across Paris.",Paris Hearts
5,"[{""id"": 10749, ""name"": ""Romance""}]",5,"[{""id"": 4, ""name"": ""love letters""}]","An autumn of letters rekindles an old romance.",Autumn Letters
6,"[{""id"": 35, ""name"": ""Comedy""}]",6,"[{""id"": 5, ""name"": ""workplace""}]","An office descends into banana-fueled chaos.",Banana Office
`

const creditsCSV = `movie_id,title,cast,crew
1,Star Quest,"[{""name"": ""Rex Halley""}, {""name"": ""Mira Sol""}]","[{""job"": ""Director"", ""name"": ""Nova Prime""}]"
2,Galaxy Raiders,"[{""name"": ""Rex Halley""}, {""name"": ""Mira Sol""}]","[{""job"": ""Director"", ""name"": ""Nova Prime""}]"
3,Void Runner,"[{""name"": ""Juno Vale""}]","[{""job"": ""Director"", ""name"": ""Kai Orbit""}]"
4,Paris Hearts,"[{""name"": ""Claire Fontaine""}]","[{""job"": ""Director"", ""name"": ""Henri Blanc""}]"
5,Autumn Letters,"[{""name"": ""Claire Fontaine""}]","[{""job"": ""Director"", ""name"": ""Henri Blanc""}]"
6,Banana Office,"[{""name"": ""Tom Chuckle""}]","[{""job"": ""Director"", ""name"": ""Pat Grin""}]"
`

func writeDataset(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	movies := filepath.Join(dir, "movies.csv")
	credits := filepath.Join(dir, "credits.csv")
	if err := os.WriteFile(movies, []byte(moviesCSV), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(credits, []byte(creditsCSV), 0600); err != nil {
		t.Fatal(err)
	}
	return movies, credits
}

func buildEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	movies, credits := writeDataset(t)
	records, err := catalog.NewLoader(nil).Load(movies, credits)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 6 {
		t.Fatalf("expected 6 records, got %d", len(records))
	}
	engine, err := recommend.Build(records, 5000, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	return engine
}

func TestIntegration_RecommendSimilarCluster(t *testing.T) {
	engine := buildEngine(t)

	recs, err := engine.Recommend("star quest")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) == 0 {
		t.Fatal("no recommendations returned")
	}
	if len(recs) > 5 {
		t.Fatalf("got %d recommendations, want at most 5", len(recs))
	}

	// Galaxy Raiders shares genres, keywords, cast and director with the
	// query; it must outrank everything else.
	if recs[0].Title != "Galaxy Raiders" {
		t.Errorf("top recommendation = %q, want Galaxy Raiders (all: %+v)", recs[0].Title, recs)
	}
	for _, r := range recs {
		if r.ID == 1 {
			t.Errorf("recommendations include the queried movie: %+v", r)
		}
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Errorf("scores not descending at %d: %+v", i, recs)
		}
	}
}

func TestIntegration_RecommendCrossClusterRanksLow(t *testing.T) {
	engine := buildEngine(t)

	recs, err := engine.Recommend("Paris Hearts")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) == 0 {
		t.Fatal("no recommendations returned")
	}
	if recs[0].Title != "Autumn Letters" {
		t.Errorf("top recommendation = %q, want Autumn Letters", recs[0].Title)
	}
}

func TestIntegration_UnknownTitle(t *testing.T) {
	engine := buildEngine(t)

	recs, err := engine.Recommend("Nonexistent Movie")
	if err != nil {
		t.Fatal(err)
	}
	if recs != nil {
		t.Errorf("expected nil for unknown title, got %+v", recs)
	}
}

func TestIntegration_SearchTitles(t *testing.T) {
	engine := buildEngine(t)

	titles := engine.SearchTitles("letters")
	if len(titles) != 1 || titles[0] != "Autumn Letters" {
		t.Errorf("SearchTitles(letters) = %v", titles)
	}
}
