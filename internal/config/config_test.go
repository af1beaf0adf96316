package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
tmdb:
  api_key: "file-key"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.TMDB.BaseURL == "" {
		t.Error("base_url should be defaulted")
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_envOverridesAPIKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
tmdb:
  api_key: "file-key"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TMDB_API_KEY", "env-key")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TMDB.APIKey != "env-key" {
		t.Errorf("api key = %s, want env-key", cfg.TMDB.APIKey)
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
data:
  movies_csv: "./data/movies.csv"
  credits_csv: "./data/credits.csv"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	wantMovies := filepath.Join(dir, "data", "movies.csv")
	if cfg.Data.MoviesCSV != wantMovies {
		t.Errorf("movies_csv = %s, want %s", cfg.Data.MoviesCSV, wantMovies)
	}
	wantCredits := filepath.Join(dir, "data", "credits.csv")
	if cfg.Data.CreditsCSV != wantCredits {
		t.Errorf("credits_csv = %s, want %s", cfg.Data.CreditsCSV, wantCredits)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("default base_url: got %s", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.TimeoutSeconds != 10 {
		t.Errorf("default timeout: got %d", cfg.TMDB.TimeoutSeconds)
	}
	if cfg.TMDB.PageSize != 15 {
		t.Errorf("default page size: got %d", cfg.TMDB.PageSize)
	}
	if cfg.Cache.TTLSeconds != 3600 {
		t.Errorf("default cache ttl: got %d", cfg.Cache.TTLSeconds)
	}
	if cfg.Prefetch.Workers != 6 {
		t.Errorf("default prefetch workers: got %d", cfg.Prefetch.Workers)
	}
	if cfg.Engine.MaxFeatures != 5000 {
		t.Errorf("default max features: got %d", cfg.Engine.MaxFeatures)
	}
	if cfg.Engine.TopN != 5 {
		t.Errorf("default top n: got %d", cfg.Engine.TopN)
	}
}
