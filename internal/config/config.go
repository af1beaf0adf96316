// Package config provides configuration loading and structs for the Osusume server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	TMDB     TMDBConfig     `yaml:"tmdb"`
	Cache    CacheConfig    `yaml:"cache"`
	Prefetch PrefetchConfig `yaml:"prefetch"`
	Engine   EngineConfig   `yaml:"engine"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DataConfig holds paths for the catalog dataset files.
type DataConfig struct {
	MoviesCSV  string `yaml:"movies_csv"`
	CreditsCSV string `yaml:"credits_csv"`
}

// TMDBConfig holds upstream metadata service settings. The API key may be
// set here or via the TMDB_API_KEY environment variable (env wins).
type TMDBConfig struct {
	APIKey            string  `yaml:"api_key"`
	BaseURL           string  `yaml:"base_url"`
	ImageBaseURL      string  `yaml:"image_base_url"`
	VideoWatchURL     string  `yaml:"video_watch_url"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	PageSize          int     `yaml:"page_size"`
	TrendingCount     int     `yaml:"trending_count"`
}

// CacheConfig holds metadata cache settings.
type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

// PrefetchConfig holds trailer prefetch pool settings.
type PrefetchConfig struct {
	Workers int `yaml:"workers"`
}

// EngineConfig holds recommendation engine settings.
type EngineConfig struct {
	MaxFeatures int `yaml:"max_features"`
	TopN        int `yaml:"top_n"`
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. The TMDB_API_KEY environment variable overrides the file value.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if key := os.Getenv("TMDB_API_KEY"); key != "" {
		cfg.TMDB.APIKey = key
	}

	configDir := filepath.Dir(path)
	cfg.Data.MoviesCSV = expandPath(cfg.Data.MoviesCSV, configDir)
	cfg.Data.CreditsCSV = expandPath(cfg.Data.CreditsCSV, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
