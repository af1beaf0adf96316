package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Data.MoviesCSV == "" {
		cfg.Data.MoviesCSV = "./data/tmdb_5000_movies.csv"
	}
	if cfg.Data.CreditsCSV == "" {
		cfg.Data.CreditsCSV = "./data/tmdb_5000_credits.csv"
	}
	if cfg.TMDB.BaseURL == "" {
		cfg.TMDB.BaseURL = "https://api.themoviedb.org/3"
	}
	if cfg.TMDB.ImageBaseURL == "" {
		cfg.TMDB.ImageBaseURL = "https://image.tmdb.org/t/p/w500"
	}
	if cfg.TMDB.VideoWatchURL == "" {
		cfg.TMDB.VideoWatchURL = "https://www.youtube.com/watch?v="
	}
	if cfg.TMDB.TimeoutSeconds == 0 {
		cfg.TMDB.TimeoutSeconds = 10
	}
	if cfg.TMDB.RequestsPerSecond == 0 {
		cfg.TMDB.RequestsPerSecond = 4
	}
	if cfg.TMDB.PageSize == 0 {
		cfg.TMDB.PageSize = 15
	}
	if cfg.TMDB.TrendingCount == 0 {
		cfg.TMDB.TrendingCount = 5
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 3600
	}
	if cfg.Prefetch.Workers == 0 {
		cfg.Prefetch.Workers = 6
	}
	if cfg.Engine.MaxFeatures == 0 {
		cfg.Engine.MaxFeatures = 5000
	}
	if cfg.Engine.TopN == 0 {
		cfg.Engine.TopN = 5
	}
}
