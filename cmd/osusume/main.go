// Package main is the Osusume CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/osusume/internal/catalog"
	"github.com/hyperjump/osusume/internal/cli"
	"github.com/hyperjump/osusume/internal/config"
	"github.com/hyperjump/osusume/internal/metacache"
	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/internal/prefetch"
	"github.com/hyperjump/osusume/internal/recommend"
	"github.com/hyperjump/osusume/internal/server"
	"github.com/hyperjump/osusume/internal/tmdb"
	"github.com/hyperjump/osusume/internal/watcher"
	"github.com/hyperjump/osusume/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/osusume/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "osusume server" from the project dir uses the project's config (including debug).
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "recommend":
		runRecommend()
	case "trending":
		runTrending()
	case "category":
		runCategory()
	case "movie":
		runMovie()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("osusume version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// buildEngine loads the two dataset files and builds the recommendation engine.
func buildEngine(cfg *config.Config, logger *zap.Logger) (*recommend.Engine, error) {
	loader := catalog.NewLoader(utils.ComponentLogger(logger, "catalog"))
	records, err := loader.Load(cfg.Data.MoviesCSV, cfg.Data.CreditsCSV)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	engine, err := recommend.Build(records, cfg.Engine.MaxFeatures, cfg.Engine.TopN, utils.ComponentLogger(logger, "engine"))
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	return engine, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (dataset reloads, cache fills, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build recommendation engine", zap.Error(err))
	}
	engines := recommend.NewHolder(engine)
	logger.Info("recommendation engine ready",
		zap.Int("catalog_size", engine.Size()),
		zap.Int("vocabulary_size", engine.VocabularySize()),
	)

	client := tmdb.NewClient(&cfg.TMDB, utils.ComponentLogger(logger, "tmdb"))
	cache := metacache.NewService(client, time.Duration(cfg.Cache.TTLSeconds)*time.Second, utils.ComponentLogger(logger, "metacache"))
	prefetcher := prefetch.New(cfg.Prefetch.Workers, cache.GetTrailer)
	defer prefetcher.Close()

	watchOpts := []watcher.WatcherOption{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(utils.ComponentLogger(logger, "watcher")))
	}
	watchSvc := watcher.NewWatcher(
		[]string{cfg.Data.MoviesCSV, cfg.Data.CreditsCSV},
		func() {
			rebuilt, buildErr := buildEngine(cfg, logger)
			if buildErr != nil {
				logger.Warn("dataset reload failed, keeping previous engine", zap.Error(buildErr))
				return
			}
			engines.Swap(rebuilt)
			logger.Info("dataset reloaded",
				zap.Int("catalog_size", rebuilt.Size()),
				zap.Int("vocabulary_size", rebuilt.VocabularySize()),
			)
		},
		watchOpts...,
	)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := watchSvc.Start(watchCtx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	defer watchSvc.Stop()

	srv := server.NewServer(engines, cache, prefetcher, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildQueryTitle joins all positional args with spaces so multi-word titles
// work the same with or without shell quoting (e.g. "the matrix" vs the matrix).
func buildQueryTitle(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// recommendArgsReorder moves any flags (and their values) that appear after the
// title to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func recommendArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runRecommend() {
	args := recommendArgsReorder(os.Args[2:])
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: osusume recommend [flags] <title>\n\n")
		fmt.Fprintf(fs.Output(), "Title is all remaining arguments joined by spaces. Matching is case-insensitive and exact.\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	title := buildQueryTitle(fs.Args())
	if title == "" {
		fs.Usage()
		os.Exit(1)
	}
	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var response struct {
		Query   string               `json:"query"`
		Results []models.CatalogItem `json:"results"`
	}
	if err := getJSON(*serverURL+"/api/v1/recommend?title="+url.QueryEscape(title), &response); err != nil {
		fmt.Fprintf(os.Stderr, "Recommend failed: %v\n", err)
		os.Exit(1)
	}

	if format == cli.OutputText && len(response.Results) == 0 {
		fmt.Printf("No recommendations for %q (title not in catalog?)\n", title)
		return
	}
	header := fmt.Sprintf("Because you watched %s:", title)
	if err := cli.WriteItems(os.Stdout, header, response.Results, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runTrending() {
	fs := flag.NewFlagSet("trending", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var response struct {
		Results []models.CatalogItem `json:"results"`
	}
	if err := getJSON(*serverURL+"/api/v1/trending", &response); err != nil {
		fmt.Fprintf(os.Stderr, "Trending failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteItems(os.Stdout, "Trending this week:", response.Results, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runCategory() {
	args := recommendArgsReorder(os.Args[2:])
	fs := flag.NewFlagSet("category", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	page := fs.Int("page", 1, "page number")
	outputFormat := fs.String("output", "text", "output format: text or json")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: osusume category [flags] <name>\n\n")
		fmt.Fprintf(fs.Output(), "Use \"osusume category list\" to see the available category names.\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	name := fs.Arg(0)
	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if name == "list" {
		var response struct {
			Categories []string `json:"categories"`
		}
		if err := getJSON(*serverURL+"/api/v1/categories", &response); err != nil {
			fmt.Fprintf(os.Stderr, "Categories failed: %v\n", err)
			os.Exit(1)
		}
		if format == cli.OutputJSON {
			_ = cli.WriteJSON(os.Stdout, response)
			return
		}
		for _, c := range response.Categories {
			fmt.Println(c)
		}
		return
	}

	var response struct {
		Category string               `json:"category"`
		Page     int                  `json:"page"`
		Results  []models.CatalogItem `json:"results"`
	}
	endpoint := *serverURL + "/api/v1/category/" + url.PathEscape(name) + "?page=" + strconv.Itoa(*page)
	if err := getJSON(endpoint, &response); err != nil {
		fmt.Fprintf(os.Stderr, "Category failed: %v\n", err)
		os.Exit(1)
	}
	header := fmt.Sprintf("%s (page %d):", response.Category, response.Page)
	if err := cli.WriteItems(os.Stdout, header, response.Results, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runMovie() {
	args := recommendArgsReorder(os.Args[2:])
	fs := flag.NewFlagSet("movie", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	trailer := fs.Bool("trailer", false, "print the trailer URL instead of details")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Println("Usage: osusume movie [flags] <tmdb-id>")
		os.Exit(1)
	}
	id, err := strconv.Atoi(fs.Arg(0))
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "Invalid movie id %q\n", fs.Arg(0))
		os.Exit(1)
	}
	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *trailer {
		var response struct {
			TrailerURL string `json:"trailer_url"`
		}
		if err := getJSON(*serverURL+"/api/v1/movies/"+strconv.Itoa(id)+"/trailer", &response); err != nil {
			fmt.Fprintf(os.Stderr, "Trailer failed: %v\n", err)
			os.Exit(1)
		}
		if format == cli.OutputJSON {
			_ = cli.WriteJSON(os.Stdout, response)
			return
		}
		fmt.Println(response.TrailerURL)
		return
	}

	var details models.MovieDetails
	if err := getJSON(*serverURL+"/api/v1/movies/"+strconv.Itoa(id), &details); err != nil {
		fmt.Fprintf(os.Stderr, "Movie failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteDetails(os.Stdout, &details, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// statusResponse is the shape of GET /status response.
type statusResponse struct {
	CatalogSize    int `json:"catalog_size"`
	VocabularySize int `json:"vocabulary_size"`
	Categories     int `json:"categories"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if err := getJSON(*serverURL+"/status", &status); err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		_ = cli.WriteJSON(os.Stdout, status)
	case "text":
		fmt.Printf("catalog_size:     %d   # movies in the recommendation corpus\n", status.CatalogSize)
		fmt.Printf("vocabulary_size:  %d   # terms in the tag vocabulary\n", status.VocabularySize)
		fmt.Printf("categories:       %d   # browsable discover categories\n", status.Categories)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func getJSON(endpoint string, out interface{}) error {
	resp, err := http.Get(endpoint)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Println(`osusume - Content-based movie recommendation server

Usage:
  osusume server [flags]             Start the HTTP server
  osusume recommend [flags] <title>  Recommend movies similar to a title
  osusume trending [flags]           Show this week's trending movies
  osusume category [flags] <name>    Browse a category page ("category list" shows names)
  osusume movie [flags] <tmdb-id>    Show movie details (or --trailer for the trailer URL)
  osusume status [flags]             Show engine/catalog status
  osusume version                    Show version
  osusume help                       Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/osusume/config.yaml)
  --debug            Enable debug logging (dataset reloads, cache fills, etc.)

Query Flags (recommend, trending, category, movie, status):
  --server string    Server URL (default: http://localhost:8080)
  --output string    Output format: text or json (default: text)
  --page int         Page number (category only, default: 1)
  --trailer          Print trailer URL (movie only)

Examples:
  osusume server
  osusume recommend "The Dark Knight"
  osusume recommend avatar --output json
  osusume trending
  osusume category list
  osusume category Comedy --page 2
  osusume movie 155
  osusume movie 155 --trailer
  osusume status --output json`)
}
