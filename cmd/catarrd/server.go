package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/catarr/catarr/internal/api"
	"github.com/catarr/catarr/internal/blacklist"
	"github.com/catarr/catarr/internal/catalog"
	"github.com/catarr/catarr/internal/config"
	"github.com/catarr/catarr/internal/migrations"
	"github.com/catarr/catarr/internal/resolver"
	"github.com/catarr/catarr/internal/scheduler"
	"github.com/catarr/catarr/internal/scraper"
	"github.com/catarr/catarr/pkg/eztv"
	"github.com/catarr/catarr/pkg/fanart"
	"github.com/catarr/catarr/pkg/omdb"
	"github.com/catarr/catarr/pkg/solid"
	"github.com/catarr/catarr/pkg/title"
	"github.com/catarr/catarr/pkg/tmdb"
	"github.com/catarr/catarr/pkg/trakt"
	"github.com/catarr/catarr/pkg/tvdb"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	// Load config
	if configPath == "" {
		discovered, err := config.Discover()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		configPath = discovered
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Two daemons scraping into one database would fight over the
	// catalog, so take an exclusive lock next to it.
	lock := flock.New(cfg.Database.Path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return errors.New("another catarrd instance is already running")
	}
	defer func() { _ = lock.Unlock() }()

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Stores ===
	store := catalog.NewStore(db)
	merger := catalog.NewMerger(store, logger)
	registry := blacklist.NewRegistry(db, logger)

	// === Metadata providers ===
	res := resolver.New(
		trakt.New(cfg.Metadata.TraktClientID, trakt.WithLogger(logger)),
		tmdb.New(cfg.Metadata.TMDBAPIKey, tmdb.WithLogger(logger)),
		tvdb.New(cfg.Metadata.TVDBAPIKey, tvdb.WithLogger(logger)),
		omdb.New(cfg.Metadata.OMDBAPIKey, omdb.WithLogger(logger)),
		fanart.New(cfg.Metadata.FanartAPIKey, fanart.WithLogger(logger)),
		registry, logger)

	// === Scrape engine ===
	crawlers, err := buildCrawlers(cfg, logger)
	if err != nil {
		return fmt.Errorf("sources: %w", err)
	}
	engine := scraper.NewEngine(crawlers, res, merger, logger)

	// === Scheduler ===
	sched := scheduler.New(logger)
	if err := sched.Schedule(cfg.Scrape.Schedule, engine); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	sched.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A fresh install should not sit empty until the first cron tick.
	go func() {
		if err := engine.Run(ctx); err != nil && !errors.Is(err, scraper.ErrRunning) {
			logger.Error("initial run failed", "error", err)
		}
	}()

	// === HTTP Setup ===
	mux := http.NewServeMux()
	api.New(engine, merger, logger).RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"sources", len(cfg.Scrape.Sources),
		"schedule", cfg.Scrape.Schedule,
		"log_level", cfg.Server.LogLevel,
	)

	srv := &http.Server{Addr: addr, Handler: logRequests(mux, logger)}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig.String())

	cancel()

	// Let an in-flight scrape run finish before closing the database.
	<-sched.Stop().Done()

	// Graceful HTTP shutdown with 30s timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func buildCrawlers(cfg *config.Config, logger *slog.Logger) ([]*scraper.Crawler, error) {
	crawlers := make([]*scraper.Crawler, 0, len(cfg.Scrape.Sources))
	for _, s := range cfg.Scrape.Sources {
		rules, err := s.ParserRules()
		if err != nil {
			return nil, err
		}
		parser := title.NewParser(s.Name, title.ContentType(s.ContentType), rules)

		var source scraper.TorrentIndex
		switch s.Type {
		case "eztv":
			source = scraper.NewEZTVIndex(eztv.New(eztv.WithLogger(logger)))
		case "solid":
			source = scraper.NewSolidIndex(solid.New(solid.WithLogger(logger)), s.Name, s.Query)
		default:
			return nil, fmt.Errorf("source %s: unknown type %q", s.Name, s.Type)
		}

		crawlers = append(crawlers, scraper.NewCrawler(source, parser, scraper.CrawlConfig{
			Concurrency: s.Concurrency,
			SizeCutoffs: s.SizeCutoffs(),
			Language:    s.Language,
		}, logger))
	}
	return crawlers, nil
}
