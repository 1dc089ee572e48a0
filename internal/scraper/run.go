package scraper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/catarr/catarr/internal/catalog"
	"github.com/catarr/catarr/internal/resolver"
)

// Run states reported by Status.
const (
	StateIdle    = "idle"
	StateRunning = "running"
)

// ErrRunning is returned when a run is started while one is in flight.
var ErrRunning = errors.New("scrape run already in progress")

// Status is a snapshot of the engine's run state.
type Status struct {
	State        string     `json:"state"`
	LastStarted  *time.Time `json:"lastStarted,omitempty"`
	LastFinished *time.Time `json:"lastFinished,omitempty"`
	Resolved     int        `json:"resolved"`
	Skipped      int        `json:"skipped"`
	Failed       int        `json:"failed"`
}

// Engine runs the full scrape pipeline: crawl each source, resolve each
// aggregate, merge into the catalog. One run is a single logical unit;
// per-item failures never abort it.
type Engine struct {
	crawlers []*Crawler
	resolver *resolver.Resolver
	merger   *catalog.Merger
	logger   *slog.Logger

	mu     sync.Mutex
	status Status
}

// NewEngine creates an engine over the configured source crawlers.
func NewEngine(crawlers []*Crawler, res *resolver.Resolver, merger *catalog.Merger, logger *slog.Logger) *Engine {
	return &Engine{
		crawlers: crawlers,
		resolver: res,
		merger:   merger,
		logger:   logger.With("component", "engine"),
		status:   Status{State: StateIdle},
	}
}

// Status returns a snapshot of the current run state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Run executes one scrape pass over every source. The scheduler already
// serializes ticks; the in-flight guard here covers manual triggers.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.status.State == StateRunning {
		e.mu.Unlock()
		return ErrRunning
	}
	started := time.Now()
	e.status = Status{State: StateRunning, LastStarted: &started}
	e.mu.Unlock()

	var resolved, skipped, failed int
	defer func() {
		finished := time.Now()
		e.mu.Lock()
		e.status.State = StateIdle
		e.status.LastFinished = &finished
		e.status.Resolved = resolved
		e.status.Skipped = skipped
		e.status.Failed = failed
		e.mu.Unlock()
		e.logger.Info("scrape run finished",
			"resolved", resolved, "skipped", skipped, "failed", failed,
			"duration", finished.Sub(started))
	}()

	for _, c := range e.crawlers {
		if err := ctx.Err(); err != nil {
			return err
		}
		harvest, err := c.Crawl(ctx)
		if err != nil {
			// Nothing to iterate for this source; the others still run.
			e.logger.Error("crawl failed", "source", c.Source(), "error", err)
			continue
		}
		r, s, f := e.process(ctx, harvest, c.Concurrency())
		resolved += r
		skipped += s
		failed += f
	}
	return ctx.Err()
}

// process resolves and merges every aggregate of one harvest under the
// source's concurrency cap. Items are handled independently so one bad
// slug cannot poison its siblings; each item's own season enhancement
// stays serialized inside the resolver.
func (e *Engine) process(ctx context.Context, harvest *Harvest, concurrency int) (resolved, skipped, failed int) {
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(concurrency)

	count := func(err error, kind, slug string) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case errors.Is(err, resolver.ErrSkipped):
			skipped++
		case err != nil:
			failed++
			e.logger.Error(kind+" failed", "slug", slug, "error", err)
		default:
			resolved++
		}
	}

	for slug, agg := range harvest.Movies {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			movie, err := e.resolver.ResolveMovie(ctx, agg.ID, agg.Torrents)
			if err == nil {
				err = e.merger.SaveMovie(movie)
			}
			count(err, "movie resolution", slug)
			return nil
		})
	}

	for slug, agg := range harvest.Shows {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			show, seasons, episodes, err := e.resolver.ResolveShow(ctx, agg.ID, agg.ImdbID, agg.Episodes)
			if err == nil {
				err = e.merger.SaveShow(show, seasons, episodes)
			}
			count(err, "show resolution", slug)
			return nil
		})
	}

	_ = g.Wait()
	return
}
