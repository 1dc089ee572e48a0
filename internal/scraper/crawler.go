package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/catarr/catarr/pkg/title"
	"github.com/catarr/catarr/pkg/torrents"
)

// CrawlConfig bounds one (source, category) crawl job.
type CrawlConfig struct {
	// Concurrency caps parallel page fetches. Sources that rate-limit
	// by page run at 1.
	Concurrency int
	// SizeCutoffs holds the maximum accepted byte size per quality;
	// a zero cutoff means unbounded. Oversized listings are mislabeled
	// junk and get dropped.
	SizeCutoffs map[title.Quality]int64
	// Language tags torrents from sources that do not report one.
	Language string
}

// MovieAggregate collects every torrent seen for one movie slug during
// a single crawl, already deduplicated per quality.
type MovieAggregate struct {
	ID       *title.ID
	Torrents []torrents.Torrent
}

// ShowAggregate collects raw per-episode torrents for one show slug.
// Deduplication happens during episode assembly, once show metadata is
// known.
type ShowAggregate struct {
	ID       *title.ID
	ImdbID   string
	Episodes map[int]map[int][]torrents.Torrent
}

// Harvest is the per-slug output of one crawl.
type Harvest struct {
	Movies map[string]*MovieAggregate
	Shows  map[string]*ShowAggregate
}

func newHarvest() *Harvest {
	return &Harvest{
		Movies: make(map[string]*MovieAggregate),
		Shows:  make(map[string]*ShowAggregate),
	}
}

// Crawler drives one torrent-index source to completion.
type Crawler struct {
	source TorrentIndex
	parser *title.Parser
	cfg    CrawlConfig
	logger *slog.Logger
}

// NewCrawler creates a crawler over one source with its parse rules.
func NewCrawler(source TorrentIndex, parser *title.Parser, cfg CrawlConfig, logger *slog.Logger) *Crawler {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Crawler{
		source: source,
		parser: parser,
		cfg:    cfg,
		logger: logger.With("component", "scraper", "source", source.Name()),
	}
}

// Source returns the crawled source's name.
func (c *Crawler) Source() string { return c.source.Name() }

// Concurrency returns the source's configured parallelism cap. The same
// bound applies to page fetches and to downstream per-item resolution,
// since both hit the same rate-limited parties.
func (c *Crawler) Concurrency() int { return c.cfg.Concurrency }

// Crawl fetches every listing page and folds the results per slug.
// A page-count failure is fatal; a single page failure is logged and
// the crawl proceeds with whatever was collected.
func (c *Crawler) Crawl(ctx context.Context) (*Harvest, error) {
	pages, err := c.source.PageCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("page count for %s: %w", c.source.Name(), err)
	}
	c.logger.Info("crawl started", "pages", pages)

	harvest := newHarvest()
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for page := 1; page <= pages; page++ {
		g.Go(func() error {
			listings, err := c.source.Page(ctx, page)
			if err != nil {
				c.logger.Warn("page fetch failed, continuing", "page", page, "error", err)
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			for _, l := range listings {
				c.fold(harvest, l)
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logger.Info("crawl finished",
		"movies", len(harvest.Movies), "shows", len(harvest.Shows))
	return harvest, nil
}

// fold parses one listing and accumulates it into the harvest.
// Unparseable and oversized listings are dropped, not errors.
func (c *Crawler) fold(harvest *Harvest, l Listing) {
	id, err := c.parser.Parse(l.Title, l.AltTitle)
	if err != nil {
		c.logger.Debug("unparseable listing dropped", "title", l.Title)
		return
	}

	if max := c.cfg.SizeCutoffs[id.Quality]; max > 0 && l.SizeBytes > max {
		c.logger.Warn("oversized listing dropped",
			"title", l.Title, "quality", id.Quality, "size_bytes", l.SizeBytes)
		return
	}

	lang := l.Language
	if lang == "" {
		lang = c.cfg.Language
	}
	t := torrents.Torrent{
		Title:     l.Title,
		Quality:   id.Quality,
		Provider:  c.source.Name(),
		Language:  lang,
		SizeBytes: l.SizeBytes,
		Seeds:     l.Seeds,
		Peers:     l.Peers,
		URL:       l.URL,
	}

	switch id.Type {
	case title.ContentTypeShow:
		if id.Season == 0 || id.Episode == 0 {
			c.logger.Debug("show listing without episode numbering dropped", "title", l.Title)
			return
		}
		agg, ok := harvest.Shows[id.Slug]
		if !ok {
			agg = &ShowAggregate{ID: id, Episodes: make(map[int]map[int][]torrents.Torrent)}
			harvest.Shows[id.Slug] = agg
		}
		if agg.ImdbID == "" {
			agg.ImdbID = l.ImdbID
		}
		if agg.Episodes[id.Season] == nil {
			agg.Episodes[id.Season] = make(map[int][]torrents.Torrent)
		}
		agg.Episodes[id.Season][id.Episode] = append(agg.Episodes[id.Season][id.Episode], t)
	default:
		agg, ok := harvest.Movies[id.Slug]
		if !ok {
			agg = &MovieAggregate{ID: id}
			harvest.Movies[id.Slug] = agg
		}
		agg.Torrents = torrents.Merge([]torrents.Torrent{t}, agg.Torrents)
	}
}
