// Package warmup keeps the listings cache populated for saved bookmarks so that opening
// one is served from cache.
package warmup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"listings-console/internal/config"
	"listings-console/internal/domain/bookmark"
	"listings-console/internal/domain/filter"
	"listings-console/internal/pkg/logging"
	"listings-console/internal/usecase"

	"github.com/robfig/cron/v3"
)

type BookmarkLister interface {
	List(ctx context.Context) ([]bookmark.Bookmark, error)
}

// Fetcher fetches listings for the viewer in ctx and reports who has been active.
type Fetcher interface {
	Fetch(ctx context.Context, f filter.State, perPage, page int) usecase.ListingsResult
	ActiveViewers(window time.Duration) []usecase.Viewer
}

type Stats struct {
	Total  int
	Warmed int
	Failed int
}

// Warmer fetches page 1 of every bookmark on a cron schedule, once for each admin who
// fetched listings within the active window. Pages land in that admin's cache scope.
type Warmer struct {
	cron      *cron.Cron
	schedule  string
	workers   int
	rps       int
	perPage   int
	window    time.Duration
	bookmarks BookmarkLister
	listings  Fetcher
	logger    *logging.Logger

	running sync.Mutex
}

func New(cfg config.WarmupConfig, bookmarks BookmarkLister, listings Fetcher, logger *logging.Logger) *Warmer {
	logger = logger.With("component", "warmup")
	window := cfg.ActiveWindow
	if window <= 0 {
		window = config.DefaultWarmupActiveWindow
	}
	return &Warmer{
		cron:      cron.New(cron.WithLogger(cronLogger{logger})),
		schedule:  cfg.Schedule,
		workers:   cfg.Workers,
		rps:       cfg.RPS,
		perPage:   cfg.PerPage,
		window:    window,
		bookmarks: bookmarks,
		listings:  listings,
		logger:    logger,
	}
}

// Start registers the schedule and runs one pass immediately in the background.
func (w *Warmer) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.schedule, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", w.schedule, err)
	}
	w.cron.Start()
	w.logger.Info("warm-up scheduled", "schedule", w.schedule, "workers", w.workers, "rps", w.rps)

	go w.RunOnce(ctx)
	return nil
}

// Stop halts the schedule and waits for a running pass to finish.
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
	w.running.Lock()
	defer w.running.Unlock()
	w.logger.Info("warm-up stopped")
}

// RunOnce warms every bookmark for every active viewer. Overlapping passes are skipped.
func (w *Warmer) RunOnce(ctx context.Context) Stats {
	if !w.running.TryLock() {
		w.logger.Debug("warm-up already running, skipping")
		return Stats{}
	}
	defer w.running.Unlock()

	viewers := w.listings.ActiveViewers(w.window)
	if len(viewers) == 0 {
		w.logger.Debug("warm-up skipped, no active sessions")
		return Stats{}
	}

	bms, err := w.bookmarks.List(ctx)
	if err != nil {
		w.logger.Warn("warm-up bookmarks failed", "error", err)
		return Stats{}
	}
	if len(bms) == 0 {
		return Stats{}
	}

	total := len(bms) * len(viewers)
	pool := NewWorkerPool(w.workers, total)
	pool.SetRateLimit(w.rps)
	results := pool.Run(ctx)
	for _, v := range viewers {
		for _, b := range bms {
			pool.Submit(func(ctx context.Context) error {
				f, err := b.Filters()
				if err != nil {
					return fmt.Errorf("bookmark %s/%s: %w", b.Group, b.Name, err)
				}
				res := w.listings.Fetch(usecase.WithViewer(ctx, v), f, w.perPage, 1)
				if res.Err != nil {
					return fmt.Errorf("bookmark %s/%s user %d: %w", b.Group, b.Name, v.UserID, res.Err)
				}
				return nil
			})
		}
	}
	pool.Close()

	st := Stats{Total: total}
	for r := range results {
		if r.Err != nil {
			st.Failed++
			w.logger.Warn("warm-up fetch failed", "error", r.Err)
			continue
		}
		st.Warmed++
	}
	w.logger.Info("warm-up pass complete", "viewers", len(viewers), "total", st.Total, "warmed", st.Warmed, "failed", st.Failed)
	return st
}

type cronLogger struct {
	l *logging.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}
