package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/logger"
	"github.com/guttosm/astropulse/internal/metrics"
	"github.com/guttosm/astropulse/internal/neo"
	"github.com/guttosm/astropulse/internal/storage"
)

const (
	defaultNEOParallel     = 4
	defaultNEOMaxRangeDays = 366

	defaultListLimit = 20
	maxListLimit     = 100
)

// NEOSummaryResult is a computed summary together with the resolved range
// and the validator's advisory warnings.
type NEOSummaryResult struct {
	Range    neo.DateRange
	Warnings []string
	Summary  models.NEOSummary
}

// NEOService serves near-Earth-object analytics.
type NEOService interface {
	// Summary validates the range, fetches it window by window and
	// aggregates the merged feed. Empty dates fall back to today and
	// today + 7 days.
	Summary(ctx context.Context, startDate, endDate string) (NEOSummaryResult, error)
	// ListStored browses objects persisted by the ingestion job.
	ListStored(ctx context.Context, filter models.NEOFilter) ([]models.StoredNEO, error)
}

// NEOOptions tunes NEOService. Zero values select defaults.
type NEOOptions struct {
	// Parallel bounds concurrent window fetches.
	Parallel int
	// MaxRangeDays rejects ranges wider than this many days.
	MaxRangeDays int
	Now          func() time.Time
}

type neoService struct {
	fetcher NEOFeedFetcher
	repo    storage.NEORepository
	opts    NEOOptions
}

func NewNEOService(fetcher NEOFeedFetcher, repo storage.NEORepository, opts NEOOptions) NEOService {
	if opts.Parallel <= 0 {
		opts.Parallel = defaultNEOParallel
	}
	if opts.MaxRangeDays <= 0 {
		opts.MaxRangeDays = defaultNEOMaxRangeDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &neoService{fetcher: fetcher, repo: repo, opts: opts}
}

func (s *neoService) Summary(ctx context.Context, startDate, endDate string) (NEOSummaryResult, error) {
	now := s.opts.Now()
	defStart, defEnd := neo.DefaultRange(now)
	if startDate == "" {
		startDate = defStart
	}
	if endDate == "" {
		endDate = defEnd
	}

	r, warnings, err := neo.ParseDateRange(startDate, endDate, now)
	if err != nil {
		return NEOSummaryResult{}, err
	}
	if r.Days() > s.opts.MaxRangeDays {
		return NEOSummaryResult{}, &neo.ValidationError{
			Field:  "end_date",
			Reason: fmt.Sprintf("range spans %d days, at most %d are served", r.Days(), s.opts.MaxRangeDays),
		}
	}

	windows := neo.Windows(r, neo.RecommendedSpanDays)
	feeds := make([]models.Feed, len(windows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Parallel)
	for i, w := range windows {
		g.Go(func() error {
			f, err := s.fetcher.NEOFeed(gctx, w.StartDate(), w.EndDate())
			if err != nil {
				return err
			}
			feeds[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return NEOSummaryResult{}, err
	}

	merged := make(models.Feed)
	for _, f := range feeds {
		merged.Merge(f)
	}

	summary, shapeErr := neo.Aggregate(merged)
	if shapeErr != nil {
		metrics.NEOSkipped.Add(float64(len(summary.Skipped)))
		logger.L().Warn().
			Err(shapeErr).
			Int("skipped", len(summary.Skipped)).
			Str("start_date", startDate).
			Str("end_date", endDate).
			Msg("neo feed objects skipped")
	}

	if warnings == nil {
		warnings = []string{}
	}
	return NEOSummaryResult{Range: r, Warnings: warnings, Summary: summary}, nil
}

func (s *neoService) ListStored(ctx context.Context, filter models.NEOFilter) ([]models.StoredNEO, error) {
	filter.Limit, filter.Offset = ClampPage(filter.Limit, filter.Offset)
	return s.repo.ListStored(ctx, filter)
}

// ClampPage applies the default and maximum page size of stored listings.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
