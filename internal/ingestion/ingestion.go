package ingestion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/logger"
	"github.com/guttosm/astropulse/internal/metrics"
	"github.com/guttosm/astropulse/internal/neo"
	"github.com/guttosm/astropulse/internal/storage"
)

const defaultParallel = 2

// FeedFetcher fetches the NEO feed of an inclusive date range.
type FeedFetcher interface {
	NEOFeed(ctx context.Context, startDate, endDate string) (models.Feed, error)
}

// Options controls one ingestion run.
type Options struct {
	// Days is the number of calendar days to ingest, ending today (1..30).
	Days int
	// Parallel bounds concurrent days in flight.
	Parallel int
	// Force re-ingests days already present in the ingestion log.
	Force bool
	Now   func() time.Time
}

// DayResult reports the outcome of one ingested day.
type DayResult struct {
	Date    time.Time
	Objects int
	Skipped int
	// AlreadyIngested is set when the day was skipped without fetching.
	AlreadyIngested bool
}

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.NEORepository {
	return storage.NewNEORepository(db)
}

// Run ingests the last opts.Days days of the NEO feed into db.
func Run(ctx context.Context, db *sql.DB, fetcher FeedFetcher, opts Options) ([]DayResult, error) {
	return ProcessDays(ctx, fetcher, repoCtor(db), opts)
}

// ProcessDays fetches and persists one feed day at a time.
//
// Behavior:
//   - Days already listed in the ingestion log are skipped unless Force is
//     set. A forced day is fetched first and then replaces the stored close
//     approaches in one transaction, so a failed fetch or write keeps them.
//   - Objects breaking a record invariant are left out and counted in the
//     day's skipped_count.
//   - Up to Parallel days run concurrently. The first error cancels the
//     rest and is returned.
//
// Results are ordered like LastNDays, most recent first.
func ProcessDays(ctx context.Context, fetcher FeedFetcher, repo storage.NEORepository, opts Options) ([]DayResult, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Parallel <= 0 {
		opts.Parallel = defaultParallel
	}
	days := LastNDays(clampDays(opts.Days), opts.Now())

	logger.L().Info().
		Int("days", len(days)).
		Int("max_parallel", opts.Parallel).
		Bool("force", opts.Force).
		Msg("ingestion start")

	results := make([]DayResult, len(days))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)
	for i, d := range days {
		g.Go(func() error {
			res, err := ingestDay(gctx, fetcher, repo, d, opts.Force)
			if err != nil {
				return fmt.Errorf("day %s: %w", d.Format(neo.DateLayout), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func ingestDay(ctx context.Context, fetcher FeedFetcher, repo storage.NEORepository, day time.Time, force bool) (DayResult, error) {
	start := time.Now()
	date := day.Format(neo.DateLayout)
	log := logger.Component("ingestion").With().Str("date", date).Logger()
	res := DayResult{Date: day}

	exists, err := repo.HasIngestionForDate(ctx, day)
	if err != nil {
		return res, fmt.Errorf("check ingestion log: %w", err)
	}
	if exists && !force {
		log.Info().Bool("skipped", true).Msg("already ingested")
		res.AlreadyIngested = true
		return res, nil
	}
	feed, err := fetcher.NEOFeed(ctx, date, date)
	if err != nil {
		return res, err
	}

	valid, skipped := partitionFeed(feed)
	if len(skipped) > 0 {
		metrics.NEOSkipped.Add(float64(len(skipped)))
		log.Warn().Err(errors.Join(skipped...)).Int("skipped", len(skipped)).Msg("feed objects skipped")
	}

	write := repo.UpsertObjects
	if exists {
		write = repo.ReplaceObjects
	}
	if err := write(ctx, day, valid); err != nil {
		return res, fmt.Errorf("write objects: %w", err)
	}
	if err := repo.UpsertIngestionLog(ctx, day, len(valid), len(skipped)); err != nil {
		return res, fmt.Errorf("upsert ingestion log: %w", err)
	}

	res.Objects, res.Skipped = len(valid), len(skipped)
	log.Info().
		Int("objects", res.Objects).
		Int("skipped", res.Skipped).
		Dur("elapsed", time.Since(start)).
		Bool("force", force).
		Msg("day done")
	return res, nil
}
