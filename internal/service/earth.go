package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/logger"
	"github.com/guttosm/astropulse/internal/neo"
	"github.com/guttosm/astropulse/internal/storage"
	"github.com/guttosm/astropulse/internal/validation"
)

// DefaultEventDays is the recency window of natural events when none is given.
const DefaultEventDays = 30

// EarthService serves EONET natural events and Landsat imagery.
type EarthService interface {
	Events(ctx context.Context, q models.EventsQuery) ([]models.EarthEvent, error)
	Categories(ctx context.Context) ([]models.EventCategory, error)
	Imagery(ctx context.Context, q models.ImageryQuery) (models.EarthImagery, error)
	// Compare fetches the same location at two dates concurrently.
	Compare(ctx context.Context, q models.CompareQuery) (before, after models.EarthImagery, err error)
	Assets(ctx context.Context, q models.AssetsQuery) ([]models.EarthAsset, error)
}

type earthService struct {
	fetcher EarthFetcher
	repo    storage.EarthEventRepository
	now     func() time.Time
}

func NewEarthService(fetcher EarthFetcher, repo storage.EarthEventRepository) EarthService {
	return &earthService{fetcher: fetcher, repo: repo, now: time.Now}
}

// Events keeps events tagged with q.Category (when set) that were active
// within the last q.Days days. Events without geometry are kept.
func (s *earthService) Events(ctx context.Context, q models.EventsQuery) ([]models.EarthEvent, error) {
	if err := validation.ValidateStruct(&q); err != nil {
		return nil, err
	}
	if q.Days == 0 {
		q.Days = DefaultEventDays
	}

	events, err := s.fetcher.EarthEvents(ctx, q.Days)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpsertEvents(ctx, events); err != nil {
		logger.L().Warn().Err(err).Int("events", len(events)).Msg("earth event archive failed")
	}

	cutoff := s.now().UTC().AddDate(0, 0, -q.Days)
	out := make([]models.EarthEvent, 0, len(events))
	for _, ev := range events {
		if q.Category != "" && !ev.HasCategory(q.Category) {
			continue
		}
		if !activeSince(ev, cutoff) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func activeSince(ev models.EarthEvent, cutoff time.Time) bool {
	if len(ev.Geometry) == 0 {
		return true
	}
	for _, g := range ev.Geometry {
		if !g.Date.Before(cutoff) {
			return true
		}
	}
	return false
}

func (s *earthService) Categories(ctx context.Context) ([]models.EventCategory, error) {
	return s.fetcher.EarthCategories(ctx)
}

func (s *earthService) Imagery(ctx context.Context, q models.ImageryQuery) (models.EarthImagery, error) {
	if err := validation.ValidateStruct(&q); err != nil {
		return models.EarthImagery{}, err
	}
	return s.fetcher.EarthImagery(ctx, q)
}

func (s *earthService) Compare(ctx context.Context, q models.CompareQuery) (models.EarthImagery, models.EarthImagery, error) {
	if err := validation.ValidateStruct(&q); err != nil {
		return models.EarthImagery{}, models.EarthImagery{}, err
	}

	var before, after models.EarthImagery
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		before, err = s.fetcher.EarthImagery(gctx, models.ImageryQuery{Lat: q.Lat, Lon: q.Lon, Date: q.Date1})
		return err
	})
	g.Go(func() error {
		var err error
		after, err = s.fetcher.EarthImagery(gctx, models.ImageryQuery{Lat: q.Lat, Lon: q.Lon, Date: q.Date2})
		return err
	})
	if err := g.Wait(); err != nil {
		return models.EarthImagery{}, models.EarthImagery{}, err
	}
	return before, after, nil
}

func (s *earthService) Assets(ctx context.Context, q models.AssetsQuery) ([]models.EarthAsset, error) {
	if err := validation.ValidateStruct(&q); err != nil {
		return nil, err
	}
	// Both dates already passed the datetime rule, so string order is date order.
	if q.BeginDate != "" && q.EndDate != "" && q.BeginDate > q.EndDate {
		return nil, &neo.ValidationError{Field: "end_date", Reason: "end_date must not be before begin_date"}
	}
	return s.fetcher.EarthAssets(ctx, q)
}
