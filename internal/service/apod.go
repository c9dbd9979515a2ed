package service

import (
	"context"
	"time"

	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/logger"
	"github.com/guttosm/astropulse/internal/neo"
	"github.com/guttosm/astropulse/internal/storage"
)

// firstAPOD is the date of the first published Astronomy Picture of the Day.
var firstAPOD = time.Date(1995, 6, 16, 0, 0, 0, 0, time.UTC)

// APODService serves the Astronomy Picture of the Day through the apods table.
type APODService interface {
	// Get returns the picture of date (YYYY-MM-DD, empty for today), reading
	// the cache first and filling it on a miss.
	Get(ctx context.Context, date string) (models.APOD, error)
}

type apodService struct {
	fetcher APODFetcher
	repo    storage.APODRepository
	now     func() time.Time
}

func NewAPODService(fetcher APODFetcher, repo storage.APODRepository) APODService {
	return &apodService{fetcher: fetcher, repo: repo, now: time.Now}
}

func (s *apodService) Get(ctx context.Context, date string) (models.APOD, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return models.APOD{}, err
	}

	cached, err := s.repo.GetByDate(ctx, day)
	if err != nil {
		logger.L().Warn().Err(err).Str("date", day.Format(neo.DateLayout)).Msg("apod cache read failed")
	}
	if cached != nil {
		return *cached, nil
	}

	apod, err := s.fetcher.APOD(ctx, day.Format(neo.DateLayout))
	if err != nil {
		return models.APOD{}, err
	}
	if err := s.repo.Upsert(ctx, apod); err != nil {
		logger.L().Warn().Err(err).Str("date", apod.NasaID()).Msg("apod cache write failed")
	}
	return apod, nil
}

func (s *apodService) parseDate(date string) (time.Time, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	if date == "" {
		return today, nil
	}
	day, err := time.Parse(neo.DateLayout, date)
	if err != nil {
		return time.Time{}, &neo.ValidationError{Field: "date", Reason: "invalid date format, expected YYYY-MM-DD", Err: err}
	}
	if day.Before(firstAPOD) || day.After(today) {
		return time.Time{}, &neo.ValidationError{Field: "date", Reason: "date must be between 1995-06-16 and today"}
	}
	return day, nil
}
