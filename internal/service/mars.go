package service

import (
	"context"
	"fmt"

	"github.com/guttosm/astropulse/internal/cache"
	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/logger"
	"github.com/guttosm/astropulse/internal/nasa"
	"github.com/guttosm/astropulse/internal/storage"
	"github.com/guttosm/astropulse/internal/validation"
)

// MarsService serves rover photos behind a bounded in-process cache.
type MarsService interface {
	Photos(ctx context.Context, q models.MarsPhotoQuery) ([]models.MarsPhoto, error)
}

type marsService struct {
	fetcher MarsFetcher
	repo    storage.MarsRepository
	cache   *cache.LRU[string, []models.MarsPhoto]
}

func NewMarsService(fetcher MarsFetcher, repo storage.MarsRepository, c *cache.LRU[string, []models.MarsPhoto]) MarsService {
	return &marsService{fetcher: fetcher, repo: repo, cache: c}
}

func (s *marsService) Photos(ctx context.Context, q models.MarsPhotoQuery) ([]models.MarsPhoto, error) {
	if err := validation.ValidateStruct(&q); err != nil {
		return nil, err
	}
	if q.Rover == "" {
		q.Rover = nasa.DefaultRover
	}

	key := marsCacheKey(q)
	if photos, ok := s.cache.Get(key); ok {
		return photos, nil
	}

	photos, err := s.fetcher.MarsPhotos(ctx, q)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, photos)

	if err := s.repo.UpsertPhotos(ctx, photos); err != nil {
		logger.L().Warn().Err(err).Str("rover", q.Rover).Int("photos", len(photos)).Msg("mars photo archive failed")
	}
	return photos, nil
}

func marsCacheKey(q models.MarsPhotoQuery) string {
	sol := "latest"
	if q.Sol != nil {
		sol = fmt.Sprint(*q.Sol)
	}
	return fmt.Sprintf("%s|%s|%s|%s", q.Rover, sol, q.EarthDate, q.Camera)
}
