package service

import (
	"context"

	"github.com/guttosm/astropulse/internal/domain/models"
)

// ISSService serves live space station telemetry. Nothing is cached.
type ISSService interface {
	Position(ctx context.Context) (models.ISSPosition, error)
	Crew(ctx context.Context) (models.Crew, error)
}

type issService struct {
	fetcher ISSFetcher
}

func NewISSService(fetcher ISSFetcher) ISSService {
	return &issService{fetcher: fetcher}
}

func (s *issService) Position(ctx context.Context) (models.ISSPosition, error) {
	return s.fetcher.ISSPosition(ctx)
}

func (s *issService) Crew(ctx context.Context) (models.Crew, error) {
	return s.fetcher.Astronauts(ctx)
}
