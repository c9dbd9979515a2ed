package service

import (
	"context"

	"github.com/guttosm/astropulse/internal/domain/models"
)

// The upstream contracts below are satisfied by *nasa.Client.

// NEOFeedFetcher fetches one feed window (at most 7 days).
type NEOFeedFetcher interface {
	NEOFeed(ctx context.Context, startDate, endDate string) (models.Feed, error)
}

// APODFetcher fetches an Astronomy Picture of the Day.
type APODFetcher interface {
	APOD(ctx context.Context, date string) (models.APOD, error)
}

// MarsFetcher lists rover photos.
type MarsFetcher interface {
	MarsPhotos(ctx context.Context, q models.MarsPhotoQuery) ([]models.MarsPhoto, error)
}

// EarthFetcher covers EONET events and Landsat imagery.
type EarthFetcher interface {
	EarthEvents(ctx context.Context, days int) ([]models.EarthEvent, error)
	EarthCategories(ctx context.Context) ([]models.EventCategory, error)
	EarthImagery(ctx context.Context, q models.ImageryQuery) (models.EarthImagery, error)
	EarthAssets(ctx context.Context, q models.AssetsQuery) ([]models.EarthAsset, error)
}

// ISSFetcher covers open-notify telemetry.
type ISSFetcher interface {
	ISSPosition(ctx context.Context) (models.ISSPosition, error)
	Astronauts(ctx context.Context) (models.Crew, error)
}
