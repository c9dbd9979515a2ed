package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/astropulse/config"
	"github.com/guttosm/astropulse/internal/api"
	"github.com/guttosm/astropulse/internal/cache"
	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/logger"
	"github.com/guttosm/astropulse/internal/middleware"
	"github.com/guttosm/astropulse/internal/nasa"
	"github.com/guttosm/astropulse/internal/service"
	"github.com/guttosm/astropulse/internal/storage"
)

// limiterPruneInterval is how often idle per-IP limiters are dropped.
const limiterPruneInterval = 5 * time.Minute

// NewNASAClient builds the upstream client from configuration.
func NewNASAClient(cfg config.Config) *nasa.Client {
	return nasa.NewClient(nasa.Config{
		APIKey:            cfg.NASA.APIKey,
		BaseURL:           cfg.NASA.BaseURL,
		EONETBaseURL:      cfg.NASA.EONETBaseURL,
		OpenNotifyBaseURL: cfg.NASA.OpenNotifyBaseURL,
		Timeout:           cfg.NASA.Timeout,
		MinInterval:       cfg.NASA.MinInterval,
		MaxRetries:        cfg.NASA.MaxRetries,
	})
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Builds the upstream client, repositories and services.
//   - Configures the Gin router with all API routes and the per-IP limiter.
//   - Registers health and readiness probes.
//   - Provides a cleanup function that stops background work and closes the DB.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	client := NewNASAClient(cfg)

	neoRepo := storage.NewNEORepository(db)
	apodRepo := storage.NewAPODRepository(db)

	marsCache := cache.NewLRU[string, []models.MarsPhoto]("mars_photos", cfg.MarsCache.Size, cfg.MarsCache.TTL)

	services := api.Services{
		NEO: service.NewNEOService(client, neoRepo, service.NEOOptions{
			Parallel:     cfg.NEO.Parallel,
			MaxRangeDays: cfg.NEO.MaxRangeDays,
		}),
		APOD:      service.NewAPODService(client, apodRepo),
		Mars:      service.NewMarsService(client, storage.NewMarsRepository(db), marsCache),
		Earth:     service.NewEarthService(client, storage.NewEarthEventRepository(db)),
		ISS:       service.NewISSService(client),
		Favorites: service.NewFavoritesService(storage.NewFavoritesRepository(db), apodRepo),
	}

	if cfg.Auth.JWTSecret == "" {
		logger.L().Warn().Msg("AUTH_JWT_SECRET is empty; favorites endpoints will reject every token")
	}

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerMinute, time.Minute)
	stopPrune := startPruning(limiter, limiterPruneInterval)

	router := api.NewRouter(api.NewHandler(services), api.RouterOptions{
		RateLimiter:    limiter,
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	api.NewHealthHandler(db.PingContext).Register(router)

	cleanup := func() {
		stopPrune()
		_ = db.Close()
	}

	return router, cleanup, nil
}

// startPruning drops idle limiters every interval until the returned stop
// function is called.
func startPruning(l *middleware.IPRateLimiter, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if n := l.Prune(); n > 0 {
					logger.L().Debug().Int("removed", n).Msg("pruned idle rate limiters")
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}
