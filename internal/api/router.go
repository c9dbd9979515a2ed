package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/astropulse/internal/metrics"
	"github.com/guttosm/astropulse/internal/middleware"
)

// DefaultRequestTimeout bounds a request when RouterOptions.RequestTimeout is zero.
const DefaultRequestTimeout = 60 * time.Second

// RouterOptions carries the cross-cutting dependencies of the router.
type RouterOptions struct {
	// RateLimiter throttles clients by IP. Nil disables throttling.
	RateLimiter *middleware.IPRateLimiter
	// JWTSecret verifies bearer tokens on the favorites routes.
	JWTSecret      []byte
	RequestTimeout time.Duration
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, metrics, RateLimiter).
//   - Adds a request timeout to the request context.
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures API v1 routes (/api/v1), favorites behind bearer authentication.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		metrics.Middleware(),
	)
	if opts.RateLimiter != nil {
		router.Use(opts.RateLimiter.Middleware())
	}

	// ─── Timeout ──────────────────────────────────
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger & metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/neo/summary", handler.GetNEOSummary)
		v1.GET("/neo/objects", handler.ListNEOs)

		v1.GET("/apod", handler.GetAPOD)
		v1.GET("/mars/photos", handler.GetMarsPhotos)

		v1.GET("/earth/events", handler.GetEarthEvents)
		v1.GET("/earth/categories", handler.GetEarthCategories)
		v1.GET("/earth/imagery", handler.GetEarthImagery)
		v1.GET("/earth/compare", handler.GetEarthCompare)
		v1.GET("/earth/assets", handler.GetEarthAssets)

		v1.GET("/iss/position", handler.GetISSPosition)
		v1.GET("/iss/crew", handler.GetISSCrew)

		favorites := v1.Group("/favorites", middleware.Authenticate(opts.JWTSecret))
		favorites.GET("", handler.ListFavorites)
		favorites.POST("/apod", handler.ToggleAPODFavorite)
		favorites.DELETE("/:id", handler.DeleteFavorite)
	}

	return router
}
