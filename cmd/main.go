package main

//
//  @title           astropulse API
//  @version         1.0
//  @description     NASA open data aggregator: near-Earth object analytics, APOD, Mars rover photos, Earth events and imagery, ISS telemetry.
//  @termsOfService  https://github.com/guttosm/astropulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/astropulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @securityDefinitions.apikey  BearerAuth
//  @in                          header
//  @name                        Authorization
//
//  @tag.name        neo
//  @tag.description Near-Earth object analytics
//
//  @tag.name        apod
//  @tag.description Astronomy Picture of the Day
//
//  @tag.name        mars
//  @tag.description Mars rover photos
//
//  @tag.name        earth
//  @tag.description Natural events and Landsat imagery
//
//  @tag.name        iss
//  @tag.description Space station telemetry
//
//  @tag.name        favorites
//  @tag.description Per-user bookmarks
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/astropulse/config"
	_ "github.com/guttosm/astropulse/docs" // swagger docs
	"github.com/guttosm/astropulse/internal/app"
	"github.com/guttosm/astropulse/internal/ingestion"
	"github.com/guttosm/astropulse/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the astropulse application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API.
//   - ingest:  Persists the NEO feed of the last --days calendar days.
//   - migrate: Applies the embedded database migrations and exits.
//
// Flags:
//   - --mode:     Execution mode ("api", "ingest" or "migrate"). Default: "api".
//   - --days:     Days to ingest, ending today (1-30). Default: 7.
//   - --parallel: Days fetched concurrently during ingestion. Default: 2.
//   - --force:    Re-ingest days already in the ingestion log.
//   - --port:     Port for the API server. Defaults to SERVER_PORT.
func main() {
	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "api", "Mode: api, ingest or migrate")
	days := flag.Int("days", 7, "Number of last calendar days to ingest (1-30)")
	parallel := flag.Int("parallel", 2, "How many days to ingest concurrently")
	force := flag.Bool("force", false, "Reprocess days even if already ingested (deletes that day's close approaches first)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "migrate":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := app.Migrate(ctx, db); err != nil {
			logger.L().Fatal().Err(err).Msg("migration failed")
		}

	case "ingest":
		logger.L().Info().Msg("running ingestion")
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		results, err := ingestion.Run(ctx, db, app.NewNASAClient(config.AppConfig), ingestion.Options{
			Days:     *days,
			Parallel: *parallel,
			Force:    *force,
		})
		if err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		objects, skipped := ingestionTotals(results)
		logger.L().Info().Int("days", len(results)).Int("objects", objects).Int("skipped", skipped).Msg("ingestion completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(context.Background(), server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

func ingestionTotals(results []ingestion.DayResult) (objects, skipped int) {
	for _, r := range results {
		objects += r.Objects
		skipped += r.Skipped
	}
	return objects, skipped
}
