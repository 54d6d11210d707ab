package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stormwatch/internal/config"
	"stormwatch/internal/db"
	httpserver "stormwatch/internal/http"
	"stormwatch/internal/http/handlers"
	redisstore "stormwatch/internal/redis"
	"stormwatch/internal/repository"
	"stormwatch/internal/service"
)

// App wires stormwatch dependencies.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	// Redis is a fast path only; without it the rate limiter reads the
	// database on every check.
	var redisClient *redis.Client
	var lastReportCache service.LastReportCache
	if cfg.Redis.Addr != "" {
		redisClient, err = redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		lastReportCache = redisstore.NewLastReportStore(redisClient, cfg.MinInterval(), loc)
	}

	stationRepo := repository.NewStationRepository(sqlDB)
	readingRepo := repository.NewReadingRepository(sqlDB, loc)

	limiter := service.NewRateLimiter(readingRepo, lastReportCache, cfg.MinInterval(), logger)
	ingestService := service.NewIngestService(stationRepo, readingRepo, limiter, loc, logger)
	seriesService := service.NewSeriesService(readingRepo, loc, logger)

	routes := httpserver.Routes{
		Report:   handlers.NewReportHandler(ingestService, logger),
		Series:   handlers.NewSeriesHandler(seriesService, logger),
		Stations: handlers.NewStationsHandler(stationRepo, logger),
		Latest:   handlers.NewLatestHandler(seriesService, logger),
		Health:   handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
