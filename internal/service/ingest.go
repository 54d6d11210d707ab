package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"stormwatch/internal/models"
	"stormwatch/internal/repository"
)

// StationDirectory authenticates report senders.
type StationDirectory interface {
	Lookup(ctx context.Context, stationID int64, passkey string) (*models.Station, error)
}

// ReadingStore persists accepted readings.
type ReadingStore interface {
	Insert(ctx context.Context, reading models.Reading, at time.Time) error
}

// IngestService runs the ingestion pipeline: parse, authenticate, validate
// ranges, rate limit, persist. Each step short-circuits on failure, so a
// rejected report never touches the weather_data table.
//
// The rate-limit read and the insert are not one atomic operation: two
// reports for the same station arriving in the same instant can both pass
// Check before either inserts. Accepted as-is; the store is treated as a
// plain relational table with no exclusion constraint.
type IngestService struct {
	stations StationDirectory
	readings ReadingStore
	limiter  *RateLimiter
	loc      *time.Location
	clock    func() time.Time
	logger   *zap.Logger
}

// NewIngestService builds service.
func NewIngestService(
	stations StationDirectory,
	readings ReadingStore,
	limiter *RateLimiter,
	loc *time.Location,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		stations: stations,
		readings: readings,
		limiter:  limiter,
		loc:      loc,
		clock:    time.Now,
		logger:   logger,
	}
}

// Ingest handles one raw report. On success exactly one row is inserted with
// the server-assigned timestamp; every failure path inserts nothing.
func (s *IngestService) Ingest(ctx context.Context, raw models.RawReport) (models.Reading, error) {
	reading, err := ParseReport(raw)
	if err != nil {
		s.logger.Info("report rejected: missing fields", zap.String("station_id", raw.StationID))
		return models.Reading{}, err
	}

	log := s.logger.With(zap.Int64("station_id", reading.StationID))

	if _, err := s.stations.Lookup(ctx, reading.StationID, raw.Passkey); err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			log.Info("report rejected: unknown station or wrong passkey")
			return models.Reading{}, reject(ReasonUnauthorized, "Invalid station ID or passkey")
		}
		return models.Reading{}, fmt.Errorf("station lookup: %w", err)
	}

	if violations := CheckRanges(reading); len(violations) > 0 {
		log.Info("report rejected: out of range", zap.Strings("violations", violations))
		return models.Reading{}, rangeViolationError(violations)
	}

	now := s.clock().In(s.loc)
	if err := s.limiter.Check(ctx, reading.StationID, now); err != nil {
		if _, rejected := RejectReasonOf(err); rejected {
			log.Info("report rejected: too soon")
		}
		return models.Reading{}, err
	}

	if err := s.readings.Insert(ctx, reading, now); err != nil {
		log.Error("report insert failed", zap.Error(err))
		return models.Reading{}, err
	}
	s.limiter.Observe(ctx, reading.StationID, now)

	log.Info("report accepted", zap.Time("date_time", now))
	return reading, nil
}
