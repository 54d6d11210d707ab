package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"stormwatch/internal/models"
)

// ReadingSource supplies stored rows for series queries.
type ReadingSource interface {
	Window(ctx context.Context, stationID int64, measure models.Measure, from, to time.Time) ([]models.ReadingRow, error)
	Latest(ctx context.Context, stationID int64) (*models.StoredReading, error)
}

// Supported chart lookback windows, anchored to "now".
var lookbackWindows = map[string]time.Duration{
	"24h":  24 * time.Hour,
	"7d":   7 * 24 * time.Hour,
	"30d":  30 * 24 * time.Hour,
	"365d": 365 * 24 * time.Hour,
}

// SeriesService answers station/measure/time-range queries with chart-ready
// points.
type SeriesService struct {
	readings ReadingSource
	loc      *time.Location
	clock    func() time.Time
	logger   *zap.Logger
}

// NewSeriesService builds service.
func NewSeriesService(readings ReadingSource, loc *time.Location, logger *zap.Logger) *SeriesService {
	return &SeriesService{
		readings: readings,
		loc:      loc,
		clock:    time.Now,
		logger:   logger,
	}
}

// Query returns the ordered series for one station, measure and lookback
// window. No matching rows is a normal outcome and yields an empty series.
func (s *SeriesService) Query(ctx context.Context, stationID int64, measureName, rangeKey string) ([]models.SeriesPoint, error) {
	measure, ok := models.ParseMeasure(measureName)
	if !ok {
		return nil, reject(ReasonInvalidMeasure, fmt.Sprintf("Unknown measure %q", measureName))
	}
	window, ok := lookbackWindows[rangeKey]
	if !ok {
		return nil, reject(ReasonInvalidRange, fmt.Sprintf("Unknown time range %q", rangeKey))
	}

	now := s.clock().In(s.loc)
	from := now.Add(-window)

	rows, err := s.readings.Window(ctx, stationID, measure, from, now)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}

	points := AssemblePoints(rows, s.loc, s.logger)
	s.logger.Debug("series assembled",
		zap.Int64("station_id", stationID),
		zap.String("measure", string(measure)),
		zap.String("time_range", rangeKey),
		zap.Int("rows", len(rows)),
		zap.Int("points", len(points)),
	)
	return points, nil
}

// Latest returns the most recent stored reading for a station, nil when the
// station has never reported.
func (s *SeriesService) Latest(ctx context.Context, stationID int64) (*models.StoredReading, error) {
	reading, err := s.readings.Latest(ctx, stationID)
	if err != nil {
		return nil, fmt.Errorf("query latest reading: %w", err)
	}
	return reading, nil
}
