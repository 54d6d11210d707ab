package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const tooSoonMessage = "Post too soon. Please wait an hour."

// LastReportSource supplies the most recent accepted report time for a
// station from authoritative storage.
type LastReportSource interface {
	LastReportTime(ctx context.Context, stationID int64) (time.Time, bool, error)
}

// LastReportCache is an optional fast path in front of the source. Cache
// failures are never fatal.
type LastReportCache interface {
	Get(ctx context.Context, stationID int64) (time.Time, bool, error)
	Save(ctx context.Context, stationID int64, at time.Time) error
}

// RateLimiter enforces the minimum gap between accepted reports per station.
type RateLimiter struct {
	source   LastReportSource
	cache    LastReportCache
	interval time.Duration
	logger   *zap.Logger
}

// NewRateLimiter builds limiter. cache may be nil.
func NewRateLimiter(source LastReportSource, cache LastReportCache, interval time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		source:   source,
		cache:    cache,
		interval: interval,
		logger:   logger,
	}
}

// Check rejects a report arriving less than the interval after the station's
// last accepted one. Exactly the interval is allowed. A station with no
// prior reading always passes. Comparison is elapsed wall-clock time between
// instants; calendar fields are never consulted.
func (l *RateLimiter) Check(ctx context.Context, stationID int64, now time.Time) error {
	last, ok, err := l.cachedLast(ctx, stationID)
	if err != nil {
		l.logger.Warn("last report cache read failed", zap.Int64("station_id", stationID), zap.Error(err))
		ok = false
	}
	if !ok {
		last, ok, err = l.source.LastReportTime(ctx, stationID)
		if err != nil {
			return fmt.Errorf("load last report time: %w", err)
		}
	}
	if !ok {
		return nil
	}
	if now.Sub(last) < l.interval {
		return reject(ReasonTooSoon, tooSoonMessage)
	}
	return nil
}

// Observe records an accepted report so the next Check can skip the source.
func (l *RateLimiter) Observe(ctx context.Context, stationID int64, acceptedAt time.Time) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Save(ctx, stationID, acceptedAt); err != nil {
		l.logger.Warn("last report cache write failed", zap.Int64("station_id", stationID), zap.Error(err))
	}
}

func (l *RateLimiter) cachedLast(ctx context.Context, stationID int64) (time.Time, bool, error) {
	if l.cache == nil {
		return time.Time{}, false, nil
	}
	return l.cache.Get(ctx, stationID)
}
