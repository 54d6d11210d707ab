package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stormwatch/internal/models"
)

// LastReportStore caches the last accepted report time per station so the
// rate limiter can usually skip the database read. Entries expire after the
// reporting interval, at which point any report is allowed anyway.
type LastReportStore struct {
	client *redis.Client
	ttl    time.Duration
	loc    *time.Location
}

// NewLastReportStore returns a redis-backed store.
func NewLastReportStore(client *redis.Client, ttl time.Duration, loc *time.Location) *LastReportStore {
	return &LastReportStore{client: client, ttl: ttl, loc: loc}
}

func (s *LastReportStore) key(stationID int64) string {
	return fmt.Sprintf("stations:last-report:%d", stationID)
}

// Get returns the cached last report time, reporting a miss as ok=false.
func (s *LastReportStore) Get(ctx context.Context, stationID int64) (time.Time, bool, error) {
	result, err := s.client.Get(ctx, s.key(stationID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	last, err := time.ParseInLocation(models.DateTimeLayout, result, s.loc)
	if err != nil {
		return time.Time{}, false, err
	}
	return last, true, nil
}

// Save caches the last accepted report time.
func (s *LastReportStore) Save(ctx context.Context, stationID int64, at time.Time) error {
	value := at.In(s.loc).Format(models.DateTimeLayout)
	return s.client.Set(ctx, s.key(stationID), value, s.ttl).Err()
}
