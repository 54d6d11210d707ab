package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"stormwatch/internal/models"
)

type fakeReadingSource struct {
	rows       []models.ReadingRow
	rowsErr    error
	latest     *models.StoredReading
	latestErr  error
	gotMeasure models.Measure
	gotFrom    time.Time
	gotTo      time.Time
}

func (f *fakeReadingSource) Window(ctx context.Context, stationID int64, measure models.Measure, from, to time.Time) ([]models.ReadingRow, error) {
	f.gotMeasure = measure
	f.gotFrom = from
	f.gotTo = to
	return f.rows, f.rowsErr
}

func (f *fakeReadingSource) Latest(ctx context.Context, stationID int64) (*models.StoredReading, error) {
	return f.latest, f.latestErr
}

func newTestSeries(source *fakeReadingSource, now time.Time) *SeriesService {
	svc := NewSeriesService(source, time.UTC, zap.NewNop())
	svc.clock = func() time.Time { return now }
	return svc
}

func TestSeriesQueryUnknownMeasure(t *testing.T) {
	svc := newTestSeries(&fakeReadingSource{}, time.Now())

	_, err := svc.Query(context.Background(), 5, "dew_point", "24h")
	reason, ok := RejectReasonOf(err)
	if !ok || reason != ReasonInvalidMeasure {
		t.Fatalf("reason = %v (reject=%v); want %v", reason, ok, ReasonInvalidMeasure)
	}
}

func TestSeriesQueryUnknownRange(t *testing.T) {
	svc := newTestSeries(&fakeReadingSource{}, time.Now())

	_, err := svc.Query(context.Background(), 5, "temperature", "fortnight")
	reason, ok := RejectReasonOf(err)
	if !ok || reason != ReasonInvalidRange {
		t.Fatalf("reason = %v (reject=%v); want %v", reason, ok, ReasonInvalidRange)
	}
}

func TestSeriesQueryEmptyWindowIsNotAnError(t *testing.T) {
	svc := newTestSeries(&fakeReadingSource{}, time.Now())

	points, err := svc.Query(context.Background(), 5, "temperature", "24h")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("points = %v; want empty", points)
	}
}

func TestSeriesQueryWindowBounds(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	source := &fakeReadingSource{}
	svc := newTestSeries(source, now)

	if _, err := svc.Query(context.Background(), 5, "wind_speed", "7d"); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if source.gotMeasure != models.MeasureWindSpeed {
		t.Errorf("measure = %v; want %v", source.gotMeasure, models.MeasureWindSpeed)
	}
	if !source.gotTo.Equal(now) {
		t.Errorf("to = %v; want now %v", source.gotTo, now)
	}
	if want := now.Add(-7 * 24 * time.Hour); !source.gotFrom.Equal(want) {
		t.Errorf("from = %v; want %v", source.gotFrom, want)
	}
}

func TestSeriesQueryAssemblesInOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	source := &fakeReadingSource{rows: []models.ReadingRow{
		{DateTime: "2026-03-01 10:00:00", Value: "70"},
		{DateTime: "bogus", Value: "71"},
		{DateTime: "2026-03-01 12:00:00", Value: "72.5"},
	}}
	svc := newTestSeries(source, now)

	points, err := svc.Query(context.Background(), 5, "temperature", "24h")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("points = %d; want 2", len(points))
	}
	if points[1].Value != 72.5 || !points[1].Timestamp.Equal(now) {
		t.Errorf("last point = %+v; want value 72.5 at %v", points[1], now)
	}
}

func TestSeriesQueryStoreFailure(t *testing.T) {
	source := &fakeReadingSource{rowsErr: errors.New("db down")}
	svc := newTestSeries(source, time.Now())

	_, err := svc.Query(context.Background(), 5, "temperature", "24h")
	if err == nil {
		t.Fatal("Query: expected error")
	}
	if _, ok := RejectReasonOf(err); ok {
		t.Fatalf("store failure should not be a reject: %v", err)
	}
}

func TestSeriesLatest(t *testing.T) {
	latest := &models.StoredReading{StationID: 5, DateTime: "2026-03-01 12:00:00", Temperature: 72.5}
	svc := newTestSeries(&fakeReadingSource{latest: latest}, time.Now())

	got, err := svc.Latest(context.Background(), 5)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got == nil || got.Temperature != 72.5 {
		t.Errorf("latest = %+v; want temperature 72.5", got)
	}

	empty := newTestSeries(&fakeReadingSource{}, time.Now())
	got, err = empty.Latest(context.Background(), 5)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got != nil {
		t.Errorf("latest = %+v; want nil for silent station", got)
	}
}
