package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"stormwatch/internal/models"
	"stormwatch/internal/repository"
)

type fakeDirectory struct {
	station *models.Station
	err     error
	lookups int
}

func (f *fakeDirectory) Lookup(ctx context.Context, stationID int64, passkey string) (*models.Station, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	return f.station, nil
}

type insertedReading struct {
	reading models.Reading
	at      time.Time
}

type fakeStore struct {
	inserts []insertedReading
	err     error
}

func (f *fakeStore) Insert(ctx context.Context, reading models.Reading, at time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.inserts = append(f.inserts, insertedReading{reading: reading, at: at})
	return nil
}

func newTestIngest(dir *fakeDirectory, store *fakeStore, source *fakeLastReportSource, now time.Time) *IngestService {
	limiter := NewRateLimiter(source, nil, time.Hour, zap.NewNop())
	svc := NewIngestService(dir, store, limiter, time.UTC, zap.NewNop())
	svc.clock = func() time.Time { return now }
	return svc
}

func TestIngestAccepted(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dir := &fakeDirectory{station: &models.Station{ID: 5, Passkey: "abc"}}
	store := &fakeStore{}
	svc := newTestIngest(dir, store, &fakeLastReportSource{}, now)

	reading, err := svc.Ingest(context.Background(), validReport())
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if reading.Temperature != 72.5 {
		t.Errorf("Temperature = %v; want 72.5", reading.Temperature)
	}
	if len(store.inserts) != 1 {
		t.Fatalf("inserts = %d; want 1", len(store.inserts))
	}
	if !store.inserts[0].at.Equal(now) {
		t.Errorf("insert at = %v; want server clock %v", store.inserts[0].at, now)
	}
}

func TestIngestMissingFieldSkipsEverything(t *testing.T) {
	dir := &fakeDirectory{station: &models.Station{ID: 5}}
	store := &fakeStore{}
	svc := newTestIngest(dir, store, &fakeLastReportSource{}, time.Now())

	raw := validReport()
	raw.Humidity = ""
	_, err := svc.Ingest(context.Background(), raw)
	if reason, ok := RejectReasonOf(err); !ok || reason != ReasonMissingFields {
		t.Fatalf("reason = %v (reject=%v); want %v", reason, ok, ReasonMissingFields)
	}
	if dir.lookups != 0 {
		t.Errorf("lookups = %d; want 0 (presence check short-circuits)", dir.lookups)
	}
	if len(store.inserts) != 0 {
		t.Errorf("inserts = %d; want 0", len(store.inserts))
	}
}

func TestIngestUnknownStationAndWrongPasskeyLookAlike(t *testing.T) {
	store := &fakeStore{}
	var messages []string
	for _, name := range []string{"unknown station id", "wrong passkey"} {
		t.Run(name, func(t *testing.T) {
			dir := &fakeDirectory{err: repository.ErrStationNotFound}
			svc := newTestIngest(dir, store, &fakeLastReportSource{}, time.Now())

			_, err := svc.Ingest(context.Background(), validReport())
			reason, ok := RejectReasonOf(err)
			if !ok || reason != ReasonUnauthorized {
				t.Fatalf("reason = %v (reject=%v); want %v", reason, ok, ReasonUnauthorized)
			}
			messages = append(messages, err.Error())
		})
	}
	if len(messages) == 2 && messages[0] != messages[1] {
		t.Errorf("messages differ (%q vs %q); both causes must be indistinguishable", messages[0], messages[1])
	}
	if len(store.inserts) != 0 {
		t.Errorf("inserts = %d; want 0", len(store.inserts))
	}
}

func TestIngestNaNReadingNeverPersisted(t *testing.T) {
	dir := &fakeDirectory{station: &models.Station{ID: 5, Passkey: "abc"}}
	store := &fakeStore{}
	svc := newTestIngest(dir, store, &fakeLastReportSource{}, time.Now())

	raw := validReport()
	raw.Temperature = "NaN"
	_, err := svc.Ingest(context.Background(), raw)
	reason, ok := RejectReasonOf(err)
	if !ok || reason != ReasonMissingFields {
		t.Fatalf("reason = %v (reject=%v); want %v", reason, ok, ReasonMissingFields)
	}
	if len(store.inserts) != 0 {
		t.Errorf("inserts = %d; want 0 (NaN must never reach the store)", len(store.inserts))
	}
}

func TestIngestOutOfRange(t *testing.T) {
	dir := &fakeDirectory{station: &models.Station{ID: 5}}
	store := &fakeStore{}
	svc := newTestIngest(dir, store, &fakeLastReportSource{}, time.Now())

	raw := validReport()
	raw.Temperature = "300"
	raw.Humidity = "150"
	_, err := svc.Ingest(context.Background(), raw)
	reason, ok := RejectReasonOf(err)
	if !ok || reason != ReasonOutOfRange {
		t.Fatalf("reason = %v (reject=%v); want %v", reason, ok, ReasonOutOfRange)
	}
	if !strings.Contains(err.Error(), "Temperature") || !strings.Contains(err.Error(), "Humidity") {
		t.Errorf("message %q should mention every violation", err.Error())
	}
	if len(store.inserts) != 0 {
		t.Errorf("inserts = %d; want 0", len(store.inserts))
	}
}

func TestIngestTooSoonAfterAccept(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dir := &fakeDirectory{station: &models.Station{ID: 5, Passkey: "abc"}}
	store := &fakeStore{}
	source := &fakeLastReportSource{}
	svc := newTestIngest(dir, store, source, now)

	if _, err := svc.Ingest(context.Background(), validReport()); err != nil {
		t.Fatalf("first Ingest: %v", err)
	}

	// The store now holds the accepted reading; ten minutes later the same
	// station reports again.
	source.last = now
	source.ok = true
	svc.clock = func() time.Time { return now.Add(10 * time.Minute) }

	_, err := svc.Ingest(context.Background(), validReport())
	reason, ok := RejectReasonOf(err)
	if !ok || reason != ReasonTooSoon {
		t.Fatalf("reason = %v (reject=%v); want %v", reason, ok, ReasonTooSoon)
	}
	if len(store.inserts) != 1 {
		t.Errorf("inserts = %d; want 1 (rejected report must not insert)", len(store.inserts))
	}
}

func TestIngestPersistenceFailure(t *testing.T) {
	dir := &fakeDirectory{station: &models.Station{ID: 5}}
	store := &fakeStore{err: errors.New("insert reading: connection refused")}
	svc := newTestIngest(dir, store, &fakeLastReportSource{}, time.Now())

	_, err := svc.Ingest(context.Background(), validReport())
	if err == nil {
		t.Fatal("Ingest: expected error")
	}
	if _, ok := RejectReasonOf(err); ok {
		t.Fatalf("persistence failure should not be a reject: %v", err)
	}
}
