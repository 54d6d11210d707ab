package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stormwatch/internal/models"
)

// ReadingRepository persists and queries weather readings. Timestamps are
// stored as zone-less local wall clock in the station timezone, so every
// read and write goes through the same layout and location.
type ReadingRepository struct {
	db  *sql.DB
	loc *time.Location
}

// NewReadingRepository returns repository.
func NewReadingRepository(db *sql.DB, loc *time.Location) *ReadingRepository {
	return &ReadingRepository{db: db, loc: loc}
}

// Insert appends one reading with the server-assigned timestamp. Rows are
// never updated or deleted.
func (r *ReadingRepository) Insert(ctx context.Context, reading models.Reading, at time.Time) error {
	const query = `
		INSERT INTO weather_data (station_id, date_time, temperature, humidity, pressure, wind_speed, precipitation)
		VALUES ($1, $2::timestamp, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		reading.StationID,
		at.In(r.loc).Format(models.DateTimeLayout),
		reading.Temperature,
		reading.Humidity,
		reading.Pressure,
		reading.WindSpeed,
		reading.Precipitation,
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// LastReportTime returns the newest stored timestamp for a station, with
// ok=false when the station has never reported.
func (r *ReadingRepository) LastReportTime(ctx context.Context, stationID int64) (time.Time, bool, error) {
	const query = `
		SELECT to_char(date_time, 'YYYY-MM-DD HH24:MI:SS')
		FROM weather_data
		WHERE station_id = $1
		ORDER BY date_time DESC
		LIMIT 1
	`
	var raw string
	err := r.db.QueryRowContext(ctx, query, stationID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	last, err := time.ParseInLocation(models.DateTimeLayout, raw, r.loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse last report time %q: %w", raw, err)
	}
	return last, true, nil
}

// Window returns rows for one measure inside [from, to], ascending. The
// timestamp and value come back as stored text; the assembler owns parsing.
func (r *ReadingRepository) Window(ctx context.Context, stationID int64, measure models.Measure, from, to time.Time) ([]models.ReadingRow, error) {
	// measure.Column is restricted to the enum, never raw request input.
	query := fmt.Sprintf(`
		SELECT to_char(date_time, 'YYYY-MM-DD HH24:MI:SS'), %s::text
		FROM weather_data
		WHERE station_id = $1
		  AND date_time >= $2::timestamp
		  AND date_time <= $3::timestamp
		ORDER BY date_time ASC
	`, measure.Column())

	rows, err := r.db.QueryContext(ctx, query,
		stationID,
		from.In(r.loc).Format(models.DateTimeLayout),
		to.In(r.loc).Format(models.DateTimeLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ReadingRow
	for rows.Next() {
		var row models.ReadingRow
		if err := rows.Scan(&row.DateTime, &row.Value); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Latest returns the most recent full reading for a station, nil when the
// station has never reported.
func (r *ReadingRepository) Latest(ctx context.Context, stationID int64) (*models.StoredReading, error) {
	const query = `
		SELECT station_id, to_char(date_time, 'YYYY-MM-DD HH24:MI:SS'), temperature, humidity, pressure, wind_speed, precipitation
		FROM weather_data
		WHERE station_id = $1
		ORDER BY date_time DESC
		LIMIT 1
	`
	var reading models.StoredReading
	err := r.db.QueryRowContext(ctx, query, stationID).Scan(
		&reading.StationID,
		&reading.DateTime,
		&reading.Temperature,
		&reading.Humidity,
		&reading.Pressure,
		&reading.WindSpeed,
		&reading.Precipitation,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}
