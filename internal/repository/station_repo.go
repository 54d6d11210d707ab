package repository

import (
	"context"
	"database/sql"
	"errors"

	"stormwatch/internal/models"
)

// ErrStationNotFound covers both an unknown station id and a wrong passkey.
// Callers must not be able to tell the two apart.
var ErrStationNotFound = errors.New("station not found")

// StationRepository looks up registered stations.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository returns repository.
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// Lookup matches a station by id and passkey in a single query, so a miss
// never reveals which of the two was wrong.
func (r *StationRepository) Lookup(ctx context.Context, stationID int64, passkey string) (*models.Station, error) {
	const query = `
		SELECT station_id, passkey, station_name, created_at
		FROM weather_stations
		WHERE station_id = $1 AND passkey = $2
	`
	var station models.Station
	err := r.db.QueryRowContext(ctx, query, stationID, passkey).Scan(
		&station.ID,
		&station.Passkey,
		&station.Name,
		&station.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &station, nil
}

// List returns all stations for UI population, ordered by name.
func (r *StationRepository) List(ctx context.Context) ([]models.StationInfo, error) {
	const query = `
		SELECT station_id, station_name
		FROM weather_stations
		ORDER BY station_name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.StationInfo
	for rows.Next() {
		var s models.StationInfo
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stations, nil
}
