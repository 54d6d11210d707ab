package models

import "time"

// Station is a registered physical device. Rows are created out of band;
// this service only looks them up.
type Station struct {
	ID        int64     `db:"station_id" json:"station_id"`
	Passkey   string    `db:"passkey" json:"-"`
	Name      string    `db:"station_name" json:"station_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// StationInfo is the listing shape used to populate UI dropdowns.
type StationInfo struct {
	ID   int64  `json:"station_id"`
	Name string `json:"station_name"`
}
