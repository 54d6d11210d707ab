package models

import "time"

// DateTimeLayout is the wall-clock format readings are stored and served in.
const DateTimeLayout = "2006-01-02 15:04:05"

// RawReport carries one inbound telemetry report exactly as received:
// every field is text until the parse boundary has seen it.
type RawReport struct {
	StationID   string
	Passkey     string
	Temperature string
	Humidity    string
	Pressure    string
	WindSpeed   string
	RainInches  string
}

// Reading is a typed, already-validated telemetry sample. Nothing downstream
// of the parse boundary handles raw strings.
type Reading struct {
	StationID     int64
	Temperature   float64
	Humidity      float64
	Pressure      float64
	WindSpeed     float64
	Precipitation float64
}

// StoredReading is one persisted row, as served by the latest-conditions
// endpoint. DateTime is station-local wall clock.
type StoredReading struct {
	StationID     int64   `json:"station_id"`
	DateTime      string  `json:"date_time"`
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	Pressure      float64 `json:"pressure"`
	WindSpeed     float64 `json:"wind_speed"`
	Precipitation float64 `json:"precipitation"`
}

// ReadingRow is the loosely-typed row handed from storage to the series
// assembler: timestamp and measure value as stored text.
type ReadingRow struct {
	DateTime string
	Value    string
}

// SeriesPoint is one chart-ready sample.
type SeriesPoint struct {
	Timestamp time.Time `json:"date_time"`
	Value     float64   `json:"value"`
}
