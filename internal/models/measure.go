package models

// Measure names one charted numeric field of a reading.
type Measure string

// Charted measures. The name doubles as the weather_data column name.
const (
	MeasureTemperature   Measure = "temperature"
	MeasureHumidity      Measure = "humidity"
	MeasurePressure      Measure = "pressure"
	MeasureWindSpeed     Measure = "wind_speed"
	MeasurePrecipitation Measure = "precipitation"
)

var measures = map[Measure]bool{
	MeasureTemperature:   true,
	MeasureHumidity:      true,
	MeasurePressure:      true,
	MeasureWindSpeed:     true,
	MeasurePrecipitation: true,
}

// ParseMeasure validates a measure name from a request.
func ParseMeasure(name string) (Measure, bool) {
	m := Measure(name)
	return m, measures[m]
}

// Column returns the weather_data column holding this measure.
func (m Measure) Column() string {
	return string(m)
}
