package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"stormwatch/internal/models"
)

const missingFieldsMessage = "Bad Request: Missing required fields"

// ParseReport is the parse boundary for inbound telemetry. Every field must
// be present and numeric; any absent or unparseable field rejects the whole
// report before range rules are looked at.
func ParseReport(raw models.RawReport) (models.Reading, error) {
	var reading models.Reading

	stationID, err := strconv.ParseInt(strings.TrimSpace(raw.StationID), 10, 64)
	if err != nil {
		return models.Reading{}, reject(ReasonMissingFields, missingFieldsMessage)
	}
	if strings.TrimSpace(raw.Passkey) == "" {
		return models.Reading{}, reject(ReasonMissingFields, missingFieldsMessage)
	}

	fields := []struct {
		raw string
		dst *float64
	}{
		{raw.Temperature, &reading.Temperature},
		{raw.Humidity, &reading.Humidity},
		{raw.Pressure, &reading.Pressure},
		{raw.WindSpeed, &reading.WindSpeed},
		{raw.RainInches, &reading.Precipitation},
	}
	for _, f := range fields {
		value, err := strconv.ParseFloat(strings.TrimSpace(f.raw), 64)
		// NaN and ±Inf satisfy ParseFloat but no range comparison, so they
		// count as unparseable here rather than slipping past every bound.
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return models.Reading{}, reject(ReasonMissingFields, missingFieldsMessage)
		}
		*f.dst = value
	}

	reading.StationID = stationID
	return reading, nil
}

// CheckRanges validates a reading against physical bounds and collects every
// violation so the station operator sees all problems at once. An empty
// result means the reading is acceptable.
func CheckRanges(r models.Reading) []string {
	var violations []string
	if r.Temperature < -50 || r.Temperature > 150 {
		violations = append(violations, "Temperature out of range (-50 to 150 °F)")
	}
	if r.Humidity < 0 || r.Humidity > 100 {
		violations = append(violations, "Humidity out of range (0 to 100 %)")
	}
	// Pressure 0 means "no sensor" and skips the range rule.
	if r.Pressure != 0 && (r.Pressure < 800 || r.Pressure > 1100) {
		violations = append(violations, "Pressure out of range (0 or 800 to 1100 hPa)")
	}
	if r.WindSpeed < 0 || r.WindSpeed > 200 {
		violations = append(violations, "Wind speed out of range (0 to 200 mph)")
	}
	if r.Precipitation < 0 || r.Precipitation > 100 {
		violations = append(violations, "Precipitation out of range (0 to 100 inches)")
	}
	return violations
}

func rangeViolationError(violations []string) error {
	return reject(ReasonOutOfRange, fmt.Sprintf("Data out of range: %s", strings.Join(violations, ", ")))
}
