package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"stormwatch/internal/models"
)

// AssemblePoints converts stored rows into chart-ready points, preserving
// order. A row whose timestamp or value fails to parse is dropped with a
// warning; it never aborts the rest of the series. Pure function of its
// input: the same rows always produce the same points.
func AssemblePoints(rows []models.ReadingRow, loc *time.Location, logger *zap.Logger) []models.SeriesPoint {
	points := make([]models.SeriesPoint, 0, len(rows))
	for _, row := range rows {
		ts, err := time.ParseInLocation(models.DateTimeLayout, row.DateTime, loc)
		if err != nil {
			logger.Warn("dropping point with invalid timestamp",
				zap.String("date_time", row.DateTime),
				zap.Error(err),
			)
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row.Value), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			logger.Warn("dropping point with invalid value",
				zap.String("date_time", row.DateTime),
				zap.String("value", row.Value),
			)
			continue
		}
		points = append(points, models.SeriesPoint{Timestamp: ts, Value: value})
	}
	return points
}
