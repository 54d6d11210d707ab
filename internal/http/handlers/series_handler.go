package handlers

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"stormwatch/internal/models"
	"stormwatch/internal/service"
)

// SeriesProvider answers chart queries.
type SeriesProvider interface {
	Query(ctx context.Context, stationID int64, measure, timeRange string) ([]models.SeriesPoint, error)
	Latest(ctx context.Context, stationID int64) (*models.StoredReading, error)
}

// seriesPayload is the consumer contract: equal-length labels and values,
// ascending by label. Empty arrays mean "no data available".
type seriesPayload struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// NewSeriesHandler returns the POST /api/weather/series handler.
func NewSeriesHandler(svc SeriesProvider, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeFailure(w, http.StatusBadRequest, "Bad Request: invalid form data")
			return
		}

		stationID, err := strconv.ParseInt(r.PostFormValue("station_id"), 10, 64)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "Invalid station ID")
			return
		}

		points, err := svc.Query(r.Context(), stationID, r.PostFormValue("measure"), r.PostFormValue("time_range"))
		if err != nil {
			if reason, ok := service.RejectReasonOf(err); ok {
				writeFailure(w, rejectStatus(reason), err.Error())
				return
			}
			logger.Error("series query failed", zap.Int64("station_id", stationID), zap.Error(err))
			writeFailure(w, http.StatusInternalServerError, "Failed to fetch weather data")
			return
		}

		payload := seriesPayload{
			Labels: make([]string, 0, len(points)),
			Values: make([]float64, 0, len(points)),
		}
		for _, p := range points {
			payload.Labels = append(payload.Labels, p.Timestamp.Format(models.DateTimeLayout))
			payload.Values = append(payload.Values, p.Value)
		}
		writeSuccess(w, http.StatusOK, payload)
	}
}

// NewLatestHandler returns the GET /api/weather/latest handler. A station
// with no readings yields data: null.
func NewLatestHandler(svc SeriesProvider, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stationID, err := strconv.ParseInt(r.URL.Query().Get("station_id"), 10, 64)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "Invalid station ID")
			return
		}

		reading, err := svc.Latest(r.Context(), stationID)
		if err != nil {
			logger.Error("latest reading query failed", zap.Int64("station_id", stationID), zap.Error(err))
			writeFailure(w, http.StatusInternalServerError, "Failed to fetch weather data")
			return
		}
		writeSuccess(w, http.StatusOK, reading)
	}
}
