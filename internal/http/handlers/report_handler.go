package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"stormwatch/internal/models"
	"stormwatch/internal/service"
)

// Ingestor runs the ingestion pipeline for one raw report.
type Ingestor interface {
	Ingest(ctx context.Context, raw models.RawReport) (models.Reading, error)
}

// NewReportHandler returns the POST /api/weather/report handler. Stations
// submit form-encoded reports; every field arrives as text.
func NewReportHandler(svc Ingestor, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeFailure(w, http.StatusBadRequest, "Bad Request: invalid form data")
			return
		}

		raw := models.RawReport{
			StationID:   r.PostFormValue("station_id"),
			Passkey:     r.PostFormValue("passkey"),
			Temperature: r.PostFormValue("temperature"),
			Humidity:    r.PostFormValue("humidity"),
			Pressure:    r.PostFormValue("pressure"),
			WindSpeed:   r.PostFormValue("wind_speed"),
			RainInches:  r.PostFormValue("rain_inches"),
		}

		if _, err := svc.Ingest(r.Context(), raw); err != nil {
			if reason, ok := service.RejectReasonOf(err); ok {
				writeFailure(w, rejectStatus(reason), err.Error())
				return
			}
			logger.Error("ingest failed", zap.Error(err))
			writeFailure(w, http.StatusInternalServerError, "Failed to insert data")
			return
		}

		writeSuccess(w, http.StatusOK, "Data received successfully")
	}
}
