package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"stormwatch/internal/models"
)

// StationLister supplies the station listing.
type StationLister interface {
	List(ctx context.Context) ([]models.StationInfo, error)
}

// NewStationsHandler returns the GET /api/weather/stations handler used to
// populate the station dropdown.
func NewStationsHandler(lister StationLister, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stations, err := lister.List(r.Context())
		if err != nil {
			logger.Error("station listing failed", zap.Error(err))
			writeFailure(w, http.StatusInternalServerError, "Failed to fetch weather stations")
			return
		}
		if stations == nil {
			stations = []models.StationInfo{}
		}
		writeSuccess(w, http.StatusOK, stations)
	}
}
