package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	Report   http.HandlerFunc
	Series   http.HandlerFunc
	Stations http.HandlerFunc
	Latest   http.HandlerFunc
	Health   http.HandlerFunc
}

// NewRouter registers endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Report != nil {
		mux.Handle("/api/weather/report", method(http.MethodPost, routes.Report))
	}
	if routes.Series != nil {
		mux.Handle("/api/weather/series", method(http.MethodPost, routes.Series))
	}
	if routes.Stations != nil {
		mux.Handle("/api/weather/stations", method(http.MethodGet, routes.Stations))
	}
	if routes.Latest != nil {
		mux.Handle("/api/weather/latest", method(http.MethodGet, routes.Latest))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
