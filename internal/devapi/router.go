package devapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(h *Handler, log *logger.Logger) *mux.Router {
	r := mux.NewRouter()

	r.Use(corsMiddleware)
	r.Use(loggingMiddleware(log))

	api := r.PathPrefix("/api").Subrouter()

	// Session
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/passenger", h.AddPassenger).Methods(http.MethodPost, http.MethodOptions)

	// Flights
	api.HandleFunc("/flights", h.GetFlights).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/search/", h.SearchFlights).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/search/{flightNumber}", h.SearchFlights).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flight", h.AddFlight).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flight/{flightNumber}", h.DeleteFlight).Methods(http.MethodDelete, http.MethodOptions)

	// Bookings
	api.HandleFunc("/booking", h.AddBooking).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bookings/{passengerID}", h.GetBookings).Methods(http.MethodGet, http.MethodOptions)

	// Fleet and crew
	api.HandleFunc("/airplanes", h.AddAirplane).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/pilot", h.AddPilot).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/staff", h.AddStaff).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/intercity", h.AddCity).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flightcrew", h.AddCrew).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flightcrew/{crewID}", h.GetCrewFlights).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flightpath", h.AddFlightPath).Methods(http.MethodPost, http.MethodOptions)

	// Health check
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info("%s %s %d %s [%s]", r.Method, r.URL.Path, rec.status, time.Since(start), r.Header.Get("X-Request-ID"))
		})
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
