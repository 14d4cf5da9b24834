package devapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
)

// Handler contains HTTP handlers for the dev API
type Handler struct {
	store  *Store
	logger *logger.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(store *Store, log *logger.Logger) *Handler {
	return &Handler{store: store, logger: log}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, err *Error) {
	respondJSON(w, err.Status, map[string]string{"message": err.Message, "status": "error"})
}

func respondSuccess(w http.ResponseWriter, body map[string]interface{}) {
	body["status"] = "success"
	respondJSON(w, http.StatusOK, body)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, &Error{Status: http.StatusBadRequest, Message: "Invalid request body"})
		return false
	}
	return true
}

// AddCity handles POST /api/intercity
func (h *Handler) AddCity(w http.ResponseWriter, r *http.Request) {
	var req models.City
	if !decode(w, r, &req) {
		return
	}
	id, err := h.store.AddCity(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "City added successfully", "id": id})
}

// AddAirplane handles POST /api/airplanes
func (h *Handler) AddAirplane(w http.ResponseWriter, r *http.Request) {
	var req models.Aircraft
	if !decode(w, r, &req) {
		return
	}
	if err := h.store.AddAirplane(req); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "Airplane added successfully", "id": req.SerialNumber})
}

// AddStaff handles POST /api/staff
func (h *Handler) AddStaff(w http.ResponseWriter, r *http.Request) {
	var req models.Staff
	if !decode(w, r, &req) {
		return
	}
	id, err := h.store.AddStaff(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "Staff and contact added successfully", "id": id})
}

// AddPilot handles POST /api/pilot
func (h *Handler) AddPilot(w http.ResponseWriter, r *http.Request) {
	var req models.Pilot
	if !decode(w, r, &req) {
		return
	}
	if err := h.store.AddPilot(req); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "Pilot added successfully", "id": req.StaffID})
}

// AddFlight handles POST /api/flight
func (h *Handler) AddFlight(w http.ResponseWriter, r *http.Request) {
	var req models.FlightForm
	if !decode(w, r, &req) {
		return
	}
	if err := h.store.AddFlight(req); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{
		"message":   "Flight and pilot added successfully",
		"flightNum": req.FlightNumber,
		"pilotID":   req.PilotID,
	})
}

// AddCrew handles POST /api/flightcrew
func (h *Handler) AddCrew(w http.ResponseWriter, r *http.Request) {
	var req models.CrewAssignment
	if !decode(w, r, &req) {
		return
	}
	if err := h.store.AddCrew(req); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{
		"message":   "Crew member added to flight successfully",
		"staffID":   req.StaffID,
		"flightNum": req.FlightNum,
	})
}

// AddFlightPath handles POST /api/flightpath
func (h *Handler) AddFlightPath(w http.ResponseWriter, r *http.Request) {
	var req models.FlightPath
	if !decode(w, r, &req) {
		return
	}
	if err := h.store.AddFlightPath(req); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{
		"message":   "Flight path added successfully",
		"flightNum": req.FlightNum,
		"cityID":    req.CityID,
	})
}

// AddPassenger handles POST /api/passenger
func (h *Handler) AddPassenger(w http.ResponseWriter, r *http.Request) {
	var req models.Traveler
	if !decode(w, r, &req) {
		return
	}
	id, err := h.store.AddPassenger(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "Passenger and contact added successfully", "id": id})
}

// AddBooking handles POST /api/booking
func (h *Handler) AddBooking(w http.ResponseWriter, r *http.Request) {
	var req models.Booking
	if !decode(w, r, &req) {
		return
	}
	if err := h.store.AddBooking(req); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{
		"message":     "Booking added successfully",
		"passengerID": req.PassengerID,
		"flightNum":   req.FlightNum,
	})
}

// GetBookings handles GET /api/bookings/{passengerID}
func (h *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.Bookings(mux.Vars(r)["passengerID"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"bookings": rows})
}

// GetFlights handles GET /api/flights
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.store.Flights(q.Get("origin"), q.Get("destination"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"flights": rows})
}

// SearchFlights handles GET /api/flights/search/{flightNumber}
func (h *Handler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.SearchFlights(mux.Vars(r)["flightNumber"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"flights": rows})
}

// GetCrewFlights handles GET /api/flightcrew/{crewID}
func (h *Handler) GetCrewFlights(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.CrewFlights(mux.Vars(r)["crewID"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"flights": rows})
}

// DeleteFlight handles DELETE /api/flight/{flightNumber}
func (h *Handler) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["flightNumber"]
	number, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, &Error{Status: http.StatusNotFound, Message: fmt.Sprintf("Flight number %s is not a number", raw)})
		return
	}
	h.store.DeleteFlight(number)
	respondSuccess(w, map[string]interface{}{
		"message": fmt.Sprintf("Flight number %d and its dependencies deleted successfully", number),
	})
}

// Login handles POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if !decode(w, r, &req) {
		return
	}
	if err := h.store.Login(req); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, map[string]interface{}{"message": "Login successful", "username": req.Username})
}
