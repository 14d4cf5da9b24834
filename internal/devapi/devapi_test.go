package devapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
)

type response struct {
	Message  string      `json:"message"`
	Status   string      `json:"status"`
	ID       models.Key  `json:"id"`
	Username string      `json:"username"`
	Flights  []FlightRow `json:"flights"`
	Bookings []FlightRow `json:"bookings"`
}

func setupTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	log := logger.Discard()
	return NewRouter(NewHandler(NewStore(), log), log)
}

func do(t *testing.T, router http.Handler, method, path string, body interface{}) (int, response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

// seed creates staff "jsmith" as a B-rated pilot, plane SN1 rated C and flight 101.
func seed(t *testing.T, router http.Handler) {
	t.Helper()
	code, resp := do(t, router, http.MethodPost, "/api/staff", models.Staff{
		FirstName: "John", Surname: "Smith", Salary: "30000",
		HomeAddress: "h", WorkAddress: "w", HomePhoneNum: "1", WorkPhoneNum: "2",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, models.Key("jsmith"), resp.ID)

	code, _ = do(t, router, http.MethodPost, "/api/pilot", models.Pilot{StaffID: "jsmith", TypeRating: "B"})
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, router, http.MethodPost, "/api/airplanes", models.Aircraft{
		SerialNumber: "SN1", Manufacturer: "Airbus", ModelNumber: "A320", TypeRating: "C",
	})
	require.Equal(t, http.StatusOK, code)

	code, resp = do(t, router, http.MethodPost, "/api/flight", models.FlightForm{
		FlightNumber: "101", AircraftSerial: "SN1", Origin: "London", Destination: "Leeds",
		DepartureTime: "2024-05-01T09:00", ArrivalTime: "2024-05-01T10:30", PilotID: "jsmith",
	})
	require.Equal(t, http.StatusOK, code, resp.Message)
}

func TestStaffIDsAreUnique(t *testing.T) {
	router := setupTestRouter(t)
	staff := models.Staff{
		FirstName: "Jane", Surname: "Doe", Salary: "1",
		HomeAddress: "h", WorkAddress: "w", HomePhoneNum: "1", WorkPhoneNum: "2",
	}

	want := []models.Key{"jdoe", "jdoe1", "jdoe2"}
	for _, id := range want {
		code, resp := do(t, router, http.MethodPost, "/api/staff", staff)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, id, resp.ID)
	}
}

func TestRequiredFields(t *testing.T) {
	router := setupTestRouter(t)

	code, resp := do(t, router, http.MethodPost, "/api/airplanes", models.Aircraft{SerialNumber: "SN1"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "All fields are required", resp.Message)
	assert.Equal(t, "error", resp.Status)

	code, resp = do(t, router, http.MethodPost, "/api/login", models.Credentials{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Username and password are required", resp.Message)
}

func TestDuplicateAirplane(t *testing.T) {
	router := setupTestRouter(t)
	plane := models.Aircraft{SerialNumber: "SN1", Manufacturer: "Airbus", ModelNumber: "A320", TypeRating: "C"}

	code, _ := do(t, router, http.MethodPost, "/api/airplanes", plane)
	require.Equal(t, http.StatusOK, code)

	code, resp := do(t, router, http.MethodPost, "/api/airplanes", plane)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Airplane with this serial number already exists", resp.Message)
}

func TestPilotRatingMustCoverPlane(t *testing.T) {
	router := setupTestRouter(t)
	seed(t, router)

	code, _ := do(t, router, http.MethodPost, "/api/airplanes", models.Aircraft{
		SerialNumber: "SN2", Manufacturer: "Boeing", ModelNumber: "747", TypeRating: "A",
	})
	require.Equal(t, http.StatusOK, code)

	code, resp := do(t, router, http.MethodPost, "/api/flight", models.FlightForm{
		FlightNumber: "102", AircraftSerial: "SN2", Origin: "London", Destination: "Leeds",
		DepartureTime: "2024-05-01T09:00", ArrivalTime: "2024-05-01T10:30", PilotID: "jsmith",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Pilot rating B is not sufficient for Airplane rating A", resp.Message)
}

func TestPilotNeedsStaff(t *testing.T) {
	router := setupTestRouter(t)
	code, resp := do(t, router, http.MethodPost, "/api/pilot", models.Pilot{StaffID: "ghost", TypeRating: "A"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Staff ID ghost does not exist", resp.Message)
}

func TestFlightListings(t *testing.T) {
	router := setupTestRouter(t)

	code, resp := do(t, router, http.MethodGet, "/api/flights", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No flights found matching the criteria", resp.Message)

	seed(t, router)

	code, resp = do(t, router, http.MethodGet, "/api/flights?origin=London", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Flights, 1)
	assert.Equal(t, 101, resp.Flights[0].FlightNumber)
	assert.Equal(t, "2024-05-01T10:30", resp.Flights[0].ArrivalTime)

	code, _ = do(t, router, http.MethodGet, "/api/flights?destination=London", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = do(t, router, http.MethodGet, "/api/flights/search/", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Flights, 1)

	code, resp = do(t, router, http.MethodGet, "/api/flights/search/01", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Flights, 1)

	code, resp = do(t, router, http.MethodGet, "/api/flights/search/9", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No flights found matching flight number pattern 9", resp.Message)

	code, resp = do(t, router, http.MethodGet, "/api/flightcrew/jsmith", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Flights, 1)
}

func TestPassengerLoginAndBooking(t *testing.T) {
	router := setupTestRouter(t)
	seed(t, router)

	traveler := models.Traveler{
		Username: "alice", FirstName: "Alice", Surname: "A", Password: "pw",
		HomeAddress: "h", WorkAddress: "w", HomePhoneNumber: "1", WorkPhoneNumber: "2",
	}
	code, resp := do(t, router, http.MethodPost, "/api/passenger", traveler)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.Key("alice"), resp.ID)

	code, _ = do(t, router, http.MethodPost, "/api/passenger", traveler)
	assert.Equal(t, http.StatusInternalServerError, code)

	code, resp = do(t, router, http.MethodPost, "/api/login", models.Credentials{Username: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Username or password incorrect", resp.Message)

	code, resp = do(t, router, http.MethodPost, "/api/login", models.Credentials{Username: "alice", Password: "pw"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alice", resp.Username)

	code, resp = do(t, router, http.MethodGet, "/api/bookings/alice", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No bookings found for passenger ID alice", resp.Message)

	booking := models.Booking{PassengerID: "alice", FlightNum: "101"}
	code, _ = do(t, router, http.MethodPost, "/api/booking", booking)
	require.Equal(t, http.StatusOK, code)

	code, resp = do(t, router, http.MethodPost, "/api/booking", booking)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Booking for passenger ID alice on flight 101 already exists", resp.Message)

	code, resp = do(t, router, http.MethodGet, "/api/bookings/alice", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Bookings, 1)
}

func TestDeleteFlightCascades(t *testing.T) {
	router := setupTestRouter(t)
	seed(t, router)

	code, _ := do(t, router, http.MethodPost, "/api/intercity", models.City{CityName: "York", CityCountry: "UK"})
	require.Equal(t, http.StatusOK, code)
	code, resp := do(t, router, http.MethodPost, "/api/flightpath", models.FlightPath{FlightNum: "101", CityID: "1"})
	require.Equal(t, http.StatusOK, code, resp.Message)

	code, resp = do(t, router, http.MethodPost, "/api/flightcrew", models.CrewAssignment{FlightNum: "101", StaffID: "jsmith"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Crew member jsmith is already assigned to flight 101", resp.Message)

	code, resp = do(t, router, http.MethodDelete, "/api/flight/101", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Flight number 101 and its dependencies deleted successfully", resp.Message)

	code, _ = do(t, router, http.MethodGet, "/api/flightcrew/jsmith", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, router, http.MethodGet, "/api/flights/search/", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthAndCORS(t *testing.T) {
	router := setupTestRouter(t)

	code, resp := do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)

	req := httptest.NewRequest(http.MethodOptions, "/api/booking", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
