package devapi

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/abubakar20-02/Flight-Management-System/internal/models"
)

// Error is a rejection carrying the HTTP status the API answers with.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func reject(status int, format string, args ...interface{}) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

var errAllRequired = &Error{Status: http.StatusBadRequest, Message: "All fields are required"}

type flight struct {
	number        int
	serial        string
	origin        string
	destination   string
	arrivalTime   string
	departureTime string
}

func (f *flight) row() FlightRow {
	return FlightRow{
		FlightNumber:  f.number,
		Origin:        f.origin,
		Destination:   f.destination,
		ArrivalTime:   f.arrivalTime,
		DepartureTime: f.departureTime,
	}
}

// FlightRow is a flight as the listing endpoints return it.
type FlightRow struct {
	FlightNumber  int    `json:"flightNumber"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	ArrivalTime   string `json:"arrivalTime"`
	DepartureTime string `json:"departureTime"`
}

type pair struct {
	left  string
	right int
}

// Store is an in-memory rendition of the flight management API's data.
type Store struct {
	mu sync.RWMutex

	airplanes  map[string]models.Aircraft
	cities     map[int]models.City
	staff      map[string]models.Staff
	pilots     map[string]string // staff id -> type rating
	flights    map[int]*flight
	crew       map[pair]bool // staff id, flight number
	paths      map[pair]bool // city id, flight number
	passengers map[string][]byte
	bookings   map[pair]bool // passenger id, flight number
}

func NewStore() *Store {
	return &Store{
		airplanes:  make(map[string]models.Aircraft),
		cities:     make(map[int]models.City),
		staff:      make(map[string]models.Staff),
		pilots:     make(map[string]string),
		flights:    make(map[int]*flight),
		crew:       make(map[pair]bool),
		paths:      make(map[pair]bool),
		passengers: make(map[string][]byte),
		bookings:   make(map[pair]bool),
	}
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func parseFlightNumber(value string) (int, *Error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, reject(http.StatusBadRequest, "Flight number %s is not a number", value)
	}
	return n, nil
}

// AddCity registers a city. A missing id is assigned.
func (s *Store) AddCity(c models.City) (int, *Error) {
	if blank(c.CityName, c.CityCountry) {
		return 0, errAllRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id int
	if strings.TrimSpace(c.CityID) == "" {
		for existing := range s.cities {
			if existing > id {
				id = existing
			}
		}
		id++
	} else {
		n, err := strconv.Atoi(strings.TrimSpace(c.CityID))
		if err != nil {
			return 0, reject(http.StatusBadRequest, "City ID %s is not a number", c.CityID)
		}
		id = n
	}

	if _, ok := s.cities[id]; ok {
		return 0, reject(http.StatusInternalServerError, "UNIQUE constraint failed: interCity.cityID")
	}
	c.CityID = strconv.Itoa(id)
	s.cities[id] = c
	return id, nil
}

func (s *Store) AddAirplane(a models.Aircraft) *Error {
	if blank(a.SerialNumber, a.Manufacturer, a.ModelNumber, a.TypeRating) {
		return errAllRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.airplanes[a.SerialNumber]; ok {
		return reject(http.StatusConflict, "Airplane with this serial number already exists")
	}
	s.airplanes[a.SerialNumber] = a
	return nil
}

// AddStaff registers an employee under a generated id: first initial and
// surname, lower case, with a numeric suffix on collision.
func (s *Store) AddStaff(st models.Staff) (string, *Error) {
	if blank(st.FirstName, st.Surname, st.Salary, st.HomeAddress, st.WorkAddress, st.HomePhoneNum, st.WorkPhoneNum) {
		return "", errAllRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	base := strings.ToLower(st.FirstName[:1] + st.Surname)
	id := base
	for suffix := 1; ; suffix++ {
		if _, taken := s.staff[id]; !taken {
			break
		}
		id = base + strconv.Itoa(suffix)
	}
	s.staff[id] = st
	return id, nil
}

func (s *Store) AddPilot(p models.Pilot) *Error {
	if blank(p.StaffID, p.TypeRating) {
		return errAllRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.staff[p.StaffID]; !ok {
		return reject(http.StatusNotFound, "Staff ID %s does not exist", p.StaffID)
	}
	if _, ok := s.pilots[p.StaffID]; ok {
		return reject(http.StatusInternalServerError, "UNIQUE constraint failed: Pilot.id")
	}
	s.pilots[p.StaffID] = p.TypeRating
	return nil
}

// AddFlight schedules a flight and puts its pilot on the crew. The pilot's
// rating letter must not be after the plane's.
func (s *Store) AddFlight(f models.FlightForm) *Error {
	if blank(f.FlightNumber, f.AircraftSerial, f.Origin, f.Destination, f.ArrivalTime, f.DepartureTime, f.PilotID) {
		return errAllRequired
	}
	number, rerr := parseFlightNumber(f.FlightNumber)
	if rerr != nil {
		return rerr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pilotRating, ok := s.pilots[f.PilotID]
	if !ok {
		return reject(http.StatusBadRequest, "Pilot ID %s does not exist", f.PilotID)
	}
	plane, ok := s.airplanes[f.AircraftSerial]
	if !ok {
		return reject(http.StatusBadRequest, "Airplane serial number %s does not exist", f.AircraftSerial)
	}
	if pilotRating > plane.TypeRating {
		return reject(http.StatusBadRequest, "Pilot rating %s is not sufficient for Airplane rating %s", pilotRating, plane.TypeRating)
	}
	if _, ok := s.flights[number]; ok {
		return reject(http.StatusInternalServerError, "UNIQUE constraint failed: Flight.flightNum")
	}

	s.flights[number] = &flight{
		number:        number,
		serial:        f.AircraftSerial,
		origin:        f.Origin,
		destination:   f.Destination,
		arrivalTime:   f.ArrivalTime,
		departureTime: f.DepartureTime,
	}
	s.crew[pair{f.PilotID, number}] = true
	return nil
}

func (s *Store) AddCrew(c models.CrewAssignment) *Error {
	if blank(c.StaffID, c.FlightNum) {
		return reject(http.StatusBadRequest, "Both staffID and flightNum are required")
	}
	number, rerr := parseFlightNumber(c.FlightNum)
	if rerr != nil {
		return rerr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.staff[c.StaffID]; !ok {
		return reject(http.StatusBadRequest, "Staff ID %s does not exist", c.StaffID)
	}
	if _, ok := s.flights[number]; !ok {
		return reject(http.StatusBadRequest, "Flight number %d does not exist", number)
	}
	key := pair{c.StaffID, number}
	if s.crew[key] {
		return reject(http.StatusBadRequest, "Crew member %s is already assigned to flight %d", c.StaffID, number)
	}
	s.crew[key] = true
	return nil
}

func (s *Store) AddFlightPath(p models.FlightPath) *Error {
	if blank(p.FlightNum, p.CityID) {
		return reject(http.StatusBadRequest, "Both flightNum and cityID are required")
	}
	number, rerr := parseFlightNumber(p.FlightNum)
	if rerr != nil {
		return rerr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flights[number]; !ok {
		return reject(http.StatusBadRequest, "Flight number %d does not exist", number)
	}
	cityID, err := strconv.Atoi(strings.TrimSpace(p.CityID))
	if _, ok := s.cities[cityID]; err != nil || !ok {
		return reject(http.StatusBadRequest, "City ID %s does not exist", p.CityID)
	}
	key := pair{strconv.Itoa(cityID), number}
	if s.paths[key] {
		return reject(http.StatusInternalServerError, "UNIQUE constraint failed: flightPath.flightNum, flightPath.cityID")
	}
	s.paths[key] = true
	return nil
}

// AddPassenger registers a traveler. The username is the passenger id.
func (s *Store) AddPassenger(t models.Traveler) (string, *Error) {
	if blank(t.Username, t.FirstName, t.Surname, t.Password, t.HomeAddress, t.WorkAddress, t.HomePhoneNumber, t.WorkPhoneNumber) {
		return "", errAllRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(t.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", reject(http.StatusInternalServerError, "%v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.passengers[t.Username]; ok {
		return "", reject(http.StatusInternalServerError, "UNIQUE constraint failed: Passenger.passengerID")
	}
	s.passengers[t.Username] = hash
	return t.Username, nil
}

// Login checks a passenger's password.
func (s *Store) Login(c models.Credentials) *Error {
	if c.Username == "" || c.Password == "" {
		return reject(http.StatusBadRequest, "Username and password are required")
	}

	s.mu.RLock()
	hash, ok := s.passengers[c.Username]
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(c.Password)) != nil {
		return reject(http.StatusUnauthorized, "Username or password incorrect")
	}
	return nil
}

func (s *Store) AddBooking(b models.Booking) *Error {
	if b.PassengerID == "" || b.FlightNum == "" {
		return reject(http.StatusBadRequest, "Both passengerID and flightNum are required")
	}
	number, rerr := parseFlightNumber(b.FlightNum.String())
	if rerr != nil {
		return rerr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.passengers[b.PassengerID]; !ok {
		return reject(http.StatusBadRequest, "Passenger ID %s does not exist", b.PassengerID)
	}
	if _, ok := s.flights[number]; !ok {
		return reject(http.StatusBadRequest, "Flight number %d does not exist", number)
	}
	key := pair{b.PassengerID, number}
	if s.bookings[key] {
		return reject(http.StatusBadRequest, "Booking for passenger ID %s on flight %d already exists", b.PassengerID, number)
	}
	s.bookings[key] = true
	return nil
}

// Flights lists flights filtered by exact origin and destination.
func (s *Store) Flights(origin, destination string) ([]FlightRow, *Error) {
	rows := s.collect(func(f *flight) bool {
		return (origin == "" || f.origin == origin) && (destination == "" || f.destination == destination)
	})
	if len(rows) == 0 {
		return nil, reject(http.StatusNotFound, "No flights found matching the criteria")
	}
	return rows, nil
}

// SearchFlights lists flights whose number contains pattern.
func (s *Store) SearchFlights(pattern string) ([]FlightRow, *Error) {
	rows := s.collect(func(f *flight) bool {
		return strings.Contains(strconv.Itoa(f.number), pattern)
	})
	if len(rows) == 0 {
		return nil, reject(http.StatusNotFound, "No flights found matching flight number pattern %s", pattern)
	}
	return rows, nil
}

func (s *Store) CrewFlights(staffID string) ([]FlightRow, *Error) {
	rows := s.collect(func(f *flight) bool {
		return s.crew[pair{staffID, f.number}]
	})
	if len(rows) == 0 {
		return nil, reject(http.StatusNotFound, "No flights found for employee number %s", staffID)
	}
	return rows, nil
}

func (s *Store) Bookings(passengerID string) ([]FlightRow, *Error) {
	rows := s.collect(func(f *flight) bool {
		return s.bookings[pair{passengerID, f.number}]
	})
	if len(rows) == 0 {
		return nil, reject(http.StatusNotFound, "No bookings found for passenger ID %s", passengerID)
	}
	return rows, nil
}

// DeleteFlight removes a flight with its crew, path and bookings. Deleting an
// unknown flight succeeds.
func (s *Store) DeleteFlight(number int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.crew {
		if key.right == number {
			delete(s.crew, key)
		}
	}
	for key := range s.paths {
		if key.right == number {
			delete(s.paths, key)
		}
	}
	for key := range s.bookings {
		if key.right == number {
			delete(s.bookings, key)
		}
	}
	delete(s.flights, number)
}

func (s *Store) collect(match func(*flight) bool) []FlightRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []FlightRow
	for _, f := range s.flights {
		if match(f) {
			rows = append(rows, f.row())
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].FlightNumber < rows[j].FlightNumber })
	return rows
}
