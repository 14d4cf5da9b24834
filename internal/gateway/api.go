package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/abubakar20-02/Flight-Management-System/internal/models"
)

// Messages shown when an endpoint gives no usable answer.
const (
	FallbackLogin    = "An error occurred. Please try again."
	FallbackFetch    = "Error fetching data"
	FallbackDelete   = "Error deleting flight"
	FallbackBooking  = "Error booking flight"
	FallbackBookings = "Error fetching bookings"
)

// API is the typed surface of the flight management API.
type API interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	Signup(ctx context.Context, traveler models.Traveler) (*models.Receipt, error)
	Create(ctx context.Context, entity models.Entity) (*models.Receipt, error)
	ListFlights(ctx context.Context, query models.FlightQuery) (*models.FlightsResponse, error)
	SearchFlights(ctx context.Context, pattern string) (*models.FlightsResponse, error)
	DeleteFlight(ctx context.Context, flightNumber string) (string, error)
	CreateBooking(ctx context.Context, booking models.Booking) (string, error)
	ListBookings(ctx context.Context, passengerID string) (*models.BookingsResponse, error)
	CrewSchedule(ctx context.Context, crewID string) (*models.FlightsResponse, error)
}

type apiImpl struct {
	client *Client
}

// NewAPI returns the API backed by client.
func NewAPI(client *Client) API {
	return &apiImpl{client: client}
}

func (a *apiImpl) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	msg, err := a.client.Do(ctx, http.MethodPost, "/api/login", creds, &resp)
	if err != nil {
		return nil, withFallback(err, FallbackLogin)
	}
	resp.Message = msg
	return &resp, nil
}

func (a *apiImpl) Signup(ctx context.Context, traveler models.Traveler) (*models.Receipt, error) {
	return a.Create(ctx, traveler)
}

func (a *apiImpl) Create(ctx context.Context, entity models.Entity) (*models.Receipt, error) {
	var resp models.CreatedResponse
	msg, err := a.client.Do(ctx, http.MethodPost, entity.Resource(), entity, &resp)
	if err != nil {
		return nil, withFallback(err, entity.Fallback())
	}
	return &models.Receipt{Message: msg, ID: resp.ID}, nil
}

func (a *apiImpl) ListFlights(ctx context.Context, query models.FlightQuery) (*models.FlightsResponse, error) {
	params := url.Values{}
	if query.Origin != "" {
		params.Set("origin", query.Origin)
	}
	if query.Destination != "" {
		params.Set("destination", query.Destination)
	}
	path := "/api/flights"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return a.flights(ctx, path)
}

func (a *apiImpl) SearchFlights(ctx context.Context, pattern string) (*models.FlightsResponse, error) {
	return a.flights(ctx, "/api/flights/search/"+url.PathEscape(pattern))
}

func (a *apiImpl) CrewSchedule(ctx context.Context, crewID string) (*models.FlightsResponse, error) {
	return a.flights(ctx, "/api/flightcrew/"+url.PathEscape(crewID))
}

func (a *apiImpl) flights(ctx context.Context, path string) (*models.FlightsResponse, error) {
	var resp models.FlightsResponse
	msg, err := a.client.Do(ctx, http.MethodGet, path, nil, &resp)
	if err != nil {
		return nil, withFallback(err, FallbackFetch)
	}
	resp.Message = msg
	return &resp, nil
}

func (a *apiImpl) DeleteFlight(ctx context.Context, flightNumber string) (string, error) {
	msg, err := a.client.Do(ctx, http.MethodDelete, "/api/flight/"+url.PathEscape(flightNumber), nil, nil)
	if err != nil {
		return "", withFallback(err, FallbackDelete)
	}
	return msg, nil
}

func (a *apiImpl) CreateBooking(ctx context.Context, booking models.Booking) (string, error) {
	msg, err := a.client.Do(ctx, http.MethodPost, "/api/booking", booking, nil)
	if err != nil {
		return "", withFallback(err, FallbackBooking)
	}
	return msg, nil
}

func (a *apiImpl) ListBookings(ctx context.Context, passengerID string) (*models.BookingsResponse, error) {
	var resp models.BookingsResponse
	msg, err := a.client.Do(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(passengerID), nil, &resp)
	if err != nil {
		return nil, withFallback(err, FallbackBookings)
	}
	resp.Message = msg
	return &resp, nil
}
