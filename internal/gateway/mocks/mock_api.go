package mocks

import (
	"context"

	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockAPI is a mock implementation of gateway.API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *MockAPI) Signup(ctx context.Context, traveler models.Traveler) (*models.Receipt, error) {
	args := m.Called(ctx, traveler)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *MockAPI) Create(ctx context.Context, entity models.Entity) (*models.Receipt, error) {
	args := m.Called(ctx, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *MockAPI) ListFlights(ctx context.Context, query models.FlightQuery) (*models.FlightsResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightsResponse), args.Error(1)
}

func (m *MockAPI) SearchFlights(ctx context.Context, pattern string) (*models.FlightsResponse, error) {
	args := m.Called(ctx, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightsResponse), args.Error(1)
}

func (m *MockAPI) DeleteFlight(ctx context.Context, flightNumber string) (string, error) {
	args := m.Called(ctx, flightNumber)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) CreateBooking(ctx context.Context, booking models.Booking) (string, error) {
	args := m.Called(ctx, booking)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) ListBookings(ctx context.Context, passengerID string) (*models.BookingsResponse, error) {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingsResponse), args.Error(1)
}

func (m *MockAPI) CrewSchedule(ctx context.Context, crewID string) (*models.FlightsResponse, error) {
	args := m.Called(ctx, crewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightsResponse), args.Error(1)
}
