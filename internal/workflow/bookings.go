package workflow

import (
	"context"

	"github.com/abubakar20-02/Flight-Management-System/internal/gateway"
	"github.com/abubakar20-02/Flight-Management-System/internal/identity"
	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
)

// BookingsView is the traveler dashboard listing of booked flights.
type BookingsView struct {
	api    gateway.API
	store  *identity.Store
	logger *logger.Logger
}

func NewBookingsView(api gateway.API, store *identity.Store, log *logger.Logger) *BookingsView {
	return &BookingsView{api: api, store: store, logger: log}
}

// Load lists the signed-in traveler's bookings. No bookings is an empty list.
func (v *BookingsView) Load(ctx context.Context) ([]models.Flight, error) {
	passengerID, ok := v.store.Get().PassengerID()
	if !ok {
		return nil, ErrNoTraveler
	}

	resp, err := v.api.ListBookings(ctx, passengerID)
	if err != nil {
		if gateway.IsNotFound(err) {
			return []models.Flight{}, nil
		}
		v.logger.Warn("Loading bookings for %s failed: %v", passengerID, err)
		return nil, err
	}
	return resp.Bookings, nil
}
