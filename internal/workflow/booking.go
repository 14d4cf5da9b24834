package workflow

import (
	"context"
	"sync"

	"github.com/abubakar20-02/Flight-Management-System/internal/gateway"
	"github.com/abubakar20-02/Flight-Management-System/internal/identity"
	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
	"github.com/google/uuid"
)

type BookingState string

const (
	BookingIdle       BookingState = "idle"
	BookingQuerying   BookingState = "querying"
	BookingResults    BookingState = "results"
	BookingSelected   BookingState = "selected"
	BookingInProgress BookingState = "booking"
	BookingBooked     BookingState = "booked"
	BookingFailed     BookingState = "failed"
)

// BookingConfirmed is shown when the API accepts a booking without a message.
const BookingConfirmed = "Booking Confirmed"

// BookingWorkflow carries a traveler from a flight search to a booking.
type BookingWorkflow struct {
	mu sync.Mutex

	id      string
	api     gateway.API
	store   *identity.Store
	logger  *logger.Logger
	guard   *gateway.Guard
	results *ResultSet

	state   BookingState
	queried bool
	query   models.FlightQuery
	message string
	err     error
}

func NewBookingWorkflow(api gateway.API, store *identity.Store, log *logger.Logger) *BookingWorkflow {
	return &BookingWorkflow{
		id:      uuid.New().String()[:8],
		api:     api,
		store:   store,
		logger:  log,
		guard:   gateway.NewGuard(),
		results: NewResultSet(),
		state:   BookingIdle,
	}
}

func (w *BookingWorkflow) ID() string { return w.id }

func (w *BookingWorkflow) State() BookingState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Rows returns the current listing.
func (w *BookingWorkflow) Rows() []models.Flight {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results.Rows()
}

func (w *BookingWorkflow) Selection() (models.Flight, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results.Selection()
}

// Filter returns the query of the listing on screen.
func (w *BookingWorkflow) Filter() models.FlightQuery {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.query
}

// Message is the last message surfaced to the user.
func (w *BookingWorkflow) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

// Err is the error of the last failed booking.
func (w *BookingWorkflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Start runs the initial listing. Empty query fields are unfiltered.
func (w *BookingWorkflow) Start(ctx context.Context, query models.FlightQuery) error {
	w.logger.Debug("Booking workflow %s started", w.id)
	return w.Query(ctx, query)
}

// Query replaces the listing. The selection is dropped whether or not the
// query succeeds; a failed query keeps the previous rows.
func (w *BookingWorkflow) Query(ctx context.Context, query models.FlightQuery) error {
	w.mu.Lock()
	w.results.ClearSelection()
	w.setState(BookingQuerying)
	w.mu.Unlock()

	resp, err := w.api.ListFlights(ctx, query)

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case err == nil:
		w.results.Replace(resp.Flights)
		w.message = ""
	case gateway.IsNotFound(err):
		w.results.Replace(nil)
		w.message = err.Error()
	default:
		w.message = err.Error()
		w.settle()
		w.logger.Warn("Booking workflow %s: search failed: %v", w.id, err)
		return err
	}

	w.queried = true
	w.query = query
	w.settle()
	w.logger.Debug("Booking workflow %s: %d flights for %+v", w.id, w.results.Len(), query)
	return nil
}

// Select makes flightNumber the selection, replacing any previous one.
func (w *BookingWorkflow) Select(flightNumber models.Key) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.results.Select(flightNumber); err != nil {
		return err
	}
	w.setState(BookingSelected)
	return nil
}

// Book books the selected flight for the signed-in traveler. Without a
// traveler identity nothing is sent and the workflow is left as it was.
func (w *BookingWorkflow) Book(ctx context.Context) error {
	w.mu.Lock()
	flight, ok := w.results.Selection()
	w.mu.Unlock()
	if !ok {
		return ErrNoSelection
	}

	passengerID, ok := w.store.Get().PassengerID()
	if !ok {
		return ErrNoTraveler
	}

	return w.guard.Do(func() error {
		w.mu.Lock()
		w.setState(BookingInProgress)
		w.mu.Unlock()

		msg, err := w.api.CreateBooking(ctx, models.Booking{
			PassengerID: passengerID,
			FlightNum:   flight.FlightNumber,
		})

		w.mu.Lock()
		defer w.mu.Unlock()

		if err != nil {
			w.err = err
			w.message = err.Error()
			w.setState(BookingFailed)
			w.logger.Warn("Booking workflow %s: booking flight %s failed: %v", w.id, flight.FlightNumber, err)
			return err
		}

		w.err = nil
		w.message = msg
		if w.message == "" {
			w.message = BookingConfirmed
		}
		w.setState(BookingBooked)
		w.logger.Info("Booking workflow %s: flight %s booked for %s", w.id, flight.FlightNumber, passengerID)
		return nil
	})
}

func (w *BookingWorkflow) settle() {
	switch {
	case w.hasSelection():
		w.setState(BookingSelected)
	case w.queried:
		w.setState(BookingResults)
	default:
		w.setState(BookingIdle)
	}
}

func (w *BookingWorkflow) hasSelection() bool {
	_, ok := w.results.Selection()
	return ok
}

func (w *BookingWorkflow) setState(s BookingState) {
	if w.state != s {
		w.logger.Debug("Booking workflow %s: %s -> %s", w.id, w.state, s)
	}
	w.state = s
}
