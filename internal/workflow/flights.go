package workflow

import (
	"context"
	"sync"

	"github.com/abubakar20-02/Flight-Management-System/internal/gateway"
	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
	"github.com/google/uuid"
)

// FlightDeleted is shown when the API accepts a delete without a message.
const FlightDeleted = "Flight deleted successfully"

// FlightAdminWorkflow is the admin's search-and-remove screen.
type FlightAdminWorkflow struct {
	mu sync.Mutex

	id      string
	api     gateway.API
	logger  *logger.Logger
	guard   *gateway.Guard
	results *ResultSet

	refreshAfterDelete bool

	pattern    string
	confirming bool
	pending    models.Flight
	message    string
}

type FlightAdminOption func(*FlightAdminWorkflow)

// WithRefreshAfterDelete re-runs the last search after every successful delete.
func WithRefreshAfterDelete(refresh bool) FlightAdminOption {
	return func(w *FlightAdminWorkflow) { w.refreshAfterDelete = refresh }
}

func NewFlightAdminWorkflow(api gateway.API, log *logger.Logger, opts ...FlightAdminOption) *FlightAdminWorkflow {
	w := &FlightAdminWorkflow{
		id:      uuid.New().String()[:8],
		api:     api,
		logger:  log,
		guard:   gateway.NewGuard(),
		results: NewResultSet(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *FlightAdminWorkflow) ID() string { return w.id }

func (w *FlightAdminWorkflow) Rows() []models.Flight {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results.Rows()
}

func (w *FlightAdminWorkflow) Selection() (models.Flight, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results.Selection()
}

// Stale reports whether a delete has changed the server since the last search.
func (w *FlightAdminWorkflow) Stale() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results.Stale()
}

func (w *FlightAdminWorkflow) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

// Confirming returns the flight awaiting delete confirmation.
func (w *FlightAdminWorkflow) Confirming() (models.Flight, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending, w.confirming
}

// Search lists flights whose number contains pattern; empty lists all. Any
// failure empties the listing.
func (w *FlightAdminWorkflow) Search(ctx context.Context, pattern string) error {
	w.mu.Lock()
	w.results.ClearSelection()
	w.closeConfirm()
	w.pattern = pattern
	w.mu.Unlock()

	resp, err := w.api.SearchFlights(ctx, pattern)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.results.Replace(nil)
		w.message = err.Error()
		if gateway.IsNotFound(err) {
			return nil
		}
		w.logger.Warn("Flight admin %s: search %q failed: %v", w.id, pattern, err)
		return err
	}

	w.results.Replace(resp.Flights)
	w.message = ""
	w.logger.Debug("Flight admin %s: %d flights match %q", w.id, w.results.Len(), pattern)
	return nil
}

// Refresh re-runs the last search.
func (w *FlightAdminWorkflow) Refresh(ctx context.Context) error {
	w.mu.Lock()
	pattern := w.pattern
	w.mu.Unlock()
	return w.Search(ctx, pattern)
}

func (w *FlightAdminWorkflow) Select(flightNumber models.Key) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results.Select(flightNumber)
}

// RequestDelete opens the confirmation for the selected flight.
func (w *FlightAdminWorkflow) RequestDelete() (models.Flight, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	flight, ok := w.results.Selection()
	if !ok {
		return models.Flight{}, ErrNoSelection
	}
	w.pending = flight
	w.confirming = true
	return flight, nil
}

// CancelDelete closes the confirmation. The selection stays.
func (w *FlightAdminWorkflow) CancelDelete() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeConfirm()
}

// ConfirmDelete deletes the flight awaiting confirmation. On success exactly
// that row leaves the listing, which is then stale; on failure nothing changes.
func (w *FlightAdminWorkflow) ConfirmDelete(ctx context.Context) (string, error) {
	w.mu.Lock()
	flight, ok := w.pending, w.confirming
	w.mu.Unlock()
	if !ok {
		return "", ErrNoPendingDelete
	}

	var message string
	err := w.guard.Do(func() error {
		msg, err := w.api.DeleteFlight(ctx, flight.FlightNumber.String())

		w.mu.Lock()
		defer w.mu.Unlock()

		if err != nil {
			w.message = err.Error()
			w.logger.Warn("Flight admin %s: delete %s failed: %v", w.id, flight.FlightNumber, err)
			return err
		}

		w.results.Remove(flight.FlightNumber)
		w.results.MarkStale()
		w.closeConfirm()
		message = msg
		if message == "" {
			message = FlightDeleted
		}
		w.message = message
		w.logger.Info("Flight admin %s: deleted flight %s", w.id, flight.FlightNumber)
		return nil
	})
	if err != nil {
		return "", err
	}

	if w.refreshAfterDelete {
		if err := w.Refresh(ctx); err != nil {
			w.logger.Warn("Flight admin %s: refresh after delete failed: %v", w.id, err)
		}
		w.mu.Lock()
		w.message = message
		w.mu.Unlock()
	}
	return message, nil
}

func (w *FlightAdminWorkflow) closeConfirm() {
	w.confirming = false
	w.pending = models.Flight{}
}
