package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/abubakar20-02/Flight-Management-System/internal/gateway"
	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/abubakar20-02/Flight-Management-System/internal/validation"
	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
)

// CreateWorkflow is an admin form that posts one entity. A successful
// submission resets the form; a failed one keeps what was entered.
type CreateWorkflow[T models.Entity] struct {
	mu       sync.Mutex
	api      gateway.API
	logger   *logger.Logger
	guard    *gateway.Guard
	defaults func() T
	form     T
	receipt  *models.Receipt
}

// NewCreateWorkflow starts a form at defaults(). A nil defaults means the zero T.
func NewCreateWorkflow[T models.Entity](api gateway.API, log *logger.Logger, defaults func() T) *CreateWorkflow[T] {
	if defaults == nil {
		defaults = func() T {
			var zero T
			return zero
		}
	}
	return &CreateWorkflow[T]{
		api:      api,
		logger:   log,
		guard:    gateway.NewGuard(),
		defaults: defaults,
		form:     defaults(),
	}
}

// NewFlightCreate is the flight form with both times preset to now.
func NewFlightCreate(api gateway.API, log *logger.Logger, now func() time.Time) *CreateWorkflow[models.FlightForm] {
	return NewCreateWorkflow(api, log, func() models.FlightForm {
		return models.NewFlightForm(now())
	})
}

func (w *CreateWorkflow[T]) Form() T {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

func (w *CreateWorkflow[T]) SetForm(form T) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form = form
}

// Update edits the form in place.
func (w *CreateWorkflow[T]) Update(edit func(*T)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	edit(&w.form)
}

// Receipt is the result of the last successful submission.
func (w *CreateWorkflow[T]) Receipt() (*models.Receipt, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.receipt, w.receipt != nil
}

// Submit validates the form and posts it.
func (w *CreateWorkflow[T]) Submit(ctx context.Context) (*models.Receipt, error) {
	form := w.Form()
	if err := validation.Validate(form); err != nil {
		return nil, err
	}

	var receipt *models.Receipt
	err := w.guard.Do(func() error {
		r, err := w.api.Create(ctx, form)
		if err != nil {
			return err
		}
		receipt = r
		return nil
	})
	if err != nil {
		w.logger.Warn("POST %s failed: %v", form.Resource(), err)
		return nil, err
	}

	w.mu.Lock()
	w.form = w.defaults()
	w.receipt = receipt
	w.mu.Unlock()

	w.logger.Info("POST %s: %s", form.Resource(), receipt.Message)
	return receipt, nil
}
