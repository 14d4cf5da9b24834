package cli

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/abubakar20-02/Flight-Management-System/internal/workflow"
)

// Traveler screens

func (s *Shell) browse(ctx context.Context) error {
	s.printf("Places: %s\n", strings.Join(models.UKPlaces, ", "))
	origin, ok := s.prompt("Origin (blank for any): ")
	if !ok {
		return io.EOF
	}
	destination, ok := s.prompt("Destination (blank for any): ")
	if !ok {
		return io.EOF
	}
	query := models.FlightQuery{Origin: origin, Destination: destination}

	var err error
	if s.booking == nil {
		s.booking = workflow.NewBookingWorkflow(s.app.API, s.app.Store, s.app.Logger)
		err = s.booking.Start(ctx, query)
	} else {
		err = s.booking.Query(ctx, query)
	}
	if err != nil {
		return err
	}

	if msg := s.booking.Message(); msg != "" {
		s.println(msg)
	}
	s.printFlights(s.booking.Rows())
	return nil
}

func (s *Shell) selectFlight(context.Context) error {
	if s.booking == nil {
		return fmt.Errorf("%w: run 'browse' first", workflow.ErrNotInResults)
	}
	number, ok := s.prompt("Flight number: ")
	if !ok {
		return io.EOF
	}
	if err := s.booking.Select(models.Key(number)); err != nil {
		return err
	}
	flight, _ := s.booking.Selection()
	s.printf("Selected flight %s from %s to %s.\n", flight.FlightNumber, flight.Origin, flight.Destination)
	return nil
}

func (s *Shell) book(ctx context.Context) error {
	if s.booking == nil {
		return workflow.ErrNoSelection
	}
	if err := s.booking.Book(ctx); err != nil {
		return err
	}
	s.println(s.booking.Message())
	return nil
}

func (s *Shell) listBookings(ctx context.Context) error {
	rows, err := workflow.NewBookingsView(s.app.API, s.app.Store, s.app.Logger).Load(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		s.println("No bookings yet.")
		return nil
	}
	s.printFlights(rows)
	return nil
}

// Admin screens

func (s *Shell) addFlight(ctx context.Context) error {
	return submit(ctx, s, formFor(s, "add flight", func() *workflow.CreateWorkflow[models.FlightForm] {
		return workflow.NewFlightCreate(s.app.API, s.app.Logger, s.app.Now)
	}))
}

func (s *Shell) addPlane(ctx context.Context) error {
	return submit(ctx, s, entityForm[models.Aircraft](s, "add plane"))
}

func (s *Shell) addPilot(ctx context.Context) error {
	return submit(ctx, s, entityForm[models.Pilot](s, "add pilot"))
}

func (s *Shell) addStaff(ctx context.Context) error {
	return submit(ctx, s, entityForm[models.Staff](s, "add staff"))
}

func (s *Shell) addCity(ctx context.Context) error {
	return submit(ctx, s, entityForm[models.City](s, "add city"))
}

func (s *Shell) assignCrew(ctx context.Context) error {
	return submit(ctx, s, entityForm[models.CrewAssignment](s, "assign crew"))
}

func (s *Shell) addFlightPath(ctx context.Context) error {
	return submit(ctx, s, entityForm[models.FlightPath](s, "add flight path"))
}

// formFor returns the form kept for a create command, so a rejected
// submission can be corrected instead of retyped.
func formFor[T models.Entity](s *Shell, name string, create func() *workflow.CreateWorkflow[T]) *workflow.CreateWorkflow[T] {
	if w, ok := s.forms[name].(*workflow.CreateWorkflow[T]); ok {
		return w
	}
	if s.forms == nil {
		s.forms = make(map[string]interface{})
	}
	w := create()
	s.forms[name] = w
	return w
}

func entityForm[T models.Entity](s *Shell, name string) *workflow.CreateWorkflow[T] {
	return formFor(s, name, func() *workflow.CreateWorkflow[T] {
		return workflow.NewCreateWorkflow[T](s.app.API, s.app.Logger, nil)
	})
}

func submit[T models.Entity](ctx context.Context, s *Shell, w *workflow.CreateWorkflow[T]) error {
	completed := true
	w.Update(func(form *T) { completed = s.fillForm(form) })
	if !completed {
		return io.EOF
	}

	receipt, err := w.Submit(ctx)
	if err != nil {
		return err
	}
	if receipt.ID != "" {
		s.printf("%s (id %s)\n", receipt.Message, receipt.ID)
	} else {
		s.println(receipt.Message)
	}
	return nil
}

func (s *Shell) removeFlight(ctx context.Context) error {
	if s.flights == nil {
		s.flights = workflow.NewFlightAdminWorkflow(s.app.API, s.app.Logger,
			workflow.WithRefreshAfterDelete(s.app.Config.Flights.RefreshAfterDelete))
	}
	w := s.flights

	pattern, ok := s.prompt("Flight number (blank for all): ")
	if !ok {
		return io.EOF
	}
	if err := w.Search(ctx, pattern); err != nil {
		return err
	}
	if msg := w.Message(); msg != "" {
		s.println(msg)
	}
	rows := w.Rows()
	if len(rows) == 0 {
		return nil
	}
	s.printFlights(rows)

	number, ok := s.prompt("Flight to delete (blank to cancel): ")
	if !ok || number == "" {
		return nil
	}
	if err := w.Select(models.Key(number)); err != nil {
		return err
	}
	flight, err := w.RequestDelete()
	if err != nil {
		return err
	}

	answer, ok := s.prompt(fmt.Sprintf("Delete flight %s from %s to %s? [y/N]: ", flight.FlightNumber, flight.Origin, flight.Destination))
	if !ok || !strings.EqualFold(answer, "y") {
		w.CancelDelete()
		s.println("Cancelled.")
		return nil
	}

	msg, err := w.ConfirmDelete(ctx)
	if err != nil {
		return err
	}
	s.println(msg)
	if remaining := w.Rows(); len(remaining) > 0 {
		s.printFlights(remaining)
	}
	if w.Stale() {
		s.println("Listing may be out of date; run 'remove flight' again to refresh.")
	}
	return nil
}

func (s *Shell) schedule(ctx context.Context) error {
	crewID, ok := s.prompt("Crew member ID: ")
	if !ok {
		return io.EOF
	}
	lookup := workflow.NewScheduleLookup(s.app.API, s.app.Logger)
	rows, err := lookup.Lookup(ctx, crewID)
	if err != nil {
		return err
	}
	s.println(lookup.Message())
	if len(rows) > 0 {
		s.printFlights(rows)
	}
	return nil
}

// Rendering

func (s *Shell) printFlights(rows []models.Flight) {
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FLIGHT\tORIGIN\tDESTINATION\tDEPARTURE\tARRIVAL")
	for _, f := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.FlightNumber, f.Origin, f.Destination, f.DepartureTime, f.ArrivalTime)
	}
	tw.Flush()
}

// fillForm prompts for every labelled string field of the struct form points
// to. A blank answer keeps the current value. Returns false on end of input.
func (s *Shell) fillForm(form interface{}) bool {
	v := reflect.ValueOf(form).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		label := field.Tag.Get("label")
		if label == "" || field.Type.Kind() != reflect.String {
			continue
		}

		prompt := label
		if choices := oneOf(field.Tag.Get("validate")); choices != "" {
			prompt += " (" + choices + ")"
		}
		if current := v.Field(i).String(); current != "" {
			prompt += " [" + current + "]"
		}
		prompt += ": "

		var (
			value string
			err   error
		)
		if strings.Contains(strings.ToLower(label), "password") {
			value, err = s.readPassword(prompt)
			if err != nil {
				return false
			}
		} else {
			var ok bool
			if value, ok = s.prompt(prompt); !ok {
				return false
			}
		}

		if value != "" {
			v.Field(i).SetString(value)
		}
	}
	return true
}

func oneOf(rules string) string {
	for _, rule := range strings.Split(rules, ",") {
		if choices, ok := strings.CutPrefix(rule, "oneof="); ok {
			return strings.ReplaceAll(choices, " ", "/")
		}
	}
	return ""
}
