package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/abubakar20-02/Flight-Management-System/internal/models"
)

// ErrValidation matches every error produced by Validate.
var ErrValidation = errors.New("validation error")

// Error is a local rejection of a form. It never reaches the API.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool { return target == ErrValidation }

var timeLayouts = []string{
	models.FormTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})
	return v
}

// Validate runs the pre-submission checks for a form: required fields in
// declaration order first, then the form's own rules.
func Validate(form interface{}) error {
	if err := requiredFields(form); err != nil {
		return err
	}

	switch f := form.(type) {
	case models.Traveler:
		return traveler(f)
	case *models.Traveler:
		return traveler(*f)
	case models.FlightForm:
		return flight(f)
	case *models.FlightForm:
		return flight(*f)
	}
	return nil
}

func requiredFields(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return &Error{Field: fe.StructField(), Message: fe.Field() + " is required"}
	case "oneof":
		return &Error{
			Field:   fe.StructField(),
			Message: fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", ")),
		}
	default:
		return &Error{Field: fe.StructField(), Message: fe.Field() + " is invalid"}
	}
}

func traveler(t models.Traveler) error {
	if t.Password != t.ConfirmPassword {
		return &Error{Field: "ConfirmPassword", Message: "Passwords do not match"}
	}
	return nil
}

// flight checks the route before the schedule.
func flight(f models.FlightForm) error {
	if f.Origin == f.Destination {
		return &Error{Field: "Destination", Message: "Origin and destination cannot be the same"}
	}

	departure, err := ParseTime(f.DepartureTime)
	if err != nil {
		return &Error{Field: "DepartureTime", Message: "Departure time is not a valid date and time"}
	}
	arrival, err := ParseTime(f.ArrivalTime)
	if err != nil {
		return &Error{Field: "ArrivalTime", Message: "Arrival time is not a valid date and time"}
	}

	if !departure.Before(arrival) {
		return &Error{Field: "DepartureTime", Message: "Departure time must be before arrival time"}
	}
	return nil
}

// ParseTime reads a timestamp in any of the layouts the forms and the API use.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
