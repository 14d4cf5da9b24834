package models

import "time"

// FormTimeLayout is the datetime-local layout the flight form uses.
const FormTimeLayout = "2006-01-02T15:04"

// Flight is a row of a flight listing as returned by the API.
type Flight struct {
	FlightNumber  Key    `json:"flightNumber"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
}

// FlightQuery filters the public flight listing. Empty fields are not sent.
type FlightQuery struct {
	Origin      string
	Destination string
}

// FlightForm is the admin form for scheduling a flight.
type FlightForm struct {
	FlightNumber   string `json:"flightNum" validate:"required" label:"Flight number"`
	AircraftSerial string `json:"numSer" validate:"required" label:"Plane serial number"`
	Origin         string `json:"origin" validate:"required" label:"Origin"`
	Destination    string `json:"destination" validate:"required" label:"Destination"`
	ArrivalTime    string `json:"arrTime" validate:"required" label:"Arrival time"`
	DepartureTime  string `json:"departureTime" validate:"required" label:"Departure time"`
	PilotID        string `json:"pilotID" validate:"required" label:"Pilot ID"`
}

// NewFlightForm returns an empty flight form with both times preset to now,
// truncated to the minute.
func NewFlightForm(now time.Time) FlightForm {
	stamp := now.UTC().Format(FormTimeLayout)
	return FlightForm{
		ArrivalTime:   stamp,
		DepartureTime: stamp,
	}
}

func (FlightForm) Resource() string { return "/api/flight" }
func (FlightForm) Fallback() string { return "Error adding flight" }

// UKPlaces are the suggested origins and destinations offered by the search screens.
var UKPlaces = []string{
	"London",
	"Manchester",
	"Liverpool",
	"Birmingham",
	"Leeds",
	"Glasgow",
	"Edinburgh",
	"Bristol",
	"Cardiff",
	"Belfast",
	"Newcastle",
	"Sheffield",
	"Nottingham",
	"Leicester",
	"Brighton",
}
