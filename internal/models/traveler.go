package models

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Traveler is the signup form. ConfirmPassword never leaves the client.
type Traveler struct {
	Username        string `json:"username" validate:"required" label:"Username"`
	FirstName       string `json:"firstName" validate:"required" label:"First name"`
	Surname         string `json:"surname" validate:"required" label:"Surname"`
	HomeAddress     string `json:"homeAddress" validate:"required" label:"Home address"`
	WorkAddress     string `json:"workAddress" validate:"required" label:"Work address"`
	HomePhoneNumber string `json:"homePhoneNumber" validate:"required" label:"Home telephone"`
	WorkPhoneNumber string `json:"workPhoneNumber" validate:"required" label:"Work telephone"`
	Password        string `json:"password" validate:"required" label:"Password"`
	ConfirmPassword string `json:"-" validate:"required" label:"Re-enter password"`
}

func (Traveler) Resource() string { return "/api/passenger" }
func (Traveler) Fallback() string { return "An error occurred" }

// Booking pairs a passenger with a flight.
type Booking struct {
	PassengerID string `json:"passengerID"`
	FlightNum   Key    `json:"flightNum"`
}
