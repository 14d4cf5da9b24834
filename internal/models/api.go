package models

// Entity is a form the admin and signup screens submit with a single POST.
type Entity interface {
	// Resource is the API path the form is posted to.
	Resource() string
	// Fallback is shown when the API could not be reached at all.
	Fallback() string
}

// MessageResponse is the envelope every API response carries.
type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// LoginResponse handles POST /api/login
type LoginResponse struct {
	MessageResponse
	Username string `json:"username"`
}

// CreatedResponse handles the create endpoints; ID is only set by some of them.
type CreatedResponse struct {
	MessageResponse
	ID Key `json:"id,omitempty"`
}

// FlightsResponse handles the flight listings and the crew schedule.
type FlightsResponse struct {
	MessageResponse
	Flights []Flight `json:"flights"`
}

// BookingsResponse handles GET /api/bookings/{passengerID}
type BookingsResponse struct {
	MessageResponse
	Bookings []Flight `json:"bookings"`
}

// Receipt is what a successful submission leaves behind.
type Receipt struct {
	Message string
	ID      Key
}
