package models

// TypeRatings are the aircraft and pilot type ratings, A being the highest.
var TypeRatings = []string{"A", "B", "C", "D", "E", "F"}

// Aircraft registers a plane.
type Aircraft struct {
	SerialNumber string `json:"serialNumber" validate:"required" label:"Serial number"`
	Manufacturer string `json:"manufacturer" validate:"required" label:"Manufacturer"`
	ModelNumber  string `json:"modelNumber" validate:"required" label:"Model number"`
	TypeRating   string `json:"typeRating" validate:"required,oneof=A B C D E F" label:"Type rating"`
}

func (Aircraft) Resource() string { return "/api/airplanes" }
func (Aircraft) Fallback() string { return "An error occurred" }

// Pilot promotes an existing staff member to pilot.
type Pilot struct {
	StaffID    string `json:"staffID" validate:"required" label:"Employee number"`
	TypeRating string `json:"typeRating" validate:"required,oneof=A B C D E F" label:"Type rating"`
}

func (Pilot) Resource() string { return "/api/pilot" }
func (Pilot) Fallback() string { return "Error adding pilot" }

// Staff registers an employee. The API generates the staff id.
type Staff struct {
	FirstName    string `json:"firstName" validate:"required" label:"First name"`
	Surname      string `json:"surname" validate:"required" label:"Surname"`
	Salary       string `json:"salary" validate:"required" label:"Salary"`
	HomeAddress  string `json:"homeAddress" validate:"required" label:"Home address"`
	WorkAddress  string `json:"workAddress" validate:"required" label:"Work address"`
	HomePhoneNum string `json:"homePhoneNum" validate:"required" label:"Home telephone"`
	WorkPhoneNum string `json:"workPhoneNum" validate:"required" label:"Work telephone"`
}

func (Staff) Resource() string { return "/api/staff" }
func (Staff) Fallback() string { return "Error creating account" }

// City is an intercity stop.
type City struct {
	CityID      string `json:"cityID" validate:"required" label:"City ID"`
	CityName    string `json:"cityName" validate:"required" label:"City name"`
	CityCountry string `json:"cityCountry" validate:"required" label:"Country"`
}

func (City) Resource() string { return "/api/intercity" }
func (City) Fallback() string { return "An error occurred" }

// CrewAssignment puts a staff member on a flight.
type CrewAssignment struct {
	FlightNum string `json:"flightNum" validate:"required" label:"Flight number"`
	StaffID   string `json:"staffID" validate:"required" label:"Crew member ID"`
}

func (CrewAssignment) Resource() string { return "/api/flightcrew" }
func (CrewAssignment) Fallback() string { return "Error adding crew member" }

// FlightPath adds an intermediate city to a flight's route.
type FlightPath struct {
	FlightNum string `json:"flightNum" validate:"required" label:"Flight number"`
	CityID    string `json:"cityID" validate:"required" label:"City ID"`
}

func (FlightPath) Resource() string { return "/api/flightpath" }
func (FlightPath) Fallback() string { return "Error adding flight path" }
