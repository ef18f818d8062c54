package model

import "time"

// Reservation statuses.  A reservation is created as booked, becomes
// seated when a table is assigned to it, and finished when the visit
// ends.  Cancelled is reachable from booked or seated.  Finished is
// terminal.
const (
	StatusBooked    = "booked"
	StatusSeated    = "seated"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// Reservation records a party's booking for a given date and time.
// Date and time are kept in their wire formats (YYYY-MM-DD and HH:mm)
// because the API accepts and returns them as strings; timestamps are
// stored in UTC.
//
// Fields:
//  ID              – primary key identifier.
//  FirstName       – guest first name.
//  LastName        – guest last name.
//  MobileNumber    – contact number, free-form punctuation allowed.
//  ReservationDate – calendar date of the visit (YYYY-MM-DD).
//  ReservationTime – wall-clock time of the visit (HH:mm, 24-hour).
//  People          – party size, always positive.
//  Status          – one of booked, seated, finished, cancelled.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID              uint64    `json:"reservation_id"`   // reservations.reservation_id
	FirstName       string    `json:"first_name"`       // reservations.first_name
	LastName        string    `json:"last_name"`        // reservations.last_name
	MobileNumber    string    `json:"mobile_number"`    // reservations.mobile_number
	ReservationDate string    `json:"reservation_date"` // reservations.reservation_date
	ReservationTime string    `json:"reservation_time"` // reservations.reservation_time
	People          int       `json:"people"`           // reservations.people
	Status          string    `json:"status"`           // reservations.status
	CreatedAt       time.Time `json:"created_at"`       // reservations.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // reservations.updated_at
}
