// Package models defines the canonical client-side types for the Wheels
// service. Backend payloads are normalized into these shapes at the API
// boundary; nothing above that layer deals with alternate field names.
package models

import "time"

// Region is the service's operating timezone, a fixed UTC-5 offset.
// Dates (day bucketing, future-departure checks) are evaluated here, not in
// the machine's local zone.
var Region = time.FixedZone("UTC-5", -5*60*60)

// Role classifies an account.
type Role string

const (
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
)

// User is the authenticated account record as held by the client.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
	Photo string `json:"photo,omitempty"`
}

// Session is the client-held pair of authenticated user and bearer token.
// User and Token are always set and cleared together.
type Session struct {
	User  User
	Token string
}

// ReservationStatus is the client's model of a reservation lifecycle.
// Pending is the only state with outgoing transitions.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusAccepted  ReservationStatus = "accepted"
	StatusDeclined  ReservationStatus = "declined"
	StatusCancelled ReservationStatus = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s ReservationStatus) Terminal() bool {
	switch s {
	case StatusAccepted, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// Ref is a normalized reference to another record. The backend sometimes
// sends a bare id string and sometimes a nested object; the API layer folds
// both into this shape.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Reservation is a passenger's booking on a trip.
type Reservation struct {
	ID          string            `json:"id"`
	Trip        Ref               `json:"trip"`
	Passenger   Ref               `json:"passenger"`
	Driver      Ref               `json:"driver"`
	Status      ReservationStatus `json:"status"`
	Date        time.Time         `json:"date"`
	Destination string            `json:"destination"`
	Price       float64           `json:"price"`
	Seats       int               `json:"seats"`
}

// Buckets partitions a user's reservations by calendar day.
// A reservation appears in at most one bucket.
type Buckets struct {
	Today    []Reservation `json:"today"`
	Tomorrow []Reservation `json:"tomorrow"`
}

// Coord is a longitude/latitude pair, in the provider's lon-first order.
type Coord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Trip is a driver's offered ride.
type Trip struct {
	ID            string    `json:"id"`
	StartPoint    string    `json:"startPoint"`
	EndPoint      string    `json:"endPoint"`
	Route         string    `json:"route"`
	DepartureTime time.Time `json:"departureTime"`
	Seats         int       `json:"seats"`
	Price         float64   `json:"price"`
	Driver        Ref       `json:"driver"`
	StartCoords   *Coord    `json:"startCoords,omitempty"`
	EndCoords     *Coord    `json:"endCoords,omitempty"`
}

// Car is the vehicle record attached to a driver profile.
type Car struct {
	LicensePlate string `json:"licensePlate"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Capacity     int    `json:"capacity"`
	Photo        string `json:"photo,omitempty"`
	SOAT         string `json:"soat,omitempty"`
}

// Place is a geocoding result.
type Place struct {
	Name   string `json:"name"`
	Center Coord  `json:"center"`
}
