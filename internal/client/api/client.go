// Package api is the client's only window onto the Wheels backend. It owns
// the REST contract: request DTOs, the error envelope, and normalization of
// backend payloads into the canonical models. Layers above this one never see
// alternate field names or status spellings.
package api

import (
	"context"
	"io"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
)

// Client defines every backend operation the application uses.
//
// All authenticated calls attach the bearer token supplied by the token
// source the implementation was built with. Methods must honor context
// cancellation and timeouts.
type Client interface {
	// Auth.
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Register(ctx context.Context, req RegisterRequest) (models.User, string, error)

	// User profile.
	Me(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, req ProfileUpdate) (models.User, error)

	// Car record (one per driver).
	GetCar(ctx context.Context) (models.Car, error)
	SaveCar(ctx context.Context, car models.Car) error

	// Trips.
	CreateTrip(ctx context.Context, req TripRequest) (models.Trip, error)
	GetTrip(ctx context.Context, id string) (models.Trip, error)
	SearchTrips(ctx context.Context, q TripSearch) ([]models.Trip, error)

	// Reservations.
	ListReservations(ctx context.Context, userID string) (ReservationList, error)
	CreateReservation(ctx context.Context, req ReservationRequest) (models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, status models.ReservationStatus) error

	// Generic file upload. Returns the stored file's URL.
	UploadFile(ctx context.Context, field, filename string, r io.Reader) (string, error)

	Ping(ctx context.Context) error
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// ProfileUpdate carries mutable profile fields. Empty fields are omitted.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// TripRequest creates a trip offer.
type TripRequest struct {
	StartPoint    string        `json:"startPoint"`
	EndPoint      string        `json:"endPoint"`
	Route         string        `json:"route"`
	DepartureTime string        `json:"departureTime"`
	Seats         int           `json:"seats"`
	Price         float64       `json:"price"`
	StartCoords   *models.Coord `json:"startCoords,omitempty"`
	EndCoords     *models.Coord `json:"endCoords,omitempty"`
}

// TripSearch filters the trip listing.
type TripSearch struct {
	Destination string
	Date        string
	Seats       int
}

// ReservationList is the result of a reservation listing. The backend
// answers with either a flat array or a pre-bucketed {today, tomorrow}
// object; exactly one of the two fields is set.
type ReservationList struct {
	Flat     []models.Reservation
	Bucketed *models.Buckets
}

// ReservationRequest books seats on a trip.
type ReservationRequest struct {
	TripID string  `json:"tripId"`
	Seats  int     `json:"seats"`
	Note   string  `json:"note,omitempty"`
	Price  float64 `json:"price,omitempty"`
}
