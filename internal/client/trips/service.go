// Package trips builds and submits the trip-creation, ride-booking, and
// ride-search requests. Validation happens client-side before any network
// call; failures are field-keyed values, never panics.
package trips

import (
	"context"
	"fmt"
	"time"

	"github.com/wheelsapp/wheels-cli/internal/client/api"
	"github.com/wheelsapp/wheels-cli/internal/client/models"
	"github.com/wheelsapp/wheels-cli/internal/logging"
)

type Service struct {
	client api.Client
	log    logging.Logger
	now    func() time.Time
}

func NewService(client api.Client, log logging.Logger) *Service {
	return &Service{client: client, log: log, now: time.Now}
}

// WithClock replaces the time source. Tests use this.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates the form and submits the trip offer.
func (s *Service) Create(ctx context.Context, f TripForm) (models.Trip, error) {
	if verr := f.Validate(s.now()); verr != nil {
		return models.Trip{}, verr
	}

	req := api.TripRequest{
		StartPoint:    f.StartPoint,
		EndPoint:      f.EndPoint,
		Route:         f.Route,
		DepartureTime: f.DepartureTime.In(models.Region).Format(time.RFC3339),
		Seats:         f.Seats,
		Price:         f.Price,
		StartCoords:   f.StartCoords,
		EndCoords:     f.EndCoords,
	}

	trip, err := s.client.CreateTrip(ctx, req)
	if err != nil {
		return models.Trip{}, fmt.Errorf("creating trip: %w", err)
	}
	s.log.Info(ctx, "trip created", "trip_id", trip.ID, "seats", trip.Seats, "price", trip.Price)
	return trip, nil
}

// Get fetches a single trip by id.
func (s *Service) Get(ctx context.Context, id string) (models.Trip, error) {
	return s.client.GetTrip(ctx, id)
}

// Search validates the query and lists matching trips.
func (s *Service) Search(ctx context.Context, f SearchForm) ([]models.Trip, error) {
	if verr := f.Validate(); verr != nil {
		return nil, verr
	}

	q := api.TripSearch{Destination: f.Destination, Seats: f.Seats}
	if !f.Date.IsZero() {
		q.Date = f.Date.In(models.Region).Format("2006-01-02")
	}
	return s.client.SearchTrips(ctx, q)
}

// Book validates the booking against the chosen trip and creates the
// reservation. The reservation starts out pending on the driver's side.
func (s *Service) Book(ctx context.Context, trip models.Trip, f BookingForm) (models.Reservation, error) {
	if verr := f.Validate(trip); verr != nil {
		return models.Reservation{}, verr
	}

	req := api.ReservationRequest{
		TripID: trip.ID,
		Seats:  f.Seats,
		Note:   f.Note,
		Price:  trip.Price * float64(f.Seats),
	}

	res, err := s.client.CreateReservation(ctx, req)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("booking trip: %w", err)
	}
	s.log.Info(ctx, "reservation created", "reservation_id", res.ID, "trip_id", trip.ID, "seats", f.Seats)
	return res, nil
}
