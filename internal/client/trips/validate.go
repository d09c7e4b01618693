package trips

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
)

// MinPrice is the lowest per-passenger price the service accepts, in COP.
// The minimum itself is valid.
const MinPrice = 1400

// ValidationError carries a field-keyed map of messages. It is a value, not
// a panic: form validation never throws, it blocks submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// TripForm is the create-trip input.
type TripForm struct {
	StartPoint    string
	EndPoint      string
	Route         string
	DepartureTime time.Time
	Seats         int
	Price         float64
	StartCoords   *models.Coord
	EndCoords     *models.Coord
}

// Validate checks the form against the submission rules. The departure must
// lie in the future as observed in the service region's fixed offset.
func (f TripForm) Validate(now time.Time) *ValidationError {
	errs := map[string]string{}

	if strings.TrimSpace(f.StartPoint) == "" {
		errs["startPoint"] = "required field"
	}
	if strings.TrimSpace(f.EndPoint) == "" {
		errs["endPoint"] = "required field"
	}
	if strings.TrimSpace(f.Route) == "" {
		errs["route"] = "required field"
	}
	if f.DepartureTime.IsZero() {
		errs["departureTime"] = "required field"
	} else if !f.DepartureTime.In(models.Region).After(now.In(models.Region)) {
		errs["departureTime"] = "departure must be in the future"
	}
	if f.Seats <= 0 {
		errs["seats"] = "seats must be positive"
	}
	if f.Price < MinPrice {
		errs["price"] = fmt.Sprintf("price must be at least %d", MinPrice)
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// BookingForm is the confirm-ride input for a chosen trip.
type BookingForm struct {
	Seats int
	Note  string
}

// Validate checks the booking against the trip it targets. Seats are bounded
// by the trip's availability.
func (f BookingForm) Validate(trip models.Trip) *ValidationError {
	errs := map[string]string{}

	if f.Seats <= 0 {
		errs["seats"] = "seats must be positive"
	} else if trip.Seats > 0 && f.Seats > trip.Seats {
		errs["seats"] = fmt.Sprintf("only %d seats available", trip.Seats)
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// SearchForm filters the ride search.
type SearchForm struct {
	Destination string
	Date        time.Time
	Seats       int
}

func (f SearchForm) Validate() *ValidationError {
	errs := map[string]string{}

	if strings.TrimSpace(f.Destination) == "" {
		errs["destination"] = "required field"
	}
	if f.Seats < 0 {
		errs["seats"] = "seats must not be negative"
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
