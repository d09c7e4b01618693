package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
)

func TestCreateTrip_Success(t *testing.T) {
	fake := &fakeAPI{createTripRet: models.Trip{ID: "t1"}}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RoleDriver)
	out := captureOutput(t)

	// seams answer the text prompts: start, end, route
	stubInputs(t, []string{"Campus North Gate", "Usaquen", "Autopista Norte"}, nil)
	// reader answers departure, seats, price
	feedReader(a, "2030-03-10 07:30", "3", "2000")

	require.NoError(t, a.CreateTrip(context.Background()))

	assert.Equal(t, "Campus North Gate", fake.lastTripReq.StartPoint)
	assert.Equal(t, "2030-03-10T07:30:00-05:00", fake.lastTripReq.DepartureTime)
	assert.Equal(t, 3, fake.lastTripReq.Seats)
	assert.Equal(t, 2000.0, fake.lastTripReq.Price)
	assert.Contains(t, out.String(), "Trip created!")
}

func TestCreateTrip_ValidationBlocksSubmission(t *testing.T) {
	fake := &fakeAPI{}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RoleDriver)
	out := captureOutput(t)

	stubInputs(t, []string{"Campus North Gate", "Usaquen", "Autopista Norte"}, nil)
	// price below the minimum
	feedReader(a, "2030-03-10 07:30", "3", "1000")

	require.NoError(t, a.CreateTrip(context.Background()))

	assert.Empty(t, fake.lastTripReq.StartPoint, "invalid form must not reach the backend")
	assert.Contains(t, out.String(), "price: price must be at least 1400")
}

func TestCreateTrip_UnparseableDeparture(t *testing.T) {
	fake := &fakeAPI{}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RoleDriver)
	out := captureOutput(t)

	stubInputs(t, []string{"Campus North Gate", "Usaquen", "Autopista Norte"}, nil)
	feedReader(a, "tomorrow morning")

	require.NoError(t, a.CreateTrip(context.Background()))
	assert.Contains(t, out.String(), "departureTime: could not parse")
}

func TestSearchRides_PrintsMatches(t *testing.T) {
	fake := &fakeAPI{searchRet: []models.Trip{{
		ID:            "t1",
		StartPoint:    "Campus",
		EndPoint:      "Chia",
		DepartureTime: time.Date(2026, 3, 10, 7, 30, 0, 0, models.Region),
		Seats:         3,
		Price:         2000,
		Driver:        models.Ref{ID: "d1", Name: "Luis"},
	}}}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RolePassenger)
	out := captureOutput(t)

	stubInputs(t, []string{"Chia", ""}, nil)
	feedReader(a, "")

	require.NoError(t, a.SearchRides(context.Background()))
	assert.Contains(t, out.String(), "[t1]")
	assert.Contains(t, out.String(), "driver: Luis")
	assert.Contains(t, out.String(), "Book with: book <trip-id>")
}

func TestSearchRides_NoMatches(t *testing.T) {
	a := newTestApp(t, &fakeAPI{})
	loginAs(t, a, models.RolePassenger)
	out := captureOutput(t)

	stubInputs(t, []string{"Chia", ""}, nil)
	feedReader(a, "")

	require.NoError(t, a.SearchRides(context.Background()))
	assert.Contains(t, out.String(), "No rides found.")
}

func TestBookRide_Success(t *testing.T) {
	fake := &fakeAPI{
		getTripRet: models.Trip{
			ID: "t1", StartPoint: "Campus", EndPoint: "Chia",
			Seats: 3, Price: 2000,
		},
		createResRet: models.Reservation{ID: "r1", Status: models.StatusPending, Price: 4000},
	}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RolePassenger)
	out := captureOutput(t)

	stubInputs(t, []string{"front gate"}, nil) // note prompt
	feedReader(a, "2")                         // seats

	require.NoError(t, a.BookRide(context.Background(), []string{"t1"}))

	assert.Equal(t, "t1", fake.lastResReq.TripID)
	assert.Equal(t, 2, fake.lastResReq.Seats)
	assert.Equal(t, 4000.0, fake.lastResReq.Price)
	assert.Contains(t, out.String(), "Reservation r1 is pending, total $4000")
}

func TestBookRide_TooManySeats(t *testing.T) {
	fake := &fakeAPI{getTripRet: models.Trip{ID: "t1", Seats: 1, Price: 2000}}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RolePassenger)
	out := captureOutput(t)

	stubInputs(t, []string{""}, nil)
	feedReader(a, "3")

	require.NoError(t, a.BookRide(context.Background(), []string{"t1"}))
	assert.Empty(t, fake.lastResReq.TripID)
	assert.Contains(t, out.String(), "seats: only 1 seats available")
}

func TestBookRide_MissingID_Usage(t *testing.T) {
	a := newTestApp(t, &fakeAPI{})
	loginAs(t, a, models.RolePassenger)
	out := captureOutput(t)

	stubInputs(t, []string{""}, nil) // empty trip id prompt
	require.NoError(t, a.BookRide(context.Background(), nil))
	assert.Contains(t, out.String(), "Usage: book <trip-id>")
}
