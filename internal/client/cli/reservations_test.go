package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelsapp/wheels-cli/internal/client/api"
	"github.com/wheelsapp/wheels-cli/internal/client/models"
	"github.com/wheelsapp/wheels-cli/internal/common"
)

func sampleReservation() models.Reservation {
	return models.Reservation{
		ID:          "r1",
		Driver:      models.Ref{ID: "d1", Name: "Luis"},
		Passenger:   models.Ref{ID: "p1", Name: "Ana"},
		Status:      models.StatusPending,
		Date:        time.Date(2026, 3, 10, 7, 30, 0, 0, models.Region),
		Destination: "Chia",
		Price:       2800,
	}
}

func TestFormatReservation_DriverView(t *testing.T) {
	r := sampleReservation()
	driver := models.User{ID: "d1", Role: models.RoleDriver}

	line := formatReservation(r, driver)
	assert.Contains(t, line, "[r1]")
	assert.Contains(t, line, "07:30")
	assert.Contains(t, line, "To: Chia")
	assert.Contains(t, line, "$2800")
	assert.Contains(t, line, "passenger: Ana")
	assert.Contains(t, line, "(accept/decline)")
}

func TestFormatReservation_PassengerView(t *testing.T) {
	r := sampleReservation()
	passenger := models.User{ID: "p1", Role: models.RolePassenger}

	line := formatReservation(r, passenger)
	assert.Contains(t, line, "driver: Luis")
	assert.Contains(t, line, "(cancel)")
}

func TestFormatReservation_TerminalStatus_NoActions(t *testing.T) {
	r := sampleReservation()
	r.Status = models.StatusDeclined

	line := formatReservation(r, models.User{ID: "p1"})
	assert.NotContains(t, line, "(cancel)")
	assert.Contains(t, line, "declined")
}

func TestListReservations_PrintsBothBuckets(t *testing.T) {
	fake := &fakeAPI{listRet: api.ReservationList{Bucketed: &models.Buckets{
		Today: []models.Reservation{sampleReservation()},
	}}}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RolePassenger)
	out := captureOutput(t)

	require.NoError(t, a.ListReservations(context.Background()))

	assert.Contains(t, out.String(), "Today:")
	assert.Contains(t, out.String(), "[r1]")
	assert.Contains(t, out.String(), "Tomorrow:")
	assert.Contains(t, out.String(), "no rides")
}

func TestChangeReservation_CancelByPassenger(t *testing.T) {
	r := sampleReservation()
	r.Passenger.ID = "u1" // logged-in test user
	fake := &fakeAPI{listRet: api.ReservationList{Bucketed: &models.Buckets{
		Today: []models.Reservation{r},
	}}}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RolePassenger)
	out := captureOutput(t)

	require.NoError(t, a.ChangeReservation(context.Background(), []string{"r1"}, "cancel"))

	assert.Equal(t, 1, fake.updateCalls)
	assert.Contains(t, out.String(), "Reservation cancelled")
}

func TestChangeReservation_ColdCacheRefreshesOnce(t *testing.T) {
	r := sampleReservation()
	r.Driver.ID = "u1"
	fake := &fakeAPI{listRet: api.ReservationList{Bucketed: &models.Buckets{
		Tomorrow: []models.Reservation{r},
	}}}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RoleDriver)
	captureOutput(t)

	// nothing fetched yet; the command refreshes before acting
	require.NoError(t, a.ChangeReservation(context.Background(), []string{"r1"}, "accept"))
	assert.Equal(t, 1, fake.updateCalls)
}

func TestChangeReservation_MissingID_Usage(t *testing.T) {
	a := newTestApp(t, &fakeAPI{})
	loginAs(t, a, models.RolePassenger)
	out := captureOutput(t)

	require.NoError(t, a.ChangeReservation(context.Background(), nil, "cancel"))
	assert.Contains(t, out.String(), "Usage: cancel <reservation-id>")
}

func TestChangeReservation_UnknownID(t *testing.T) {
	fake := &fakeAPI{}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RolePassenger)
	out := captureOutput(t)

	err := a.ChangeReservation(context.Background(), []string{"nope"}, "cancel")
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, out.String(), "No reservation with id nope")
}

func TestChangeReservation_SettledReservation(t *testing.T) {
	r := sampleReservation()
	r.Passenger.ID = "u1"
	r.Status = models.StatusAccepted
	fake := &fakeAPI{listRet: api.ReservationList{Bucketed: &models.Buckets{
		Today: []models.Reservation{r},
	}}}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RolePassenger)
	out := captureOutput(t)

	err := a.ChangeReservation(context.Background(), []string{"r1"}, "cancel")
	require.ErrorIs(t, err, common.ErrTerminalStatus)
	assert.Contains(t, out.String(), "already settled")
	assert.Zero(t, fake.updateCalls)
}

func TestChangeReservation_NotAParty(t *testing.T) {
	// someone else's reservation in the cache
	fake := &fakeAPI{listRet: api.ReservationList{Bucketed: &models.Buckets{
		Today: []models.Reservation{sampleReservation()},
	}}}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RolePassenger)
	out := captureOutput(t)

	err := a.ChangeReservation(context.Background(), []string{"r1"}, "cancel")
	require.ErrorIs(t, err, common.ErrNotReservationParty)
	assert.Contains(t, out.String(), "You cannot change this reservation")
}
