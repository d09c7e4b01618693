package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
	"github.com/wheelsapp/wheels-cli/internal/common"
)

func TestShowCar_PrintsRecord(t *testing.T) {
	fake := &fakeAPI{getCarRet: models.Car{
		LicensePlate: "ABC123", Make: "Mazda", Model: "3", Capacity: 4,
		SOAT: "https://files.local/soat.pdf",
	}}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RoleDriver)
	out := captureOutput(t)

	require.NoError(t, a.ShowCar(context.Background()))
	assert.Contains(t, out.String(), "Mazda 3, plate ABC123, 4 seats")
	assert.Contains(t, out.String(), "SOAT on file:")
}

func TestShowCar_NoCarYet(t *testing.T) {
	fake := &fakeAPI{getCarErr: common.ErrNotFound}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RoleDriver)
	out := captureOutput(t)

	require.NoError(t, a.ShowCar(context.Background()))
	assert.Contains(t, out.String(), "No car registered yet")
}

func TestSetCar_Success(t *testing.T) {
	fake := &fakeAPI{}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RoleDriver)
	out := captureOutput(t)

	// plate, make, model via seams, then capacity via reader,
	// then photo and SOAT paths (skipped) via seams
	stubInputs(t, []string{"ABC123", "Mazda", "3", "", ""}, nil)
	feedReader(a, "4")

	require.NoError(t, a.SetCar(context.Background()))

	assert.Equal(t, "ABC123", fake.lastCar.LicensePlate)
	assert.Equal(t, "Mazda", fake.lastCar.Make)
	assert.Equal(t, 4, fake.lastCar.Capacity)
	assert.Contains(t, out.String(), "Car saved.")
}

func TestSetCar_MissingFields_NoSave(t *testing.T) {
	fake := &fakeAPI{}
	a := newTestApp(t, fake)
	loginAs(t, a, models.RoleDriver)
	out := captureOutput(t)

	stubInputs(t, []string{"", "", ""}, nil)
	feedReader(a, "0")

	require.NoError(t, a.SetCar(context.Background()))

	assert.Empty(t, fake.lastCar.LicensePlate)
	assert.Contains(t, out.String(), "licensePlate: required field")
	assert.Contains(t, out.String(), "capacity: must be positive")
}
