package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
	"github.com/wheelsapp/wheels-cli/internal/common"
)

// ShowCar prints the driver's registered vehicle.
func (a *App) ShowCar(ctx context.Context) error {
	car, err := a.api.GetCar(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No car registered yet (command: setcar)")
			return nil
		}
		printlnFn("Could not load car:", backendMessage(err))
		return err
	}

	printlnFn(fmt.Sprintf("%s %s, plate %s, %d seats", car.Make, car.Model, car.LicensePlate, car.Capacity))
	if car.SOAT != "" {
		printlnFn("SOAT on file:", car.SOAT)
	}
	return nil
}

// SetCar registers or updates the driver's vehicle. The photo and SOAT
// document are uploaded through the backend's file endpoint first; the car
// record then references the stored URLs.
func (a *App) SetCar(ctx context.Context) error {
	plate, err := getSimpleText(a.reader, "License plate", os.Stdout)
	if err != nil {
		return err
	}
	carMake, err := getSimpleText(a.reader, "Make", os.Stdout)
	if err != nil {
		return err
	}
	model, err := getSimpleText(a.reader, "Model", os.Stdout)
	if err != nil {
		return err
	}
	capacity, err := GetInt(a.reader, "Passenger capacity", 0, os.Stdout)
	if err != nil {
		printlnFn("capacity: must be a number")
		return nil
	}

	errs := map[string]string{}
	if plate == "" {
		errs["licensePlate"] = "required field"
	}
	if carMake == "" {
		errs["make"] = "required field"
	}
	if model == "" {
		errs["model"] = "required field"
	}
	if capacity <= 0 {
		errs["capacity"] = "must be positive"
	}
	if len(errs) > 0 {
		for field, msg := range errs {
			printlnFn(field + ": " + msg)
		}
		return nil
	}

	car := models.Car{LicensePlate: plate, Make: carMake, Model: model, Capacity: capacity}

	photoPath, err := getSimpleText(a.reader, "Photo path (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	if photoPath != "" {
		url, uerr := a.uploadFile(ctx, "photo", photoPath)
		if uerr != nil {
			printlnFn("Photo upload failed:", backendMessage(uerr))
			return uerr
		}
		car.Photo = url
	}

	soatPath, err := getSimpleText(a.reader, "SOAT document path (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	if soatPath != "" {
		url, uerr := a.uploadFile(ctx, "soat", soatPath)
		if uerr != nil {
			printlnFn("SOAT upload failed:", backendMessage(uerr))
			return uerr
		}
		car.SOAT = url
	}

	if err := a.api.SaveCar(ctx, car); err != nil {
		printlnFn("Saving car failed:", backendMessage(err))
		return err
	}
	printlnFn("Car saved.")
	return nil
}
