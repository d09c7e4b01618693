package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
	"github.com/wheelsapp/wheels-cli/internal/client/trips"
)

// promptPlace reads a free-text location and, when the geocoder is
// configured, offers debounced autocomplete suggestions for it. Picking a
// suggestion attaches its coordinates; keeping the typed text does not.
func (a *App) promptPlace(prompt string) (string, *models.Coord, error) {
	text, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return "", nil, err
	}
	if a.config.GeocoderToken == "" || len(text) < 3 {
		return text, nil, nil
	}

	type result struct {
		places []models.Place
		err    error
	}
	ch := make(chan result, 1)
	a.suggester.Update(text, func(places []models.Place, err error) {
		ch <- result{places: places, err: err}
	})
	res := <-ch
	if res.err != nil {
		a.log.Warn(context.Background(), "autocomplete lookup failed", "error", res.err)
		return text, nil, nil
	}
	if len(res.places) == 0 {
		return text, nil, nil
	}

	for i, p := range res.places {
		printlnFn(fmt.Sprintf("  %d. %s", i+1, p.Name))
	}
	choice, err := getSimpleText(a.reader, "Pick a suggestion (empty to keep typed text)", os.Stdout)
	if err != nil {
		return "", nil, err
	}
	if n, convErr := strconv.Atoi(choice); convErr == nil && n >= 1 && n <= len(res.places) {
		picked := res.places[n-1]
		center := picked.Center
		return picked.Name, &center, nil
	}
	return text, nil, nil
}

// CreateTrip walks the driver through the trip offer form and submits it.
// Validation failures are printed per field and block submission.
func (a *App) CreateTrip(ctx context.Context) error {
	start, startCoords, err := a.promptPlace("Start point")
	if err != nil {
		return err
	}
	end, endCoords, err := a.promptPlace("End point")
	if err != nil {
		return err
	}
	route, err := getSimpleText(a.reader, "Route (e.g. Via Chía - Puente del Común)", os.Stdout)
	if err != nil {
		return err
	}
	departure, err := GetTime(a.reader, "Departure (YYYY-MM-DD HH:MM)", os.Stdout)
	if err != nil {
		printlnFn("departureTime: could not parse, use YYYY-MM-DD HH:MM")
		return nil
	}
	seats, err := GetInt(a.reader, "Seats", 0, os.Stdout)
	if err != nil {
		printlnFn("seats: must be a number")
		return nil
	}
	price, err := GetFloat(a.reader, "Price per passenger", os.Stdout)
	if err != nil {
		printlnFn("price: must be a number")
		return nil
	}

	form := trips.TripForm{
		StartPoint:    start,
		EndPoint:      end,
		Route:         route,
		DepartureTime: departure,
		Seats:         seats,
		Price:         price,
		StartCoords:   startCoords,
		EndCoords:     endCoords,
	}

	trip, err := a.trips.Create(ctx, form)
	if err != nil {
		var verr *trips.ValidationError
		if errors.As(err, &verr) {
			for field, msg := range verr.Fields {
				printlnFn(field + ": " + msg)
			}
			return nil
		}
		printlnFn("Trip creation failed:", backendMessage(err))
		return err
	}

	printlnFn("Trip created!", "id:", trip.ID)
	return nil
}

// SearchRides lists trips matching a destination, date, and seat count.
func (a *App) SearchRides(ctx context.Context) error {
	dest, _, err := a.promptPlace("Destination")
	if err != nil {
		return err
	}
	dateText, err := getSimpleText(a.reader, "Date (YYYY-MM-DD, empty for any)", os.Stdout)
	if err != nil {
		return err
	}
	seats, err := GetInt(a.reader, "Seats needed (empty for 1)", 1, os.Stdout)
	if err != nil {
		printlnFn("seats: must be a number")
		return nil
	}

	form := trips.SearchForm{Destination: dest, Seats: seats}
	if dateText != "" {
		d, perr := time.ParseInLocation("2006-01-02", dateText, models.Region)
		if perr != nil {
			printlnFn("date: could not parse, use YYYY-MM-DD")
			return nil
		}
		form.Date = d
	}

	found, err := a.trips.Search(ctx, form)
	if err != nil {
		var verr *trips.ValidationError
		if errors.As(err, &verr) {
			for field, msg := range verr.Fields {
				printlnFn(field + ": " + msg)
			}
			return nil
		}
		printlnFn("Search failed:", backendMessage(err))
		return err
	}

	if len(found) == 0 {
		printlnFn("No rides found.")
		return nil
	}
	for _, t := range found {
		printlnFn(fmt.Sprintf("[%s] %s → %s  %s  %d seats  $%.0f  driver: %s",
			t.ID, t.StartPoint, t.EndPoint,
			t.DepartureTime.In(models.Region).Format("Jan 2 15:04"),
			t.Seats, t.Price, t.Driver.Name))
	}
	printlnFn("Book with: book <trip-id>")
	return nil
}

// BookRide confirms a ride on a chosen trip.
func (a *App) BookRide(ctx context.Context, args []string) error {
	var tripID string
	if len(args) > 0 {
		tripID = args[0]
	} else {
		var err error
		tripID, err = getSimpleText(a.reader, "Trip id", os.Stdout)
		if err != nil {
			return err
		}
	}
	if tripID == "" {
		printlnFn("Usage: book <trip-id>")
		return nil
	}

	trip, err := a.trips.Get(ctx, tripID)
	if err != nil {
		printlnFn("Could not load trip:", backendMessage(err))
		return err
	}

	printlnFn(fmt.Sprintf("%s → %s  %s  $%.0f per seat (%d available)",
		trip.StartPoint, trip.EndPoint,
		trip.DepartureTime.In(models.Region).Format("Jan 2 15:04"),
		trip.Price, trip.Seats))

	seats, err := GetInt(a.reader, "Seats (empty for 1)", 1, os.Stdout)
	if err != nil {
		printlnFn("seats: must be a number")
		return nil
	}
	note, err := getSimpleText(a.reader, "Note for the driver (optional)", os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.trips.Book(ctx, trip, trips.BookingForm{Seats: seats, Note: note})
	if err != nil {
		var verr *trips.ValidationError
		if errors.As(err, &verr) {
			for field, msg := range verr.Fields {
				printlnFn(field + ": " + msg)
			}
			return nil
		}
		printlnFn("Booking failed:", backendMessage(err))
		return err
	}

	printlnFn(fmt.Sprintf("Ride requested! Reservation %s is pending, total $%.0f", res.ID, res.Price))
	return nil
}
