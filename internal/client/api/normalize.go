package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
)

// The backend is inconsistent about identifiers ("id", "_id",
// "reservationId"), references (bare id string vs nested object), status
// spelling ("accepted" vs "confirmed"), and coordinate encoding ([lon,lat]
// array vs object). Everything in this file exists to absorb those shapes
// here, once, so the rest of the client sees only the canonical models.

// wireID collects the identifier under any of its known names.
type wireID struct {
	ID            string `json:"id"`
	MongoID       string `json:"_id"`
	ReservationID string `json:"reservationId"`
}

func (w wireID) value() string {
	if w.ID != "" {
		return w.ID
	}
	if w.MongoID != "" {
		return w.MongoID
	}
	return w.ReservationID
}

// wireRef accepts either a bare id string or a nested reference object.
type wireRef struct {
	ID   string
	Name string
}

func (w *wireRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		w.ID = s
		return nil
	}

	var obj struct {
		wireID
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	w.ID = obj.value()
	w.Name = obj.Name
	return nil
}

func (w wireRef) canonical() models.Ref {
	return models.Ref{ID: w.ID, Name: w.Name}
}

// wireCoord accepts the provider's [lon, lat] array or a {lon, lat} object.
type wireCoord struct {
	Lon float64
	Lat float64
}

func (w *wireCoord) UnmarshalJSON(b []byte) error {
	var arr []float64
	if err := json.Unmarshal(b, &arr); err == nil {
		if len(arr) >= 2 {
			w.Lon, w.Lat = arr[0], arr[1]
		}
		return nil
	}

	var obj struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	w.Lon, w.Lat = obj.Lon, obj.Lat
	return nil
}

func (w *wireCoord) canonical() *models.Coord {
	if w == nil {
		return nil
	}
	return &models.Coord{Lon: w.Lon, Lat: w.Lat}
}

// normalizeStatus folds backend spellings into the canonical status set.
// "confirmed" and "accepted" are the same state.
func normalizeStatus(s string) models.ReservationStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "confirmed", "accepted":
		return models.StatusAccepted
	case "declined", "rejected":
		return models.StatusDeclined
	case "cancelled", "canceled":
		return models.StatusCancelled
	default:
		return models.StatusPending
	}
}

// denormalizeStatus maps a canonical status back to the value the backend's
// status-update endpoint expects.
func denormalizeStatus(s models.ReservationStatus) string {
	if s == models.StatusAccepted {
		return "confirmed"
	}
	return string(s)
}

type wireUser struct {
	wireID
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Photo string `json:"photo"`
}

func (w wireUser) canonical() models.User {
	role := models.Role(strings.ToLower(w.Role))
	if role != models.RoleDriver {
		role = models.RolePassenger
	}
	return models.User{
		ID:    w.value(),
		Name:  w.Name,
		Email: w.Email,
		Role:  role,
		Photo: w.Photo,
	}
}

type wireReservation struct {
	wireID
	Trip        wireRef   `json:"trip"`
	Passenger   wireRef   `json:"passenger"`
	Driver      wireRef   `json:"driver"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
	Destination string    `json:"destination"`
	Price       float64   `json:"price"`
	Seats       int       `json:"seats"`
}

func (w wireReservation) canonical() models.Reservation {
	return models.Reservation{
		ID:          w.value(),
		Trip:        w.Trip.canonical(),
		Passenger:   w.Passenger.canonical(),
		Driver:      w.Driver.canonical(),
		Status:      normalizeStatus(w.Status),
		Date:        w.Date,
		Destination: w.Destination,
		Price:       w.Price,
		Seats:       w.Seats,
	}
}

type wireTrip struct {
	wireID
	StartPoint    string     `json:"startPoint"`
	EndPoint      string     `json:"endPoint"`
	Route         string     `json:"route"`
	DepartureTime time.Time  `json:"departureTime"`
	Seats         int        `json:"seats"`
	Price         float64    `json:"price"`
	Driver        wireRef    `json:"driver"`
	StartCoords   *wireCoord `json:"startCoords"`
	EndCoords     *wireCoord `json:"endCoords"`
}

func (w wireTrip) canonical() models.Trip {
	return models.Trip{
		ID:            w.value(),
		StartPoint:    w.StartPoint,
		EndPoint:      w.EndPoint,
		Route:         w.Route,
		DepartureTime: w.DepartureTime,
		Seats:         w.Seats,
		Price:         w.Price,
		Driver:        w.Driver.canonical(),
		StartCoords:   w.StartCoords.canonical(),
		EndCoords:     w.EndCoords.canonical(),
	}
}

type wireCar struct {
	LicensePlate string `json:"licensePlate"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Capacity     int    `json:"capacity"`
	Photo        string `json:"photo"`
	SOAT         string `json:"soat"`
}

func (w wireCar) canonical() models.Car {
	return models.Car{
		LicensePlate: w.LicensePlate,
		Make:         w.Make,
		Model:        w.Model,
		Capacity:     w.Capacity,
		Photo:        w.Photo,
		SOAT:         w.SOAT,
	}
}

// normalizeReservationList accepts the two list shapes the backend is known
// to return, a flat array or a pre-bucketed {today, tomorrow} object, and
// produces canonical reservations plus a flag telling the caller whether the
// backend already did the bucketing.
func normalizeReservationList(raw json.RawMessage) (flat []models.Reservation, buckets *models.Buckets, err error) {
	var list []wireReservation
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]models.Reservation, 0, len(list))
		for _, w := range list {
			out = append(out, w.canonical())
		}
		return out, nil, nil
	}

	var obj struct {
		Today    []wireReservation `json:"today"`
		Tomorrow []wireReservation `json:"tomorrow"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, err
	}

	b := &models.Buckets{
		Today:    make([]models.Reservation, 0, len(obj.Today)),
		Tomorrow: make([]models.Reservation, 0, len(obj.Tomorrow)),
	}
	for _, w := range obj.Today {
		b.Today = append(b.Today, w.canonical())
	}
	for _, w := range obj.Tomorrow {
		b.Tomorrow = append(b.Tomorrow, w.canonical())
	}
	return nil, b, nil
}
