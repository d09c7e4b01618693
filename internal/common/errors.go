// Package common defines sentinel errors shared across client layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Backend/transport errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")

	// Session errors.
	ErrNoSession = errors.New("no active session")

	// Login lockout.
	ErrLoginLocked = errors.New("login temporarily locked")

	// Reservation state machine.
	ErrTerminalStatus      = errors.New("reservation already in a terminal status")
	ErrIllegalTransition   = errors.New("illegal status transition")
	ErrNotReservationParty = errors.New("user is not a party to this reservation")
)
