package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
	"github.com/wheelsapp/wheels-cli/internal/client/reservations"
	"github.com/wheelsapp/wheels-cli/internal/common"
)

// ListReservations fetches and renders the day-bucketed reservation list.
// Fetch failures surface a generic message; the previous view is not
// disturbed and there is no retry.
func (a *App) ListReservations(ctx context.Context) error {
	s, ok := a.sessions.Current()
	if !ok {
		return common.ErrNoSession
	}

	buckets, err := a.reservations.Fetch(ctx, s.User.ID)
	if err != nil {
		printlnFn("Error fetching reservations")
		return err
	}

	printBucket("Today", buckets.Today, s.User)
	printBucket("Tomorrow", buckets.Tomorrow, s.User)
	return nil
}

func printBucket(title string, list []models.Reservation, viewer models.User) {
	printlnFn(title + ":")
	if len(list) == 0 {
		printlnFn("  no rides")
		return
	}
	for _, r := range list {
		printlnFn("  " + formatReservation(r, viewer))
	}
}

func formatReservation(r models.Reservation, viewer models.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s  To: %s  $%.0f  %s",
		r.ID, r.Date.In(models.Region).Format("15:04"), r.Destination, r.Price, r.Status)

	if viewer.ID == r.Driver.ID && r.Passenger.Name != "" {
		fmt.Fprintf(&b, "  passenger: %s", r.Passenger.Name)
	} else if r.Driver.Name != "" {
		fmt.Fprintf(&b, "  driver: %s", r.Driver.Name)
	}

	if actions := reservations.Affordances(r, viewer); len(actions) > 0 {
		labels := make([]string, len(actions))
		for i, act := range actions {
			labels[i] = string(act)
		}
		fmt.Fprintf(&b, "  (%s)", strings.Join(labels, "/"))
	}
	return b.String()
}

// ChangeReservation applies accept/decline/cancel to a reservation by id.
func (a *App) ChangeReservation(ctx context.Context, args []string, verb string) error {
	if len(args) == 0 {
		printlnFn("Usage: " + verb + " <reservation-id>")
		return nil
	}
	id := args[0]

	var status models.ReservationStatus
	switch verb {
	case "accept":
		status = models.StatusAccepted
	case "decline":
		status = models.StatusDeclined
	case "cancel":
		status = models.StatusCancelled
	default:
		printlnFn("Unknown action:", verb)
		return nil
	}

	s, ok := a.sessions.Current()
	if !ok {
		return common.ErrNoSession
	}

	if _, found := a.reservations.Find(id); !found {
		// The cache may simply be cold; refresh once before giving up.
		if _, err := a.reservations.Fetch(ctx, s.User.ID); err != nil {
			printlnFn("Error fetching reservations")
			return err
		}
	}

	err := a.reservations.ChangeStatus(ctx, s.User, id, status)
	switch {
	case err == nil:
		printlnFn("Reservation " + string(status))
		return nil
	case errors.Is(err, common.ErrNotFound):
		printlnFn("No reservation with id", id)
	case errors.Is(err, common.ErrTerminalStatus):
		printlnFn("That reservation is already settled")
	case errors.Is(err, common.ErrNotReservationParty):
		printlnFn("You cannot change this reservation")
	default:
		printlnFn("Status change failed:", backendMessage(err))
	}
	return err
}
