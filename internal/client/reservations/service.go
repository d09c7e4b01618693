// Package reservations reconciles the client's day-bucketed reservation
// cache with the backend. The backend stays the source of truth; this cache
// is read-mostly, refreshed by Fetch, and mutated only through the two-phase
// optimistic ChangeStatus.
package reservations

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wheelsapp/wheels-cli/internal/client/api"
	"github.com/wheelsapp/wheels-cli/internal/client/models"
	"github.com/wheelsapp/wheels-cli/internal/common"
	"github.com/wheelsapp/wheels-cli/internal/logging"
)

// Service holds the bucketed cache for one user session.
type Service struct {
	client api.Client
	log    logging.Logger
	now    func() time.Time

	mu      sync.Mutex
	buckets models.Buckets
}

func NewService(client api.Client, log logging.Logger) *Service {
	return &Service{
		client:  client,
		log:     log,
		now:     time.Now,
		buckets: emptyBuckets(),
	}
}

// WithClock replaces the time source. Tests use this.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func emptyBuckets() models.Buckets {
	return models.Buckets{Today: []models.Reservation{}, Tomorrow: []models.Reservation{}}
}

// Fetch reads the user's reservations and normalizes them into the
// {today, tomorrow} shape. A flat response is partitioned by calendar day in
// the service region; items outside both windows are dropped. Missing buckets in a
// pre-bucketed response default to empty. There is no retry; the previous
// cache is left untouched on failure.
func (s *Service) Fetch(ctx context.Context, userID string) (models.Buckets, error) {
	list, err := s.client.ListReservations(ctx, userID)
	if err != nil {
		return models.Buckets{}, fmt.Errorf("fetching reservations: %w", err)
	}

	b := emptyBuckets()
	switch {
	case list.Bucketed != nil:
		if list.Bucketed.Today != nil {
			b.Today = list.Bucketed.Today
		}
		if list.Bucketed.Tomorrow != nil {
			b.Tomorrow = list.Bucketed.Tomorrow
		}
	default:
		today := s.now().In(models.Region)
		tomorrow := today.AddDate(0, 0, 1)
		for _, r := range list.Flat {
			switch {
			case sameDay(r.Date, today):
				b.Today = append(b.Today, r)
			case sameDay(r.Date, tomorrow):
				b.Tomorrow = append(b.Tomorrow, r)
			}
		}
	}

	s.mu.Lock()
	s.buckets = b
	s.mu.Unlock()
	return b, nil
}

// Buckets returns a copy of the cached buckets.
func (s *Service) Buckets() models.Buckets {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := models.Buckets{
		Today:    append([]models.Reservation(nil), s.buckets.Today...),
		Tomorrow: append([]models.Reservation(nil), s.buckets.Tomorrow...),
	}
	return out
}

// Find locates a cached reservation by its canonical id.
func (s *Service) Find(id string) (models.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, _, _ := s.locate(id); r != nil {
		return *r, true
	}
	return models.Reservation{}, false
}

// locate must be called with the mutex held. It returns a pointer into the
// cache plus which bucket it lives in.
func (s *Service) locate(id string) (*models.Reservation, string, int) {
	for i := range s.buckets.Today {
		if s.buckets.Today[i].ID == id {
			return &s.buckets.Today[i], "today", i
		}
	}
	for i := range s.buckets.Tomorrow {
		if s.buckets.Tomorrow[i].ID == id {
			return &s.buckets.Tomorrow[i], "tomorrow", i
		}
	}
	return nil, "", -1
}

// ChangeStatus moves a pending reservation to a terminal status on behalf of
// actor. The transition is validated client-side first (pending→accepted or
// declined by the embedded driver, pending→cancelled by the embedded
// passenger), then applied optimistically to the cache, confirmed by the
// backend write, and reverted if that write fails.
func (s *Service) ChangeStatus(ctx context.Context, actor models.User, id string, status models.ReservationStatus) error {
	s.mu.Lock()
	target, bucket, _ := s.locate(id)
	if target == nil {
		s.mu.Unlock()
		return common.ErrNotFound
	}
	if err := validateTransition(*target, actor, status); err != nil {
		s.mu.Unlock()
		return err
	}

	prev := target.Status
	target.Status = status
	s.mu.Unlock()

	if err := s.client.UpdateReservationStatus(ctx, id, status); err != nil {
		s.mu.Lock()
		if again, _, _ := s.locate(id); again != nil {
			again.Status = prev
		}
		s.mu.Unlock()
		s.log.Warn(ctx, "status change rejected, reverted",
			"reservation_id", id, "from", prev, "to", status, "error", err)
		return err
	}

	s.log.Info(ctx, "reservation status changed",
		"reservation_id", id, "bucket", bucket, "from", prev, "to", status)
	return nil
}

func validateTransition(r models.Reservation, actor models.User, status models.ReservationStatus) error {
	if r.Status.Terminal() {
		return common.ErrTerminalStatus
	}
	if actor.ID == "" {
		return common.ErrNotReservationParty
	}
	switch status {
	case models.StatusAccepted, models.StatusDeclined:
		if actor.ID != r.Driver.ID {
			return common.ErrNotReservationParty
		}
	case models.StatusCancelled:
		if actor.ID != r.Passenger.ID {
			return common.ErrNotReservationParty
		}
	default:
		return common.ErrIllegalTransition
	}
	return nil
}

// Action is a user affordance on a reservation card.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionCancel  Action = "cancel"
)

// Affordances computes which actions the viewer may take on a reservation.
// Terminal reservations expose none, to either role. The embedded driver
// gets accept/decline, the embedded passenger gets cancel, third parties
// get nothing.
func Affordances(r models.Reservation, viewer models.User) []Action {
	if r.Status.Terminal() || viewer.ID == "" {
		return nil
	}
	switch viewer.ID {
	case r.Driver.ID:
		return []Action{ActionAccept, ActionDecline}
	case r.Passenger.ID:
		return []Action{ActionCancel}
	}
	return nil
}

func sameDay(t time.Time, ref time.Time) bool {
	t = t.In(models.Region)
	y1, m1, d1 := t.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
