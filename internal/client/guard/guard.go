// Package guard decides whether the current session may enter a route.
// The decision is pure and synchronous, recomputed on every call, so it
// reacts immediately to session changes.
package guard

import (
	"errors"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
)

var (
	// ErrLoginRequired means there is no active session; the caller should
	// send the user to the entry/login view.
	ErrLoginRequired = errors.New("login required")

	// ErrRoleNotAllowed means the session's role is outside the route's
	// allow-list; the caller should send the user to the neutral landing view.
	ErrRoleNotAllowed = errors.New("role not allowed")
)

// Route is a navigable destination with an optional role allow-list.
// An empty allow-list admits any authenticated user.
type Route struct {
	Name  string
	Roles []models.Role
}

// Sessions is the slice of the session manager the guard needs.
type Sessions interface {
	Current() (models.Session, bool)
}

type Guard struct {
	sessions Sessions
}

func New(sessions Sessions) *Guard {
	return &Guard{sessions: sessions}
}

// Check admits or rejects the current session for the route.
func (g *Guard) Check(route Route) error {
	s, ok := g.sessions.Current()
	if !ok {
		return ErrLoginRequired
	}
	if len(route.Roles) == 0 {
		return nil
	}
	for _, r := range route.Roles {
		if s.User.Role == r {
			return nil
		}
	}
	return ErrRoleNotAllowed
}
