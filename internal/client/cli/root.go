package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/wheelsapp/wheels-cli/internal/client/guard"
	"github.com/wheelsapp/wheels-cli/internal/client/models"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = func(args ...any) { fmt.Println(args...) }

func (a *App) getStatus() string {
	s, ok := a.sessions.Current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s %s)", s.User.Name, s.User.Role)
}

// Root runs the read-eval-print loop. Each line's first token is the
// command; protected commands pass through the route guard before their
// handler runs. The loop exits on EOF or "exit"/"quit".
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Wheels (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("wheels %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		a.dispatch(ctx, cmd, args)
	}
}

// dispatch routes one command, applying the guard for protected commands.
// A rejected session is redirected the way the web client navigated: to the
// login flow when unauthenticated, back to the landing note otherwise.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) {
	if route, ok := routes[cmd]; ok {
		if err := a.guard.Check(route); err != nil {
			switch {
			case errors.Is(err, guard.ErrLoginRequired):
				printlnFn("Please log in first (command: login)")
			case errors.Is(err, guard.ErrRoleNotAllowed):
				printlnFn("That command is not available for your role")
			default:
				printlnFn("Access denied:", err.Error())
			}
			return
		}
	}

	switch cmd {
	case "help":
		a.help()
	case "register":
		_ = a.Register(ctx)
	case "login":
		_ = a.Login(ctx)
	case "logout":
		_ = a.Logout(ctx)
	case "whoami":
		_ = a.Whoami(ctx)
	case "profile":
		_ = a.UpdateProfile(ctx)
	case "reservations", "r":
		_ = a.ListReservations(ctx)
	case "accept":
		_ = a.ChangeReservation(ctx, args, "accept")
	case "decline":
		_ = a.ChangeReservation(ctx, args, "decline")
	case "cancel":
		_ = a.ChangeReservation(ctx, args, "cancel")
	case "createtrip":
		_ = a.CreateTrip(ctx)
	case "search":
		_ = a.SearchRides(ctx)
	case "book":
		_ = a.BookRide(ctx, args)
	case "car":
		_ = a.ShowCar(ctx)
	case "setcar":
		_ = a.SetCar(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func (a *App) help() {
	if !a.isLoggedIn() {
		printlnFn("Available commands: register, login, help, exit")
		return
	}
	s, _ := a.sessions.Current()
	common := "whoami, profile, (r)eservations, logout, help, exit"
	if s.User.Role == models.RoleDriver {
		printlnFn("Available commands: createtrip, car, setcar, accept <id>, decline <id>, " + common)
	} else {
		printlnFn("Available commands: search, book <trip-id>, cancel <id>, " + common)
	}
}
