package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/wheelsapp/wheels-cli/internal/client/api"
	"github.com/wheelsapp/wheels-cli/internal/client/models"
	"github.com/wheelsapp/wheels-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login authenticates against the backend. The client-side lockout is
// checked first: after five consecutive rejected attempts, login is refused
// locally for fifteen minutes without touching the backend. Required-field
// validation also happens before any network call.
func (a *App) Login(ctx context.Context) error {
	if remaining, err := a.lockout.Check(ctx); err != nil {
		if errors.Is(err, common.ErrLoginLocked) {
			minutes := int(math.Ceil(remaining.Minutes()))
			printlnFn(fmt.Sprintf("Too many failed attempts. Try again in %d minutes.", minutes))
			return err
		}
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if email == "" || len(password) == 0 {
		if email == "" {
			printlnFn("Email: required field")
		}
		if len(password) == 0 {
			printlnFn("Password: required field")
		}
		return nil
	}

	user, token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			if ferr := a.lockout.Fail(ctx); ferr != nil {
				a.log.Error(ctx, "recording failed login", "error", ferr)
			}
			printlnFn("Incorrect email or password.")
			return err
		}
		if errors.Is(err, common.ErrUnavailable) {
			printlnFn("Server connection error.")
			return err
		}
		printlnFn("Login failed:", backendMessage(err))
		return err
	}

	if err := a.lockout.Succeed(ctx); err != nil {
		a.log.Error(ctx, "resetting login lockout", "error", err)
	}
	if err := a.sessions.Login(ctx, user, token); err != nil {
		return err
	}

	printlnFn("Login successful!")
	if user.Role == models.RoleDriver {
		printlnFn("Driver home: createtrip, reservations, car")
	} else {
		printlnFn("Passenger home: search, book, reservations")
	}
	return nil
}

// Register creates a new account and starts a session right away, the way
// the sign-up flow landed users on their home view.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	roleText, err := getSimpleText(a.reader, "Role (passenger/driver)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	errs := map[string]string{}
	if name == "" {
		errs["name"] = "required field"
	}
	if email == "" {
		errs["email"] = "required field"
	}
	if len(password) == 0 {
		errs["password"] = "required field"
	}
	role := models.Role(roleText)
	if role != models.RolePassenger && role != models.RoleDriver {
		errs["role"] = "must be passenger or driver"
	}
	if len(errs) > 0 {
		for field, msg := range errs {
			printlnFn(field + ": " + msg)
		}
		return nil
	}

	user, token, err := a.api.Register(ctx, api.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: string(password),
		Role:     role,
	})
	if err != nil {
		printlnFn("Registration failed:", backendMessage(err))
		return err
	}

	if err := a.sessions.Login(ctx, user, token); err != nil {
		return err
	}
	printlnFn("Success! You are now logged in.")
	return nil
}

// Logout clears the persisted session. Idempotent.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// Whoami refreshes the profile from the backend and prints it, falling back
// to the cached session record when the backend is unreachable.
func (a *App) Whoami(ctx context.Context) error {
	s, ok := a.sessions.Current()
	if !ok {
		return common.ErrNoSession
	}

	user, err := a.api.Me(ctx)
	if err != nil {
		a.log.Warn(ctx, "profile refresh failed", "error", err)
		user = s.User
	}

	printlnFn(fmt.Sprintf("%s <%s> (%s)", user.Name, user.Email, user.Role))
	return nil
}

// UpdateProfile edits mutable profile fields. Empty answers keep the
// current values.
func (a *App) UpdateProfile(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "New name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	photo, err := getSimpleText(a.reader, "Photo path (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	req := api.ProfileUpdate{Name: name}
	if photo != "" {
		url, err := a.uploadFile(ctx, "photo", photo)
		if err != nil {
			printlnFn("Photo upload failed:", backendMessage(err))
			return err
		}
		req.Photo = url
	}
	if req.Name == "" && req.Photo == "" {
		printlnFn("Nothing to update.")
		return nil
	}

	user, err := a.api.UpdateProfile(ctx, req)
	if err != nil {
		printlnFn("Update failed:", backendMessage(err))
		return err
	}

	s, _ := a.sessions.Current()
	if err := a.sessions.Login(ctx, user, s.Token); err != nil {
		return err
	}
	printlnFn("Profile updated.")
	return nil
}

func (a *App) uploadFile(ctx context.Context, field, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return a.api.UploadFile(ctx, field, f.Name(), f)
}

// backendMessage extracts the backend-provided message when there is one,
// otherwise a generic fallback.
func backendMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "something went wrong, try again"
}
