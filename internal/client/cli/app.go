// Package cli is the interactive surface of the Wheels client: a REPL whose
// commands stand in for the application's routes. Dispatch consults the
// route guard, so role-restricted commands behave like protected views.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/wheelsapp/wheels-cli/internal/client/api"
	"github.com/wheelsapp/wheels-cli/internal/client/config"
	"github.com/wheelsapp/wheels-cli/internal/client/geocode"
	"github.com/wheelsapp/wheels-cli/internal/client/guard"
	"github.com/wheelsapp/wheels-cli/internal/client/lockout"
	"github.com/wheelsapp/wheels-cli/internal/client/reservations"
	"github.com/wheelsapp/wheels-cli/internal/client/session"
	"github.com/wheelsapp/wheels-cli/internal/client/storage"
	"github.com/wheelsapp/wheels-cli/internal/client/trips"
	"github.com/wheelsapp/wheels-cli/internal/logging"
)

type App struct {
	config       *config.Config
	db           *sql.DB
	log          logging.Logger
	sessions     *session.Manager
	guard        *guard.Guard
	lockout      *lockout.Tracker
	api          api.Client
	reservations *reservations.Service
	trips        *trips.Service
	geocoder     *geocode.Client
	suggester    *geocode.Suggester
	reader       *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(db, log)
	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.HTTPTimeout, sessions, log)

	geocoder := geocode.NewClient(cfg.GeocoderEndpoint, cfg.GeocoderToken)
	geocoder.BBox = cfg.GeocoderBBox
	geocoder.Region = cfg.GeocoderRegion

	return &App{
		config:       cfg,
		db:           db,
		log:          log,
		sessions:     sessions,
		guard:        guard.New(sessions),
		lockout:      lockout.NewTracker(db),
		api:          apiClient,
		reservations: reservations.NewService(apiClient, log),
		trips:        trips.NewService(apiClient, log),
		geocoder:     geocoder,
		suggester:    geocode.NewSuggester(geocoder, cfg.DebounceInterval),
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

// Run rehydrates any persisted session and enters the REPL.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.sessions.Rehydrate(ctx); err != nil {
		return err
	}
	a.Root(ctx)
	return nil
}

func (a *App) Close() {
	if a.suggester != nil {
		a.suggester.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated()
}
