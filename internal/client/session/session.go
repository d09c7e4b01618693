// Package session holds the authenticated user and bearer token, persists
// them to the local database, and exposes login/logout to the rest of the
// client. The invariant maintained throughout: user and token are stored and
// cleared together, so IsAuthenticated is true iff both are present.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
	"github.com/wheelsapp/wheels-cli/internal/client/storage/metadata"
	"github.com/wheelsapp/wheels-cli/internal/dbx"
	"github.com/wheelsapp/wheels-cli/internal/logging"
)

const (
	keyUser  = "session.user"
	keyToken = "session.token"
)

// Manager is the single owner of session state. Construct one per process
// and pass it down; nothing else reads the session keys from storage.
type Manager struct {
	db  *sql.DB
	log logging.Logger

	mu      sync.RWMutex
	current *models.Session
}

func NewManager(db *sql.DB, log logging.Logger) *Manager {
	return &Manager{db: db, log: log}
}

func (m *Manager) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(m.db)
}

// Rehydrate loads a previously persisted session. A malformed or partial
// record (user without token, token without user, unparseable user JSON) is
// cleared and logged, leaving the manager unauthenticated; it is never
// surfaced as an active session.
func (m *Manager) Rehydrate(ctx context.Context) error {
	repo := m.repo()

	userRaw, err := repo.Get(ctx, keyUser)
	if err != nil {
		return err
	}
	tokenRaw, err := repo.Get(ctx, keyToken)
	if err != nil {
		return err
	}

	if userRaw == nil && tokenRaw == nil {
		return nil
	}

	var user models.User
	if userRaw == nil || tokenRaw == nil || json.Unmarshal(userRaw, &user) != nil || user.ID == "" {
		m.log.Warn(ctx, "clearing corrupted session record")
		return m.Logout(ctx)
	}

	m.mu.Lock()
	m.current = &models.Session{User: user, Token: string(tokenRaw)}
	m.mu.Unlock()
	return nil
}

// Login persists the user record and token atomically and activates the
// session. No validation of the token shape is done here; the backend's
// earlier acceptance is trusted.
func (m *Manager) Login(ctx context.Context, user models.User, token string) error {
	userRaw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyUser, userRaw); err != nil {
			return err
		}
		return repo.Set(ctx, keyToken, []byte(token))
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.current = &models.Session{User: user, Token: token}
	m.mu.Unlock()
	return nil
}

// Logout removes both persisted values and clears in-memory state.
// Idempotent: calling it without an active session is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyUser); err != nil {
			return err
		}
		return repo.Delete(ctx, keyToken)
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	return nil
}

// Current returns the active session, if any.
func (m *Manager) Current() (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return models.Session{}, false
	}
	return *m.current, true
}

func (m *Manager) IsAuthenticated() bool {
	_, ok := m.Current()
	return ok
}

// Token satisfies api.TokenSource. Returns "" when unauthenticated.
func (m *Manager) Token() string {
	s, ok := m.Current()
	if !ok {
		return ""
	}
	return s.Token
}
