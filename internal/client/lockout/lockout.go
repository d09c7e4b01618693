// Package lockout tracks consecutive failed login attempts in durable
// storage. After the configured number of failures, further attempts are
// rejected client-side until the lock window elapses, without calling the
// backend at all.
package lockout

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/wheelsapp/wheels-cli/internal/client/storage/metadata"
	"github.com/wheelsapp/wheels-cli/internal/common"
	"github.com/wheelsapp/wheels-cli/internal/dbx"
)

const (
	keyAttempts  = "login.attempts"
	keyLockUntil = "login.lock_until"
)

const (
	DefaultMaxAttempts = 5
	DefaultLockWindow  = 15 * time.Minute
)

// Tracker persists two counters: the consecutive failure count and the
// lock-until timestamp. Both survive process restarts.
type Tracker struct {
	db          *sql.DB
	maxAttempts int
	lockWindow  time.Duration
	now         func() time.Time
}

func NewTracker(db *sql.DB) *Tracker {
	return &Tracker{
		db:          db,
		maxAttempts: DefaultMaxAttempts,
		lockWindow:  DefaultLockWindow,
		now:         time.Now,
	}
}

// WithClock replaces the time source. Tests use this.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

func (t *Tracker) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(t.db)
}

// Check returns common.ErrLoginLocked and the remaining lock time when login
// is currently locked. A lock that has expired is cleared on the way through.
func (t *Tracker) Check(ctx context.Context) (time.Duration, error) {
	repo := t.repo()

	raw, err := repo.Get(ctx, keyLockUntil)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}

	unix, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		// Unreadable counter: treat as unlocked and drop it.
		_ = repo.Delete(ctx, keyLockUntil)
		return 0, nil
	}

	until := time.Unix(unix, 0)
	remaining := until.Sub(t.now())
	if remaining <= 0 {
		return 0, t.reset(ctx)
	}
	return remaining, common.ErrLoginLocked
}

// Fail records one failed attempt. Reaching the attempt limit sets the
// lock-until timestamp and restarts the counter.
func (t *Tracker) Fail(ctx context.Context) error {
	return dbx.WithTx(ctx, t.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		attempts := 0
		if raw, err := repo.Get(ctx, keyAttempts); err != nil {
			return err
		} else if raw != nil {
			attempts, _ = strconv.Atoi(string(raw))
		}
		attempts++

		if attempts >= t.maxAttempts {
			until := t.now().Add(t.lockWindow).Unix()
			if err := repo.Set(ctx, keyLockUntil, []byte(strconv.FormatInt(until, 10))); err != nil {
				return err
			}
			return repo.Set(ctx, keyAttempts, []byte("0"))
		}
		return repo.Set(ctx, keyAttempts, []byte(strconv.Itoa(attempts)))
	})
}

// Succeed clears both counters after a successful login.
func (t *Tracker) Succeed(ctx context.Context) error {
	return t.reset(ctx)
}

func (t *Tracker) reset(ctx context.Context) error {
	return dbx.WithTx(ctx, t.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyAttempts); err != nil {
			return err
		}
		return repo.Delete(ctx, keyLockUntil)
	})
}
