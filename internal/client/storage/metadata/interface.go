// Package metadata is a small key/value repository over the local database.
// It backs the session record, bearer token, and login lockout counters.
package metadata

import "context"

type Repository interface {
	// Get returns the value for key, or nil if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
