package storage

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ErrUnavailable is returned by callers that need storage when the backend is the no-op one
var ErrUnavailable = errors.New("client storage is not available")

// Storage is the persistent key/value store backing the session record and form drafts.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Available reports whether this is an interactive context with real storage.
	Available() bool
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Keys lists the keys starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
