package snapshot

import (
	"context"
	"errors"
)

// Well-known snapshot keys. Each key holds one serialized collection.
const (
	KeyAccounts = "accounts"
	KeyRuns     = "runs"
	KeySession  = "session"
)

// ErrNotFound is returned by Load when no snapshot exists for the key.
var ErrNotFound = errors.New("snapshot not found")

// Store persists keyed JSON snapshots. Implementations must make Save an
// atomic replace of the previous value for the key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
