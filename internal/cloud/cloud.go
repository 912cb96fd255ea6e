// Package cloud is the optional remote sync store: one snapshot row per user
// identity, last write wins. A nil Client means the service runs local-only.
package cloud

import (
	"context"
	"time"

	"github.com/havenlab/haven/internal/record"
)

// RemoteSnapshot is a session snapshot as stored remotely, with the write
// timestamp the store recorded.
type RemoteSnapshot struct {
	Snapshot  record.Snapshot
	UpdatedAt time.Time
}

// Client is the remote sync collaborator. Fetch returns nil (not an error)
// when the user has no remote snapshot yet.
type Client interface {
	Fetch(ctx context.Context, userID string) (*RemoteSnapshot, error)
	Upsert(ctx context.Context, userID string, snap record.Snapshot) error
	Close() error
}
