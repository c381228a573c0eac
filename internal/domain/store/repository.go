package store

import "context"

type SnapshotRepository interface {
	// Load reports ok=false when nothing has been saved yet
	Load(ctx context.Context) (snapshot Snapshot, ok bool, err error)
	Save(ctx context.Context, snapshot Snapshot) error
}
