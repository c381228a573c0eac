package store

import "context"

// Committer persists the current in-memory state after a mutation.
type Committer interface {
	Commit(ctx context.Context) error
}

// Syncer restores state at startup and commits it afterwards.
type Syncer interface {
	Committer
	Restore(ctx context.Context) (restored bool, err error)
	Snapshot(ctx context.Context) (Snapshot, error)
}
