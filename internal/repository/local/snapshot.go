package local

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/store"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/storage"
)

type snapshotRepository struct {
	files storage.FileStorage
	path  string
}

// NewSnapshotRepository keeps the snapshot as one JSON document at path.
func NewSnapshotRepository(files storage.FileStorage, path string) store.SnapshotRepository {
	return &snapshotRepository{files: files, path: path}
}

// Load implements store.SnapshotRepository.
func (r *snapshotRepository) Load(ctx context.Context) (store.Snapshot, bool, error) {
	rc, err := r.files.Read(ctx, r.path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return store.Snapshot{}, false, nil
		}
		return store.Snapshot{}, false, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer rc.Close()

	var snapshot store.Snapshot
	if err := json.NewDecoder(rc).Decode(&snapshot); err != nil {
		return store.Snapshot{}, false, fmt.Errorf("failed to decode snapshot %s: %w", r.path, err)
	}
	return snapshot, true, nil
}

// Save implements store.SnapshotRepository.
func (r *snapshotRepository) Save(ctx context.Context, snapshot store.Snapshot) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := r.files.Write(ctx, r.path, &buf); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
