package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/store"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/fixtures"
)

type StoreServiceImpl struct {
	snapshots     store.SnapshotRepository
	employeeRepo  employee.EmployeeRepository
	timeEntryRepo timeentry.TimeEntryRepository
	settingsRepo  settings.SettingsRepository
	seedDefaults  bool
}

// NewStoreService syncs the in-memory repositories with a snapshot store.
// A nil SnapshotRepository keeps state in memory only.
func NewStoreService(
	snapshots store.SnapshotRepository,
	employeeRepo employee.EmployeeRepository,
	timeEntryRepo timeentry.TimeEntryRepository,
	settingsRepo settings.SettingsRepository,
	seedDefaults bool,
) store.Syncer {
	return &StoreServiceImpl{
		snapshots:     snapshots,
		employeeRepo:  employeeRepo,
		timeEntryRepo: timeEntryRepo,
		settingsRepo:  settingsRepo,
		seedDefaults:  seedDefaults,
	}
}

// Restore loads the persisted snapshot into memory. When nothing was
// persisted yet the default roster is seeded (if enabled) and committed.
func (s *StoreServiceImpl) Restore(ctx context.Context) (bool, error) {
	if s.snapshots != nil {
		snapshot, ok, err := s.snapshots.Load(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to load snapshot: %w", err)
		}
		if ok {
			if err := s.apply(ctx, snapshot); err != nil {
				return false, err
			}
			slog.Info("Snapshot restored",
				"employees", len(snapshot.Employees),
				"time_entries", len(snapshot.TimeEntries),
			)
			return true, nil
		}
	}

	if s.seedDefaults {
		if err := s.employeeRepo.ReplaceAll(ctx, fixtures.GetDefaultEmployees()); err != nil {
			return false, fmt.Errorf("failed to seed default employees: %w", err)
		}
		slog.Info("Seeded default employees", "count", len(fixtures.GetDefaultEmployees()))
	}

	if err := s.Commit(ctx); err != nil {
		return false, err
	}
	return false, nil
}

func (s *StoreServiceImpl) apply(ctx context.Context, snapshot store.Snapshot) error {
	if err := s.employeeRepo.ReplaceAll(ctx, snapshot.Employees); err != nil {
		return fmt.Errorf("failed to restore employees: %w", err)
	}
	if err := s.timeEntryRepo.ReplaceAll(ctx, snapshot.TimeEntries); err != nil {
		return fmt.Errorf("failed to restore time entries: %w", err)
	}

	// Snapshots written before settings existed carry zero values.
	if snapshot.Settings.Check() == nil {
		if err := s.settingsRepo.Update(ctx, snapshot.Settings); err != nil {
			return fmt.Errorf("failed to restore settings: %w", err)
		}
	} else {
		slog.Warn("Snapshot settings invalid, keeping configured defaults", "settings", snapshot.Settings)
	}
	return nil
}

// Snapshot collects the current in-memory state.
func (s *StoreServiceImpl) Snapshot(ctx context.Context) (store.Snapshot, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("failed to list employees: %w", err)
	}
	entries, err := s.timeEntryRepo.List(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("failed to list time entries: %w", err)
	}
	ws, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return store.Snapshot{
		TimeEntries: entries,
		Employees:   employees,
		Settings:    ws,
	}, nil
}

// Commit implements store.Committer.
func (s *StoreServiceImpl) Commit(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		slog.Error("Failed to persist snapshot", "error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
