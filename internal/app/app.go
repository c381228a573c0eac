// Package app wires repositories and services from configuration. Both
// binaries build on it.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/store"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/local"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	employeeService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/live"
	reportService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/report"
	settingsService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/settings"
	storeService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/store"
	timeEntryService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/timeentry"
)

type App struct {
	Store     store.Syncer
	Employee  employee.EmployeeService
	Settings  settings.SettingsService
	TimeEntry timeentry.TimeEntryService
	Report    report.ReportService
	Hub       *sse.Hub
	Live      *live.Publisher

	db *database.DB
}

// New opens the configured snapshot store, restores it into memory and
// builds the services on top.
func New(ctx context.Context, cfg *config.Config, c clock.Clock) (*App, error) {
	a := &App{}

	snapshots, err := a.openSnapshots(ctx, cfg)
	if err != nil {
		return nil, err
	}

	employees := memory.NewEmployeeRepository()
	entries := memory.NewTimeEntryRepository()
	settingsRepo := memory.NewSettingsRepository(cfg.Work)

	a.Store = storeService.NewStoreService(snapshots, employees, entries, settingsRepo, cfg.Storage.SeedDefaults)
	restored, err := a.Store.Restore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	slog.Info("Store ready", "type", cfg.Storage.Type, "restored", restored)

	// one writer at a time across every mutating service
	var mu sync.Mutex

	a.Employee = employeeService.NewEmployeeService(employees, entries, a.Store, &mu)
	a.Settings = settingsService.NewSettingsService(settingsRepo, a.Store, &mu)
	a.TimeEntry = timeEntryService.NewTimeEntryService(entries, employees, settingsRepo, a.Store, c, &mu)
	a.Report = reportService.NewReportService(entries, employees, settingsRepo, c)
	a.Hub = sse.NewHub(cfg.Live.Buffer)
	a.Live = live.NewPublisher(entries, employees, settingsRepo, c, a.Hub)

	return a, nil
}

func (a *App) openSnapshots(ctx context.Context, cfg *config.Config) (store.SnapshotRepository, error) {
	switch cfg.Storage.Type {
	case config.StoreMemory:
		return nil, nil
	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		a.db = db
		return postgresql.NewSnapshotRepository(db), nil
	default:
		files, err := storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return local.NewSnapshotRepository(files, cfg.Storage.SnapshotFile), nil
	}
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
