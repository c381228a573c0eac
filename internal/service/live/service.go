// Package live pushes the running breakdown of today's open entries to
// SSE subscribers on every tick.
package live

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/wallclock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/hours"
)

const (
	JobName        = "live_breakdowns"
	EventBreakdown = "breakdown"
)

type Publisher struct {
	timeEntryRepo timeentry.TimeEntryRepository
	employeeRepo  employee.EmployeeRepository
	settingsRepo  settings.SettingsRepository
	calculator    *hours.Calculator
	hub           *sse.Hub
}

func NewPublisher(
	timeEntryRepo timeentry.TimeEntryRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	c clock.Clock,
	hub *sse.Hub,
) *Publisher {
	return &Publisher{
		timeEntryRepo: timeEntryRepo,
		employeeRepo:  employeeRepo,
		settingsRepo:  settingsRepo,
		calculator:    hours.NewCalculator(c),
		hub:           hub,
	}
}

func (p *Publisher) RegisterJobs(scheduler *cron.Scheduler, interval time.Duration) {
	scheduler.AddJob(JobName, interval, p.PublishBreakdowns)
}

// PublishBreakdowns recomputes every in-progress entry dated today and
// publishes one event per entry, topic = employee id. Nothing is written
// back. It is a no-op while nobody is subscribed.
func (p *Publisher) PublishBreakdowns(ctx context.Context) error {
	if p.hub.TotalSubscribers() == 0 {
		return nil
	}

	open, err := p.OpenEntries(ctx)
	if err != nil {
		return err
	}

	for _, resp := range open {
		p.hub.Publish(sse.Event{
			Topic: resp.EmployeeID,
			Event: EventBreakdown,
			Data:  resp,
		})
	}

	if len(open) > 0 {
		slog.Debug("Live breakdowns published", "count", len(open))
	}
	return nil
}

// OpenEntries returns today's entries that are clocked in or on break,
// with their breakdown as of now.
func (p *Publisher) OpenEntries(ctx context.Context) ([]timeentry.TimeEntryResponse, error) {
	today := wallclock.Date(p.calculator.Now())

	entries, err := p.timeEntryRepo.ListByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's entries: %w", err)
	}

	ws, err := p.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	employees, err := p.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	byID := make(map[string]*employee.Employee, len(employees))
	for i := range employees {
		byID[employees[i].ID] = &employees[i]
	}

	open := make([]timeentry.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		if e.ClockIn == nil || e.Status == timeentry.StatusClockedOut {
			continue
		}
		open = append(open, p.calculator.Respond(e, hours.Resolve(byID[e.EmployeeID], ws), ws.ToleranceMinutes))
	}
	return open, nil
}
