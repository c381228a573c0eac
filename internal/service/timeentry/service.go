package timeentry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/store"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/wallclock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/hours"
)

type TimeEntryServiceImpl struct {
	timeentry.TimeEntryRepository
	employee.EmployeeRepository
	settingsRepo settings.SettingsRepository
	committer    store.Committer
	clock        clock.Clock
	calculator   *hours.Calculator

	// mu serializes every read-modify-commit cycle
	mu sync.Locker
}

func NewTimeEntryService(
	timeEntryRepo timeentry.TimeEntryRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	committer store.Committer,
	c clock.Clock,
	mu sync.Locker,
) timeentry.TimeEntryService {
	return &TimeEntryServiceImpl{
		TimeEntryRepository: timeEntryRepo,
		EmployeeRepository:  employeeRepo,
		settingsRepo:        settingsRepo,
		committer:           committer,
		clock:               c,
		calculator:          hours.NewCalculator(c),
		mu:                  mu,
	}
}

// ========================================
// LIVE FLOW
// ========================================

// ClockIn implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ClockIn(ctx context.Context, req timeentry.ClockInRequest) (timeentry.TransitionResult, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TransitionResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return timeentry.TransitionResult{}, err
	}

	now := s.clock.Now()
	date, tod := wallclock.Date(now), wallclock.TimeOfDay(now)

	entry, err := s.TimeEntryRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return timeentry.TransitionResult{}, fmt.Errorf("failed to get today's entry: %w", err)
	}

	if entry == nil {
		entry = &timeentry.TimeEntry{
			ID:           timeentry.EntryID(emp.ID, date),
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Date:         date,
			Breaks:       []timeentry.Break{},
		}
	}
	// A second clock-in on the same day overwrites the first and reopens the day.
	entry.ClockIn = &tod
	entry.ClockOut = nil
	entry.Status = timeentry.StatusClockedIn

	if err := s.save(ctx, *entry); err != nil {
		return timeentry.TransitionResult{}, err
	}

	slog.Info("Clocked in", "employee_id", emp.ID, "date", date, "time", tod)
	return s.changed(ctx, *entry)
}

// StartBreak implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) StartBreak(ctx context.Context, req timeentry.BreakRequest) (timeentry.TransitionResult, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TransitionResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	entry, err := s.today(ctx, req.EmployeeID, now)
	if err != nil || entry == nil {
		return timeentry.TransitionResult{}, err
	}

	// Only a running day can go on break; this keeps at most one open break.
	if entry.Status != timeentry.StatusClockedIn {
		return s.unchanged(ctx, *entry)
	}

	entry.Breaks = append(entry.Breaks, timeentry.Break{Start: wallclock.TimeOfDay(now)})
	entry.Status = timeentry.StatusOnBreak

	if err := s.save(ctx, *entry); err != nil {
		return timeentry.TransitionResult{}, err
	}
	return s.changed(ctx, *entry)
}

// EndBreak implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) EndBreak(ctx context.Context, req timeentry.BreakRequest) (timeentry.TransitionResult, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TransitionResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	entry, err := s.today(ctx, req.EmployeeID, now)
	if err != nil || entry == nil {
		return timeentry.TransitionResult{}, err
	}

	if i := entry.OpenBreakIndex(); i >= 0 {
		end := wallclock.TimeOfDay(now)
		entry.Breaks[i].End = &end
	}
	entry.Status = timeentry.StatusClockedIn

	if err := s.save(ctx, *entry); err != nil {
		return timeentry.TransitionResult{}, err
	}
	return s.changed(ctx, *entry)
}

// InitiateClockOut implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) InitiateClockOut(ctx context.Context, req timeentry.InitiateClockOutRequest) (timeentry.ClockOutPrompt, error) {
	if err := req.Validate(); err != nil {
		return timeentry.ClockOutPrompt{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return timeentry.ClockOutPrompt{}, err
	}

	prompt := timeentry.ClockOutPrompt{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
	}

	entry, err := s.today(ctx, emp.ID, s.clock.Now())
	if err != nil {
		return timeentry.ClockOutPrompt{}, err
	}
	if entry != nil {
		resp, err := s.respond(ctx, *entry)
		if err != nil {
			return timeentry.ClockOutPrompt{}, err
		}
		prompt.Entry = &resp
	}
	return prompt, nil
}

// ConfirmClockOut implements timeentry.TimeEntryService. A break still open
// at clock-out is closed at the same instant and counts toward break time.
func (s *TimeEntryServiceImpl) ConfirmClockOut(ctx context.Context, req timeentry.ConfirmClockOutRequest) (timeentry.TransitionResult, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TransitionResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	entry, err := s.today(ctx, req.EmployeeID, now)
	if err != nil || entry == nil {
		return timeentry.TransitionResult{}, err
	}

	tod := wallclock.TimeOfDay(now)
	if i := entry.OpenBreakIndex(); i >= 0 {
		end := tod
		entry.Breaks[i].End = &end
	}
	entry.ClockOut = &tod
	entry.Status = timeentry.StatusClockedOut

	// The first signature of the day stands.
	if entry.Signature == nil {
		signature := req.Signature
		signedAt := now.Format(wallclock.SignatureDateLayout)
		entry.Signature = &signature
		entry.SignatureDate = &signedAt
	}

	if err := s.save(ctx, *entry); err != nil {
		return timeentry.TransitionResult{}, err
	}

	slog.Info("Clocked out", "employee_id", entry.EmployeeID, "date", entry.Date, "time", tod)
	return s.changed(ctx, *entry)
}

// ========================================
// MANUAL ENTRIES
// ========================================

// UpsertRetroactive implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) UpsertRetroactive(ctx context.Context, req timeentry.RetroactiveRequest) (timeentry.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	entry, err := s.TimeEntryRepository.GetByEmployeeAndDate(ctx, emp.ID, req.Date)
	if err != nil {
		return timeentry.TimeEntryResponse{}, fmt.Errorf("failed to get entry: %w", err)
	}
	if entry == nil {
		entry = &timeentry.TimeEntry{
			ID:           timeentry.EntryID(emp.ID, req.Date),
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Date:         req.Date,
			Breaks:       []timeentry.Break{},
		}
	}
	applyTimes(entry, req.ClockIn, req.ClockOut, req.BreakTime)

	if err := s.save(ctx, *entry); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return s.respond(ctx, *entry)
}

// EditEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) EditEntry(ctx context.Context, req timeentry.EditEntryRequest) (timeentry.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.TimeEntryRepository.GetByID(ctx, req.ID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	applyTimes(&entry, req.ClockIn, req.ClockOut, req.BreakTime)

	if err := s.save(ctx, entry); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return s.respond(ctx, entry)
}

// applyTimes overwrites the manually editable fields. Recorded breaks are
// left alone; a manual break time supersedes them in the calculation.
func applyTimes(entry *timeentry.TimeEntry, clockIn string, clockOut *string, breakTime *float64) {
	in := clockIn
	entry.ClockIn = &in
	entry.ClockOut = nil
	entry.Status = timeentry.StatusClockedIn
	if clockOut != nil {
		out := *clockOut
		entry.ClockOut = &out
		entry.Status = timeentry.StatusClockedOut
	}
	entry.BreakTime = nil
	if breakTime != nil {
		bt := *breakTime
		entry.BreakTime = &bt
	}
}

// DeleteEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.TimeEntryRepository.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.committer.Commit(ctx); err != nil {
		return fmt.Errorf("failed to persist deletion: %w", err)
	}
	return nil
}

// ========================================
// QUERIES
// ========================================

// GetEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) GetEntry(ctx context.Context, id string) (timeentry.TimeEntryResponse, error) {
	entry, err := s.TimeEntryRepository.GetByID(ctx, id)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return s.respond(ctx, entry)
}

// GetToday implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) GetToday(ctx context.Context, employeeID string) (timeentry.TodayStatusResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return timeentry.TodayStatusResponse{}, err
	}

	now := s.clock.Now()
	status := timeentry.TodayStatusResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Date:         wallclock.Date(now),
		Status:       timeentry.StatusClockedOut,
	}

	entry, err := s.today(ctx, emp.ID, now)
	if err != nil {
		return timeentry.TodayStatusResponse{}, err
	}
	if entry != nil {
		resp, err := s.respond(ctx, *entry)
		if err != nil {
			return timeentry.TodayStatusResponse{}, err
		}
		status.Status = entry.Status
		status.Entry = &resp
	}
	return status, nil
}

// ListByDate implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ListByDate(ctx context.Context, date string) ([]timeentry.TimeEntryResponse, error) {
	if date == "" {
		date = wallclock.Date(s.clock.Now())
	}
	if _, ok := validator.IsValidDate(date); !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}

	entries, err := s.TimeEntryRepository.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return s.respondAll(ctx, entries)
}

// ListHistory implements timeentry.TimeEntryService. Today's entries are
// excluded; the rest come newest first.
func (s *TimeEntryServiceImpl) ListHistory(ctx context.Context, filter timeentry.HistoryFilter) (timeentry.ListTimeEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return timeentry.ListTimeEntryResponse{}, err
	}

	all, err := s.TimeEntryRepository.List(ctx)
	if err != nil {
		return timeentry.ListTimeEntryResponse{}, fmt.Errorf("failed to list entries: %w", err)
	}

	today := wallclock.Date(s.clock.Now())
	matched := make([]timeentry.TimeEntry, 0, len(all))
	for _, e := range all {
		if e.Date == today {
			continue
		}
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && e.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.StartDate != nil && *filter.StartDate != "" && e.Date < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && *filter.EndDate != "" && e.Date > *filter.EndDate {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Date > matched[j].Date })

	total := len(matched)
	// pages past the end are empty; checking first keeps the offset from overflowing
	from := total
	if filter.Page-1 <= total/filter.Limit {
		from = min((filter.Page-1)*filter.Limit, total)
	}
	to := min(from+filter.Limit, total)

	responses, err := s.respondAll(ctx, matched[from:to])
	if err != nil {
		return timeentry.ListTimeEntryResponse{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", from+1, to, total)
	if total == 0 || from == to {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return timeentry.ListTimeEntryResponse{
		TotalCount: int64(total),
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Entries:    responses,
	}, nil
}

// ========================================
// HELPERS
// ========================================

func (s *TimeEntryServiceImpl) today(ctx context.Context, employeeID string, now time.Time) (*timeentry.TimeEntry, error) {
	entry, err := s.TimeEntryRepository.GetByEmployeeAndDate(ctx, employeeID, wallclock.Date(now))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's entry: %w", err)
	}
	return entry, nil
}

func (s *TimeEntryServiceImpl) save(ctx context.Context, entry timeentry.TimeEntry) error {
	if err := s.TimeEntryRepository.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	if err := s.committer.Commit(ctx); err != nil {
		return fmt.Errorf("failed to persist entry: %w", err)
	}
	return nil
}

func (s *TimeEntryServiceImpl) changed(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TransitionResult, error) {
	resp, err := s.respond(ctx, entry)
	if err != nil {
		return timeentry.TransitionResult{}, err
	}
	return timeentry.TransitionResult{Changed: true, Entry: &resp}, nil
}

func (s *TimeEntryServiceImpl) unchanged(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TransitionResult, error) {
	resp, err := s.respond(ctx, entry)
	if err != nil {
		return timeentry.TransitionResult{}, err
	}
	return timeentry.TransitionResult{Changed: false, Entry: &resp}, nil
}

// respond attaches a breakdown computed against the owner's schedule.
// Entries of deleted employees fall back to the global settings.
func (s *TimeEntryServiceImpl) respond(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntryResponse, error) {
	ws, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return timeentry.TimeEntryResponse{}, fmt.Errorf("failed to get settings: %w", err)
	}

	var owner *employee.Employee
	emp, err := s.EmployeeRepository.GetByID(ctx, entry.EmployeeID)
	switch {
	case err == nil:
		owner = &emp
	case !errors.Is(err, employee.ErrEmployeeNotFound):
		return timeentry.TimeEntryResponse{}, err
	}

	return s.calculator.Respond(entry, hours.Resolve(owner, ws), ws.ToleranceMinutes), nil
}

func (s *TimeEntryServiceImpl) respondAll(ctx context.Context, entries []timeentry.TimeEntry) ([]timeentry.TimeEntryResponse, error) {
	ws, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	byID := make(map[string]*employee.Employee, len(employees))
	for i := range employees {
		byID[employees[i].ID] = &employees[i]
	}

	responses := make([]timeentry.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, s.calculator.Respond(e, hours.Resolve(byID[e.EmployeeID], ws), ws.ToleranceMinutes))
	}
	return responses, nil
}
