package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/store"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
)

type EmployeeServiceImpl struct {
	employeeRepo  employee.EmployeeRepository
	timeEntryRepo timeentry.TimeEntryRepository
	committer     store.Committer
	mu            sync.Locker
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	timeEntryRepo timeentry.TimeEntryRepository,
	committer store.Committer,
	mu sync.Locker,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:  employeeRepo,
		timeEntryRepo: timeEntryRepo,
		committer:     committer,
		mu:            mu,
	}
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		WorkSchedule: req.WorkSchedule,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	if err := s.committer.Commit(ctx); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to persist employee: %w", err)
	}

	slog.Info("Employee created", "employee_id", created.ID, "name", created.Name)
	return employee.ToResponse(created), nil
}

// Update implements employee.EmployeeService. Existing entries keep the
// name they were recorded under.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	e.Name = strings.TrimSpace(req.Name)

	return s.update(ctx, e)
}

// UpdateSchedule implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateSchedule(ctx context.Context, req employee.UpdateScheduleRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	e.WorkSchedule = req.WorkSchedule

	return s.update(ctx, e)
}

func (s *EmployeeServiceImpl) update(ctx context.Context, e employee.Employee) (employee.EmployeeResponse, error) {
	if err := s.employeeRepo.Update(ctx, e); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.committer.Commit(ctx); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to persist employee: %w", err)
	}
	return employee.ToResponse(e), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	removed, err := s.timeEntryRepo.DeleteByEmployee(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete entries of employee %s: %w", id, err)
	}

	if err := s.committer.Commit(ctx); err != nil {
		return fmt.Errorf("failed to persist deletion: %w", err)
	}

	slog.Info("Employee deleted", "employee_id", id, "time_entries_removed", removed)
	return nil
}
