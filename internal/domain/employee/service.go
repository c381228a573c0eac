package employee

import "context"

// EmployeeService manages the roster.
type EmployeeService interface {
	List(ctx context.Context) ([]EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// UpdateSchedule sets or clears (Schedule == nil) the per-employee override
	UpdateSchedule(ctx context.Context, req UpdateScheduleRequest) (EmployeeResponse, error)

	// Delete removes the employee together with every time entry they own
	Delete(ctx context.Context, id string) error
}
