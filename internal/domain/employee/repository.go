package employee

import "context"

// EmployeeRepository is the roster lookup the attendance engine reads from.
type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when the id is unknown
	GetByID(ctx context.Context, id string) (Employee, error)

	// List returns the roster in insertion order
	List(ctx context.Context) ([]Employee, error)

	Create(ctx context.Context, employee Employee) (Employee, error)
	Update(ctx context.Context, employee Employee) error
	Delete(ctx context.Context, id string) error

	// ReplaceAll swaps the whole roster, used when restoring a snapshot
	ReplaceAll(ctx context.Context, employees []Employee) error
}
