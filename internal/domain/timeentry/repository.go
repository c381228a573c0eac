package timeentry

import "context"

type TimeEntryRepository interface {
	// GetByID returns ErrTimeEntryNotFound when the id is unknown
	GetByID(ctx context.Context, id string) (TimeEntry, error)

	// GetByEmployeeAndDate returns nil, nil when the employee has no record that day
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*TimeEntry, error)

	ListByDate(ctx context.Context, date string) ([]TimeEntry, error)
	List(ctx context.Context) ([]TimeEntry, error)

	// Save inserts or replaces by id
	Save(ctx context.Context, entry TimeEntry) error

	Delete(ctx context.Context, id string) error
	DeleteByEmployee(ctx context.Context, employeeID string) (int, error)

	// ReplaceAll swaps the whole record set, used when restoring a snapshot
	ReplaceAll(ctx context.Context, entries []TimeEntry) error
}
