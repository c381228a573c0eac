package store

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
)

// Snapshot is the whole persisted state. It is read once at startup and
// rewritten after every committed mutation.
type Snapshot struct {
	TimeEntries []timeentry.TimeEntry `json:"timeEntries"`
	Employees   []employee.Employee   `json:"employees"`
	Settings    settings.WorkSettings `json:"settings"`
}
