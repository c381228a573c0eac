package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/store"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
)

func strPtr(s string) *string { return &s }

func TestSnapshotRepository_SaveLoad(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewSnapshotRepository(setup.DB)

	_, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	breakTime := 0.5
	snapshot := store.Snapshot{
		Settings: settings.WorkSettings{WorkHoursPerDay: 8, ToleranceMinutes: 15, WorkStartTime: "08:00"},
		Employees: []employee.Employee{
			{ID: "b", Name: "Maria Santos"},
			{ID: "a", Name: "João Silva", WorkSchedule: &employee.WorkSchedule{
				WorkHoursPerDay: 6, WorkStartTime: "09:00", WorkEndTime: "15:00", WorkDays: []string{"monday", "friday"},
			}},
		},
		TimeEntries: []timeentry.TimeEntry{
			{
				ID: "a-2025-03-10", EmployeeID: "a", EmployeeName: "João Silva", Date: "2025-03-10",
				ClockIn: strPtr("08:00"), ClockOut: strPtr("17:00"),
				Breaks:    []timeentry.Break{{Start: "12:00", End: strPtr("13:00")}},
				Status:    timeentry.StatusClockedOut,
				Signature: strPtr("data:image/png;base64,AAAA"), SignatureDate: strPtr("10/03/2025 17:00:00"),
			},
			{
				ID: "b-2025-03-11", EmployeeID: "b", EmployeeName: "Maria Santos", Date: "2025-03-11",
				ClockIn: strPtr("08:30"), Breaks: []timeentry.Break{{Start: "10:00"}},
				Status: timeentry.StatusOnBreak, BreakTime: &breakTime,
			},
		},
	}
	require.NoError(t, repo.Save(ctx, snapshot))

	got, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snapshot, got)

	// a second save replaces rather than appends
	snapshot.TimeEntries = snapshot.TimeEntries[:1]
	snapshot.Employees = snapshot.Employees[1:]
	require.NoError(t, repo.Save(ctx, snapshot))

	got, _, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.TimeEntries, 1)
	assert.Len(t, got.Employees, 1)
}
