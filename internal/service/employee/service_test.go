package employee

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/memory"
)

type nopCommitter struct{ commits int }

func (c *nopCommitter) Commit(ctx context.Context) error {
	c.commits++
	return nil
}

func TestEmployeeService_CreateUpdate(t *testing.T) {
	ctx := context.Background()
	committer := &nopCommitter{}
	svc := NewEmployeeService(memory.NewEmployeeRepository(), memory.NewTimeEntryRepository(), committer, &sync.Mutex{})

	created, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "  Ana Oliveira "})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ana Oliveira", created.Name)
	assert.False(t, created.HasOverride)

	updated, err := svc.Update(ctx, employee.UpdateEmployeeRequest{ID: created.ID, Name: "Ana O."})
	require.NoError(t, err)
	assert.Equal(t, "Ana O.", updated.Name)

	withSchedule, err := svc.UpdateSchedule(ctx, employee.UpdateScheduleRequest{
		ID:           created.ID,
		WorkSchedule: &employee.WorkSchedule{WorkHoursPerDay: 6, WorkStartTime: "09:00", WorkEndTime: "15:00"},
	})
	require.NoError(t, err)
	require.True(t, withSchedule.HasOverride)
	assert.Equal(t, employee.DefaultWorkDays, withSchedule.WorkSchedule.WorkDays)

	cleared, err := svc.UpdateSchedule(ctx, employee.UpdateScheduleRequest{ID: created.ID})
	require.NoError(t, err)
	assert.False(t, cleared.HasOverride)

	assert.Equal(t, 4, committer.commits)
}

func TestEmployeeService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(memory.NewEmployeeRepository(), memory.NewTimeEntryRepository(), &nopCommitter{}, &sync.Mutex{})

	_, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: " "})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "name")

	_, err = svc.Create(ctx, employee.CreateEmployeeRequest{
		Name:         "Pedro",
		WorkSchedule: &employee.WorkSchedule{WorkHoursPerDay: 0, WorkStartTime: "9h", WorkDays: []string{"someday"}},
	})
	require.ErrorAs(t, err, &verrs)
	m := verrs.ToMap()
	assert.Contains(t, m, "work_schedule.work_hours_per_day")
	assert.Contains(t, m, "work_schedule.work_start_time")
	assert.Contains(t, m, "work_schedule.work_days")

	_, err = svc.Update(ctx, employee.UpdateEmployeeRequest{ID: "missing", Name: "X"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	employees := memory.NewEmployeeRepository()
	entries := memory.NewTimeEntryRepository()
	svc := NewEmployeeService(employees, entries, &nopCommitter{}, &sync.Mutex{})

	keep, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Keep"})
	require.NoError(t, err)
	drop, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Drop"})
	require.NoError(t, err)

	for _, e := range []timeentry.TimeEntry{
		{ID: timeentry.EntryID(keep.ID, "2025-03-10"), EmployeeID: keep.ID, Date: "2025-03-10"},
		{ID: timeentry.EntryID(drop.ID, "2025-03-10"), EmployeeID: drop.ID, Date: "2025-03-10"},
		{ID: timeentry.EntryID(drop.ID, "2025-03-11"), EmployeeID: drop.ID, Date: "2025-03-11"},
	} {
		require.NoError(t, entries.Save(ctx, e))
	}

	require.NoError(t, svc.Delete(ctx, drop.ID))
	assert.ErrorIs(t, svc.Delete(ctx, drop.ID), employee.ErrEmployeeNotFound)

	remaining, err := entries.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.ID, remaining[0].EmployeeID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
