package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
)

func TestEmployeeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository()

	_, err := repo.Create(ctx, employee.Employee{ID: "1", Name: "Ana"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, employee.Employee{ID: "2", Name: "Bruno"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, employee.Employee{ID: "1", Name: "Dup"})
	assert.ErrorIs(t, err, employee.ErrEmployeeExists)

	schedule := &employee.WorkSchedule{WorkHoursPerDay: 6, WorkStartTime: "09:00", WorkDays: []string{"monday"}}
	require.NoError(t, repo.Update(ctx, employee.Employee{ID: "2", Name: "Bruno", WorkSchedule: schedule}))
	schedule.WorkDays[0] = "sunday"

	got, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	require.NotNil(t, got.WorkSchedule)
	assert.Equal(t, []string{"monday"}, got.WorkSchedule.WorkDays)

	require.NoError(t, repo.Delete(ctx, "1"))
	assert.ErrorIs(t, repo.Delete(ctx, "1"), employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, repo.Update(ctx, employee.Employee{ID: "1"}), employee.ErrEmployeeNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bruno", list[0].Name)
}
