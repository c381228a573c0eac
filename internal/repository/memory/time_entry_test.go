package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
)

func strPtr(s string) *string { return &s }

func entry(employeeID, date, clockIn string) timeentry.TimeEntry {
	return timeentry.TimeEntry{
		ID:         timeentry.EntryID(employeeID, date),
		EmployeeID: employeeID,
		Date:       date,
		ClockIn:    strPtr(clockIn),
		Breaks:     []timeentry.Break{},
		Status:     timeentry.StatusClockedIn,
	}
}

func TestTimeEntryRepository_SaveAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewTimeEntryRepository()

	require.NoError(t, repo.Save(ctx, entry("1", "2025-03-10", "08:00")))
	require.NoError(t, repo.Save(ctx, entry("2", "2025-03-10", "09:00")))
	require.NoError(t, repo.Save(ctx, entry("1", "2025-03-11", "08:05")))

	got, err := repo.GetByEmployeeAndDate(ctx, "1", "2025-03-11")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "08:05", *got.ClockIn)

	missing, err := repo.GetByEmployeeAndDate(ctx, "3", "2025-03-10")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byDate, err := repo.ListByDate(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, timeentry.ErrTimeEntryNotFound)
}

func TestTimeEntryRepository_SaveReplacesByID(t *testing.T) {
	ctx := context.Background()
	repo := NewTimeEntryRepository()

	require.NoError(t, repo.Save(ctx, entry("1", "2025-03-10", "08:00")))
	require.NoError(t, repo.Save(ctx, entry("1", "2025-03-10", "08:30")))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "08:30", *all[0].ClockIn)
}

func TestTimeEntryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewTimeEntryRepository()
	require.NoError(t, repo.Save(ctx, entry("1", "2025-03-10", "08:00")))

	got, err := repo.GetByID(ctx, timeentry.EntryID("1", "2025-03-10"))
	require.NoError(t, err)
	*got.ClockIn = "11:11"
	got.Breaks = append(got.Breaks, timeentry.Break{Start: "12:00"})

	again, err := repo.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "08:00", *again.ClockIn)
	assert.Empty(t, again.Breaks)
}

func TestTimeEntryRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewTimeEntryRepository()
	require.NoError(t, repo.Save(ctx, entry("1", "2025-03-10", "08:00")))
	require.NoError(t, repo.Save(ctx, entry("1", "2025-03-11", "08:00")))
	require.NoError(t, repo.Save(ctx, entry("2", "2025-03-11", "08:00")))

	require.NoError(t, repo.Delete(ctx, timeentry.EntryID("2", "2025-03-11")))
	assert.ErrorIs(t, repo.Delete(ctx, timeentry.EntryID("2", "2025-03-11")), timeentry.ErrTimeEntryNotFound)

	n, err := repo.DeleteByEmployee(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	got, err := repo.GetByEmployeeAndDate(ctx, "1", "2025-03-10")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTimeEntryRepository_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewTimeEntryRepository()
	require.NoError(t, repo.Save(ctx, entry("1", "2025-03-10", "08:00")))

	require.NoError(t, repo.ReplaceAll(ctx, []timeentry.TimeEntry{
		entry("2", "2025-03-12", "07:00"),
		entry("3", "2025-03-12", "07:30"),
	}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2", all[0].EmployeeID)

	old, err := repo.GetByEmployeeAndDate(ctx, "1", "2025-03-10")
	require.NoError(t, err)
	assert.Nil(t, old)
}
