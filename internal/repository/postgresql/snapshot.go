package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/store"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/wallclock"
)

type snapshotRepository struct {
	db *database.DB
}

func NewSnapshotRepository(db *database.DB) store.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Load implements store.SnapshotRepository.
func (s *snapshotRepository) Load(ctx context.Context) (store.Snapshot, bool, error) {
	q := GetQuerier(ctx, s.db)

	var snapshot store.Snapshot
	err := q.QueryRow(ctx, `
		SELECT work_hours_per_day, tolerance_minutes, work_start_time
		FROM work_settings
		WHERE id = 1
	`).Scan(&snapshot.Settings.WorkHoursPerDay, &snapshot.Settings.ToleranceMinutes, &snapshot.Settings.WorkStartTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Snapshot{}, false, nil
		}
		return store.Snapshot{}, false, fmt.Errorf("failed to get work settings: %w", err)
	}

	snapshot.Employees, err = s.loadEmployees(ctx, q)
	if err != nil {
		return store.Snapshot{}, false, err
	}

	snapshot.TimeEntries, err = s.loadTimeEntries(ctx, q)
	if err != nil {
		return store.Snapshot{}, false, err
	}

	return snapshot, true, nil
}

func (s *snapshotRepository) loadEmployees(ctx context.Context, q database.Querier) ([]employee.Employee, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, work_hours_per_day, work_start_time, work_end_time, work_days
		FROM employees
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var (
			e         employee.Employee
			hours     *float64
			startTime *string
			endTime   *string
			workDays  []string
		)
		if err := rows.Scan(&e.ID, &e.Name, &hours, &startTime, &endTime, &workDays); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		if hours != nil {
			e.WorkSchedule = &employee.WorkSchedule{
				WorkHoursPerDay: *hours,
				WorkStartTime:   deref(startTime),
				WorkEndTime:     deref(endTime),
				WorkDays:        workDays,
			}
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

func (s *snapshotRepository) loadTimeEntries(ctx context.Context, q database.Querier) ([]timeentry.TimeEntry, error) {
	rows, err := q.Query(ctx, `
		SELECT id, employee_id, employee_name, to_char(date, 'YYYY-MM-DD'),
			   clock_in, clock_out, breaks, status, break_time,
			   signature, signature_date
		FROM time_entries
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	entries := make([]timeentry.TimeEntry, 0)
	for rows.Next() {
		var (
			e      timeentry.TimeEntry
			breaks []byte
			status string
		)
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.EmployeeName, &e.Date,
			&e.ClockIn, &e.ClockOut, &breaks, &status, &e.BreakTime,
			&e.Signature, &e.SignatureDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		e.Status = timeentry.Status(status)
		e.Breaks = []timeentry.Break{}
		if len(breaks) > 0 {
			if err := json.Unmarshal(breaks, &e.Breaks); err != nil {
				return nil, fmt.Errorf("failed to decode breaks of %s: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time entries: %w", err)
	}
	return entries, nil
}

// Save implements store.SnapshotRepository. The tables are rewritten in a
// single transaction so readers see either the old or the new snapshot.
func (s *snapshotRepository) Save(ctx context.Context, snapshot store.Snapshot) error {
	employeeRows := employeeCopyRows(snapshot.Employees)
	entryRows, err := timeEntryCopyRows(snapshot.TimeEntries)
	if err != nil {
		return err
	}

	return WithTransaction(ctx, s.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, s.db)

		if _, err := q.Exec(ctx, `
			INSERT INTO work_settings (id, work_hours_per_day, tolerance_minutes, work_start_time)
			VALUES (1, $1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET
				work_hours_per_day = EXCLUDED.work_hours_per_day,
				tolerance_minutes = EXCLUDED.tolerance_minutes,
				work_start_time = EXCLUDED.work_start_time
		`, snapshot.Settings.WorkHoursPerDay, snapshot.Settings.ToleranceMinutes, snapshot.Settings.WorkStartTime); err != nil {
			return fmt.Errorf("failed to save work settings: %w", err)
		}

		if _, err := q.Exec(ctx, `DELETE FROM time_entries`); err != nil {
			return fmt.Errorf("failed to clear time entries: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM employees`); err != nil {
			return fmt.Errorf("failed to clear employees: %w", err)
		}

		if _, err := q.CopyFrom(ctx, pgx.Identifier{"employees"},
			[]string{"id", "position", "name", "work_hours_per_day", "work_start_time", "work_end_time", "work_days"},
			pgx.CopyFromRows(employeeRows),
		); err != nil {
			return fmt.Errorf("failed to copy employees: %w", err)
		}

		if _, err := q.CopyFrom(ctx, pgx.Identifier{"time_entries"},
			[]string{"id", "position", "employee_id", "employee_name", "date", "clock_in", "clock_out", "breaks", "status", "break_time", "signature", "signature_date"},
			pgx.CopyFromRows(entryRows),
		); err != nil {
			return fmt.Errorf("failed to copy time entries: %w", err)
		}

		return nil
	})
}

func employeeCopyRows(employees []employee.Employee) [][]any {
	rows := make([][]any, 0, len(employees))
	for i, e := range employees {
		var (
			hours              *float64
			startTime, endTime *string
			workDays           []string
		)
		if e.WorkSchedule != nil {
			hours = &e.WorkSchedule.WorkHoursPerDay
			startTime = &e.WorkSchedule.WorkStartTime
			endTime = &e.WorkSchedule.WorkEndTime
			workDays = e.WorkSchedule.WorkDays
		}
		rows = append(rows, []any{e.ID, int32(i), e.Name, hours, startTime, endTime, workDays})
	}
	return rows
}

func timeEntryCopyRows(entries []timeentry.TimeEntry) ([][]any, error) {
	rows := make([][]any, 0, len(entries))
	for i, e := range entries {
		date, err := time.Parse(wallclock.DateLayout, e.Date)
		if err != nil {
			return nil, fmt.Errorf("time entry %s has invalid date %q: %w", e.ID, e.Date, err)
		}

		breaks := e.Breaks
		if breaks == nil {
			breaks = []timeentry.Break{}
		}
		breaksJSON, err := json.Marshal(breaks)
		if err != nil {
			return nil, fmt.Errorf("failed to encode breaks of %s: %w", e.ID, err)
		}

		rows = append(rows, []any{
			e.ID, int32(i), e.EmployeeID, e.EmployeeName, date,
			e.ClockIn, e.ClockOut, breaksJSON, string(e.Status), e.BreakTime,
			e.Signature, e.SignatureDate,
		})
	}
	return rows, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
