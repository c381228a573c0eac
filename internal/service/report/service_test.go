package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/hours"
)

func ptr[T any](v T) *T { return &v }

func record(employeeID, date, in string, out *string) timeentry.TimeEntry {
	status := timeentry.StatusClockedIn
	if out != nil {
		status = timeentry.StatusClockedOut
	}
	return timeentry.TimeEntry{
		ID:         timeentry.EntryID(employeeID, date),
		EmployeeID: employeeID,
		Date:       date,
		ClockIn:    ptr(in),
		ClockOut:   out,
		Breaks:     []timeentry.Break{},
		Status:     status,
	}
}

var records = []timeentry.TimeEntry{
	record("1", "2025-02-28", "08:00", ptr("16:00")),
	record("1", "2025-03-03", "08:00", ptr("17:00")),
	record("2", "2025-03-03", "08:20", ptr("17:00")),
	record("1", "2025-03-05", "08:00", ptr("18:00")),
	{ID: "2-2025-03-05", EmployeeID: "2", Date: "2025-03-05", Status: timeentry.StatusClockedOut},
}

func dates(rs []timeentry.TimeEntry) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.EmployeeID+"@"+r.Date)
	}
	return out
}

func TestFilterByPeriod(t *testing.T) {
	tests := []struct {
		name   string
		period report.Period
		want   []string
	}{
		{
			name:   "monthly uses the month of the start date",
			period: report.Period{Type: report.PeriodMonthly, StartDate: "2025-03-17"},
			want:   []string{"1@2025-03-03", "2@2025-03-03", "1@2025-03-05", "2@2025-03-05"},
		},
		{
			name:   "daily",
			period: report.Period{Type: report.PeriodDaily, StartDate: "2025-03-03"},
			want:   []string{"1@2025-03-03", "2@2025-03-03"},
		},
		{
			name:   "inclusive range",
			period: report.Period{Type: report.PeriodRange, StartDate: "2025-02-28", EndDate: "2025-03-03"},
			want:   []string{"1@2025-02-28", "1@2025-03-03", "2@2025-03-03"},
		},
		{
			name:   "employee narrows",
			period: report.Period{Type: report.PeriodMonthly, StartDate: "2025-03-01", EmployeeID: ptr("2")},
			want:   []string{"2@2025-03-03", "2@2025-03-05"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dates(FilterByPeriod(records, tt.period)))
		})
	}
}

func TestAggregate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	schedule := timeentry.Schedule{WorkHoursPerDay: 8, WorkStartTime: "08:00"}
	breakdown := func(e timeentry.TimeEntry) timeentry.Breakdown {
		return hours.Calculate(e, schedule, 15, now)
	}

	totals := Aggregate(FilterByPeriod(records, report.Period{Type: report.PeriodMonthly, StartDate: "2025-03-01"}), breakdown)

	// 9h + (8h40m - 5m) + 10h; the record without a clock-in is skipped
	assert.Equal(t, 3, totals.Entries)
	assert.InDelta(t, 9+8+35.0/60+10, totals.TotalWorked, 1e-9)
	assert.InDelta(t, 1+35.0/60+2, totals.TotalOvertime, 1e-9)
	assert.InDelta(t, 20.0/60, totals.TotalLateness, 1e-9)
}

func TestPeriodValidate(t *testing.T) {
	p := report.Period{Type: report.PeriodRange, StartDate: "2025-03-10", EndDate: "2025-03-01"}
	assert.ErrorIs(t, p.Validate(), report.ErrInvalidDateRange)

	p = report.Period{Type: "weekly", StartDate: "10/03/2025"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, p.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "type")
	assert.Contains(t, verrs.ToMap(), "start_date")

	p = report.Period{Type: report.PeriodDaily, StartDate: "2025-03-10"}
	require.NoError(t, p.Validate())
	assert.Equal(t, "2025-03-10", p.EndDate)
}

func TestExportFileName(t *testing.T) {
	monthly := report.Period{Type: report.PeriodMonthly, StartDate: "2025-03-15"}
	assert.Equal(t, "timesheet-all-employees-2025-03.txt", ExportFileName(monthly, "", report.FormatText))
	assert.Equal(t, "timesheet-maria-santos-2025-03.xlsx", ExportFileName(monthly, "Maria  Santos", report.FormatXLSX))

	ranged := report.Period{Type: report.PeriodRange, StartDate: "2025-03-01", EndDate: "2025-03-07"}
	assert.Equal(t, "timesheet-all-employees-2025-03-01-to-2025-03-07.txt", ExportFileName(ranged, "", report.FormatText))
}

type fixture struct {
	svc report.ReportService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	employees := memory.NewEmployeeRepository()
	require.NoError(t, employees.ReplaceAll(ctx, []employee.Employee{
		{ID: "1", Name: "João Silva"},
		{ID: "2", Name: "Maria Santos", WorkSchedule: &employee.WorkSchedule{WorkHoursPerDay: 6, WorkStartTime: "08:00", WorkEndTime: "14:00"}},
		{ID: "3", Name: "Pedro Costa"},
	}))

	entries := memory.NewTimeEntryRepository()
	withBreak := record("1", "2025-03-03", "08:00", ptr("17:00"))
	withBreak.Breaks = []timeentry.Break{{Start: "12:00", End: ptr("13:00")}}
	withBreak.Signature = ptr("sig")
	withBreak.SignatureDate = ptr("03/03/2025 17:00:00")
	require.NoError(t, entries.ReplaceAll(ctx, []timeentry.TimeEntry{
		withBreak,
		record("2", "2025-03-03", "08:20", ptr("17:00")),
		record("1", "2025-04-01", "08:00", ptr("17:00")),
	}))

	c := clock.NewFixed(time.Date(2025, 3, 10, 18, 30, 0, 0, time.Local))
	return fixture{svc: NewReportService(entries, employees, memory.NewSettingsRepository(settings.Default()), c)}
}

func TestReportService_Summary(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.Summary(context.Background(), report.Period{Type: report.PeriodMonthly, StartDate: "2025-03-01"})
	require.NoError(t, err)

	assert.Equal(t, "TIMESHEET REPORT - ALL EMPLOYEES", summary.Title)
	assert.Equal(t, "March 2025", summary.PeriodLabel)
	assert.Equal(t, "10/03/2025 18:30:00", summary.GeneratedAt)
	require.Len(t, summary.Employees, 3)

	joao := summary.Employees[0]
	require.Len(t, joao.Days, 1)
	assert.Equal(t, "8", joao.Days[0].Worked.String())
	assert.Equal(t, "8h 00m", joao.Totals.TotalWorkedFormatted)

	maria := summary.Employees[1]
	assert.Equal(t, 6.0, maria.Schedule.WorkHoursPerDay)
	// 8h40m minus 5m discount, 6h day
	assert.Equal(t, "8.58", maria.Totals.TotalWorked.String())
	assert.Equal(t, "2.58", maria.Totals.TotalOvertime.String())

	assert.Empty(t, summary.Employees[2].Days)
	assert.Equal(t, 2, summary.Totals.Entries)
}

func TestReportService_ExportText(t *testing.T) {
	f := newFixture(t)

	file, err := f.svc.Export(context.Background(), report.ExportRequest{
		Period: report.Period{Type: report.PeriodMonthly, StartDate: "2025-03-01"},
		Format: report.FormatText,
	})
	require.NoError(t, err)
	assert.Equal(t, "timesheet-all-employees-2025-03.txt", file.FileName)
	assert.Equal(t, "text/plain; charset=utf-8", file.ContentType)

	text := string(file.Content)
	for _, want := range []string{
		"TIMESHEET REPORT - ALL EMPLOYEES\n",
		"Period: MARCH 2025\n",
		"Generated at: 10/03/2025 18:30:00\n",
		"- Default work day: 8h\n",
		"- Tolerance: 15 minutes\n",
		"JOÃO SILVA\n",
		"03/03/2025:\n",
		"  Clock in: 08:00\n",
		"    1. 12:00 - 13:00\n",
		"  Worked: 8h 00m\n",
		"  Signed: 03/03/2025 17:00:00\n",
		"Custom schedule: 6h (08:00 - 14:00)\n",
		"  Lateness: 0h 20m\n",
		"  Discount: 0h 05m\n",
		"PERIOD SUMMARY:\n",
		"PEDRO COSTA\n" + strings.Repeat("-", 30) + "\nNo time records in this period.\n",
	} {
		assert.Contains(t, text, want)
	}
}

func TestReportService_ExportWorkbook(t *testing.T) {
	f := newFixture(t)

	file, err := f.svc.Export(context.Background(), report.ExportRequest{
		Period: report.Period{Type: report.PeriodMonthly, StartDate: "2025-03-01", EmployeeID: ptr("1")},
		Format: report.FormatXLSX,
	})
	require.NoError(t, err)
	assert.Equal(t, "timesheet-joão-silva-2025-03.xlsx", file.FileName)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Summary", "Entries"}, wb.GetSheetList())

	rows, err := wb.GetRows("Entries")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "03/03/2025", rows[1][0])
	assert.Equal(t, "João Silva", rows[1][1])
	assert.Equal(t, "8", rows[1][7])
}

func TestReportService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Export(ctx, report.ExportRequest{
		Period: report.Period{Type: report.PeriodMonthly, StartDate: "2025-03-01"},
		Format: "pdf",
	})
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)

	_, err = f.svc.Summary(ctx, report.Period{Type: report.PeriodMonthly, StartDate: "2025-03-01", EmployeeID: ptr("99")})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
