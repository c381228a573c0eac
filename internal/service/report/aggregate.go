package report

import (
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/wallclock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/hours"
)

// BreakdownFunc computes the breakdown of one record.
type BreakdownFunc func(timeentry.TimeEntry) timeentry.Breakdown

// FilterByPeriod keeps the records p covers. Dates compare as
// YYYY-MM-DD strings.
func FilterByPeriod(records []timeentry.TimeEntry, p report.Period) []timeentry.TimeEntry {
	filtered := make([]timeentry.TimeEntry, 0, len(records))
	month := p.Month()

	for _, r := range records {
		switch p.Type {
		case report.PeriodMonthly:
			if !strings.HasPrefix(r.Date, month+"-") {
				continue
			}
		case report.PeriodDaily:
			if r.Date != p.StartDate {
				continue
			}
		default:
			if r.Date < p.StartDate || r.Date > p.EndDate {
				continue
			}
		}
		if p.EmployeeID != nil && r.EmployeeID != *p.EmployeeID {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// Aggregate sums worked, overtime and lateness over records that have a
// clock-in. Records without one are not counted.
func Aggregate(records []timeentry.TimeEntry, breakdown BreakdownFunc) report.Totals {
	var totals report.Totals
	for _, r := range records {
		if r.ClockIn == nil {
			continue
		}
		b := breakdown(r)
		totals.TotalWorked += b.Worked
		totals.TotalOvertime += b.Overtime
		totals.TotalLateness += b.Lateness
		totals.Entries++
	}
	return totals
}

// BuildSummary lays out the report for employees in roster order. records
// must already be filtered to the period.
func BuildSummary(records []timeentry.TimeEntry, period report.Period, employees []employee.Employee, ws settings.WorkSettings, now time.Time) report.SummaryReport {
	title := "TIMESHEET REPORT - ALL EMPLOYEES"
	if period.EmployeeID != nil && len(employees) == 1 {
		title = "TIMESHEET REPORT - " + strings.ToUpper(employees[0].Name)
	}

	summary := report.SummaryReport{
		Title:       title,
		Period:      period,
		PeriodLabel: period.Label(),
		GeneratedAt: now.Format(wallclock.SignatureDateLayout),
		Settings:    ws,
		Employees:   make([]report.EmployeeSummary, 0, len(employees)),
	}

	byEmployee := make(map[string][]timeentry.TimeEntry)
	for _, r := range records {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}

	var grand report.Totals
	for i := range employees {
		emp := &employees[i]
		schedule := hours.Resolve(emp, ws)
		breakdown := func(e timeentry.TimeEntry) timeentry.Breakdown {
			return hours.Calculate(e, schedule, ws.ToleranceMinutes, now)
		}

		own := byEmployee[emp.ID]
		sort.SliceStable(own, func(a, b int) bool { return own[a].Date < own[b].Date })

		days := make([]report.DayLine, 0, len(own))
		for _, e := range own {
			if e.ClockIn == nil {
				continue
			}
			days = append(days, dayLine(e, breakdown(e)))
		}

		totals := Aggregate(own, breakdown)
		grand.TotalWorked += totals.TotalWorked
		grand.TotalOvertime += totals.TotalOvertime
		grand.TotalLateness += totals.TotalLateness
		grand.Entries += totals.Entries

		summary.Employees = append(summary.Employees, report.EmployeeSummary{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Schedule:     schedule,
			WorkSchedule: emp.WorkSchedule,
			Days:         days,
			Totals:       totals.Response(),
		})
	}
	summary.Totals = grand.Response()

	return summary
}

func dayLine(e timeentry.TimeEntry, b timeentry.Breakdown) report.DayLine {
	breaks := e.Breaks
	if breaks == nil {
		breaks = []timeentry.Break{}
	}
	return report.DayLine{
		EntryID:         e.ID,
		Date:            e.Date,
		ClockIn:         *e.ClockIn,
		ClockOut:        e.ClockOut,
		Breaks:          breaks,
		BreakTime:       e.BreakTime,
		Worked:          report.Hours(b.Worked),
		BreakHours:      report.Hours(b.Breaks),
		Overtime:        report.Hours(b.Overtime),
		Lateness:        report.Hours(b.Lateness),
		DiscountedHours: report.Hours(b.DiscountedHours),
		Signed:          e.Signature != nil,
		SignatureDate:   e.SignatureDate,
		Breakdown:       b,
	}
}
