package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/wallclock"
)

// GenerateReportText renders the plain-text timesheet.
func GenerateReportText(s report.SummaryReport) string {
	var b strings.Builder

	b.WriteString(s.Title + "\n")
	fmt.Fprintf(&b, "Period: %s\n", strings.ToUpper(s.PeriodLabel))
	fmt.Fprintf(&b, "Generated at: %s\n\n", s.GeneratedAt)

	b.WriteString("SETTINGS:\n")
	fmt.Fprintf(&b, "- Default work day: %sh\n", formatFloat(s.Settings.WorkHoursPerDay))
	fmt.Fprintf(&b, "- Default start time: %s\n", s.Settings.WorkStartTime)
	fmt.Fprintf(&b, "- Tolerance: %d minutes\n\n", s.Settings.ToleranceMinutes)

	if s.Period.EmployeeID != nil {
		b.WriteString("EMPLOYEE:\n")
	} else {
		b.WriteString("EMPLOYEES:\n")
	}
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, emp := range s.Employees {
		b.WriteString(strings.ToUpper(emp.EmployeeName) + "\n")
		b.WriteString(strings.Repeat("-", 30) + "\n")

		if ws := emp.WorkSchedule; ws != nil {
			fmt.Fprintf(&b, "Custom schedule: %sh (%s - %s)\n", formatFloat(ws.WorkHoursPerDay), ws.WorkStartTime, ws.WorkEndTime)
		}

		if len(emp.Days) == 0 {
			b.WriteString("No time records in this period.\n\n")
			continue
		}

		for _, d := range emp.Days {
			writeDay(&b, d)
		}

		b.WriteString("\nPERIOD SUMMARY:\n")
		fmt.Fprintf(&b, "- Total worked: %s\n", emp.Totals.TotalWorkedFormatted)
		fmt.Fprintf(&b, "- Total overtime: %s\n", emp.Totals.TotalOvertimeFormatted)
		fmt.Fprintf(&b, "- Total lateness: %s\n", emp.Totals.TotalLatenessFormatted)
		b.WriteString("\n")
	}

	return b.String()
}

func writeDay(b *strings.Builder, d report.DayLine) {
	fmt.Fprintf(b, "\n%s:\n", wallclock.DisplayDate(d.Date))
	fmt.Fprintf(b, "  Clock in: %s\n", d.ClockIn)
	if d.ClockOut != nil {
		fmt.Fprintf(b, "  Clock out: %s\n", *d.ClockOut)
	} else {
		b.WriteString("  Clock out: Not recorded\n")
	}

	if len(d.Breaks) > 0 {
		b.WriteString("  Breaks:\n")
		for i, br := range d.Breaks {
			end := "In progress"
			if br.End != nil {
				end = *br.End
			}
			fmt.Fprintf(b, "    %d. %s - %s\n", i+1, br.Start, end)
		}
	}

	if d.BreakTime != nil && *d.BreakTime > 0 {
		fmt.Fprintf(b, "  Break time (manual): %s\n", wallclock.FormatHours(*d.BreakTime))
	}

	h := d.Breakdown
	fmt.Fprintf(b, "  Worked: %s\n", wallclock.FormatHours(h.Worked))
	if h.Overtime > 0 {
		fmt.Fprintf(b, "  Overtime: %s\n", wallclock.FormatHours(h.Overtime))
	}
	if h.Lateness > 0 {
		fmt.Fprintf(b, "  Lateness: %s\n", wallclock.FormatHours(h.Lateness))
	}
	if h.DiscountedHours > 0 {
		fmt.Fprintf(b, "  Discount: %s\n", wallclock.FormatHours(h.DiscountedHours))
	}

	if d.Signed {
		signedAt := ""
		if d.SignatureDate != nil {
			signedAt = *d.SignatureDate
		}
		fmt.Fprintf(b, "  Signed: %s\n", signedAt)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var whitespace = regexp.MustCompile(`\s+`)

// ExportFileName names a download: timesheet-<employee|all-employees>-<period>.<ext>.
// Monthly periods use YYYY-MM, others "<start>-to-<end>".
func ExportFileName(period report.Period, employeeName string, format report.Format) string {
	who := "all-employees"
	if employeeName != "" {
		who = whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(employeeName)), "-")
	}

	var when string
	if period.Type == report.PeriodMonthly {
		when = period.Month()
	} else {
		start, end := period.Bounds()
		when = start + "-to-" + end
	}

	return fmt.Sprintf("timesheet-%s-%s.%s", who, when, format)
}
