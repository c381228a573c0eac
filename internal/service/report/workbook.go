package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/wallclock"
)

const (
	summarySheet = "Summary"
	entriesSheet = "Entries"
)

// GenerateWorkbook renders the report as an XLSX file with a per-employee
// summary sheet and one row per day on the entries sheet.
func GenerateWorkbook(s report.SummaryReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(entriesSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	summaryRows := [][]any{
		{s.Title},
		{"Period", s.PeriodLabel},
		{"Generated at", s.GeneratedAt},
		{"Default work day (h)", s.Settings.WorkHoursPerDay},
		{"Default start time", s.Settings.WorkStartTime},
		{"Tolerance (min)", s.Settings.ToleranceMinutes},
		{},
		{"Employee", "Days", "Worked (h)", "Overtime (h)", "Lateness (h)", "Worked", "Overtime", "Lateness"},
	}
	const summaryHeaderRow = 8
	for _, emp := range s.Employees {
		summaryRows = append(summaryRows, []any{
			emp.EmployeeName,
			emp.Totals.Entries,
			emp.Totals.TotalWorked.InexactFloat64(),
			emp.Totals.TotalOvertime.InexactFloat64(),
			emp.Totals.TotalLateness.InexactFloat64(),
			emp.Totals.TotalWorkedFormatted,
			emp.Totals.TotalOvertimeFormatted,
			emp.Totals.TotalLatenessFormatted,
		})
	}
	summaryRows = append(summaryRows, []any{
		"Total",
		s.Totals.Entries,
		s.Totals.TotalWorked.InexactFloat64(),
		s.Totals.TotalOvertime.InexactFloat64(),
		s.Totals.TotalLateness.InexactFloat64(),
		s.Totals.TotalWorkedFormatted,
		s.Totals.TotalOvertimeFormatted,
		s.Totals.TotalLatenessFormatted,
	})
	if err := writeRows(f, summarySheet, summaryRows); err != nil {
		return nil, err
	}
	if err := styleRow(f, summarySheet, summaryHeaderRow, 8, header); err != nil {
		return nil, err
	}
	if err := styleRow(f, summarySheet, 1, 1, header); err != nil {
		return nil, err
	}

	entryRows := [][]any{
		{"Date", "Employee", "Clock in", "Clock out", "Breaks", "Manual break (h)", "Break (h)", "Worked (h)", "Overtime (h)", "Lateness (h)", "Discount (h)", "Signed at"},
	}
	for _, emp := range s.Employees {
		for _, d := range emp.Days {
			entryRows = append(entryRows, []any{
				wallclock.DisplayDate(d.Date),
				emp.EmployeeName,
				d.ClockIn,
				deref(d.ClockOut),
				len(d.Breaks),
				optionalFloat(d.BreakTime),
				d.BreakHours.InexactFloat64(),
				d.Worked.InexactFloat64(),
				d.Overtime.InexactFloat64(),
				d.Lateness.InexactFloat64(),
				d.DiscountedHours.InexactFloat64(),
				deref(d.SignatureDate),
			})
		}
	}
	if err := writeRows(f, entriesSheet, entryRows); err != nil {
		return nil, err
	}
	if err := styleRow(f, entriesSheet, 1, 12, header); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(entriesSheet, "B", "B", 24); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	from, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
