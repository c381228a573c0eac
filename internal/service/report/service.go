package report

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
)

type ReportServiceImpl struct {
	timeEntryRepo timeentry.TimeEntryRepository
	employeeRepo  employee.EmployeeRepository
	settingsRepo  settings.SettingsRepository
	clock         clock.Clock
}

func NewReportService(
	timeEntryRepo timeentry.TimeEntryRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	c clock.Clock,
) report.ReportService {
	return &ReportServiceImpl{
		timeEntryRepo: timeEntryRepo,
		employeeRepo:  employeeRepo,
		settingsRepo:  settingsRepo,
		clock:         c,
	}
}

// Summary implements report.ReportService.
func (s *ReportServiceImpl) Summary(ctx context.Context, period report.Period) (report.SummaryReport, error) {
	if err := period.Validate(); err != nil {
		return report.SummaryReport{}, err
	}
	return s.build(ctx, period)
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.ExportRequest) (report.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return report.ExportFile{}, err
	}

	summary, err := s.build(ctx, req.Period)
	if err != nil {
		return report.ExportFile{}, err
	}

	var employeeName string
	if req.Period.EmployeeID != nil && len(summary.Employees) == 1 {
		employeeName = summary.Employees[0].EmployeeName
	}

	file := report.ExportFile{
		FileName: ExportFileName(req.Period, employeeName, req.Format),
	}

	switch req.Format {
	case report.FormatXLSX:
		content, err := GenerateWorkbook(summary)
		if err != nil {
			return report.ExportFile{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
		}
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		file.Content = content
	default:
		file.ContentType = "text/plain; charset=utf-8"
		file.Content = []byte(GenerateReportText(summary))
	}

	return file, nil
}

func (s *ReportServiceImpl) build(ctx context.Context, period report.Period) (report.SummaryReport, error) {
	ws, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return report.SummaryReport{}, fmt.Errorf("failed to get settings: %w", err)
	}

	var employees []employee.Employee
	if period.EmployeeID != nil {
		emp, err := s.employeeRepo.GetByID(ctx, *period.EmployeeID)
		if err != nil {
			return report.SummaryReport{}, err
		}
		employees = []employee.Employee{emp}
	} else {
		employees, err = s.employeeRepo.List(ctx)
		if err != nil {
			return report.SummaryReport{}, fmt.Errorf("failed to list employees: %w", err)
		}
	}

	records, err := s.timeEntryRepo.List(ctx)
	if err != nil {
		return report.SummaryReport{}, fmt.Errorf("failed to list time entries: %w", err)
	}

	return BuildSummary(FilterByPeriod(records, period), period, employees, ws, s.clock.Now()), nil
}
