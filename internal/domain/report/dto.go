package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/wallclock"
)

type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodRange   PeriodType = "period"
	PeriodMonthly PeriodType = "monthly"
)

// Period selects the records a report covers. Monthly reports use the
// year-month of StartDate; daily reports use StartDate alone.
type Period struct {
	Type       PeriodType `json:"type"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	EmployeeID *string    `json:"employee_id,omitempty"`
}

func (p *Period) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(string(p.Type), []string{string(PeriodDaily), string(PeriodRange), string(PeriodMonthly)}) {
		errs.Add("type", "type must be one of: daily, period, monthly")
	}

	start, startOK := validator.IsValidDate(p.StartDate)
	if !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}

	if p.Type == PeriodDaily && p.EndDate == "" {
		p.EndDate = p.StartDate
	}

	if p.Type == PeriodRange {
		end, endOK := validator.IsValidDate(p.EndDate)
		if !endOK {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		} else if startOK && end.Before(start) {
			return ErrInvalidDateRange
		}
	}

	if p.EmployeeID != nil && *p.EmployeeID == "" {
		p.EmployeeID = nil
	}

	return errs.OrNil()
}

// Month returns "YYYY-MM" of StartDate.
func (p Period) Month() string {
	if len(p.StartDate) < 7 {
		return p.StartDate
	}
	return p.StartDate[:7]
}

// Bounds returns the first and last date the period covers.
func (p Period) Bounds() (string, string) {
	switch p.Type {
	case PeriodMonthly:
		d, err := time.Parse(wallclock.DateLayout, p.StartDate)
		if err != nil {
			return p.StartDate, p.StartDate
		}
		first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return wallclock.Date(first), wallclock.Date(last)
	case PeriodDaily:
		return p.StartDate, p.StartDate
	default:
		return p.StartDate, p.EndDate
	}
}

// Label renders the period the way report headers show it.
func (p Period) Label() string {
	start, end := p.Bounds()
	switch p.Type {
	case PeriodMonthly:
		d, err := time.Parse(wallclock.DateLayout, p.StartDate)
		if err != nil {
			return p.Month()
		}
		return d.Format("January 2006")
	case PeriodDaily:
		return wallclock.DisplayDate(start)
	default:
		return fmt.Sprintf("%s to %s", wallclock.DisplayDate(start), wallclock.DisplayDate(end))
	}
}

// Totals is the fold of breakdowns over records that have a clock-in.
type Totals struct {
	TotalWorked   float64 `json:"total_worked"`
	TotalOvertime float64 `json:"total_overtime"`
	TotalLateness float64 `json:"total_lateness"`
	Entries       int     `json:"entries"`
}

// ========================================
// SUMMARY REPORT
// ========================================

type SummaryReport struct {
	Title       string                `json:"title"`
	Period      Period                `json:"period"`
	PeriodLabel string                `json:"period_label"`
	GeneratedAt string                `json:"generated_at"`
	Settings    settings.WorkSettings `json:"settings"`
	Employees   []EmployeeSummary     `json:"employees"`
	Totals      TotalsResponse        `json:"totals"`
}

type EmployeeSummary struct {
	EmployeeID   string                 `json:"employee_id"`
	EmployeeName string                 `json:"employee_name"`
	Schedule     timeentry.Schedule     `json:"schedule"`
	WorkSchedule *employee.WorkSchedule `json:"work_schedule,omitempty"`
	Days         []DayLine              `json:"days"`
	Totals       TotalsResponse         `json:"totals"`
}

type DayLine struct {
	EntryID         string            `json:"entry_id"`
	Date            string            `json:"date"`
	ClockIn         string            `json:"clock_in"`
	ClockOut        *string           `json:"clock_out,omitempty"`
	Breaks          []timeentry.Break `json:"breaks"`
	BreakTime       *float64          `json:"break_time,omitempty"`
	Worked          decimal.Decimal   `json:"worked"`
	BreakHours      decimal.Decimal   `json:"break_hours"`
	Overtime        decimal.Decimal   `json:"overtime"`
	Lateness        decimal.Decimal   `json:"lateness"`
	DiscountedHours decimal.Decimal   `json:"discounted_hours"`
	Signed          bool              `json:"signed"`
	SignatureDate   *string           `json:"signature_date,omitempty"`

	// Breakdown keeps the unrounded figures renderers format from.
	Breakdown timeentry.Breakdown `json:"-"`
}

// TotalsResponse is Totals rounded for display, with "8h 05m" renderings.
type TotalsResponse struct {
	TotalWorked            decimal.Decimal `json:"total_worked"`
	TotalOvertime          decimal.Decimal `json:"total_overtime"`
	TotalLateness          decimal.Decimal `json:"total_lateness"`
	Entries                int             `json:"entries"`
	TotalWorkedFormatted   string          `json:"total_worked_formatted"`
	TotalOvertimeFormatted string          `json:"total_overtime_formatted"`
	TotalLatenessFormatted string          `json:"total_lateness_formatted"`
}

// Hours rounds a decimal hour figure to two places.
func Hours(h float64) decimal.Decimal {
	return decimal.NewFromFloat(h).Round(2)
}

func (t Totals) Response() TotalsResponse {
	return TotalsResponse{
		TotalWorked:            Hours(t.TotalWorked),
		TotalOvertime:          Hours(t.TotalOvertime),
		TotalLateness:          Hours(t.TotalLateness),
		Entries:                t.Entries,
		TotalWorkedFormatted:   wallclock.FormatHours(t.TotalWorked),
		TotalOvertimeFormatted: wallclock.FormatHours(t.TotalOvertime),
		TotalLatenessFormatted: wallclock.FormatHours(t.TotalLateness),
	}
}

// ========================================
// EXPORT
// ========================================

type Format string

const (
	FormatText Format = "txt"
	FormatXLSX Format = "xlsx"
)

type ExportRequest struct {
	Period Period `json:"period"`
	Format Format `json:"format"`
}

func (r *ExportRequest) Validate() error {
	if r.Format == "" {
		r.Format = FormatText
	}
	if r.Format != FormatText && r.Format != FormatXLSX {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, r.Format)
	}
	return r.Period.Validate()
}

type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
