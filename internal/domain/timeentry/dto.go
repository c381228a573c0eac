package timeentry

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/wallclock"
)

// ========================================
// LIVE FLOW DTOs
// ========================================

type ClockInRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *ClockInRequest) Validate() error {
	return requireEmployee(r.EmployeeID)
}

type BreakRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *BreakRequest) Validate() error {
	return requireEmployee(r.EmployeeID)
}

type InitiateClockOutRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *InitiateClockOutRequest) Validate() error {
	return requireEmployee(r.EmployeeID)
}

type ConfirmClockOutRequest struct {
	EmployeeID string `json:"employee_id"`
	Signature  string `json:"signature"`
}

func (r *ConfirmClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.Signature) {
		errs = append(errs, validator.ValidationError{
			Field:   "signature",
			Message: "signature is required to clock out",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func requireEmployee(id string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}
	return nil
}

// ========================================
// MANUAL ENTRY DTOs
// ========================================

// RetroactiveRequest creates or overwrites the record of (EmployeeID, Date).
type RetroactiveRequest struct {
	EmployeeID string   `json:"employee_id"`
	Date       string   `json:"date"`
	ClockIn    string   `json:"clock_in"`
	ClockOut   *string  `json:"clock_out,omitempty"`
	BreakTime  *float64 `json:"break_time,omitempty"`
}

func (r *RetroactiveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}

	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	if validator.IsEmpty(r.ClockIn) {
		errs.Add("clock_in", "clock_in is required")
	} else if !validator.IsValidClockTime(r.ClockIn) {
		errs.Add("clock_in", "clock_in must be in HH:MM format")
	}

	if r.ClockOut != nil && *r.ClockOut == "" {
		r.ClockOut = nil
	}
	if r.ClockOut != nil && !validator.IsValidClockTime(*r.ClockOut) {
		errs.Add("clock_out", "clock_out must be in HH:MM format")
	}

	if r.BreakTime != nil && *r.BreakTime < 0 {
		errs.Add("break_time", "break_time must not be negative")
	}

	return errs.OrNil()
}

// EditEntryRequest corrects the times of an existing record by id.
type EditEntryRequest struct {
	ID        string   `json:"-"`
	ClockIn   string   `json:"clock_in"`
	ClockOut  *string  `json:"clock_out,omitempty"`
	BreakTime *float64 `json:"break_time,omitempty"`
}

func (r *EditEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if validator.IsEmpty(r.ClockIn) {
		errs.Add("clock_in", "clock_in is required")
	} else if !validator.IsValidClockTime(r.ClockIn) {
		errs.Add("clock_in", "clock_in must be in HH:MM format")
	}

	if r.ClockOut != nil && *r.ClockOut == "" {
		r.ClockOut = nil
	}
	if r.ClockOut != nil {
		if !validator.IsValidClockTime(*r.ClockOut) {
			errs.Add("clock_out", "clock_out must be in HH:MM format")
		} else if validator.IsValidClockTime(r.ClockIn) && !clockOutAfterIn(r.ClockIn, *r.ClockOut) {
			errs.Add("clock_out", ErrClockOutBeforeIn.Error())
		}
	}

	if r.BreakTime != nil && *r.BreakTime < 0 {
		errs.Add("break_time", "break_time must not be negative")
	}

	return errs.OrNil()
}

func clockOutAfterIn(in, out string) bool {
	inMin, err := wallclock.MinutesSinceMidnight(in)
	if err != nil {
		return false
	}
	outMin, err := wallclock.MinutesSinceMidnight(out)
	if err != nil {
		return false
	}
	return outMin > inMin
}

// ========================================
// QUERY DTOs
// ========================================

type HistoryFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if f.Limit > 500 {
		errs.Add("limit", "limit must not exceed 500")
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	return errs.OrNil()
}

// ========================================
// RESPONSE DTOs
// ========================================

// FormattedBreakdown mirrors Breakdown as "8h 05m" strings.
type FormattedBreakdown struct {
	Worked          string `json:"worked"`
	Breaks          string `json:"breaks"`
	Overtime        string `json:"overtime"`
	Lateness        string `json:"lateness"`
	DiscountedHours string `json:"discounted_hours"`
}

type TimeEntryResponse struct {
	TimeEntry
	Schedule  Schedule           `json:"schedule"`
	Breakdown Breakdown          `json:"breakdown"`
	Formatted FormattedBreakdown `json:"formatted"`
}

// TransitionResult is what every live-flow action returns. Changed is false
// when the action was a silent no-op, e.g. a break with no record today.
type TransitionResult struct {
	Changed bool               `json:"changed"`
	Entry   *TimeEntryResponse `json:"entry,omitempty"`
}

// ClockOutPrompt carries what the signature step shows before confirming.
type ClockOutPrompt struct {
	EmployeeID   string             `json:"employee_id"`
	EmployeeName string             `json:"employee_name"`
	Entry        *TimeEntryResponse `json:"entry,omitempty"`
}

type TodayStatusResponse struct {
	EmployeeID   string             `json:"employee_id"`
	EmployeeName string             `json:"employee_name"`
	Date         string             `json:"date"`
	Status       Status             `json:"status"`
	Entry        *TimeEntryResponse `json:"entry,omitempty"`
}

type ListTimeEntryResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Showing    string              `json:"showing"`
	Entries    []TimeEntryResponse `json:"entries"`
}
