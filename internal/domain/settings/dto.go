package settings

import (
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// UpdateSettingsRequest is a partial update; nil fields keep their value.
type UpdateSettingsRequest struct {
	WorkHoursPerDay  *float64 `json:"work_hours_per_day,omitempty"`
	ToleranceMinutes *int     `json:"tolerance_minutes,omitempty"`
	WorkStartTime    *string  `json:"work_start_time,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkHoursPerDay != nil && (*r.WorkHoursPerDay <= 0 || *r.WorkHoursPerDay > 24) {
		errs.Add("work_hours_per_day", "work_hours_per_day must be greater than 0 and at most 24")
	}
	if r.ToleranceMinutes != nil && *r.ToleranceMinutes < 0 {
		errs.Add("tolerance_minutes", "tolerance_minutes must not be negative")
	}
	if r.WorkStartTime != nil && !validator.IsValidClockTime(*r.WorkStartTime) {
		errs.Add("work_start_time", "work_start_time must be in HH:MM format")
	}

	return errs.OrNil()
}

// Apply returns s with the request's non-nil fields applied.
func (r UpdateSettingsRequest) Apply(s WorkSettings) WorkSettings {
	if r.WorkHoursPerDay != nil {
		s.WorkHoursPerDay = *r.WorkHoursPerDay
	}
	if r.ToleranceMinutes != nil {
		s.ToleranceMinutes = *r.ToleranceMinutes
	}
	if r.WorkStartTime != nil {
		s.WorkStartTime = *r.WorkStartTime
	}
	return s
}

// Check validates a complete settings value, e.g. one loaded from config.
func (s WorkSettings) Check() error {
	if s.WorkHoursPerDay <= 0 {
		return fmt.Errorf("%w: work hours per day must be positive", ErrInvalidSettings)
	}
	if s.ToleranceMinutes < 0 {
		return fmt.Errorf("%w: tolerance minutes must not be negative", ErrInvalidSettings)
	}
	if !validator.IsValidClockTime(s.WorkStartTime) {
		return fmt.Errorf("%w: work start time %q is not HH:MM", ErrInvalidSettings, s.WorkStartTime)
	}
	return nil
}
