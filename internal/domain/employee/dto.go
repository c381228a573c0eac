package employee

import (
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// EMPLOYEE DTOs
// ========================================

type CreateEmployeeRequest struct {
	Name         string        `json:"name"`
	WorkSchedule *WorkSchedule `json:"work_schedule,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}

	if r.WorkSchedule != nil {
		errs = append(errs, validateSchedule(r.WorkSchedule)...)
	}

	return errs.OrNil()
}

type UpdateEmployeeRequest struct {
	ID   string `json:"-"`
	Name string `json:"name"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}

	return errs.OrNil()
}

// UpdateScheduleRequest replaces the schedule override. A nil schedule
// removes the override so the employee follows the global settings again.
type UpdateScheduleRequest struct {
	ID           string        `json:"-"`
	WorkSchedule *WorkSchedule `json:"work_schedule"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.WorkSchedule != nil {
		errs = append(errs, validateSchedule(r.WorkSchedule)...)
	}

	return errs.OrNil()
}

// validateSchedule also normalizes weekday names and fills default work days.
func validateSchedule(s *WorkSchedule) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if s.WorkHoursPerDay <= 0 {
		errs.Add("work_schedule.work_hours_per_day", "work_hours_per_day must be greater than 0")
	}
	if s.WorkHoursPerDay > 24 {
		errs.Add("work_schedule.work_hours_per_day", "work_hours_per_day must not exceed 24")
	}

	if s.WorkStartTime != "" && !validator.IsValidClockTime(s.WorkStartTime) {
		errs.Add("work_schedule.work_start_time", "work_start_time must be in HH:MM format")
	}
	if s.WorkEndTime != "" && !validator.IsValidClockTime(s.WorkEndTime) {
		errs.Add("work_schedule.work_end_time", "work_end_time must be in HH:MM format")
	}

	if len(s.WorkDays) == 0 {
		s.WorkDays = append([]string(nil), DefaultWorkDays...)
	}
	for i, day := range s.WorkDays {
		if !validator.IsValidWeekday(day) {
			errs.Add("work_schedule.work_days", "work_days must contain weekday names (monday..sunday)")
			break
		}
		s.WorkDays[i] = strings.ToLower(day)
	}

	return errs
}

type EmployeeResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	WorkSchedule *WorkSchedule `json:"work_schedule,omitempty"`
	HasOverride  bool          `json:"has_schedule_override"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		WorkSchedule: e.WorkSchedule,
		HasOverride:  e.WorkSchedule != nil,
	}
}
