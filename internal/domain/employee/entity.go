package employee

type Employee struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	WorkSchedule *WorkSchedule `json:"work_schedule,omitempty"`
}

// WorkSchedule overrides the global work settings for one employee.
type WorkSchedule struct {
	WorkHoursPerDay float64  `json:"work_hours_per_day"`
	WorkStartTime   string   `json:"work_start_time"`
	WorkEndTime     string   `json:"work_end_time"`
	WorkDays        []string `json:"work_days"`
}

var DefaultWorkDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
