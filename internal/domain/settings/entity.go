package settings

// WorkSettings are the company-wide defaults every employee falls back to.
type WorkSettings struct {
	WorkHoursPerDay  float64 `json:"work_hours_per_day"`
	ToleranceMinutes int     `json:"tolerance_minutes"`
	WorkStartTime    string  `json:"work_start_time"`
}

func Default() WorkSettings {
	return WorkSettings{
		WorkHoursPerDay:  8,
		ToleranceMinutes: 15,
		WorkStartTime:    "08:00",
	}
}
