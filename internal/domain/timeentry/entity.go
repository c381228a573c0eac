package timeentry

type Status string

const (
	StatusClockedOut Status = "clocked-out"
	StatusClockedIn  Status = "clocked-in"
	StatusOnBreak    Status = "on-break"
)

// Break is one pause within a day. End is nil while the break is running.
type Break struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

func (b Break) IsOpen() bool {
	return b.End == nil
}

// TimeEntry is the attendance record of one employee on one calendar date.
// Times are local wall-clock "HH:MM" strings anchored on Date.
type TimeEntry struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  string   `json:"employee_name"`
	Date          string   `json:"date"`
	ClockIn       *string  `json:"clock_in,omitempty"`
	ClockOut      *string  `json:"clock_out,omitempty"`
	Breaks        []Break  `json:"breaks"`
	Status        Status   `json:"status"`
	BreakTime     *float64 `json:"break_time,omitempty"`
	Signature     *string  `json:"signature,omitempty"`
	SignatureDate *string  `json:"signature_date,omitempty"`
}

// EntryID builds the id live-flow records use.
func EntryID(employeeID, date string) string {
	return employeeID + "-" + date
}

// OpenBreakIndex returns the highest-index break without an end, or -1.
func (e *TimeEntry) OpenBreakIndex() int {
	for i := len(e.Breaks) - 1; i >= 0; i-- {
		if e.Breaks[i].IsOpen() {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can't mutate stored state.
func (e TimeEntry) Clone() TimeEntry {
	c := e
	c.ClockIn = cloneString(e.ClockIn)
	c.ClockOut = cloneString(e.ClockOut)
	c.Signature = cloneString(e.Signature)
	c.SignatureDate = cloneString(e.SignatureDate)
	if e.BreakTime != nil {
		bt := *e.BreakTime
		c.BreakTime = &bt
	}
	c.Breaks = make([]Break, len(e.Breaks))
	for i, b := range e.Breaks {
		c.Breaks[i] = Break{Start: b.Start, End: cloneString(b.End)}
	}
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Schedule is the effective work schedule for one employee after
// per-employee overrides have been applied over the global settings.
type Schedule struct {
	WorkHoursPerDay float64 `json:"work_hours_per_day"`
	WorkStartTime   string  `json:"work_start_time"`
}

// Breakdown holds derived figures, all in decimal hours. It is never stored.
type Breakdown struct {
	Worked          float64 `json:"worked"`
	Breaks          float64 `json:"breaks"`
	Overtime        float64 `json:"overtime"`
	Lateness        float64 `json:"lateness"`
	DiscountedHours float64 `json:"discounted_hours"`
}
