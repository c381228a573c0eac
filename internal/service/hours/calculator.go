// Package hours derives worked time, breaks, lateness and overtime from a
// time entry. Nothing it computes is stored.
package hours

import (
	"math"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/wallclock"
)

// Resolve applies an employee's schedule override over the global settings,
// field by field. A missing employee or override yields the globals.
func Resolve(emp *employee.Employee, global settings.WorkSettings) timeentry.Schedule {
	schedule := timeentry.Schedule{
		WorkHoursPerDay: global.WorkHoursPerDay,
		WorkStartTime:   global.WorkStartTime,
	}
	if emp == nil || emp.WorkSchedule == nil {
		return schedule
	}
	if emp.WorkSchedule.WorkHoursPerDay > 0 {
		schedule.WorkHoursPerDay = emp.WorkSchedule.WorkHoursPerDay
	}
	if emp.WorkSchedule.WorkStartTime != "" {
		schedule.WorkStartTime = emp.WorkSchedule.WorkStartTime
	}
	return schedule
}

// Calculate computes the breakdown of entry as of now. Open records run up
// to now; an open break only counts while the entry is on-break.
func Calculate(entry timeentry.TimeEntry, schedule timeentry.Schedule, toleranceMinutes int, now time.Time) timeentry.Breakdown {
	if entry.ClockIn == nil {
		return timeentry.Breakdown{}
	}

	loc := now.Location()
	start, err := wallclock.On(entry.Date, *entry.ClockIn, loc)
	if err != nil {
		return timeentry.Breakdown{}
	}

	end := now
	if entry.ClockOut != nil {
		if out, err := wallclock.On(entry.Date, *entry.ClockOut, loc); err == nil {
			end = out
		}
	}
	gross := wallclock.Hours(end.Sub(start))

	var breaks float64
	if entry.BreakTime != nil {
		breaks = *entry.BreakTime
	} else {
		breaks = breakHours(entry, now)
	}

	var latenessMin int
	if clockInMin, err := wallclock.MinutesSinceMidnight(*entry.ClockIn); err == nil {
		if workStartMin, err := wallclock.MinutesSinceMidnight(schedule.WorkStartTime); err == nil {
			latenessMin = max(0, clockInMin-workStartMin)
		}
	}
	discounted := float64(max(0, latenessMin-toleranceMinutes)) / 60

	worked := math.Max(0, gross-breaks)
	worked = math.Max(0, worked-discounted)

	return timeentry.Breakdown{
		Worked:          worked,
		Breaks:          breaks,
		Overtime:        math.Max(0, worked-schedule.WorkHoursPerDay),
		Lateness:        float64(latenessMin) / 60,
		DiscountedHours: discounted,
	}
}

func breakHours(entry timeentry.TimeEntry, now time.Time) float64 {
	loc := now.Location()
	open := entry.OpenBreakIndex()

	var total time.Duration
	for i, b := range entry.Breaks {
		start, err := wallclock.On(entry.Date, b.Start, loc)
		if err != nil {
			continue
		}
		switch {
		case b.End != nil:
			end, err := wallclock.On(entry.Date, *b.End, loc)
			if err != nil {
				continue
			}
			total += end.Sub(start)
		case i == open && entry.Status == timeentry.StatusOnBreak:
			total += now.Sub(start)
		}
	}
	return wallclock.Hours(total)
}

// Calculator binds Calculate to a clock.
type Calculator struct {
	clock clock.Clock
}

func NewCalculator(c clock.Clock) *Calculator {
	return &Calculator{clock: c}
}

func (c *Calculator) Now() time.Time {
	return c.clock.Now()
}

func (c *Calculator) Breakdown(entry timeentry.TimeEntry, schedule timeentry.Schedule, toleranceMinutes int) timeentry.Breakdown {
	return Calculate(entry, schedule, toleranceMinutes, c.clock.Now())
}

// Respond builds the API view of an entry with a freshly computed breakdown.
func (c *Calculator) Respond(entry timeentry.TimeEntry, schedule timeentry.Schedule, toleranceMinutes int) timeentry.TimeEntryResponse {
	b := c.Breakdown(entry, schedule, toleranceMinutes)
	if entry.Breaks == nil {
		entry.Breaks = []timeentry.Break{}
	}
	return timeentry.TimeEntryResponse{
		TimeEntry: entry,
		Schedule:  schedule,
		Breakdown: b,
		Formatted: Format(b),
	}
}

func Format(b timeentry.Breakdown) timeentry.FormattedBreakdown {
	return timeentry.FormattedBreakdown{
		Worked:          wallclock.FormatHours(b.Worked),
		Breaks:          wallclock.FormatHours(b.Breaks),
		Overtime:        wallclock.FormatHours(b.Overtime),
		Lateness:        wallclock.FormatHours(b.Lateness),
		DiscountedHours: wallclock.FormatHours(b.DiscountedHours),
	}
}
