// Package wallclock handles the date-less "HH:MM" times attendance records
// are written in, anchoring them on a "YYYY-MM-DD" date in the local zone.
package wallclock

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout          = "2006-01-02"
	TimeLayout          = "15:04"
	SignatureDateLayout = "02/01/2006 15:04:05"
	DisplayDateLayout   = "02/01/2006"
)

// Parse splits "H:MM", "HH:MM" or "HH:MM:SS" into its components.
func Parse(s string) (hour, minute, second int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("invalid time of day %q", s)
	}

	vals := make([]int, 3)
	for i, p := range parts {
		v, convErr := strconv.Atoi(p)
		if convErr != nil || v < 0 {
			return 0, 0, 0, fmt.Errorf("invalid time of day %q", s)
		}
		vals[i] = v
	}

	if vals[0] > 23 || vals[1] > 59 || vals[2] > 59 {
		return 0, 0, 0, fmt.Errorf("time of day out of range %q", s)
	}
	return vals[0], vals[1], vals[2], nil
}

// MinutesSinceMidnight ignores seconds.
func MinutesSinceMidnight(s string) (int, error) {
	h, m, _, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// On anchors a time of day on a calendar date in loc.
func On(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	h, m, s, err := Parse(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, s, 0, loc), nil
}

// Date formats t as YYYY-MM-DD.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// TimeOfDay formats t as HH:MM.
func TimeOfDay(t time.Time) string {
	return t.Format(TimeLayout)
}

// Hours converts a duration to decimal hours at millisecond precision.
func Hours(d time.Duration) float64 {
	return float64(d.Milliseconds()) / float64(time.Hour/time.Millisecond)
}

// FormatHours renders decimal hours as "8h 05m", flooring both parts.
func FormatHours(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	h := math.Floor(hours)
	m := math.Floor((hours - h) * 60)
	return fmt.Sprintf("%dh %02dm", int(h), int(m))
}

// DisplayDate turns "2025-03-07" into "07/03/2025"; unparsable input is returned as is.
func DisplayDate(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format(DisplayDateLayout)
}
