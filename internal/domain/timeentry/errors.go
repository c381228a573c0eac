package timeentry

import "errors"

var (
	ErrTimeEntryNotFound = errors.New("time entry not found")
	ErrClockOutBeforeIn  = errors.New("clock out must be after clock in")
)
