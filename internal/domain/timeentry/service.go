package timeentry

import "context"

// TimeEntryService is the entry state machine plus its read side.
// "Today" and "now" come from the service's clock.
type TimeEntryService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (TransitionResult, error)
	StartBreak(ctx context.Context, req BreakRequest) (TransitionResult, error)
	EndBreak(ctx context.Context, req BreakRequest) (TransitionResult, error)

	// InitiateClockOut does not mutate anything; it returns what the
	// signature step needs to show.
	InitiateClockOut(ctx context.Context, req InitiateClockOutRequest) (ClockOutPrompt, error)
	ConfirmClockOut(ctx context.Context, req ConfirmClockOutRequest) (TransitionResult, error)

	UpsertRetroactive(ctx context.Context, req RetroactiveRequest) (TimeEntryResponse, error)
	EditEntry(ctx context.Context, req EditEntryRequest) (TimeEntryResponse, error)
	DeleteEntry(ctx context.Context, id string) error

	GetEntry(ctx context.Context, id string) (TimeEntryResponse, error)
	GetToday(ctx context.Context, employeeID string) (TodayStatusResponse, error)
	ListByDate(ctx context.Context, date string) ([]TimeEntryResponse, error)
	ListHistory(ctx context.Context, filter HistoryFilter) (ListTimeEntryResponse, error)
}
