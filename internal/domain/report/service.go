package report

import "context"

// ReportService folds hour breakdowns over a period of time entries.
type ReportService interface {
	// Summary returns per-employee day lines and totals for the period
	Summary(ctx context.Context, period Period) (SummaryReport, error)

	// Export renders the same report as a downloadable file
	Export(ctx context.Context, req ExportRequest) (ExportFile, error)
}
