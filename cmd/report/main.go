package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/app"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type reportOptions struct {
	periodType string
	start      string
	end        string
	employee   string
	format     string
	out        string
}

func newRootCmd() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a timesheet report from the configured store",
		Example: `  report --type monthly --start 2025-03-01
  report --type period --start 2025-03-01 --end 2025-03-15 --employee 2 --format xlsx --out ./exports`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn})))

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			// reports read whatever is stored; they never seed the roster
			cfg.Storage.SeedDefaults = false

			return runReport(cmd.Context(), cmd, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.periodType, "type", string(report.PeriodMonthly), "period type: daily, period or monthly")
	f.StringVar(&opts.start, "start", "", "start date (YYYY-MM-DD); monthly reports use its month")
	f.StringVar(&opts.end, "end", "", "end date (YYYY-MM-DD), for --type period")
	f.StringVar(&opts.employee, "employee", "", "employee id; all employees when empty")
	f.StringVar(&opts.format, "format", string(report.FormatText), "output format: txt or xlsx")
	f.StringVar(&opts.out, "out", "", "directory to write the file to; stdout when empty")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func runReport(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts *reportOptions) error {
	application, err := app.New(ctx, cfg, clock.System())
	if err != nil {
		return err
	}
	defer application.Close()

	req := report.ExportRequest{
		Period: report.Period{
			Type:      report.PeriodType(opts.periodType),
			StartDate: opts.start,
			EndDate:   opts.end,
		},
		Format: report.Format(opts.format),
	}
	if opts.employee != "" {
		req.Period.EmployeeID = &opts.employee
	}

	file, err := application.Report.Export(ctx, req)
	if err != nil {
		return err
	}

	if opts.out == "" {
		_, err := cmd.OutOrStdout().Write(file.Content)
		return err
	}

	files, err := storage.NewLocalStorage(opts.out)
	if err != nil {
		return fmt.Errorf("open output directory: %w", err)
	}
	if err := files.Write(ctx, file.FileName, bytes.NewReader(file.Content)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), file.FileName)
	return nil
}
