package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/app"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/cron"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewRequestLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, clock.System())
	if err != nil {
		return err
	}
	defer application.Close()

	scheduler := cron.NewScheduler()
	application.Live.RegisterJobs(scheduler, cfg.Live.Interval)

	g, ctx := errgroup.WithContext(ctx)
	server := newServer(ctx, cfg, newRouter(cfg, logger, application))

	g.Go(func() error {
		slog.Info("Server starting", "addr", server.Addr, "store", cfg.Storage.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return scheduler.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newRouter(cfg *config.Config, logger *slog.Logger, application *app.App) http.Handler {
	return appHTTP.NewRouter(cfg, logger, appHTTP.Handlers{
		Employee:  appHTTP.NewEmployeeHandler(application.Employee),
		Settings:  appHTTP.NewSettingsHandler(application.Settings),
		Clock:     appHTTP.NewClockHandler(application.TimeEntry),
		TimeEntry: appHTTP.NewTimeEntryHandler(application.TimeEntry),
		Live:      appHTTP.NewLiveHandler(application.Hub, application.Live, cfg.Live.Keepalive),
		Report:    appHTTP.NewReportHandler(application.Report),
	})
}

// newServer ties request contexts to ctx. Shutdown does not cancel them on
// its own, so open live streams would otherwise hold it until the deadline.
func newServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
}
