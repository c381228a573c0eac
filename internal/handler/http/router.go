package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
)

type Handlers struct {
	Employee  EmployeeHandler
	Settings  SettingsHandler
	Clock     ClockHandler
	TimeEntry TimeEntryHandler
	Live      LiveHandler
	Report    ReportHandler
}

func NewRouter(cfg *config.Config, logger *slog.Logger, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
		// the live stream would log one line per connection lifetime
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/api/v1/time-entries/live"
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Post("/", h.Employee.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Employee.GetEmployee)
				r.Put("/", h.Employee.UpdateEmployee)
				r.Delete("/", h.Employee.DeleteEmployee)
				r.Put("/schedule", h.Employee.UpdateSchedule)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.Settings.GetSettings)
			r.Put("/", h.Settings.UpdateSettings)
		})

		r.Route("/clock/{employeeID}", func(r chi.Router) {
			r.Get("/", h.Clock.Status)
			r.Post("/in", h.Clock.ClockIn)
			r.Post("/break/start", h.Clock.StartBreak)
			r.Post("/break/end", h.Clock.EndBreak)
			r.Post("/out", h.Clock.InitiateClockOut)
			r.Post("/out/confirm", h.Clock.ConfirmClockOut)
		})

		r.Route("/time-entries", func(r chi.Router) {
			r.Get("/", h.TimeEntry.ListByDate)
			r.Get("/history", h.TimeEntry.History)
			r.Get("/live", h.Live.Stream)
			r.Post("/retroactive", h.TimeEntry.Retroactive)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.TimeEntry.GetEntry)
				r.Put("/", h.TimeEntry.EditEntry)
				r.Delete("/", h.TimeEntry.DeleteEntry)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", h.Report.Summary)
			r.Get("/export", h.Report.Export)
		})
	})

	return r
}

// NewRequestLogger builds the ECS-shaped JSON logger the router logs with.
func NewRequestLogger(cfg *config.Config, out io.Writer) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
}
