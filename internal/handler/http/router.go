package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftsense/attendance-engine-go/internal/config"
	"github.com/shiftsense/attendance-engine-go/internal/handler/http/middleware"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	trackerHandler TrackerHandler,
	historyHandler HistoryHandler,
	reportHandler ReportHandler,
	employeesHandler EmployeesHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/tracker", func(r chi.Router) {
				r.Get("/today", trackerHandler.Today)
				r.Post("/clock-in", trackerHandler.ClockIn)
				r.Post("/start-break", trackerHandler.StartBreak)
				r.Post("/end-break", trackerHandler.EndBreak)
				r.Post("/clock-out", trackerHandler.ClockOut)
			})

			r.Route("/history", func(r chi.Router) {
				r.Post("/pages", historyHandler.LoadPage)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/hours", reportHandler.Hours)
				r.Get("/dashboard", reportHandler.Dashboard)
				r.Get("/hours/export", reportHandler.Export)
			})

			r.Post("/session/reset", trackerHandler.ResetSession)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/employees/status", employeesHandler.Status)
			})
		})

		// SSE cannot set an Authorization header from EventSource, so
		// the events route also accepts the token as a query parameter.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(jwtService.JWTAuth(),
				jwtauth.TokenFromQuery, jwtauth.TokenFromHeader))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/events", eventsHandler.Stream)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
