package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medtrack/reminder-service/internal/middleware"
	"medtrack/reminder-service/internal/service"
	"medtrack/reminder-service/pkg/logger"
	"medtrack/reminder-service/pkg/metrics"
)

// RouterConfig bundles the handlers and cross-cutting pieces the router wires
type RouterConfig struct {
	Auth        *AuthHandler
	Medications *MedicationHandler
	Reminders   *ReminderHandler
	Intakes     *IntakeHandler

	AuthService service.AuthService
	Log         *logger.Logger
	Metrics     *metrics.Metrics
	Throttle    int
}

// NewRouter builds the HTTP routing table
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(logger.HTTPMiddleware(cfg.Log))
	r.Use(metricsMiddleware(cfg.Metrics))
	if cfg.Throttle > 0 {
		r.Use(middleware.Throttle(cfg.Throttle))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.Auth.Register)
			r.Post("/login", cfg.Auth.Login)
			r.Post("/refresh", cfg.Auth.Refresh)
			r.Post("/logout", cfg.Auth.Logout)
		})

		// Everything below requires a valid access token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.AuthService))

			r.Get("/me", cfg.Auth.Me)
			r.Put("/me/timezone", cfg.Auth.UpdateTimezone)

			r.Route("/medications", func(r chi.Router) {
				r.Get("/", cfg.Medications.List)
				r.Post("/", cfg.Medications.Create)
				r.Get("/{id}", cfg.Medications.Get)
				r.Put("/{id}", cfg.Medications.Update)
				r.Delete("/{id}", cfg.Medications.Delete)
			})

			r.Route("/reminders", func(r chi.Router) {
				r.Get("/", cfg.Reminders.List)
				r.Post("/", cfg.Reminders.Create)
				r.Get("/{id}", cfg.Reminders.Get)
				r.Put("/{id}", cfg.Reminders.Update)
				r.Delete("/{id}", cfg.Reminders.Delete)
			})

			r.Route("/intakes", func(r chi.Router) {
				r.Get("/", cfg.Intakes.List)
				r.Post("/", cfg.Intakes.Create)
			})
		})
	})

	return r
}

// metricsMiddleware records request count and latency per method
func metricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			m.ObserveRequest(r.Method, strconv.Itoa(ww.Status()), time.Since(start))
		})
	}
}
