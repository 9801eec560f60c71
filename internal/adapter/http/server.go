package adapthttp

import (
	"net/http"

	"healthstate/internal/app"
	"healthstate/internal/telemetry"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Services are the application services the adapter drives.
type Services struct {
	Users     *app.UserStore
	Rollover  *app.RolloverService
	Water     *app.WaterService
	Nutrition *app.NutritionService
	Workouts  *app.WorkoutService
	Labs      *app.LabService
	Scores    *app.ScoresService
	Charts    *app.ChartsService
	Weight    *app.WeightService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc       Services
	log       logrus.FieldLogger
	metrics   *telemetry.Metrics
	rateRPS   float64
	rateBurst int
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics instruments every request and serves /metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithRateLimit limits each client IP to rps requests per second.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) { s.rateRPS, s.rateBurst = rps, burst }
}

// New creates a Server wired to the given application services.
func New(svc Services, log logrus.FieldLogger, opts ...Option) *Server {
	s := &Server{svc: svc, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	if s.metrics != nil {
		r.Use(s.metrics.Instrument)
	}
	r.Use(s.loggingMiddleware)
	r.Use(withNoCache)

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		if s.rateRPS > 0 {
			r.Use(rateLimit(s.rateRPS, s.rateBurst))
		}

		r.Get("/session", s.handleSessionGet)
		r.Post("/session", s.handleLogin)
		r.Delete("/session", s.handleLogout)

		r.Get("/users", s.handleUsersList)
		r.Post("/users", s.handleUsersAdd)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Use(s.userMiddleware)

			r.Get("/", s.handleUserGet)
			r.Patch("/", s.handleUserUpdate)
			r.Post("/rollover", s.handleRollover)

			r.Get("/water/today", s.handleWaterToday)
			r.Post("/water/event", s.handleWaterEvent)
			r.Put("/water/goal", s.handleWaterGoal)
			r.Get("/water/history", s.handleWaterHistory)

			r.Get("/nutrition/today", s.handleNutritionToday)
			r.Post("/nutrition/items", s.handleNutritionLog)
			r.Post("/nutrition/undo-last", s.handleNutritionUndoLast)
			r.Put("/nutrition/target", s.handleNutritionTarget)
			r.Get("/nutrition/history", s.handleNutritionHistory)

			r.Get("/workouts", s.handleWorkoutsRecent)
			r.Post("/workouts", s.handleWorkoutsLog)

			r.Get("/labs", s.handleLabsList)
			r.Post("/labs", s.handleLabsAdd)

			r.Get("/weight", s.handleWeightGet)
			r.Put("/weight", s.handleWeightPut)

			r.Post("/scores/today", s.handleScoresToday)
			r.Get("/charts/daily", s.handleChartsDaily)
		})
	})

	return r
}
