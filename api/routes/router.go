package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/branchstock/branchstock-backend/api/controllers"
	"github.com/branchstock/branchstock-backend/api/middleware"
	"github.com/branchstock/branchstock-backend/internal/auth"
	"github.com/branchstock/branchstock-backend/internal/inventory"
	"github.com/branchstock/branchstock-backend/internal/reports"
	"github.com/branchstock/branchstock-backend/internal/users"
	"github.com/branchstock/branchstock-backend/pkg/auth/session"
	"github.com/branchstock/branchstock-backend/pkg/config"
	"github.com/branchstock/branchstock-backend/pkg/db"
	"github.com/branchstock/branchstock-backend/pkg/logger"
	"github.com/branchstock/branchstock-backend/pkg/metrics"
	"github.com/branchstock/branchstock-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config           *config.Config
	Logger           *logger.Logger
	DBPinger         db.Pinger
	RedisClient      *redis.Client
	SessionManager   session.AccessSessionChecker
	UserLoader       middleware.UserLoader
	HTTPMetrics      *metrics.HTTPMetrics
	MetricsGatherer  prometheus.Gatherer
	AuthService      auth.Service
	RegisterService  auth.RegisterService
	UsersService     users.Service
	InventoryService inventory.Service
	ReportsService   reports.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginNameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterNameLimit,
	)

	// a typed-nil redis client must not reach the readiness probe
	var cache db.Pinger
	if p.RedisClient != nil {
		cache = p.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DBPinger, cache, logg))
	})

	if p.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	var limiter middleware.RateLimiterStore
	if p.RedisClient != nil {
		limiter = p.RedisClient
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg)).Post("/register", controllers.AuthRegister(p.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, p.UserLoader, p.SessionManager, logg)).Post("/logout", controllers.AuthLogout(p.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.UserLoader, p.SessionManager, logg))

		r.Route("/users", func(r chi.Router) {
			ownID := func(req *http.Request) string { return chi.URLParam(req, "id") }
			r.With(middleware.AllowAdminOrOwner(ownID, logg)).Get("/{id}", controllers.UserGet(p.UsersService, logg))
			r.With(middleware.RequireAdmin(logg)).Put("/{id}/promote", controllers.UserPromote(p.UsersService, logg))
			r.With(middleware.AllowAdminOrOwner(ownID, logg)).Delete("/{id}", controllers.UserDelete(p.UsersService, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/", controllers.InventoryCreate(p.InventoryService, logg))
			r.Get("/{id}", controllers.InventoryGet(p.InventoryService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/daily", controllers.ReportDaily(p.ReportsService, logg))
			r.Get("/monthly", controllers.ReportMonthly(p.ReportsService, logg))
			r.Get("/yearly", controllers.ReportYearly(p.ReportsService, logg))
		})
	})

	return r
}
