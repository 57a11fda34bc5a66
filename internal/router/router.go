package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "nutriplan-dashboard/docs"
	"nutriplan-dashboard/internal/adapters/remote"
	"nutriplan-dashboard/internal/domain/dashboard"
	"nutriplan-dashboard/internal/domain/plans"
	"nutriplan-dashboard/internal/domain/recipes"
	"nutriplan-dashboard/internal/domain/servicestatus"
	"nutriplan-dashboard/internal/domain/users"
	"nutriplan-dashboard/internal/middleware"
	"nutriplan-dashboard/internal/platform/httpclient"
	"nutriplan-dashboard/internal/platform/logger"
	"nutriplan-dashboard/internal/platform/metrics"
)

type Options struct {
	// Client es obligatorio: lo usan los repos remotos y /status.
	Client *httpclient.Client

	Logger  logger.Logger
	Metrics *metrics.Metrics // nil = sin /metrics

	// Opcionales: si vienen nil se usan los repos remotos con su fallback por defecto.
	Users   users.Repository
	Plans   plans.Repository
	Recipes recipes.Repository

	RateLimitRPS   float64
	RateLimitBurst int

	RecentActivityLimit int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log, opts.Metrics))
	r.Use(middleware.Recover(log))
	r.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Repos remotos
	remoteOpts := remote.Options{Logger: log, Recorder: opts.Metrics}
	userRepo := opts.Users
	if userRepo == nil {
		userRepo = remote.NewUsersRepo(opts.Client, nil, remoteOpts)
	}
	planRepo := opts.Plans
	if planRepo == nil {
		planRepo = remote.NewPlansRepo(opts.Client, nil, remoteOpts)
	}
	recipeRepo := opts.Recipes
	if recipeRepo == nil {
		recipeRepo = remote.NewRecipesRepo(opts.Client, nil, remoteOpts)
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo)
	plansSvc := plans.NewService(planRepo)
	recipesSvc := recipes.NewService(recipeRepo)

	engine := dashboard.NewEngine(dashboard.Config{
		Users:    userRepo,
		Plans:    planRepo,
		Recipes:  recipeRepo,
		Logger:   log,
		Recorder: opts.Metrics,
	})

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	plans.RegisterRoutes(r, plansSvc)
	recipes.RegisterRoutes(r, recipesSvc)
	dashboard.RegisterRoutes(r, engine, opts.RecentActivityLimit)
	servicestatus.RegisterRoutes(r, servicestatus.NewChecker(opts.Client))

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}
