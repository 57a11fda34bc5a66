package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutriplan-dashboard/internal/adapters/storage/memory"
	"nutriplan-dashboard/internal/adapters/storage/redis"
	"nutriplan-dashboard/internal/config"
	"nutriplan-dashboard/internal/platform/datetime"
	"nutriplan-dashboard/internal/platform/httpclient"
	"nutriplan-dashboard/internal/platform/logger"
	"nutriplan-dashboard/internal/platform/metrics"
	"nutriplan-dashboard/internal/ports/health"
	"nutriplan-dashboard/internal/router"
)

// @title NutriPlan Dashboard API
// @version 1.0
// @description BFF del dashboard de NutriPlan: agrega usuarios, planos y receitas con fallback por servicio.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config", logger.Err(err))
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	loc, err := cfg.Location()
	if err != nil {
		log.Error("timezone", logger.Err(err))
		os.Exit(1)
	}
	datetime.SetLocation(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cache health.Cache
	switch cfg.Circuit.Backend {
	case config.HealthCacheRedis:
		rc, err := redis.Open(ctx, redis.Options{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		if err != nil {
			log.Error("redis", logger.Err(err))
			os.Exit(1)
		}
		defer rc.Close()
		cache = rc
	default:
		cache = memory.NewHealthCache()
	}

	m := metrics.New()

	client, err := httpclient.New(httpclient.Config{
		BaseURLs: map[httpclient.Service]string{
			httpclient.ServiceUsers:   cfg.Upstreams.UsersURL,
			httpclient.ServicePlans:   cfg.Upstreams.PlansURL,
			httpclient.ServiceRecipes: cfg.Upstreams.RecipesURL,
		},
		Timeout:      cfg.Upstreams.Timeout,
		MaxBodyBytes: cfg.Upstreams.MaxBodyBytes,
		Circuit:      httpclient.Circuit{Cache: cache, Cooldown: cfg.Circuit.Cooldown},
		Logger:       log,
		Observer:     m,
	})
	if err != nil {
		log.Error("httpclient", logger.Err(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr: cfg.HTTPServer.Addr,
		Handler: router.NewRouter(router.Options{
			Client:              client,
			Logger:              log,
			Metrics:             m,
			RateLimitRPS:        cfg.RateLimit.RPS,
			RateLimitBurst:      cfg.RateLimit.Burst,
			RecentActivityLimit: cfg.RecentActivityLimit,
		}),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env, "health_cache": cfg.Circuit.Backend})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", logger.Err(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", logger.Err(err))
	}
	log.Info("server stopped", nil)
}
