package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/eventmanager/internal/config"
	"github.com/geocoder89/eventmanager/internal/db"
	httpx "github.com/geocoder89/eventmanager/internal/http"
	"github.com/geocoder89/eventmanager/internal/http/handlers"
	"github.com/geocoder89/eventmanager/internal/http/middlewares"
	"github.com/geocoder89/eventmanager/internal/observability"
	"github.com/geocoder89/eventmanager/internal/redisclient"
	"github.com/geocoder89/eventmanager/internal/repo/memory"
	"github.com/geocoder89/eventmanager/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	// Load the config set up
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	ctx := context.Background()

	if cfg.OTelEnabled {
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    cfg.ServiceName,
			ServiceVersion: cfg.ServiceVersion,
			Environment:    cfg.Env,
			Endpoint:       cfg.OTelEndpoint,
		})
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer func() {
			c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(c); err != nil {
				log.Error("tracer shutdown failed", "err", err)
			}
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	deps := httpx.Deps{
		Prom:     prom,
		Gatherer: reg,
		Checks:   map[string]handlers.Check{},
	}

	switch cfg.StoreBackend {
	case config.StoreMemory:
		store := memory.NewStore()
		deps.Stores = httpx.Stores{
			Events:    store.Events(),
			Packets:   store.Packets(),
			Tickets:   store.Tickets(),
			Relations: store.Relations(),
		}
	case config.StorePostgres:
		pool, err := db.NewPool(ctx, cfg.DBURL, cfg.DBMaxConns)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()

		deps.Stores = httpx.Stores{
			Events:    postgres.NewEventsRepo(pool, prom),
			Packets:   postgres.NewPacketsRepo(pool, prom),
			Tickets:   postgres.NewTicketsRepo(pool, prom),
			Relations: postgres.NewRelationsRepo(pool, prom),
		}
		deps.Checks["postgres"] = pool.Ping
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.RedisAddr != "" {
		rdb := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error("redis close failed", "err", err)
			}
		}()

		deps.Limiter = middlewares.NewRedisRateLimiter(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow)
		deps.Checks["redis"] = rdb.Ping
	}

	router := httpx.NewRouter(log, cfg, deps)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info("server starting", "config", cfg.String())
		err := srv.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}

	log.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
