package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "hotel_allocation/internal/adapters/http_server"
	"hotel_allocation/internal/adapters/observability"
	redisad "hotel_allocation/internal/adapters/redis"
	"hotel_allocation/internal/app"
	"hotel_allocation/internal/bootstrap"
	"hotel_allocation/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "allocation-api", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	observability.Serve()

	// deps
	repo, closeRepo, err := bootstrap.ConstraintRepository(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.ConstraintSource).Msg("constraint source init failed")
	}
	defer closeRepo()

	store := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := store.Ping(ctx); err != nil {
		// results are best-effort; solving still works without Redis
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable")
	}

	solve := app.NewSolveService(repo, store, app.SolveOptions{
		DefaultTimeLimit: cfg.SolveTimeLimit,
		MaxTimeLimit:     cfg.SolveMaxTime,
		MaxIterations:    cfg.SolveMaxIter,
		Concurrency:      cfg.SolveWorkers,
		ResultTTL:        cfg.ResultTTL,
	})
	q := app.NewQueryService(repo, store)

	// http
	srv := server.New(cfg.HTTPTimeout)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Q:       q,
		S:       solve,
		Limiter: server.NewTenantLimiter(cfg.TenantSolveRPS, cfg.TenantSolveBurst),
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("source", cfg.ConstraintSource).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	// in-flight solves finish within their own time limit
	sctx, cancel := context.WithTimeout(context.Background(), cfg.SolveMaxTime+5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
