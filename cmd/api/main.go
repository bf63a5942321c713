package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	server "github.com/lvapl/StayFinder/internal/adapters/http_server"
	"github.com/lvapl/StayFinder/internal/adapters/observability"
	redisad "github.com/lvapl/StayFinder/internal/adapters/redis"
	"github.com/lvapl/StayFinder/internal/app"
	"github.com/lvapl/StayFinder/internal/shared"
	"github.com/lvapl/StayFinder/internal/storage/memory"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// fixture store
	repo, err := memory.New()
	if err != nil {
		log.Fatal().Err(err).Msg("loading fixtures failed")
	}
	log.Info().Msg("fixture dataset loaded")

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessions := memory.NewSessions()
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	auth := app.NewAuthService(repo, sessions)
	pay := app.NewPaymentService(cfg.PaymentDelay, int64(cfg.PaymentSlots), nil)

	go app.WarmHotelCache(context.Background(), q, repo, cfg.WarmWorkers)

	// http
	srv := server.New(cfg.RateLimitRPS)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Auth: auth, Pay: pay})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
