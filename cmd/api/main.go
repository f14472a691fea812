package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "vienna_etl/internal/adapters/http_server"
	"vienna_etl/internal/adapters/observability"
	redisad "vienna_etl/internal/adapters/redis"
	"vienna_etl/internal/app"
	"vienna_etl/internal/shared"
	"vienna_etl/internal/storage/sqlstore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")
	cfg.LogWarnings()

	pipe, err := shared.LoadPipeline(cfg.PipelinePath)
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline config invalid")
	}

	// db
	if cfg.DB.Driver == "mongo" {
		log.Fatal().Msg("the read API needs a SQL driver (postgres, mysql or sqlite)")
	}
	repo, err := sqlstore.Engine(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer repo.Close()
	log.Info().Str("driver", cfg.DB.Driver).Msg("database connection ok")

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	q := app.NewQueryService(repo, cache, cfg.CacheTTL, pipe.ListingsTable, pipe.WeatherTable)

	// http
	srv := server.New(15 * time.Second)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(sctx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
