package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"vienna_etl/internal/adapters/csvfile"
	"vienna_etl/internal/adapters/observability"
	redisad "vienna_etl/internal/adapters/redis"
	"vienna_etl/internal/adapters/webapi"
	"vienna_etl/internal/app"
	"vienna_etl/internal/domain"
	"vienna_etl/internal/shared"
	"vienna_etl/internal/storage"
)

var (
	cfgFile string
	workers int

	cfg  shared.Config
	pipe shared.Pipeline
)

var rootCmd = &cobra.Command{
	Use:   "etl",
	Short: "Load Vienna listings and weather into the database",
	Long: `etl reads Inside Airbnb listing snapshots, fetches the weather for each
snapshot date, writes both as CSV and replaces the database tables.
Without a subcommand it runs listings, then weather.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runAll,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "pipeline YAML file (default $ETL_CONFIG or ./pipeline.yaml)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "concurrent weather fetches (default $ETL_WORKERS)")
}

// setup loads configuration and the global logger for every command.
func setup(cmd *cobra.Command, args []string) error {
	cfg = shared.Load()
	if workers > 0 {
		cfg.Workers = workers
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, "etl").With().Str("run_id", uuid.NewString()).Logger()
	cfg.LogWarnings()
	observability.RegisterDefault()
	observability.Serve(cfg.MetricsAddr)

	path := cfg.PipelinePath
	if cfgFile != "" {
		path = cfgFile
	}
	p, err := shared.LoadPipeline(path)
	if err != nil {
		return fmt.Errorf("loading pipeline: %w", err)
	}
	pipe = p

	log.Info().
		Str("command", cmd.Name()).
		Str("city", pipe.City).
		Strs("dates", pipe.Dates()).
		Str("driver", cfg.DB.Driver).
		Int("workers", cfg.Workers).
		Msg("etl starting")
	return nil
}

func runAll(cmd *cobra.Command, args []string) error {
	if err := runListings(cmd, args); err != nil {
		return err
	}
	return runWeather(cmd, args)
}

// newCache returns the API cache when Redis answers; loads then evict stale
// pages. A nil result disables invalidation.
func newCache(ctx context.Context) domain.Cache {
	if cfg.RedisAddr == "" {
		return nil
	}
	c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := c.Ping(pctx); err != nil {
		log.Debug().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, cache invalidation disabled")
		_ = c.Close()
		return nil
	}
	return c
}

func newLoader(ctx context.Context) *app.Loader {
	return app.NewLoader(storage.Opener(cfg.DB), newCache(ctx))
}

// newPipeline wires the Vienna pipeline. weather may be nil when only the
// listing stage runs.
func newPipeline(ctx context.Context, weather *app.WeatherService) *app.Pipeline {
	return app.NewPipeline(app.Options{
		City:          pipe.City,
		Snapshots:     pipe.Snapshots,
		ListingsTable: pipe.ListingsTable,
		WeatherTable:  pipe.WeatherTable,
		OutputDir:     cfg.OutputDir,
	}, csvfile.Files{}, weather, newLoader(ctx))
}

func newWeatherService() (*app.WeatherService, error) {
	wx, err := webapi.NewOpenWeather(cfg.WeatherBase, cfg.WeatherKey, cfg.UserAgent, cfg.HTTPTimeout, cfg.RPS)
	if err != nil {
		return nil, err
	}
	geo := webapi.NewPhoton(cfg.PhotonBase, cfg.UserAgent, cfg.HTTPTimeout, cfg.RPS)
	return app.NewWeatherService(geo, wx, cfg.Location(), cfg.Workers), nil
}
