package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"vienna_etl/internal/adapters/observability"
	"vienna_etl/internal/domain"
)

// StoreOpener connects to the target database. It returns an error (and no
// store) when credentials are missing or the database is unreachable.
type StoreOpener func(ctx context.Context) (domain.Store, error)

// Loader replaces tables. Failures are logged and reported as false, never returned.
type Loader struct {
	open  StoreOpener
	cache domain.Cache
}

// NewLoader builds a Loader. cache may be nil; when set, the read API's cached
// pages for a table are evicted after the table is replaced.
func NewLoader(open StoreOpener, cache domain.Cache) *Loader {
	return &Loader{open: open, cache: cache}
}

func (l *Loader) LoadListings(ctx context.Context, table string, rows []domain.Listing) bool {
	return l.load(ctx, table, len(rows), listingsKeyPrefix(table), func(s domain.Store) error {
		return s.ReplaceListings(ctx, table, rows)
	})
}

func (l *Loader) LoadWeather(ctx context.Context, table string, rows []domain.Weather) bool {
	return l.load(ctx, table, len(rows), weatherKeyPrefix(table), func(s domain.Store) error {
		return s.ReplaceWeather(ctx, table, rows)
	})
}

func (l *Loader) LoadTrips(ctx context.Context, table string, rows []domain.Trip) bool {
	return l.load(ctx, table, len(rows), "", func(s domain.Store) error {
		return s.ReplaceTrips(ctx, table, rows)
	})
}

func (l *Loader) load(ctx context.Context, table string, n int, cachePrefix string, replace func(domain.Store) error) bool {
	s, err := l.open(ctx)
	if err != nil || s == nil {
		log.Error().Err(err).Str("table", table).Msg("skipping database load due to connection failure")
		observability.ObserveSkip("load")
		return false
	}
	defer s.Close()

	if err := replace(s); err != nil {
		log.Error().Err(err).Str("table", table).Msg("error loading data")
		observability.ObserveSkip("load")
		return false
	}
	observability.ObserveLoad(table, n)
	log.Info().Str("table", table).Int("rows", n).Msg("data loaded successfully")

	if l.cache != nil && cachePrefix != "" {
		if err := l.cache.DelPrefix(ctx, cachePrefix); err != nil {
			log.Warn().Err(err).Str("prefix", cachePrefix).Msg("cache invalidation failed")
		}
	}
	return true
}

// Preview logs the first n rows of a trips table. Stores without read support are skipped.
func (l *Loader) Preview(ctx context.Context, table string, n int) []domain.Trip {
	s, err := l.open(ctx)
	if err != nil || s == nil {
		log.Error().Err(err).Str("table", table).Msg("skipping preview due to connection failure")
		return nil
	}
	defer s.Close()

	r, ok := s.(domain.Reader)
	if !ok {
		log.Info().Str("table", table).Msg("store does not support queries, skipping preview")
		return nil
	}
	rows, err := r.PreviewTrips(ctx, table, n)
	if err != nil {
		log.Error().Err(err).Str("table", table).Msg("preview query failed")
		return nil
	}
	for _, t := range rows {
		log.Info().
			Time("pickup", t.PickupAt).
			Time("dropoff", t.DropoffAt).
			Float64("distance", t.TripDistance).
			Float64("fare", t.FareAmount).
			Float64("duration_min", t.TripDurationMin).
			Msg("trip")
	}
	return rows
}
