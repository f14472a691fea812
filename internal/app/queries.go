package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vienna_etl/internal/domain"
)

func listingsKeyPrefix(table string) string { return "listings:" + table + ":" }
func weatherKeyPrefix(table string) string  { return "weather:" + table + ":" }

// QueryService serves the loaded tables with a read-through cache.
type QueryService struct {
	repo          domain.Reader
	cache         domain.Cache
	cacheTTL      time.Duration
	listingsTable string
	weatherTable  string
}

func NewQueryService(r domain.Reader, c domain.Cache, ttl time.Duration, listingsTable, weatherTable string) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl, listingsTable: listingsTable, weatherTable: weatherTable}
}

func (s *QueryService) ListListings(ctx context.Context, date *domain.Date, limit int) ([]domain.Listing, error) {
	d := "all"
	if date != nil {
		d = date.String()
	}
	key := fmt.Sprintf("%s%s:%d", listingsKeyPrefix(s.listingsTable), d, limit)
	var out []domain.Listing
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	rows, err := s.repo.ListListings(ctx, domain.ListingsQuery{Table: s.listingsTable, Date: date, Limit: limit})
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, rows)
	return rows, nil
}

func (s *QueryService) ListWeather(ctx context.Context, city *string, limit int) ([]domain.Weather, error) {
	c := "all"
	if city != nil {
		c = strings.ToLower(*city)
	}
	key := fmt.Sprintf("%s%s:%d", weatherKeyPrefix(s.weatherTable), c, limit)
	var out []domain.Weather
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	rows, err := s.repo.ListWeather(ctx, domain.WeatherQuery{Table: s.weatherTable, City: city, Limit: limit})
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, rows)
	return rows, nil
}

// store caches v unless it is larger than 1 MB.
func (s *QueryService) store(ctx context.Context, key string, v any) {
	if b, _ := json.Marshal(v); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
	}
}
