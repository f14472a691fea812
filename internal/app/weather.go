package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"vienna_etl/internal/adapters/observability"
	"vienna_etl/internal/domain"
)

type WeatherService struct {
	geo     domain.Geocoder
	wx      domain.WeatherClient
	loc     *time.Location
	workers int
}

// NewWeatherService wires the clients. loc decides which midnight a date maps to;
// workers bounds concurrent fetches (1 keeps them sequential).
func NewWeatherService(g domain.Geocoder, w domain.WeatherClient, loc *time.Location, workers int) *WeatherService {
	if loc == nil {
		loc = time.Local
	}
	if workers <= 0 {
		workers = 1
	}
	return &WeatherService{geo: g, wx: w, loc: loc, workers: workers}
}

// Coordinates returns nil when city cannot be resolved. The failure is logged, not returned.
func (s *WeatherService) Coordinates(ctx context.Context, city string) *domain.Coords {
	c, err := s.geo.Geocode(ctx, city)
	if err != nil {
		if errors.Is(err, domain.ErrNoCoordinates) {
			log.Error().Str("city", city).Msg("could not find coordinates")
		} else {
			log.Error().Err(err).Str("city", city).Msg("geolocation error")
		}
		observability.ObserveSkip("geocode")
		return nil
	}
	return &c
}

// Fetch returns the raw history payload for one date, or nil on any failure.
func (s *WeatherService) Fetch(ctx context.Context, date, city string) map[string]any {
	c := s.Coordinates(ctx, city)
	if c == nil {
		return nil
	}
	d, err := domain.ParseDate(date)
	if err != nil {
		log.Error().Err(err).Str("city", city).Msg("bad weather date")
		return nil
	}
	payload, err := s.wx.History(ctx, *c, d.Midnight(s.loc))
	if err != nil {
		ev := log.Error().Err(err).Str("city", city).Str("date", date)
		var se *domain.StatusError
		if errors.As(err, &se) {
			ev = ev.Int("status", se.Code)
		}
		ev.Msg("error fetching weather")
		return nil
	}
	return payload
}

// Collect fetches every date. Results keep the order of dates; dates that failed
// are logged and left out.
func (s *WeatherService) Collect(ctx context.Context, dates []string, city string) []domain.DatedPayload {
	results := make([]map[string]any, len(dates))
	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup

	for i, date := range dates {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("weather collection interrupted")
			break
		}
		wg.Add(1)
		go func(i int, date string) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = s.Fetch(ctx, date, city)
		}(i, date)
	}
	wg.Wait()

	out := make([]domain.DatedPayload, 0, len(dates))
	for i, p := range results {
		if len(p) == 0 {
			log.Warn().Str("date", dates[i]).Msg("skipping date due to missing data")
			observability.ObserveSkip("weather")
			continue
		}
		out = append(out, domain.DatedPayload{Date: dates[i], Payload: p})
	}
	return out
}

// Process collects and maps the weather rows for city.
func (s *WeatherService) Process(ctx context.Context, dates []string, city string) []domain.Weather {
	return MapWeather(city, s.Collect(ctx, dates, city))
}
