package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"vienna_etl/internal/domain"
)

// ---- fakes ----

type fakeGeo struct {
	c     domain.Coords
	err   error
	calls int
	mu    sync.Mutex
}

func (f *fakeGeo) Geocode(ctx context.Context, city string) (domain.Coords, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.c, f.err
}

// fakeWeather answers by the requested midnight; missing keys fail with a 500.
type fakeWeather struct {
	byTS map[int64]map[string]any
	mu   sync.Mutex
	seen []int64
}

func (f *fakeWeather) History(ctx context.Context, c domain.Coords, at time.Time) (map[string]any, error) {
	f.mu.Lock()
	f.seen = append(f.seen, at.Unix())
	f.mu.Unlock()
	p, ok := f.byTS[at.Unix()]
	if !ok {
		return nil, &domain.StatusError{Code: 500, Body: "boom"}
	}
	return p, nil
}

type fakeStore struct {
	listings map[string][]domain.Listing
	weather  map[string][]domain.Weather
	trips    map[string][]domain.Trip
	err      error
	closed   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		listings: map[string][]domain.Listing{},
		weather:  map[string][]domain.Weather{},
		trips:    map[string][]domain.Trip{},
	}
}

func (s *fakeStore) ReplaceListings(ctx context.Context, table string, rows []domain.Listing) error {
	if s.err != nil {
		return s.err
	}
	s.listings[table] = rows
	return nil
}
func (s *fakeStore) ReplaceWeather(ctx context.Context, table string, rows []domain.Weather) error {
	if s.err != nil {
		return s.err
	}
	s.weather[table] = rows
	return nil
}
func (s *fakeStore) ReplaceTrips(ctx context.Context, table string, rows []domain.Trip) error {
	if s.err != nil {
		return s.err
	}
	s.trips[table] = rows
	return nil
}
func (s *fakeStore) Close() error { s.closed++; return nil }

// fakeReadStore adds read support to fakeStore.
type fakeReadStore struct {
	*fakeStore
	listingCalls int
	weatherCalls int
}

func (s *fakeReadStore) ListListings(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
	s.listingCalls++
	var out []domain.Listing
	for _, l := range s.listings[q.Table] {
		if q.Date != nil && l.Date.String() != q.Date.String() {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
func (s *fakeReadStore) ListWeather(ctx context.Context, q domain.WeatherQuery) ([]domain.Weather, error) {
	s.weatherCalls++
	var out []domain.Weather
	for _, w := range s.weather[q.Table] {
		if q.City != nil && !strings.EqualFold(w.City, *q.City) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}
func (s *fakeReadStore) PreviewTrips(ctx context.Context, table string, n int) ([]domain.Trip, error) {
	rows := s.trips[table]
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

func opener(s domain.Store) func(context.Context) (domain.Store, error) {
	return func(context.Context) (domain.Store, error) { return s, nil }
}

func missingCreds(context.Context) (domain.Store, error) {
	return nil, domain.ErrMissingCredentials
}

// fakeCache round-trips values through JSON like the redis adapter does.
type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}
func (c *fakeCache) DelPrefix(ctx context.Context, prefix string) error {
	c.dels = append(c.dels, prefix)
	for k := range c.store {
		if strings.HasPrefix(k, prefix) {
			delete(c.store, k)
		}
	}
	return nil
}

type fakeFiles struct {
	raw      map[string][]domain.RawListing
	listings []domain.Listing
	weather  []domain.Weather
	paths    []string
}

func (f *fakeFiles) ReadListings(path string) ([]domain.RawListing, error) {
	r, ok := f.raw[path]
	if !ok {
		return nil, errors.New("open " + path + ": no such file or directory")
	}
	return r, nil
}
func (f *fakeFiles) WriteListings(path string, rows []domain.Listing) error {
	f.paths = append(f.paths, path)
	f.listings = rows
	return nil
}
func (f *fakeFiles) WriteWeather(path string, rows []domain.Weather) error {
	f.paths = append(f.paths, path)
	f.weather = rows
	return nil
}

type fakeDownloader struct {
	n   int64
	err error
	got string
}

func (d *fakeDownloader) Download(ctx context.Context, url, dest string) (int64, error) {
	d.got = url
	return d.n, d.err
}

type fakeTrips struct {
	rows []domain.RawTrip
	err  error
}

func (f *fakeTrips) ReadTrips(ctx context.Context, path string) ([]domain.RawTrip, error) {
	return f.rows, f.err
}

// hourly builds a minimal history payload with one entry.
func hourly(temp float64, rain *float64) map[string]any {
	e := map[string]any{
		"main": map[string]any{
			"temp": temp, "feels_like": temp - 1, "pressure": 1013.0,
			"humidity": 80.0, "temp_min": temp - 2, "temp_max": temp + 2,
		},
		"wind":   map[string]any{"speed": 3.5},
		"clouds": map[string]any{"all": 75.0},
	}
	if rain != nil {
		e["rain"] = map[string]any{"1h": *rain}
	}
	return map[string]any{"list": []any{e}}
}

func ptr[T any](v T) *T { return &v }
