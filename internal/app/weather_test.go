package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vienna_etl/internal/app"
	"vienna_etl/internal/domain"
)

func viennaTS(date string, loc *time.Location) int64 {
	return domain.MustDate(date).Midnight(loc).Unix()
}

func TestProcess_OrderAndSkips(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Vienna")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	dates := []string{"2024-03-22", "2024-06-10", "2024-09-14", "2024-12-21"}
	wx := &fakeWeather{byTS: map[int64]map[string]any{
		viennaTS(dates[0], loc): hourly(283.15, nil),
		viennaTS(dates[1], loc): hourly(293.15, ptr(1.2)),
		// dates[2] fails with a 500
		viennaTS(dates[3], loc): hourly(273.15, nil),
	}}
	geo := &fakeGeo{c: domain.Coords{Lat: 48.2, Lon: 16.37}}

	for _, workers := range []int{1, 4} {
		s := app.NewWeatherService(geo, wx, loc, workers)
		out := s.Process(context.Background(), dates, "Vienna")
		if len(out) != 3 {
			t.Fatalf("workers=%d rows: %d", workers, len(out))
		}
		want := []string{"2024-03-22", "2024-06-10", "2024-12-21"}
		for i, w := range out {
			if w.Date.String() != want[i] {
				t.Fatalf("workers=%d order: got %s at %d", workers, w.Date, i)
			}
		}
		if out[2].Temp != 0 || out[1].Rain != 1.2 {
			t.Fatalf("values: %+v", out)
		}
	}
}

func TestProcess_GeocodeFailureSkipsEveryDate(t *testing.T) {
	geo := &fakeGeo{err: domain.ErrNoCoordinates}
	wx := &fakeWeather{}
	s := app.NewWeatherService(geo, wx, time.UTC, 1)

	out := s.Process(context.Background(), []string{"2024-03-22", "2024-06-10"}, "Atlantis")
	if len(out) != 0 {
		t.Fatalf("rows: %+v", out)
	}
	if geo.calls != 2 {
		t.Fatalf("geocode per date, got %d calls", geo.calls)
	}
	if len(wx.seen) != 0 {
		t.Fatalf("weather should not be called, got %v", wx.seen)
	}
}

func TestCoordinates(t *testing.T) {
	s := app.NewWeatherService(&fakeGeo{err: errors.New("dial tcp: refused")}, &fakeWeather{}, time.UTC, 1)
	if c := s.Coordinates(context.Background(), "Vienna"); c != nil {
		t.Fatalf("expected nil, got %+v", c)
	}
	s = app.NewWeatherService(&fakeGeo{c: domain.Coords{Lat: 1, Lon: 2}}, &fakeWeather{}, time.UTC, 1)
	if c := s.Coordinates(context.Background(), "Vienna"); c == nil || c.Lat != 1 || c.Lon != 2 {
		t.Fatalf("coords: %+v", c)
	}
}

func TestFetch_UsesMidnightOfLocation(t *testing.T) {
	wx := &fakeWeather{byTS: map[int64]map[string]any{}}
	s := app.NewWeatherService(&fakeGeo{}, wx, time.UTC, 1)
	if p := s.Fetch(context.Background(), "2024-03-22", "Vienna"); p != nil {
		t.Fatalf("expected nil payload on error, got %v", p)
	}
	if len(wx.seen) != 1 || wx.seen[0] != 1711065600 {
		t.Fatalf("timestamp: %v", wx.seen)
	}
}
