package app_test

import (
	"context"
	"testing"
	"time"

	"vienna_etl/internal/app"
	"vienna_etl/internal/domain"
)

func TestListListings_CacheMissThenHit(t *testing.T) {
	repo := &fakeReadStore{fakeStore: newFakeStore()}
	repo.listings["listings"] = []domain.Listing{
		{ID: 1, Name: "Loft", Date: domain.MustDate("2024-03-22")},
		{ID: 2, Name: "Room", Date: domain.MustDate("2024-06-10")},
	}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute, "listings", "weather")

	d := domain.MustDate("2024-03-22")
	out, err := q.ListListings(context.Background(), &d, 100)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("unexpected: %+v", out)
	}

	// Mutate repo to ensure second read comes from cache
	repo.listings["listings"][0].Name = "SHOULD NOT SEE THIS"
	out2, err := q.ListListings(context.Background(), &d, 100)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if out2[0].Name != "Loft" || repo.listingCalls != 1 {
		t.Fatalf("expected cached row, got %+v (calls=%d)", out2, repo.listingCalls)
	}
	if out2[0].Date.String() != "2024-03-22" {
		t.Fatalf("date lost in cache: %v", out2[0].Date)
	}
}

func TestListWeather_InvalidatedByLoad(t *testing.T) {
	st := newFakeStore()
	repo := &fakeReadStore{fakeStore: st}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, time.Minute, "listings", "weather")
	l := app.NewLoader(opener(st), cache)

	l.LoadWeather(context.Background(), "weather", []domain.Weather{{City: "Vienna", Temp: 1}})
	out, _ := q.ListWeather(context.Background(), ptr("Vienna"), 0)
	if len(out) != 1 || out[0].Temp != 1 {
		t.Fatalf("first read: %+v", out)
	}

	l.LoadWeather(context.Background(), "weather", []domain.Weather{{City: "Vienna", Temp: 2}})
	out, _ = q.ListWeather(context.Background(), ptr("Vienna"), 0)
	if len(out) != 1 || out[0].Temp != 2 {
		t.Fatalf("stale read after reload: %+v", out)
	}
	if repo.weatherCalls != 2 {
		t.Fatalf("repo calls: %d", repo.weatherCalls)
	}
}

func TestListWeather_CityIgnoresCase(t *testing.T) {
	repo := &fakeReadStore{fakeStore: newFakeStore()}
	repo.weather["weather"] = []domain.Weather{{City: "Vienna", Temp: 9.5}, {City: "Graz", Temp: 12}}
	q := app.NewQueryService(repo, &fakeCache{}, time.Minute, "listings", "weather")

	out, err := q.ListWeather(context.Background(), ptr("Vienna"), 10)
	if err != nil || len(out) != 1 || out[0].City != "Vienna" {
		t.Fatalf("first read: %+v err=%v", out, err)
	}
	out, err = q.ListWeather(context.Background(), ptr("VIENNA"), 10)
	if err != nil || len(out) != 1 || out[0].Temp != 9.5 {
		t.Fatalf("upper-case read: %+v err=%v", out, err)
	}
	if repo.weatherCalls != 1 {
		t.Fatalf("expected one cache entry per city, repo calls=%d", repo.weatherCalls)
	}
}
