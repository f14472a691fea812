package app_test

import (
	"testing"
	"time"

	"vienna_etl/internal/app"
	"vienna_etl/internal/domain"
)

func TestKelvinToCelsius(t *testing.T) {
	cases := map[float64]float64{
		273.15:  0,
		0:       -273.15,
		300:     26.85,
		280.123: 6.97,
	}
	for k, want := range cases {
		if got := app.KelvinToCelsius(k); got != want {
			t.Errorf("KelvinToCelsius(%v) = %v, want %v", k, got, want)
		}
	}
}

func TestMapWeather(t *testing.T) {
	in := []domain.DatedPayload{
		{Date: "2024-03-22", Payload: hourly(283.15, ptr(0.4))},
		{Date: "2024-06-10", Payload: hourly(293.15, nil)},
		{Date: "2024-09-14", Payload: map[string]any{"list": []any{}}},
		{Date: "2024-12-21", Payload: map[string]any{"cod": "200"}},
	}
	out := app.MapWeather("Vienna", in)
	if len(out) != 2 {
		t.Fatalf("rows: %d", len(out))
	}
	w := out[0]
	if w.Date.String() != "2024-03-22" || w.Temp != 10 || w.FeelsLike != 9 || w.TempMin != 8 || w.TempMax != 12 {
		t.Fatalf("temps: %+v", w)
	}
	if w.Pressure != 1013 || w.Humidity != 80 || w.WindSpeed != 3.5 || w.Clouds != 75 || w.Rain != 0.4 {
		t.Fatalf("copied fields: %+v", w)
	}
	if w.City != "Vienna" {
		t.Fatalf("city: %q", w.City)
	}
	if out[1].Rain != 0 || out[1].Date.String() != "2024-06-10" {
		t.Fatalf("rain default: %+v", out[1])
	}
}

func TestMapWeather_IncompleteEntryDropped(t *testing.T) {
	p := hourly(283.15, nil)
	delete(p["list"].([]any)[0].(map[string]any), "wind")
	if out := app.MapWeather("Vienna", []domain.DatedPayload{{Date: "2024-03-22", Payload: p}}); len(out) != 0 {
		t.Fatalf("expected drop, got %+v", out)
	}
}

func TestCleanListings(t *testing.T) {
	d := domain.MustDate("2024-06-10")
	raw := []domain.RawListing{
		{ID: 1, Name: "Loft", RoomType: "Entire home/apt", Accommodates: ptr(2), Price: "$1,234.50", Beds: ptr(1.0), Fingerprint: "a"},
		{ID: 1, Name: "Loft", RoomType: "Entire home/apt", Accommodates: ptr(2), Price: "$1,234.50", Beds: ptr(1.0), Fingerprint: "a"},
		{ID: 1, Name: "Loft", RoomType: "Entire home/apt", Accommodates: ptr(2), Price: "$99.00", Fingerprint: "b"},
		{ID: 2, Name: "Room", RoomType: "Private room", Price: "", Fingerprint: "c"},
	}
	out := app.CleanListings(raw, d)
	if len(out) != 3 {
		t.Fatalf("rows: %d", len(out))
	}
	for _, l := range out {
		if l.Date.String() != "2024-06-10" {
			t.Fatalf("date: %v", l.Date)
		}
	}
	if out[0].Price == nil || *out[0].Price != 1234.5 {
		t.Fatalf("price: %v", out[0].Price)
	}
	if out[1].Price == nil || *out[1].Price != 99 {
		t.Fatalf("second price: %v", out[1].Price)
	}
	if out[2].Price != nil || out[2].Beds != nil || out[2].Accommodates != nil {
		t.Fatalf("empty cells should be nil: %+v", out[2])
	}
}

func TestMapTrips(t *testing.T) {
	p := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	d := p.Add(90 * time.Second)
	raw := []domain.RawTrip{
		{PickupAt: &p, DropoffAt: &d, PassengerCount: ptr(1.0), TripDistance: ptr(2.5), FareAmount: ptr(12.0), TipAmount: ptr(2.0)},
		{PickupAt: &p, DropoffAt: &d, PassengerCount: nil, TripDistance: ptr(2.5), FareAmount: ptr(12.0), TipAmount: ptr(2.0)},
		{PickupAt: &p, PassengerCount: ptr(1.0), TripDistance: ptr(2.5), FareAmount: ptr(12.0), TipAmount: ptr(2.0)},
	}
	out := app.MapTrips(raw)
	if len(out) != 1 {
		t.Fatalf("rows: %d", len(out))
	}
	if out[0].TripDurationMin != 1.5 || out[0].TripDistance != 2.5 {
		t.Fatalf("trip: %+v", out[0])
	}
}
