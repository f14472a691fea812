package app

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"vienna_etl/internal/domain"
)

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps; numeric parts index slices.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			cur = node[i]
		default:
			return nil
		}
	}
	return cur
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }

// KelvinToCelsius converts and rounds to two decimals.
func KelvinToCelsius(k float64) float64 { return round2(k - 273.15) }

/********** weather mapper **********/

// MapWeather turns history payloads into rows, one per payload, in input order.
// Payloads without hourly entries are dropped. rain.1h defaults to 0.
func MapWeather(city string, in []domain.DatedPayload) []domain.Weather {
	out := make([]domain.Weather, 0, len(in))
	for _, dp := range in {
		list, _ := lookupAny(dp.Payload, "list").([]any)
		if len(list) == 0 {
			log.Warn().Str("date", dp.Date).Msg("weather payload has no hourly entries")
			continue
		}
		entry, ok := list[0].(map[string]any)
		if !ok {
			log.Warn().Str("date", dp.Date).Msg("weather entry is not an object")
			continue
		}
		d, err := domain.ParseDate(dp.Date)
		if err != nil {
			log.Warn().Err(err).Msg("weather payload with bad date")
			continue
		}

		var missing []string
		num := func(path string) float64 {
			if f := getFloatFlexible(entry, path); f != nil {
				return *f
			}
			missing = append(missing, path)
			return 0
		}
		w := domain.Weather{
			Date:      d,
			Temp:      KelvinToCelsius(num("main.temp")),
			FeelsLike: KelvinToCelsius(num("main.feels_like")),
			Pressure:  num("main.pressure"),
			Humidity:  num("main.humidity"),
			TempMin:   KelvinToCelsius(num("main.temp_min")),
			TempMax:   KelvinToCelsius(num("main.temp_max")),
			WindSpeed: num("wind.speed"),
			Clouds:    num("clouds.all"),
			City:      city,
		}
		if r := getFloatFlexible(entry, "rain.1h"); r != nil {
			w.Rain = *r
		}
		if len(missing) > 0 {
			log.Warn().Str("date", dp.Date).Strs("fields", missing).Msg("weather entry incomplete")
			continue
		}
		out = append(out, w)
	}
	return out
}

/********** listing mapper **********/

var priceRegex = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// parsePrice reads strings like "$1,234.00". Empty or unparseable prices are nil.
func parsePrice(raw string) *float64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	m := priceRegex.FindString(s)
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &f
}

// CleanListings drops exact duplicate source rows (first one wins), keeps the
// listing columns and stamps every row with date.
func CleanListings(raw []domain.RawListing, date domain.Date) []domain.Listing {
	seen := make(map[string]struct{}, len(raw))
	out := make([]domain.Listing, 0, len(raw))
	for _, r := range raw {
		if _, dup := seen[r.Fingerprint]; dup {
			continue
		}
		seen[r.Fingerprint] = struct{}{}
		out = append(out, domain.Listing{
			ID:              r.ID,
			Name:            r.Name,
			RoomType:        r.RoomType,
			Accommodates:    r.Accommodates,
			Price:           parsePrice(r.Price),
			Bedrooms:        r.Bedrooms,
			Beds:            r.Beds,
			NumberOfReviews: r.NumberOfReviews,
			Date:            date,
		})
	}
	if n := len(raw) - len(out); n > 0 {
		log.Debug().Int("duplicates", n).Str("date", date.String()).Msg("dropped duplicate listing rows")
	}
	return out
}

/********** trip mapper **********/

// MapTrips drops rows with any null column and derives the trip duration in minutes.
func MapTrips(raw []domain.RawTrip) []domain.Trip {
	out := make([]domain.Trip, 0, len(raw))
	for _, r := range raw {
		if r.PickupAt == nil || r.DropoffAt == nil || r.PassengerCount == nil ||
			r.TripDistance == nil || r.FareAmount == nil || r.TipAmount == nil {
			continue
		}
		out = append(out, domain.Trip{
			PickupAt:        *r.PickupAt,
			DropoffAt:       *r.DropoffAt,
			PassengerCount:  *r.PassengerCount,
			TripDistance:    *r.TripDistance,
			FareAmount:      *r.FareAmount,
			TipAmount:       *r.TipAmount,
			TripDurationMin: r.DropoffAt.Sub(*r.PickupAt).Seconds() / 60,
		})
	}
	return out
}
