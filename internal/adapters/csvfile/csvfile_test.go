package csvfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jszwec/csvutil"

	"vienna_etl/internal/adapters/csvfile"
	"vienna_etl/internal/domain"
)

const listingsCSV = `id,listing_url,name,host_id,room_type,accommodates,bedrooms,beds,price,number_of_reviews
15883,https://a/15883,"Hauptbahnhof, bright room",62142,Private room,3,1,2,"$1,105.00",14
38768,https://a/38768,central cityapartment,166283,Entire home/apt,5,,3,$71.00,0
15883,https://a/15883,"Hauptbahnhof, bright room",62142,Private room,3,1,2,"$1,105.00",14
`

// readWeatherFile decodes a file produced by WriteWeather.
func readWeatherFile(path string) ([]domain.Weather, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []domain.Weather
	err = csvutil.Unmarshal(b, &out)
	return out, err
}

func TestReadListings(t *testing.T) {
	rows, err := csvfile.ReadListings(strings.NewReader(listingsCSV))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	r := rows[0]
	if r.ID != 15883 || r.Name != "Hauptbahnhof, bright room" || r.RoomType != "Private room" ||
		r.Accommodates == nil || *r.Accommodates != 3 || r.Price != "$1,105.00" ||
		r.NumberOfReviews == nil || *r.NumberOfReviews != 14 {
		t.Fatalf("unexpected row: %+v", r)
	}
	if r.Bedrooms == nil || *r.Bedrooms != 1 || r.Beds == nil || *r.Beds != 2 {
		t.Fatalf("unexpected rooms: %+v", r)
	}
	if rows[1].Bedrooms != nil {
		t.Fatalf("empty bedrooms should be nil")
	}
	if rows[0].Fingerprint != rows[2].Fingerprint || rows[0].Fingerprint == rows[1].Fingerprint {
		t.Fatalf("fingerprints do not track full rows")
	}
}

func TestReadListings_EmptyCountCells(t *testing.T) {
	const in = `id,listing_url,name,room_type,accommodates,price,bedrooms,beds,number_of_reviews
1,https://a/1,Loft,Entire home/apt,,$1,2,,
2,https://a/2,Room,Private room,2,$40.00,1,1,0
`
	rows, err := csvfile.ReadListings(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Accommodates != nil || rows[0].NumberOfReviews != nil || rows[0].Beds != nil {
		t.Fatalf("empty cells should be nil: %+v", rows[0])
	}
	if rows[1].NumberOfReviews == nil || *rows[1].NumberOfReviews != 0 || *rows[1].Accommodates != 2 {
		t.Fatalf("zero counts must survive: %+v", rows[1])
	}
}

func TestReadListings_MissingColumn(t *testing.T) {
	if _, err := csvfile.ReadListings(strings.NewReader("id,name\n1,x\n")); err == nil {
		t.Fatalf("expected error for missing columns")
	}
	if _, err := csvfile.ReadListings(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestReadListingsFile_Missing(t *testing.T) {
	if _, err := csvfile.ReadListingsFile(filepath.Join(t.TempDir(), "nope.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}

func TestWriteWeather_ColumnOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "vienna_weather.csv")
	rows := []domain.Weather{{
		Date: domain.MustDate("2024-03-22"), Temp: 7.5, FeelsLike: 5.25, Pressure: 1013, Humidity: 81,
		TempMin: 6, TempMax: 9, WindSpeed: 3.6, Clouds: 75, Rain: 0, City: "Vienna",
	}}
	if err := csvfile.WriteWeather(path, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if lines[0] != "date,temp,feels_like,pressure,humidity,temp_min,temp_max,wind_speed,clouds,rain" {
		t.Fatalf("header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2024-03-22,7.5,5.25,1013,81,") || !strings.HasSuffix(lines[1], ",0") {
		t.Fatalf("row: %s", lines[1])
	}

	back, err := readWeatherFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(back) != 1 || back[0].Date.String() != "2024-03-22" || back[0].WindSpeed != 3.6 {
		t.Fatalf("unexpected read back: %+v", back)
	}
}

func TestWriteListings_EmptyWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vienna_listings.csv")
	if err := csvfile.WriteListings(path, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, _ := os.ReadFile(path)
	if strings.TrimSpace(string(b)) != "id,name,room_type,accommodates,price,bedrooms,beds,number_of_reviews,date" {
		t.Fatalf("header: %q", b)
	}
}
