package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jszwec/csvutil"

	"vienna_etl/internal/domain"
)

// listingRecord picks the kept columns out of an Inside Airbnb listings file.
type listingRecord struct {
	ID              int64    `csv:"id"`
	Name            string   `csv:"name"`
	RoomType        string   `csv:"room_type"`
	Accommodates    *int     `csv:"accommodates"`
	Price           string   `csv:"price"`
	Bedrooms        *float64 `csv:"bedrooms"`
	Beds            *float64 `csv:"beds"`
	NumberOfReviews *int     `csv:"number_of_reviews"`
}

// ReadListingsFile opens path and decodes it with ReadListings.
func ReadListingsFile(path string) ([]domain.RawListing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open listings: %w", err)
	}
	defer f.Close()
	out, err := ReadListings(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// ReadListings decodes every row. A file lacking one of the kept columns is an error.
func ReadListings(r io.Reader) ([]domain.RawListing, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false
	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty listings file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	dec.DisallowMissingColumns = true

	var out []domain.RawListing
	for line := 2; ; line++ {
		var rec listingRecord
		err := dec.Decode(&rec)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, domain.RawListing{
			ID:              rec.ID,
			Name:            rec.Name,
			RoomType:        rec.RoomType,
			Accommodates:    rec.Accommodates,
			Price:           rec.Price,
			Bedrooms:        rec.Bedrooms,
			Beds:            rec.Beds,
			NumberOfReviews: rec.NumberOfReviews,
			Fingerprint:     strings.Join(dec.Record(), "\x1f"),
		})
	}
	return out, nil
}
