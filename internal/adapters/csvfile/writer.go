package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"github.com/rs/zerolog/log"

	"vienna_etl/internal/domain"
)

// WriteListings replaces path with the listings, header first.
func WriteListings(path string, rows []domain.Listing) error {
	return write(path, rows)
}

// WriteWeather replaces path with the weather rows in the fixed ten-column order.
func WriteWeather(path string, rows []domain.Weather) error {
	return write(path, rows)
}

func write[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	if len(rows) == 0 {
		var zero T
		if err := enc.EncodeHeader(zero); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}
	for i := range rows {
		if err := enc.Encode(rows[i]); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}
	log.Info().Str("path", path).Int("rows", len(rows)).Msg("csv written")
	return f.Close()
}
