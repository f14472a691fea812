package app

import (
	"context"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"vienna_etl/internal/adapters/observability"
	"vienna_etl/internal/domain"
)

type TaxiOptions struct {
	URL      string
	File     string
	Table    string
	Download bool // false reuses File as is
	Preview  int
}

type TaxiService struct {
	dl     domain.Downloader
	rd     domain.TripReader
	loader *Loader
}

func NewTaxiService(dl domain.Downloader, rd domain.TripReader, loader *Loader) *TaxiService {
	return &TaxiService{dl: dl, rd: rd, loader: loader}
}

// Extract downloads url into file. A failed download is logged and the previous
// file, if any, is left in place.
func (t *TaxiService) Extract(ctx context.Context, url, file string) {
	n, err := t.dl.Download(ctx, url, file)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to download data")
		observability.ObserveSkip("download")
		return
	}
	log.Info().Str("file", file).Str("size", humanize.Bytes(uint64(n))).Msg("downloaded")
}

// Transform reads file and keeps the complete rows. Read errors are returned.
func (t *TaxiService) Transform(ctx context.Context, file string) ([]domain.Trip, error) {
	raw, err := t.rd.ReadTrips(ctx, file)
	if err != nil {
		return nil, err
	}
	trips := MapTrips(raw)
	log.Info().Int("read", len(raw)).Int("kept", len(trips)).Msg("trips transformed")
	return trips, nil
}

func (t *TaxiService) Run(ctx context.Context, opt TaxiOptions) error {
	if opt.Download {
		t.Extract(ctx, opt.URL, opt.File)
	} else if _, err := os.Stat(opt.File); err != nil {
		return err
	}
	trips, err := t.Transform(ctx, opt.File)
	if err != nil {
		return err
	}
	if t.loader.LoadTrips(ctx, opt.Table, trips) && opt.Preview > 0 {
		t.loader.Preview(ctx, opt.Table, opt.Preview)
	}
	return nil
}
