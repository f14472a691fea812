package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"vienna_etl/internal/domain"
)

type Options struct {
	City          string
	Snapshots     []domain.Snapshot
	ListingsTable string
	WeatherTable  string
	OutputDir     string
}

// Pipeline is the Vienna run: listing snapshots first, then weather for the
// snapshot dates.
type Pipeline struct {
	opt     Options
	files   domain.ListingFiles
	weather *WeatherService
	loader  *Loader
}

func NewPipeline(opt Options, files domain.ListingFiles, weather *WeatherService, loader *Loader) *Pipeline {
	return &Pipeline{opt: opt, files: files, weather: weather, loader: loader}
}

func (p *Pipeline) dates() []string {
	out := make([]string, 0, len(p.opt.Snapshots))
	for _, s := range p.opt.Snapshots {
		out = append(out, s.Date)
	}
	return out
}

func (p *Pipeline) ListingsCSV() string {
	return filepath.Join(p.opt.OutputDir, strings.ToLower(p.opt.City)+"_listings.csv")
}

func (p *Pipeline) WeatherCSV() string {
	return filepath.Join(p.opt.OutputDir, strings.ToLower(p.opt.City)+"_weather.csv")
}

// TransformListing reads one snapshot file and cleans it.
func (p *Pipeline) TransformListing(path, date string) ([]domain.Listing, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	raw, err := p.files.ReadListings(path)
	if err != nil {
		return nil, err
	}
	return CleanListings(raw, d), nil
}

// RunListings concatenates every snapshot in configured order, writes the CSV
// and replaces the listings table. Unreadable input files stop the stage.
func (p *Pipeline) RunListings(ctx context.Context) error {
	var all []domain.Listing
	for _, s := range p.opt.Snapshots {
		rows, err := p.TransformListing(s.File, s.Date)
		if err != nil {
			return fmt.Errorf("listings snapshot %s: %w", s.Date, err)
		}
		log.Info().Str("file", s.File).Str("date", s.Date).Int("rows", len(rows)).Msg("listing snapshot transformed")
		all = append(all, rows...)
	}
	if err := p.files.WriteListings(p.ListingsCSV(), all); err != nil {
		return err
	}
	p.loader.LoadListings(ctx, p.opt.ListingsTable, all)
	return nil
}

// RunWeather fetches, maps, writes the CSV and replaces the weather table.
// Dates that fail are skipped; only a CSV write failure is returned.
func (p *Pipeline) RunWeather(ctx context.Context) error {
	rows := p.weather.Process(ctx, p.dates(), p.opt.City)
	if err := p.files.WriteWeather(p.WeatherCSV(), rows); err != nil {
		return err
	}
	log.Info().Str("path", p.WeatherCSV()).Int("rows", len(rows)).Msg("weather data saved")
	p.loader.LoadWeather(ctx, p.opt.WeatherTable, rows)
	return nil
}

func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.RunListings(ctx); err != nil {
		return err
	}
	return p.RunWeather(ctx)
}
