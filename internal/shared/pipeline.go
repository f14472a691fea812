package shared

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vienna_etl/internal/domain"
)

// Pipeline names what a run processes. Fields missing from the YAML file keep
// their defaults.
type Pipeline struct {
	City          string            `yaml:"city"`
	Snapshots     []domain.Snapshot `yaml:"snapshots"`
	ListingsTable string            `yaml:"listings_table"`
	WeatherTable  string            `yaml:"weather_table"`
	TaxiTable     string            `yaml:"taxi_table"`
}

func DefaultPipeline() Pipeline {
	return Pipeline{
		City: "Vienna",
		Snapshots: []domain.Snapshot{
			{Date: "2024-03-22", File: "./data/input/vienna_mar_listings.csv"},
			{Date: "2024-06-15", File: "./data/input/vienna_jun_listings.csv"},
			{Date: "2024-09-11", File: "./data/input/vienna_sep_listings.csv"},
			{Date: "2024-12-12", File: "./data/input/vienna_dec_listings.csv"},
		},
		ListingsTable: "listings",
		WeatherTable:  "weather",
		TaxiTable:     "nyc_taxi_data",
	}
}

// LoadPipeline reads path; a missing file yields the defaults.
func LoadPipeline(path string) (Pipeline, error) {
	p := DefaultPipeline()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return Pipeline{}, fmt.Errorf("reading pipeline file: %w", err)
	}

	var f Pipeline
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Pipeline{}, fmt.Errorf("parsing pipeline file: %w", err)
	}
	if f.City != "" {
		p.City = f.City
	}
	if len(f.Snapshots) > 0 {
		p.Snapshots = f.Snapshots
	}
	if f.ListingsTable != "" {
		p.ListingsTable = f.ListingsTable
	}
	if f.WeatherTable != "" {
		p.WeatherTable = f.WeatherTable
	}
	if f.TaxiTable != "" {
		p.TaxiTable = f.TaxiTable
	}
	for i, s := range p.Snapshots {
		if _, err := domain.ParseDate(s.Date); err != nil {
			return Pipeline{}, fmt.Errorf("snapshot %d: %w", i, err)
		}
	}
	return p, nil
}

func (p Pipeline) Dates() []string {
	out := make([]string, 0, len(p.Snapshots))
	for _, s := range p.Snapshots {
		out = append(out, s.Date)
	}
	return out
}
