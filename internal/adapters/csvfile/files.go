package csvfile

import "vienna_etl/internal/domain"

// Files exposes the package functions as a domain.ListingFiles.
type Files struct{}

var _ domain.ListingFiles = Files{}

func (Files) ReadListings(path string) ([]domain.RawListing, error) { return ReadListingsFile(path) }

func (Files) WriteListings(path string, rows []domain.Listing) error { return WriteListings(path, rows) }

func (Files) WriteWeather(path string, rows []domain.Weather) error { return WriteWeather(path, rows) }
