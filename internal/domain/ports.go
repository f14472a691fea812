package domain

import (
	"context"
	"time"
)

type Geocoder interface {
	Geocode(ctx context.Context, city string) (Coords, error)
}

type WeatherClient interface {
	// History returns the hourly history payload for the hour starting at at.
	History(ctx context.Context, c Coords, at time.Time) (map[string]any, error)
}

// Store replaces whole tables. Every Replace drops previous contents.
type Store interface {
	ReplaceListings(ctx context.Context, table string, rows []Listing) error
	ReplaceWeather(ctx context.Context, table string, rows []Weather) error
	ReplaceTrips(ctx context.Context, table string, rows []Trip) error
	Close() error
}

type Reader interface {
	ListListings(ctx context.Context, q ListingsQuery) ([]Listing, error)
	ListWeather(ctx context.Context, q WeatherQuery) ([]Weather, error)
	PreviewTrips(ctx context.Context, table string, n int) ([]Trip, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	DelPrefix(ctx context.Context, prefix string) error
}

type ListingsQuery struct {
	Table string
	Date  *Date
	Limit int
}

type WeatherQuery struct {
	Table string
	City  *string
	Limit int
}

type ListingFiles interface {
	ReadListings(path string) ([]RawListing, error)
	WriteListings(path string, rows []Listing) error
	WriteWeather(path string, rows []Weather) error
}

type Downloader interface {
	Download(ctx context.Context, url, dest string) (int64, error)
}

type TripReader interface {
	ReadTrips(ctx context.Context, path string) ([]RawTrip, error)
}
