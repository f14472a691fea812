package webapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"vienna_etl/internal/domain"
)

// Photon resolves place names through the Photon (komoot) geocoder.
type Photon struct {
	base string
	r    *requester
}

var _ domain.Geocoder = (*Photon)(nil)

func NewPhoton(base, userAgent string, timeout time.Duration, rps int) *Photon {
	return &Photon{
		base: strings.TrimRight(base, "/"),
		r:    newRequester("photon", userAgent, timeout, rps),
	}
}

type featureCollection struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
		Properties struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"properties"`
	} `json:"features"`
}

// Geocode returns the coordinates of the best match for city.
// An empty result is reported as domain.ErrNoCoordinates.
func (p *Photon) Geocode(ctx context.Context, city string) (domain.Coords, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("limit", "1")

	var fc featureCollection
	if err := p.r.getJSON(ctx, "geocode", p.base+"/api/?"+q.Encode(), &fc); err != nil {
		return domain.Coords{}, err
	}
	if len(fc.Features) == 0 || len(fc.Features[0].Geometry.Coordinates) < 2 {
		return domain.Coords{}, fmt.Errorf("%q: %w", city, domain.ErrNoCoordinates)
	}
	c := fc.Features[0].Geometry.Coordinates
	return domain.Coords{Lat: c[1], Lon: c[0]}, nil
}
