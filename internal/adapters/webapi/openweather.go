package webapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vienna_etl/internal/domain"
)

// OpenWeather queries the OpenWeather history API.
type OpenWeather struct {
	base string
	key  string
	r    *requester
}

var _ domain.WeatherClient = (*OpenWeather)(nil)

func NewOpenWeather(base, key, userAgent string, timeout time.Duration, rps int) (*OpenWeather, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	return &OpenWeather{
		base: strings.TrimRight(base, "/"),
		key:  key,
		r:    newRequester("openweather", userAgent, timeout, rps),
	}, nil
}

// History fetches hourly history with start and end both set to at.
func (o *OpenWeather) History(ctx context.Context, c domain.Coords, at time.Time) (map[string]any, error) {
	ts := strconv.FormatInt(at.Unix(), 10)
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.Lon, 'f', -1, 64))
	q.Set("type", "hour")
	q.Set("start", ts)
	q.Set("end", ts)
	q.Set("appid", o.key)

	var out map[string]any
	if err := o.r.getJSON(ctx, "history", o.base+"/data/2.5/history/city?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}
