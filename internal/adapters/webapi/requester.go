// Package webapi holds the outbound HTTP clients: Photon geocoding,
// OpenWeather history and plain file downloads.
package webapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"vienna_etl/internal/adapters/observability"
	"vienna_etl/internal/domain"
)

// requester issues single GETs. Failures are returned to the caller, never retried.
type requester struct {
	service string
	ua      string
	hc      *http.Client
	rl      *rate.Limiter
}

func newRequester(service, ua string, timeout time.Duration, rps int) *requester {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if rps <= 0 {
		rps = 1
	}
	return &requester{
		service: service,
		ua:      ua,
		hc:      &http.Client{Timeout: timeout},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// do performs the GET and hands a 200 response to fn. Other statuses map to
// domain errors.
func (r *requester) do(ctx context.Context, endpoint, url, accept string, fn func(io.Reader) error) error {
	if err := r.rl.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if r.ua != "" {
		req.Header.Set("User-Agent", r.ua)
	}

	start := time.Now()
	resp, err := r.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(r.service, endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s %s: %w", r.service, endpoint, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal(r.service, endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		return fn(resp.Body)
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", r.service, endpoint, domain.ErrNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", r.service, endpoint, domain.ErrUnauthorized)
	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: %w", r.service, endpoint,
			&domain.StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))})
	}
}

func (r *requester) getJSON(ctx context.Context, endpoint, url string, out any) error {
	return r.do(ctx, endpoint, url, "application/json", func(body io.Reader) error {
		if err := json.NewDecoder(body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode: %w", r.service, endpoint, err)
		}
		return nil
	})
}
