package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"vienna_etl/internal/app"
	"vienna_etl/internal/domain"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type page[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/listings", h.listListings)
	s.mux.Get("/v1/weather", h.listWeather)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func parseLimit(r *http.Request) (int, bool) {
	ls := r.URL.Query().Get("limit")
	if ls == "" {
		return defaultLimit, true
	}
	l, err := strconv.Atoi(ls)
	if err != nil || l <= 0 || l > maxLimit {
		return 0, false
	}
	return l, true
}

func (h *Handlers) listListings(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 1000")
		return
	}
	var date *domain.Date
	if ds := r.URL.Query().Get("date"); ds != "" {
		d, err := domain.ParseDate(ds)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid date", "date must be YYYY-MM-DD")
			return
		}
		date = &d
	}
	rows, err := h.Q.ListListings(r.Context(), date, limit)
	if err != nil {
		log.Error().Err(err).Msg("list listings failed")
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "listings are not loaded")
		return
	}
	writeJSON(w, r, page[domain.Listing]{Items: rows, Count: len(rows)})
}

func (h *Handlers) listWeather(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 1000")
		return
	}
	var city *string
	if c := strings.TrimSpace(r.URL.Query().Get("city")); c != "" {
		city = &c
	}
	rows, err := h.Q.ListWeather(r.Context(), city, limit)
	if err != nil {
		log.Error().Err(err).Msg("list weather failed")
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "weather is not loaded")
		return
	}
	writeJSON(w, r, page[domain.Weather]{Items: rows, Count: len(rows)})
}
