// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/meridianlab/meridian/internal/adapters/ephemeris"
	"github.com/meridianlab/meridian/internal/domain/chart"
)

// ChartsHandler handles natal chart registration and current chart queries.
type ChartsHandler struct {
	deps Dependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps Dependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// natalRequest mirrors the registration payload supplied by the UI.
type natalRequest struct {
	Name      string   `json:"name"`
	Date      string   `json:"date"` // YYYY-MM-DD, local
	Time      string   `json:"time"` // HH:MM, local
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	TZOffset  *float64 `json:"tz_offset_hours,omitempty"`
}

func (n natalRequest) validate() error {
	switch {
	case strings.TrimSpace(n.Date) == "":
		return errors.New("missing date")
	case strings.TrimSpace(n.Time) == "":
		return errors.New("missing time")
	case n.Latitude < -90 || n.Latitude > 90:
		return errors.New("latitude out of range")
	case n.Longitude < -180 || n.Longitude > 180:
		return errors.New("longitude out of range")
	}
	if _, err := time.Parse(chart.DateLayout, n.Date); err != nil {
		return errors.New("invalid date; must be YYYY-MM-DD")
	}
	if _, err := time.Parse(chart.TimeLayout, n.Time); err != nil {
		return errors.New("invalid time; must be HH:MM")
	}
	return nil
}

// HandleNatal handles POST /charts/natal requests: register birth data and
// persist the computed natal chart.
func (h *ChartsHandler) HandleNatal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req natalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	p, err := h.deps.RegisterProfile(r.Context(), req.Name, req.Date, req.Time, req.Latitude, req.Longitude, req.TZOffset)
	if err != nil {
		writeChartError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleProfile handles GET /profiles?id= requests: return a registered
// profile with its stored natal chart.
func (h *ChartsHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing id"))
		return
	}

	p, err := h.deps.Profile(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleCurrent handles GET /charts/current?lat=&lon=[&at=RFC3339].
func (h *ChartsHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	lat, err := parseFloatParam(r, "lat")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	lon, err := parseFloatParam(r, "lon")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	at := time.Now().UTC()
	if raw := r.URL.Query().Get("at"); raw != "" {
		at, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid at; must be RFC3339"))
			return
		}
	}

	ch, err := h.deps.CurrentChart(r.Context(), lat, lon, at)
	if err != nil {
		writeChartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

// writeChartError maps the chart failure taxonomy onto HTTP statuses.
func writeChartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ephemeris.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "provider_unavailable", err)
	case errors.Is(err, chart.ErrIncompletePositions):
		writeError(w, http.StatusBadGateway, "incomplete_positions", err)
	case errors.Is(err, chart.ErrInvalidBirthData):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

func parseFloatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.New("missing " + name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return v, nil
}
