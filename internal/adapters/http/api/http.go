// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/meridianlab/meridian/internal/adapters/repository"
	"github.com/meridianlab/meridian/internal/domain/chart"
	"github.com/meridianlab/meridian/internal/domain/transit"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// RegisterProfile computes and persists a natal chart from birth data.
	RegisterProfile(ctx context.Context, name, date, clock string, latitude, longitude float64, tzOffset *float64) (repository.Profile, error)

	// Profile returns a stored profile by id.
	Profile(ctx context.Context, id string) (repository.Profile, error)

	// CurrentChart computes a chart for an instant without persisting it.
	CurrentChart(ctx context.Context, latitude, longitude float64, at time.Time) (*chart.Chart, error)

	// TransitEvents returns the ranked transit events for a profile and
	// calendar date, already filtered against user calendar entries.
	TransitEvents(ctx context.Context, profileID string, date time.Time, limit int) ([]transit.Event, error)

	// RecordCalendarEntry registers a user-created calendar entry id.
	// Returns false when the id was already recorded.
	RecordCalendarEntry(ctx context.Context, id string) bool

	// RemoveCalendarEntry drops a user-created calendar entry id.
	RemoveCalendarEntry(ctx context.Context, id string)
}

// Server wires HTTP routes for the chart and transit API.
type Server struct {
	chartsHandler   *ChartsHandler
	transitsHandler *TransitsHandler
	entriesHandler  *EntriesHandler
	statsHandler    *StatsHandler
	healthHandler   *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		chartsHandler:   NewChartsHandler(deps),
		transitsHandler: NewTransitsHandler(deps),
		entriesHandler:  NewEntriesHandler(deps),
		statsHandler:    NewStatsHandler(statsProvider),
		healthHandler:   NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/profiles", MetricsMiddleware(s.chartsHandler.HandleProfile, "profiles"))
	mux.HandleFunc("/charts/natal", MetricsMiddleware(s.chartsHandler.HandleNatal, "charts_natal"))
	mux.HandleFunc("/charts/current", MetricsMiddleware(s.chartsHandler.HandleCurrent, "charts_current"))
	mux.HandleFunc("/transits", MetricsMiddleware(s.transitsHandler.HandleGetTransits, "transits"))
	mux.HandleFunc("/calendar/entries", MetricsMiddleware(s.entriesHandler.HandleEntries, "calendar_entries"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404
// without coupling to every package's sentinels.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, repository.ErrNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
