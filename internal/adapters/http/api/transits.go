// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/meridianlab/meridian/internal/adapters/ephemeris"
	"github.com/meridianlab/meridian/internal/domain/chart"
)

// TransitsHandler handles transit event queries.
type TransitsHandler struct {
	deps Dependencies
}

// NewTransitsHandler creates a new transits handler.
func NewTransitsHandler(deps Dependencies) *TransitsHandler {
	return &TransitsHandler{deps: deps}
}

// HandleGetTransits handles GET /transits?profile=&date=YYYY-MM-DD[&limit=].
// A profile without a stored natal chart yields an empty list, not an
// error; the calendar UI renders those days as plain days.
func (h *TransitsHandler) HandleGetTransits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	profileID := r.URL.Query().Get("profile")
	if profileID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing profile"))
		return
	}
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing date"))
		return
	}
	date, err := time.Parse(chart.DateLayout, rawDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid date; must be YYYY-MM-DD"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid limit"))
			return
		}
	}

	events, err := h.deps.TransitEvents(r.Context(), profileID, date, limit)
	if err != nil {
		if errors.Is(err, ephemeris.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "provider_unavailable", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
