// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// EntriesHandler handles user-created calendar entry registration. Entry
// ids registered here suppress matching computed transit events.
type EntriesHandler struct {
	deps Dependencies
}

// NewEntriesHandler creates a new calendar entries handler.
func NewEntriesHandler(deps Dependencies) *EntriesHandler {
	return &EntriesHandler{deps: deps}
}

type entryRequest struct {
	ID string `json:"id"`
}

type entryResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// HandleEntries handles POST and DELETE /calendar/entries requests.
func (h *EntriesHandler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing id"))
		return
	}

	switch r.Method {
	case http.MethodPost:
		if recorded := h.deps.RecordCalendarEntry(r.Context(), req.ID); !recorded {
			writeJSON(w, http.StatusOK, entryResponse{Status: "duplicate", Duplicate: true})
			return
		}
		writeJSON(w, http.StatusCreated, entryResponse{Status: "recorded"})
	case http.MethodDelete:
		h.deps.RemoveCalendarEntry(r.Context(), req.ID)
		writeJSON(w, http.StatusOK, entryResponse{Status: "removed"})
	default:
		http.NotFound(w, r)
	}
}
