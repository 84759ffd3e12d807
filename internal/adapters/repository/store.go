// Package repository defines the natal chart store interface and errors.
// The persisted representation is plain nested JSON-compatible data; all
// numeric position fields round-trip exactly.
package repository

import (
	"context"
	"time"

	"github.com/meridianlab/meridian/internal/domain/chart"
)

// Profile is one registered user's birth data together with the natal
// chart computed from it at registration time.
type Profile struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	BirthDate     string       `json:"birth_date"` // YYYY-MM-DD
	BirthTime     string       `json:"birth_time"` // HH:MM local
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	TZOffsetHours float64      `json:"tz_offset_hours"`
	Chart         *chart.Chart `json:"chart"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Store provides read/write access to registered profiles. The natal chart
// is computed once by the calculator and only ever read afterwards.
type Store interface {
	// Save persists a profile, assigning an id when the profile has none.
	// Returns the stored profile.
	Save(ctx context.Context, p Profile) (Profile, error)

	// Get returns a profile by id. Returns ErrNotFound if unknown.
	Get(ctx context.Context, id string) (Profile, error)

	// Delete removes a profile by id. Returns ErrNotFound if unknown.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored profiles.
	Count(ctx context.Context) int
}
