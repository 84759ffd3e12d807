// Package ephemeris provides geocentric ecliptic longitudes for the tracked
// bodies. The canonical implementation delegates to the meeus astronomy
// library (VSOP87 planetary theory); a mean-longitude implementation is kept
// as a documented lower-precision strategy that needs no data files.
package ephemeris

import (
	"context"
	"time"

	"github.com/meridianlab/meridian/internal/domain/body"
)

// State describes the provider lifecycle. A provider starts Uninitialized,
// moves to Ready once its data is loaded, and to Failed when loading fails
// or times out. Failed is terminal for the session.
type State int32

// Lifecycle states.
const (
	Uninitialized State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Provider computes geocentric ecliptic longitudes. EnsureReady must be
// awaited once before Longitude is called; it is idempotent and safe for
// concurrent use.
type Provider interface {
	// EnsureReady blocks until the provider is initialized, the context is
	// done, or the configured timeout elapses. After a timeout the provider
	// reports Failed and is not retried within the session.
	EnsureReady(ctx context.Context) error

	// State reports the current lifecycle state.
	State() State

	// Longitude returns the body's geocentric ecliptic longitude in
	// [0,360) degrees at the given instant.
	Longitude(b body.Body, t time.Time) (float64, error)
}
