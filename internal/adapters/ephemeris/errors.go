package ephemeris

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrUnavailable means the provider never reached Ready; no positions
	// can be served and chart computation should fail fast.
	ErrUnavailable = errors.New("ephemeris provider unavailable")

	// ErrBodyUnavailable means a single body's position could not be
	// computed while the provider itself is Ready. Callers decide whether
	// the body is structurally required.
	ErrBodyUnavailable = errors.New("body position unavailable")

	// ErrInitTimeout means initialization did not finish within the
	// configured window.
	ErrInitTimeout = errors.New("ephemeris initialization timed out")
)
