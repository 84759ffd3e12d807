// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file/env.
// - External errors must be wrapped via this package's error helpers.
package config

// Ephemeris strategy names accepted in configuration.
const (
	StrategyMeeus         = "meeus"
	StrategyMeanLongitude = "meanlongitude"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// EphemerisStrategy selects the position backend: "meeus" (VSOP87
	// data, canonical) or "meanlongitude" (closed form, low precision).
	EphemerisStrategy string `koanf:"ephemeris_strategy"`

	// VSOP87Path is the directory holding VSOP87 data files for the meeus
	// strategy. Empty defers to the library's VSOP87 environment variable.
	VSOP87Path string `koanf:"vsop87_path"`

	// EphemerisTimeoutMS bounds how long chart calculation waits for the
	// ephemeris backend to initialize before failing fast.
	EphemerisTimeoutMS int `koanf:"ephemeris_timeout_ms"`

	// MaxTransitEvents caps the number of events returned per transit
	// query when the caller does not ask for fewer.
	MaxTransitEvents int `koanf:"max_transit_events"`

	// EntryRegistrySize bounds the calendar-entry id registry used to
	// de-duplicate transit events against user-created entries.
	EntryRegistrySize int `koanf:"entry_registry_size"`

	// ApplyingLookaheadMin is the sampling offset, in minutes, used to
	// decide whether an aspect is applying or separating.
	ApplyingLookaheadMin int `koanf:"applying_lookahead_min"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		EphemerisStrategy:    StrategyMeeus,
		VSOP87Path:           "",
		EphemerisTimeoutMS:   5000,
		MaxTransitEvents:     100,
		EntryRegistrySize:    10_000,
		ApplyingLookaheadMin: 60,
	}
}
