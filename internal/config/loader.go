package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MERIDIAN_CONFIG is set
//  3. env (prefix MERIDIAN_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("MERIDIAN_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: MERIDIAN_ADDR, MERIDIAN_MAX_TRANSIT_EVENTS, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("MERIDIAN_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "meridian_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.EphemerisStrategy {
	case StrategyMeeus, StrategyMeanLongitude:
	default:
		return fmt.Errorf("%w: unknown ephemeris_strategy %q", ErrInvalidConfig, c.EphemerisStrategy)
	}
	if c.EphemerisTimeoutMS <= 0 {
		return fmt.Errorf("%w: ephemeris_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.MaxTransitEvents <= 0 {
		return fmt.Errorf("%w: max_transit_events must be positive", ErrInvalidConfig)
	}
	if c.ApplyingLookaheadMin <= 0 {
		return fmt.Errorf("%w: applying_lookahead_min must be positive", ErrInvalidConfig)
	}
	return nil
}
