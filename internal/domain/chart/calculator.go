package chart

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/meridianlab/meridian/internal/adapters/ephemeris"
	"github.com/meridianlab/meridian/internal/domain/body"
	"github.com/meridianlab/meridian/internal/domain/houses"
	"github.com/meridianlab/meridian/pkg/logger"
)

// Input formats for natal chart requests.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Degenerate house placeholders used when house calculation fails: 0°
// Aries rising, 0° Capricorn culminating, no cusps.
const (
	fallbackAscendant = 0.0
	fallbackMidheaven = 270.0
)

// Calculator builds charts from an injected ephemeris provider. It holds
// no mutable state; concurrent calculations are independent.
type Calculator struct {
	provider ephemeris.Provider
	log      logger.Logger
}

// CalculatorOption applies a configuration option to the Calculator.
type CalculatorOption func(*Calculator)

// WithLogger sets a custom logger for the calculator.
func WithLogger(log logger.Logger) CalculatorOption {
	return func(c *Calculator) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCalculator creates a Calculator around an ephemeris provider.
func NewCalculator(provider ephemeris.Provider, opts ...CalculatorOption) *Calculator {
	c := &Calculator{
		provider: provider,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EstimateTZOffset derives a rough timezone offset in hours from a
// geographic longitude, one hour per 15°. Used only when the caller's
// timezone collaborator supplied nothing better.
func EstimateTZOffset(longitude float64) float64 {
	return math.Round(longitude / 15)
}

// Natal builds a birth chart from local date and time strings plus the
// birth location. tzOffset is the timezone's offset from UTC in hours; nil
// selects the longitude-based estimate.
func (c *Calculator) Natal(ctx context.Context, date, clock string, latitude, longitude float64, tzOffset *float64) (*Chart, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q: %w", ErrInvalidBirthData, date, err)
	}
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return nil, fmt.Errorf("%w: time %q: %w", ErrInvalidBirthData, clock, err)
	}
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("%w: latitude %v", ErrInvalidBirthData, latitude)
	}

	offset := EstimateTZOffset(longitude)
	if tzOffset != nil {
		offset = *tzOffset
	}

	local := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	instant := local.Add(-time.Duration(offset * float64(time.Hour)))

	ch, err := c.At(ctx, instant, latitude, longitude)
	if err != nil {
		return nil, err
	}
	ch.TZOffsetHours = offset
	return ch, nil
}

// At builds a chart for an arbitrary UTC instant and location. Sun or Moon
// unavailability is fatal; any other body is dropped from the chart with a
// warning. House calculation failure degrades to the placeholder layout
// instead of failing the chart.
func (c *Calculator) At(ctx context.Context, instant time.Time, latitude, longitude float64) (*Chart, error) {
	if err := c.provider.EnsureReady(ctx); err != nil {
		return nil, err
	}

	instant = instant.UTC()
	ch := &Chart{
		SourceTime: instant,
		Latitude:   latitude,
		Longitude:  longitude,
		ComputedAt: time.Now().UTC(),
	}

	for _, b := range body.All() {
		lon, err := c.provider.Longitude(b, instant)
		if err != nil {
			if b == body.Sun || b == body.Moon {
				return nil, fmt.Errorf("%w: %s: %w", ErrIncompletePositions, b.Key(), err)
			}
			c.log.Warn(ctx, "body position unavailable",
				logger.String("body", b.Key()),
				logger.Error(err))
			continue
		}
		p := PositionAt(lon)
		ch.setPosition(b, &p)
	}

	wheel, err := houses.Calculate(instant, latitude, longitude)
	if err != nil {
		c.log.Warn(ctx, "house calculation failed; using placeholder angles",
			logger.Float64("latitude", latitude),
			logger.Error(err))
		ch.Ascendant = PositionAt(fallbackAscendant)
		ch.Midheaven = PositionAt(fallbackMidheaven)
		ch.HouseSystem = houses.Unknown
		return ch, nil
	}

	ch.Ascendant = PositionAt(wheel.Ascendant)
	ch.Ascendant.House = 1
	ch.Midheaven = PositionAt(wheel.Midheaven)
	ch.Midheaven.House = 10
	ch.HouseSystem = wheel.System

	ch.Cusps = make([]CelestialPosition, len(wheel.Cusps))
	for i, cusp := range wheel.Cusps {
		ch.Cusps[i] = PositionAt(cusp)
		ch.Cusps[i].House = i + 1
	}

	for _, p := range ch.Bodies() {
		p.House = houses.HouseOf(p.AbsoluteDegree, wheel.Cusps)
	}

	return ch, nil
}
