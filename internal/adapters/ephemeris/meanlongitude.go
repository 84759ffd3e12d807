package ephemeris

import (
	"context"
	"fmt"
	"time"

	"github.com/meridianlab/meridian/internal/domain/astro"
	"github.com/meridianlab/meridian/internal/domain/body"
)

// meanElements holds a linear mean-longitude model: longitude at J2000 and
// mean daily motion, both in degrees.
type meanElements struct {
	l0   float64
	rate float64
}

// Mean orbital longitudes at J2000 for the outer bodies. Sun and Moon get
// low-order perturbation terms below; the planets stay linear, which keeps
// this strategy within a few degrees of the true geocentric position for
// the slow movers and makes it unsuitable for precision work.
var meanTable = map[body.Body]meanElements{
	body.Mercury: {252.251, 4.092385},
	body.Venus:   {181.980, 1.602130},
	body.Mars:    {355.433, 0.524033},
	body.Jupiter: {34.351, 0.083056},
	body.Saturn:  {50.077, 0.033371},
	body.Uranus:  {314.055, 0.011698},
	body.Neptune: {304.349, 0.006020},
	body.Pluto:   {238.958, 0.003968},
}

// MeanLongitudeProvider is the lower-precision ephemeris strategy: closed
// form mean-longitude series with no external data. It is always Ready and
// fully deterministic, which the test suites rely on. Kept as a documented
// alternate to the meeus-backed provider, not the primary implementation.
type MeanLongitudeProvider struct{}

// NewMeanLongitudeProvider creates the mean-longitude strategy.
func NewMeanLongitudeProvider() *MeanLongitudeProvider {
	return &MeanLongitudeProvider{}
}

// EnsureReady always succeeds; there is nothing to load.
func (p *MeanLongitudeProvider) EnsureReady(_ context.Context) error {
	return nil
}

// State always reports Ready.
func (p *MeanLongitudeProvider) State() State {
	return Ready
}

// Longitude returns the body's approximate geocentric ecliptic longitude.
func (p *MeanLongitudeProvider) Longitude(b body.Body, t time.Time) (float64, error) {
	d := astro.JulianDay(t) - astro.J2000

	switch b {
	case body.Sun:
		// Mean longitude corrected by the equation of center.
		l := 280.460 + 0.9856474*d
		g := 357.528 + 0.9856003*d
		lon := l + 1.915*astro.SinDeg(g) + 0.020*astro.SinDeg(2*g)
		return astro.NormalizeDegrees(lon), nil
	case body.Moon:
		// Mean longitude plus the principal elliptic term (evection and
		// smaller terms omitted; good to about a degree).
		l := 218.316 + 13.176396*d
		m := 134.963 + 13.064993*d
		lon := l + 6.289*astro.SinDeg(m)
		return astro.NormalizeDegrees(lon), nil
	default:
		el, ok := meanTable[b]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrBodyUnavailable, b)
		}
		return astro.NormalizeDegrees(el.l0 + el.rate*d), nil
	}
}
