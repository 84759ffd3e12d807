package ephemeris

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/elliptic"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/meridianlab/meridian/internal/domain/astro"
	"github.com/meridianlab/meridian/internal/domain/body"
)

// Default initialization timeout, matching the load-wait window the UI
// collaborators budget for before declaring the engine unavailable.
const defaultInitTimeout = 5 * time.Second

// vsopIndex maps tracked bodies to their VSOP87 planet index. Sun, Moon,
// and Pluto are computed from built-in series and need no data files.
var vsopIndex = map[body.Body]int{
	body.Mercury: planetposition.Mercury,
	body.Venus:   planetposition.Venus,
	body.Mars:    planetposition.Mars,
	body.Jupiter: planetposition.Jupiter,
	body.Saturn:  planetposition.Saturn,
	body.Uranus:  planetposition.Uranus,
	body.Neptune: planetposition.Neptune,
}

// MeeusProvider computes longitudes with the meeus astronomy library. The
// VSOP87 planetary data is loaded asynchronously on first use; Earth's data
// is structurally required (it anchors every geocentric reduction), while a
// planet whose data fails to load is reported individually unavailable.
type MeeusProvider struct {
	dataDir string
	timeout time.Duration

	once     sync.Once
	done     chan struct{}
	state    atomic.Int32
	timedOut atomic.Bool
	initErr  error

	earth   *planetposition.V87Planet
	planets map[body.Body]*planetposition.V87Planet
}

// NewMeeusProvider creates a provider with configuration options. No data
// is loaded until EnsureReady is called.
func NewMeeusProvider(opts ...Option) *MeeusProvider {
	p := &MeeusProvider{
		timeout: defaultInitTimeout,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EnsureReady triggers the data load on first call and blocks until it
// finishes, the context is done, or the timeout elapses. A timeout marks
// the provider Failed for the rest of the session.
func (p *MeeusProvider) EnsureReady(ctx context.Context) error {
	p.once.Do(func() { go p.load() })

	if p.timedOut.Load() {
		return fmt.Errorf("%w: %w", ErrUnavailable, ErrInitTimeout)
	}

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()
	select {
	case <-p.done:
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
	case <-timer.C:
		p.timedOut.Store(true)
		p.state.Store(int32(Failed))
		return fmt.Errorf("%w: %w", ErrUnavailable, ErrInitTimeout)
	}

	if p.initErr != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, p.initErr)
	}
	return nil
}

// State reports the current lifecycle state. A timeout is authoritative:
// once EnsureReady has given up, a belatedly finished load must not flip
// the provider back to Ready while Longitude keeps refusing queries.
func (p *MeeusProvider) State() State {
	if p.timedOut.Load() {
		return Failed
	}
	return State(p.state.Load())
}

func (p *MeeusProvider) load() {
	defer close(p.done)

	earth, err := p.loadPlanet(planetposition.Earth)
	if err != nil {
		p.initErr = fmt.Errorf("load earth data: %w", err)
		p.state.Store(int32(Failed))
		return
	}
	p.earth = earth

	p.planets = make(map[body.Body]*planetposition.V87Planet, len(vsopIndex))
	for b, idx := range vsopIndex {
		v, err := p.loadPlanet(idx)
		if err != nil {
			// Reported as ErrBodyUnavailable at query time.
			continue
		}
		p.planets[b] = v
	}
	p.state.Store(int32(Ready))
}

func (p *MeeusProvider) loadPlanet(idx int) (*planetposition.V87Planet, error) {
	if p.dataDir != "" {
		return planetposition.LoadPlanetPath(idx, p.dataDir)
	}
	return planetposition.LoadPlanet(idx)
}

// Longitude returns the geocentric apparent ecliptic longitude of a body.
func (p *MeeusProvider) Longitude(b body.Body, t time.Time) (float64, error) {
	if p.State() != Ready {
		return 0, ErrUnavailable
	}
	if !b.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrBodyUnavailable, b)
	}

	jd := astro.JulianDay(t)
	switch b {
	case body.Sun:
		lon := solar.ApparentLongitude(base.J2000Century(jd))
		return astro.NormalizeDegrees(lon.Deg()), nil
	case body.Moon:
		lon, _, _ := moonposition.Position(jd)
		return astro.NormalizeDegrees(lon.Deg()), nil
	case body.Pluto:
		ra, dec := pluto.Astrometric(jd, p.earth)
		return eclipticLongitude(jd, ra, dec), nil
	default:
		v, ok := p.planets[b]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrBodyUnavailable, b.Key())
		}
		ra, dec := elliptic.Position(v, p.earth, jd)
		return eclipticLongitude(jd, ra, dec), nil
	}
}

// eclipticLongitude reduces apparent equatorial coordinates to an ecliptic
// longitude in [0,360) degrees.
func eclipticLongitude(jd float64, ra unit.RA, dec unit.Angle) float64 {
	eps := nutation.MeanObliquity(jd)
	sinEps, cosEps := math.Sincos(eps.Rad())
	lon, _ := coord.EqToEcl(ra, dec, sinEps, cosEps)
	return astro.NormalizeDegrees(lon.Deg())
}
