// Package chart contains the chart model and the calculator that assembles
// natal and current charts from ephemeris positions and house cusps.
package chart

import (
	"fmt"
	"time"

	"github.com/meridianlab/meridian/internal/domain/astro"
	"github.com/meridianlab/meridian/internal/domain/body"
	"github.com/meridianlab/meridian/internal/domain/houses"
)

// CelestialPosition is an ecliptic placement: a zodiac sign, the degree
// into that sign, the absolute degree, and optionally the occupied house.
// Immutable once computed.
type CelestialPosition struct {
	Sign           astro.Sign `json:"sign"`
	DegreeInSign   float64    `json:"degree_in_sign"`
	AbsoluteDegree float64    `json:"absolute_degree"`
	House          int        `json:"house,omitempty"`
}

// PositionAt builds a CelestialPosition from an absolute ecliptic degree.
func PositionAt(absoluteDegree float64) CelestialPosition {
	sign, deg := astro.SignAt(absoluteDegree)
	return CelestialPosition{
		Sign:           sign,
		DegreeInSign:   deg,
		AbsoluteDegree: astro.NormalizeDegrees(absoluteDegree),
	}
}

// String renders the position for display, e.g. "17.25° Gemini". Numeric
// fields stay full precision in the model; formatting happens here only.
func (p CelestialPosition) String() string {
	return fmt.Sprintf("%.2f° %s", p.DegreeInSign, p.Sign)
}

// Chart aggregates the positions of the ten tracked bodies plus the
// Ascendant, Midheaven, and house cusps, with the metadata describing the
// instant and place it was cast for. A nil body pointer means that body's
// position was unavailable.
type Chart struct {
	Sun     *CelestialPosition `json:"sun,omitempty"`
	Moon    *CelestialPosition `json:"moon,omitempty"`
	Mercury *CelestialPosition `json:"mercury,omitempty"`
	Venus   *CelestialPosition `json:"venus,omitempty"`
	Mars    *CelestialPosition `json:"mars,omitempty"`
	Jupiter *CelestialPosition `json:"jupiter,omitempty"`
	Saturn  *CelestialPosition `json:"saturn,omitempty"`
	Uranus  *CelestialPosition `json:"uranus,omitempty"`
	Neptune *CelestialPosition `json:"neptune,omitempty"`
	Pluto   *CelestialPosition `json:"pluto,omitempty"`

	Ascendant   CelestialPosition   `json:"ascendant"`
	Midheaven   CelestialPosition   `json:"midheaven"`
	Cusps       []CelestialPosition `json:"cusps,omitempty"`
	HouseSystem houses.System       `json:"house_system"`

	// SourceTime is the UTC instant the chart is cast for.
	SourceTime    time.Time `json:"source_time"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	TZOffsetHours float64   `json:"tz_offset_hours"`
	ComputedAt    time.Time `json:"computed_at"`
}

// Position returns the chart's placement for a body, or nil when that
// body's position is absent.
func (c *Chart) Position(b body.Body) *CelestialPosition {
	switch b {
	case body.Sun:
		return c.Sun
	case body.Moon:
		return c.Moon
	case body.Mercury:
		return c.Mercury
	case body.Venus:
		return c.Venus
	case body.Mars:
		return c.Mars
	case body.Jupiter:
		return c.Jupiter
	case body.Saturn:
		return c.Saturn
	case body.Uranus:
		return c.Uranus
	case body.Neptune:
		return c.Neptune
	case body.Pluto:
		return c.Pluto
	default:
		return nil
	}
}

func (c *Chart) setPosition(b body.Body, p *CelestialPosition) {
	switch b {
	case body.Sun:
		c.Sun = p
	case body.Moon:
		c.Moon = p
	case body.Mercury:
		c.Mercury = p
	case body.Venus:
		c.Venus = p
	case body.Mars:
		c.Mars = p
	case body.Jupiter:
		c.Jupiter = p
	case body.Saturn:
		c.Saturn = p
	case body.Uranus:
		c.Uranus = p
	case body.Neptune:
		c.Neptune = p
	case body.Pluto:
		c.Pluto = p
	}
}

// Bodies returns the present body placements keyed by body, for generic
// iteration. Absent bodies are omitted.
func (c *Chart) Bodies() map[body.Body]*CelestialPosition {
	out := make(map[body.Body]*CelestialPosition, body.Count)
	for _, b := range body.All() {
		if p := c.Position(b); p != nil {
			out[b] = p
		}
	}
	return out
}

// Complete reports whether all ten body positions are present. Sun and
// Moon presence is enforced at calculation time; the remaining bodies may
// be individually absent without invalidating the chart.
func (c *Chart) Complete() bool {
	return len(c.Bodies()) == body.Count
}
