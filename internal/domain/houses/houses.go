// Package houses computes Ascendant, Midheaven, and the twelve house cusps
// for an instant and geographic location. Placidus is the primary system;
// Equal House is the fallback at latitudes where the Placidus semi-arc
// construction breaks down.
package houses

import (
	"fmt"
	"math"
	"time"

	"github.com/meridianlab/meridian/internal/domain/astro"
)

// System names the house division method that produced a wheel.
type System string

// Recognized house systems.
const (
	Placidus System = "Placidus"
	Equal    System = "Equal"
	Unknown  System = "Unknown"
)

// PolarLatitudeLimit is the absolute latitude beyond which the Placidus
// semi-arc argument leaves its domain and Equal House takes over.
const PolarLatitudeLimit = 66.5

const houseCount = 12

// Wheel holds the computed angles and cusps. Cusps[i] is the cusp of house
// i+1, an absolute ecliptic degree in [0,360).
type Wheel struct {
	Ascendant float64
	Midheaven float64
	Cusps     [houseCount]float64
	System    System
}

// Calculate builds the house wheel for an instant and observer location.
// Longitude is east-positive degrees.
func Calculate(t time.Time, latitude, longitude float64) (*Wheel, error) {
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("%w: %v", ErrLatitudeRange, latitude)
	}

	jd := astro.JulianDay(t)
	eps := astro.Obliquity(jd)
	lst := astro.LocalSiderealTime(t, longitude)

	// Right ascension of the Midheaven, degrees.
	ramc := lst * 15

	mc := raToEcliptic(ramc, eps)

	asc := astro.NormalizeDegrees(astro.Atan2Deg(
		-astro.CosDeg(ramc),
		astro.SinDeg(ramc)*astro.CosDeg(eps)+astro.TanDeg(latitude)*astro.SinDeg(eps),
	))
	// The base formula can land on the Descendant. The Ascendant always
	// rises east of the Midheaven, so force Asc-MC into (0°,180°).
	if rel := astro.NormalizeDegrees(asc - mc); rel == 0 || rel >= 180 {
		asc = astro.NormalizeDegrees(asc + 180)
	}

	if math.Abs(latitude) > PolarLatitudeLimit {
		return equalWheel(asc, mc), nil
	}

	w := &Wheel{Ascendant: asc, Midheaven: mc, System: Placidus}

	// Angular cusps are fixed by the two axes.
	w.Cusps[0] = asc
	w.Cusps[9] = mc
	w.Cusps[3] = astro.NormalizeDegrees(mc + 180)
	w.Cusps[6] = astro.NormalizeDegrees(asc + 180)

	// Declination of the ecliptic point culminating at the MC, used as the
	// common declination for the semi-arc trisection.
	decl := asinDeg(astro.SinDeg(eps) * astro.SinDeg(mc))

	// Intermediate cusps by Placidus semi-arc trisection. Each entry maps
	// a cusp index to its fraction of the diurnal arc past the MC and to
	// the 30°-stepped placement used when the arc argument leaves [-1,1].
	for _, c := range []struct {
		idx      int
		fraction float64 // of the diurnal semi-arc; >1 reaches into the nocturnal arc
		step     float64 // equal-step fallback offset from the MC's right ascension
	}{
		{10, 1.0 / 3.0, 30},  // house 11
		{11, 2.0 / 3.0, 60},  // house 12
		{1, -1, 120},         // house 2, one third into the nocturnal arc
		{2, -2, 150},         // house 3, two thirds into the nocturnal arc
	} {
		ra, ok := placidusRA(ramc, latitude, decl, c.fraction)
		if !ok {
			ra = ramc + c.step
		}
		w.Cusps[c.idx] = raToEcliptic(ra, eps)
	}

	// Houses 5, 6, 8, 9 oppose 11, 12, 2, 3.
	w.Cusps[4] = astro.NormalizeDegrees(w.Cusps[10] + 180)
	w.Cusps[5] = astro.NormalizeDegrees(w.Cusps[11] + 180)
	w.Cusps[7] = astro.NormalizeDegrees(w.Cusps[1] + 180)
	w.Cusps[8] = astro.NormalizeDegrees(w.Cusps[2] + 180)

	return w, nil
}

// placidusRA places one intermediate cusp on the equator. For fraction f in
// (0,1) the cusp sits f of the way along the diurnal semi-arc past the MC;
// the negative sentinel values -1 and -2 select one and two thirds of the
// nocturnal arc past the Descendant's right ascension. ok is false when the
// semi-arc argument leaves acos's domain.
func placidusRA(ramc, latitude, decl, fraction float64) (float64, bool) {
	arg := -astro.TanDeg(latitude) * astro.TanDeg(decl)
	if arg < -1 || arg > 1 {
		return 0, false
	}
	sda := acosDeg(arg) // diurnal semi-arc, degrees
	sna := 180 - sda    // nocturnal semi-arc

	switch fraction {
	case -1:
		return ramc + sda + sna/3, true
	case -2:
		return ramc + sda + 2*sna/3, true
	default:
		return ramc + fraction*sda, true
	}
}

// raToEcliptic converts a right ascension to an ecliptic longitude using the
// simplified zero-declination projection. Shared by the MC formula and the
// intermediate-cusp placement; an acknowledged approximation of true
// Placidus, kept for parity with the established chart output.
func raToEcliptic(ra, eps float64) float64 {
	return astro.NormalizeDegrees(astro.Atan2Deg(astro.SinDeg(ra), astro.CosDeg(ra)*astro.CosDeg(eps)))
}

// equalWheel divides the ecliptic into twelve 30° houses from the Ascendant.
func equalWheel(asc, mc float64) *Wheel {
	w := &Wheel{Ascendant: asc, Midheaven: mc, System: Equal}
	for i := 0; i < houseCount; i++ {
		w.Cusps[i] = astro.NormalizeDegrees(asc + float64(i)*30)
	}
	return w
}

// HouseOf returns the house (1..12) whose cusp band contains the given
// absolute degree, walking the cusps circularly. Defaults to house 1 when
// no band matches, which only happens with malformed cusp data.
func HouseOf(degree float64, cusps [houseCount]float64) int {
	d := astro.NormalizeDegrees(degree)
	for i := 0; i < houseCount; i++ {
		lo := cusps[i]
		hi := cusps[(i+1)%houseCount]
		if lo <= hi {
			if d >= lo && d < hi {
				return i + 1
			}
		} else if d >= lo || d < hi { // band wraps through 0°
			return i + 1
		}
	}
	return 1
}

func asinDeg(x float64) float64 { return math.Asin(x) * 180 / math.Pi }
func acosDeg(x float64) float64 { return math.Acos(x) * 180 / math.Pi }
