// Package astro provides the time and coordinate primitives shared by the
// chart, house, and transit calculators: Julian Day conversion, sidereal
// time, obliquity of the ecliptic, and angular arithmetic on the ecliptic
// circle. All functions are pure and deterministic.
package astro

import (
	"math"
	"time"
)

// Epoch and conversion constants.
const (
	// J2000 is the Julian Day of the standard epoch J2000.0.
	J2000 = 2451545.0

	// JulianCentury is the number of days in a Julian century.
	JulianCentury = 36525.0

	millisPerDay = 86400000.0
	unixEpochJD  = 2440587.5

	degreesPerHour = 15.0
)

// JulianDay converts an instant to a Julian Day number.
func JulianDay(t time.Time) float64 {
	return float64(t.UnixMilli())/millisPerDay + unixEpochJD
}

// J2000Centuries returns the number of Julian centuries elapsed between
// J2000.0 and the given Julian Day. Negative before the epoch.
func J2000Centuries(jd float64) float64 {
	return (jd - J2000) / JulianCentury
}

// Obliquity returns the mean obliquity of the ecliptic in degrees for the
// given Julian Day, from the IAU polynomial in centuries since J2000.
func Obliquity(jd float64) float64 {
	t := J2000Centuries(jd)
	return 23.439291 - 0.0130042*t - 0.00000164*t*t + 0.000000504*t*t*t
}

// GreenwichSiderealTime returns the apparent Greenwich sidereal time in
// hours [0,24) for the given Julian Day. The mean sidereal time polynomial
// is corrected by the equation of the equinoxes (simplified nutation in
// longitude projected onto the equator).
func GreenwichSiderealTime(jd float64) float64 {
	d := jd - J2000
	t := d / JulianCentury

	// Mean sidereal time at Greenwich, in degrees.
	gmst := 280.46061837 + 360.98564736629*d + 0.000387933*t*t - t*t*t/38710000.0

	// Equation of the equinoxes, in hours. Uses the two dominant nutation
	// terms (longitude of the ascending lunar node, mean solar longitude).
	omega := 125.04 - 0.052954*d
	sunL := 280.47 + 0.98565*d
	dpsi := -0.000319*sinDeg(omega) - 0.000024*sinDeg(2*sunL)
	eqeq := dpsi * cosDeg(Obliquity(jd))

	return normalizeHours(gmst/degreesPerHour + eqeq)
}

// LocalSiderealTime returns the local sidereal time in hours [0,24) for the
// given instant and geographic longitude (east positive, degrees).
func LocalSiderealTime(t time.Time, longitude float64) float64 {
	return normalizeHours(GreenwichSiderealTime(JulianDay(t)) + longitude/degreesPerHour)
}

// AngularSeparation returns the shortest angular distance between two
// ecliptic longitudes, in degrees [0,180].
func AngularSeparation(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		return 360 - d
	}
	return d
}

// NormalizeDegrees maps an angle onto [0,360).
func NormalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func normalizeHours(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// Degree-argument trig helpers. The house calculator leans on these heavily.

func sinDeg(d float64) float64 { return math.Sin(d * math.Pi / 180) }
func cosDeg(d float64) float64 { return math.Cos(d * math.Pi / 180) }

// SinDeg returns the sine of an angle given in degrees.
func SinDeg(d float64) float64 { return sinDeg(d) }

// CosDeg returns the cosine of an angle given in degrees.
func CosDeg(d float64) float64 { return cosDeg(d) }

// TanDeg returns the tangent of an angle given in degrees.
func TanDeg(d float64) float64 { return math.Tan(d * math.Pi / 180) }

// Atan2Deg returns atan2(y, x) in degrees.
func Atan2Deg(y, x float64) float64 { return math.Atan2(y, x) * 180 / math.Pi }
