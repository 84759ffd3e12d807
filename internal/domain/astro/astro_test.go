package astro_test

import (
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/meridianlab/meridian/internal/domain/astro"
)

func TestJulianDay(t *testing.T) {
	convey.Convey("Given the Julian Day conversion", t, func() {
		convey.Convey("When converting the J2000 epoch", func() {
			j2000 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

			convey.Convey("Then it should return 2451545.0 exactly", func() {
				convey.So(astro.JulianDay(j2000), convey.ShouldEqual, 2451545.0)
			})
		})

		convey.Convey("When converting the Unix epoch", func() {
			epoch := time.Unix(0, 0).UTC()

			convey.Convey("Then it should return 2440587.5", func() {
				convey.So(astro.JulianDay(epoch), convey.ShouldEqual, 2440587.5)
			})
		})

		convey.Convey("When converting instants a day apart", func() {
			a := time.Date(1990, 6, 15, 16, 0, 0, 0, time.UTC)
			b := a.Add(24 * time.Hour)

			convey.Convey("Then the Julian Days differ by exactly one", func() {
				convey.So(astro.JulianDay(b)-astro.JulianDay(a), convey.ShouldAlmostEqual, 1.0, 1e-9)
			})
		})
	})
}

func TestObliquity(t *testing.T) {
	convey.Convey("Given the obliquity polynomial", t, func() {
		convey.Convey("When evaluated at J2000", func() {
			eps := astro.Obliquity(astro.J2000)

			convey.Convey("Then it should return the epoch constant", func() {
				convey.So(eps, convey.ShouldAlmostEqual, 23.439291, 1e-9)
			})
		})

		convey.Convey("When evaluated a century later", func() {
			eps := astro.Obliquity(astro.J2000 + astro.JulianCentury)

			convey.Convey("Then it should have decreased by about 0.013 degrees", func() {
				convey.So(eps, convey.ShouldBeLessThan, 23.439291)
				convey.So(eps, convey.ShouldAlmostEqual, 23.439291-0.0130042, 1e-4)
			})
		})
	})
}

func TestSiderealTime(t *testing.T) {
	convey.Convey("Given local sidereal time", t, func() {
		instant := time.Date(1990, 6, 15, 16, 0, 0, 0, time.UTC)

		convey.Convey("When computed for Greenwich", func() {
			lst := astro.LocalSiderealTime(instant, 0)

			convey.Convey("Then it should fall in [0,24)", func() {
				convey.So(lst, convey.ShouldBeGreaterThanOrEqualTo, 0)
				convey.So(lst, convey.ShouldBeLessThan, 24)
			})
		})

		convey.Convey("When computed 15 degrees east of Greenwich", func() {
			greenwich := astro.LocalSiderealTime(instant, 0)
			east := astro.LocalSiderealTime(instant, 15)

			convey.Convey("Then it should lead Greenwich by one sidereal hour", func() {
				diff := east - greenwich
				if diff < 0 {
					diff += 24
				}
				convey.So(diff, convey.ShouldAlmostEqual, 1.0, 1e-9)
			})
		})

		convey.Convey("When computed for a western longitude", func() {
			lst := astro.LocalSiderealTime(instant, -74.0060)

			convey.Convey("Then it should still normalize into [0,24)", func() {
				convey.So(lst, convey.ShouldBeGreaterThanOrEqualTo, 0)
				convey.So(lst, convey.ShouldBeLessThan, 24)
			})
		})
	})
}

func TestAngularSeparation(t *testing.T) {
	convey.Convey("Given the angular separation function", t, func() {
		convey.Convey("When the raw difference is under 180", func() {
			convey.So(astro.AngularSeparation(10, 40), convey.ShouldEqual, 30)
		})

		convey.Convey("When the raw difference exceeds 180", func() {
			convey.So(astro.AngularSeparation(350, 10), convey.ShouldEqual, 20)
		})

		convey.Convey("When comparing a natal point at 95 with a transit at 185", func() {
			convey.So(astro.AngularSeparation(95, 185), convey.ShouldEqual, 90)
		})

		convey.Convey("Then it should be symmetric and bounded", func() {
			cases := [][2]float64{{0, 0}, {0, 180}, {359, 1}, {123.4, 321.9}, {90, 270.5}}
			for _, c := range cases {
				d1 := astro.AngularSeparation(c[0], c[1])
				d2 := astro.AngularSeparation(c[1], c[0])
				convey.So(d1, convey.ShouldEqual, d2)
				convey.So(d1, convey.ShouldBeGreaterThanOrEqualTo, 0)
				convey.So(d1, convey.ShouldBeLessThanOrEqualTo, 180)
			}
		})
	})
}

func TestNormalizeDegrees(t *testing.T) {
	convey.Convey("Given degree normalization", t, func() {
		convey.Convey("Then values map onto [0,360)", func() {
			convey.So(astro.NormalizeDegrees(0), convey.ShouldEqual, 0)
			convey.So(astro.NormalizeDegrees(360), convey.ShouldEqual, 0)
			convey.So(astro.NormalizeDegrees(365), convey.ShouldEqual, 5)
			convey.So(astro.NormalizeDegrees(-30), convey.ShouldEqual, 330)
			convey.So(astro.NormalizeDegrees(-390), convey.ShouldEqual, 330)
		})
	})
}
