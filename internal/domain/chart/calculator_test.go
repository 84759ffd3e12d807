package chart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/meridianlab/meridian/internal/adapters/ephemeris"
	"github.com/meridianlab/meridian/internal/domain/astro"
	"github.com/meridianlab/meridian/internal/domain/body"
	"github.com/meridianlab/meridian/internal/domain/chart"
	"github.com/meridianlab/meridian/internal/domain/houses"
)

// stubProvider serves fixed longitudes and optional per-body failures.
type stubProvider struct {
	longitudes map[body.Body]float64
	failing    map[body.Body]error
	readyErr   error
}

func (s *stubProvider) EnsureReady(_ context.Context) error { return s.readyErr }

func (s *stubProvider) State() ephemeris.State {
	if s.readyErr != nil {
		return ephemeris.Failed
	}
	return ephemeris.Ready
}

func (s *stubProvider) Longitude(b body.Body, _ time.Time) (float64, error) {
	if err, ok := s.failing[b]; ok {
		return 0, err
	}
	return s.longitudes[b], nil
}

func allAtZero() map[body.Body]float64 {
	out := make(map[body.Body]float64, body.Count)
	for _, b := range body.All() {
		out[b] = float64(b) * 20
	}
	return out
}

func TestEstimateTZOffset(t *testing.T) {
	convey.Convey("Given longitude-based timezone estimation", t, func() {
		convey.Convey("Then offsets round to the nearest hour band", func() {
			convey.So(chart.EstimateTZOffset(0), convey.ShouldEqual, 0)
			convey.So(chart.EstimateTZOffset(-74.0060), convey.ShouldEqual, -5)
			convey.So(chart.EstimateTZOffset(139.69), convey.ShouldEqual, 9)
			convey.So(chart.EstimateTZOffset(7.5), convey.ShouldEqual, 1)
		})
	})
}

func TestNatal(t *testing.T) {
	convey.Convey("Given a calculator over the mean-longitude provider", t, func() {
		calc := chart.NewCalculator(ephemeris.NewMeanLongitudeProvider())
		ctx := context.Background()

		convey.Convey("When casting a chart for 1990-06-15 12:00 in New York", func() {
			tz := -4.0
			ch, err := calc.Natal(ctx, "1990-06-15", "12:00", 40.7128, -74.0060, &tz)

			convey.Convey("Then the chart carries a mid-June Sun in Gemini", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ch.Sun, convey.ShouldNotBeNil)
				convey.So(ch.Sun.Sign, convey.ShouldEqual, astro.Gemini)
				convey.So(ch.Sun.AbsoluteDegree, convey.ShouldBeGreaterThanOrEqualTo, 60)
				convey.So(ch.Sun.AbsoluteDegree, convey.ShouldBeLessThan, 90)
			})

			convey.Convey("Then the local time was shifted to UTC by the offset", func() {
				convey.So(ch.SourceTime, convey.ShouldEqual, time.Date(1990, 6, 15, 16, 0, 0, 0, time.UTC))
				convey.So(ch.TZOffsetHours, convey.ShouldEqual, -4)
			})

			convey.Convey("Then all ten bodies and a Placidus wheel are present", func() {
				convey.So(ch.Complete(), convey.ShouldBeTrue)
				convey.So(ch.HouseSystem, convey.ShouldEqual, houses.Placidus)
				convey.So(len(ch.Cusps), convey.ShouldEqual, 12)
				convey.So(ch.Ascendant.House, convey.ShouldEqual, 1)
				convey.So(ch.Midheaven.House, convey.ShouldEqual, 10)
				for _, p := range ch.Bodies() {
					convey.So(p.House, convey.ShouldBeBetweenOrEqual, 1, 12)
				}
			})

			convey.Convey("Then recomputation is bit-for-bit identical", func() {
				again, err2 := calc.Natal(ctx, "1990-06-15", "12:00", 40.7128, -74.0060, &tz)
				convey.So(err2, convey.ShouldBeNil)
				again.ComputedAt = ch.ComputedAt
				convey.So(again, convey.ShouldResemble, ch)
			})
		})

		convey.Convey("When no timezone offset is supplied", func() {
			ch, err := calc.Natal(ctx, "1990-06-15", "12:00", 40.7128, -74.0060, nil)

			convey.Convey("Then the longitude-based estimate is used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ch.TZOffsetHours, convey.ShouldEqual, -5)
				convey.So(ch.SourceTime, convey.ShouldEqual, time.Date(1990, 6, 15, 17, 0, 0, 0, time.UTC))
			})
		})

		convey.Convey("When the date is malformed", func() {
			_, err := calc.Natal(ctx, "15-06-1990", "12:00", 40.7128, -74.0060, nil)

			convey.Convey("Then invalid birth data is reported", func() {
				convey.So(errors.Is(err, chart.ErrInvalidBirthData), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the time is malformed", func() {
			_, err := calc.Natal(ctx, "1990-06-15", "noon", 40.7128, -74.0060, nil)

			convey.Convey("Then invalid birth data is reported", func() {
				convey.So(errors.Is(err, chart.ErrInvalidBirthData), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the latitude is off the globe", func() {
			_, err := calc.Natal(ctx, "1990-06-15", "12:00", 95, -74.0060, nil)

			convey.Convey("Then invalid birth data is reported", func() {
				convey.So(errors.Is(err, chart.ErrInvalidBirthData), convey.ShouldBeTrue)
			})
		})
	})
}

func TestAt(t *testing.T) {
	ctx := context.Background()
	instant := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	convey.Convey("Given a provider missing a luminary", t, func() {
		provider := &stubProvider{
			longitudes: allAtZero(),
			failing:    map[body.Body]error{body.Moon: errors.New("no lunar theory")},
		}
		calc := chart.NewCalculator(provider)

		convey.Convey("When computing a chart", func() {
			_, err := calc.At(ctx, instant, 40.7128, -74.0060)

			convey.Convey("Then the chart fails as incomplete", func() {
				convey.So(errors.Is(err, chart.ErrIncompletePositions), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a provider missing a minor body", t, func() {
		provider := &stubProvider{
			longitudes: allAtZero(),
			failing:    map[body.Body]error{body.Neptune: errors.New("not loaded")},
		}
		calc := chart.NewCalculator(provider)

		convey.Convey("When computing a chart", func() {
			ch, err := calc.At(ctx, instant, 40.7128, -74.0060)

			convey.Convey("Then the body is skipped and the chart survives", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ch.Neptune, convey.ShouldBeNil)
				convey.So(ch.Complete(), convey.ShouldBeFalse)
				convey.So(ch.Sun, convey.ShouldNotBeNil)
				convey.So(ch.Moon, convey.ShouldNotBeNil)
			})
		})
	})

	convey.Convey("Given an unready provider", t, func() {
		provider := &stubProvider{readyErr: ephemeris.ErrUnavailable}
		calc := chart.NewCalculator(provider)

		convey.Convey("When computing a chart", func() {
			_, err := calc.At(ctx, instant, 40.7128, -74.0060)

			convey.Convey("Then the provider error surfaces unchanged", func() {
				convey.So(errors.Is(err, ephemeris.ErrUnavailable), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a location where house calculation cannot run", t, func() {
		provider := &stubProvider{longitudes: allAtZero()}
		calc := chart.NewCalculator(provider)

		convey.Convey("When computing a chart at an out-of-range latitude", func() {
			ch, err := calc.At(ctx, instant, 95, 0)

			convey.Convey("Then the chart degrades to placeholder angles", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ch.HouseSystem, convey.ShouldEqual, houses.Unknown)
				convey.So(ch.Cusps, convey.ShouldBeEmpty)
				convey.So(ch.Ascendant.AbsoluteDegree, convey.ShouldEqual, 0)
				convey.So(ch.Ascendant.Sign, convey.ShouldEqual, astro.Aries)
				convey.So(ch.Midheaven.AbsoluteDegree, convey.ShouldEqual, 270)
				convey.So(ch.Midheaven.Sign, convey.ShouldEqual, astro.Capricorn)
			})

			convey.Convey("Then bodies carry no house assignment", func() {
				for _, p := range ch.Bodies() {
					convey.So(p.House, convey.ShouldEqual, 0)
				}
			})
		})
	})
}
