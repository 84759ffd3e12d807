package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/meridianlab/meridian/internal/adapters/ephemeris"
	"github.com/meridianlab/meridian/internal/adapters/http/api"
	app "github.com/meridianlab/meridian/internal/app"
	"github.com/meridianlab/meridian/internal/config"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("MERIDIAN_ADDR", ":8080")
			_ = os.Setenv("MERIDIAN_EPHEMERIS_STRATEGY", "meanlongitude")
			defer func() {
				_ = os.Unsetenv("MERIDIAN_ADDR")
				_ = os.Unsetenv("MERIDIAN_EPHEMERIS_STRATEGY")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.EphemerisStrategy, convey.ShouldEqual, config.StrategyMeanLongitude)
			})
		})

		convey.Convey("When testing provider selection", func() {
			convey.Convey("Then the mean-longitude strategy builds its provider", func() {
				cfg := config.New()
				cfg.EphemerisStrategy = config.StrategyMeanLongitude
				p := buildProvider(cfg)
				convey.So(p, convey.ShouldNotBeNil)
				convey.So(p.State(), convey.ShouldEqual, ephemeris.Ready)
			})

			convey.Convey("And the meeus strategy builds its provider", func() {
				cfg := config.New()
				cfg.VSOP87Path = t.TempDir()
				p := buildProvider(cfg)
				convey.So(p, convey.ShouldNotBeNil)
				convey.So(p.State(), convey.ShouldEqual, ephemeris.Uninitialized)
			})
		})

		convey.Convey("When testing registry sizing", func() {
			convey.Convey("Then the configured bound is applied", func() {
				cfg := config.New()
				cfg.EntryRegistrySize = 2
				reg := buildRegistry(cfg)

				ctx := context.Background()
				convey.So(reg.Record(ctx, "a"), convey.ShouldBeTrue)
				convey.So(reg.Record(ctx, "b"), convey.ShouldBeTrue)
				convey.So(reg.Record(ctx, "c"), convey.ShouldBeTrue)
				convey.So(reg.Size(), convey.ShouldEqual, 2)
				convey.So(reg.Contains(ctx, "a"), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithProvider(ephemeris.NewMeanLongitudeProvider()),
					app.WithMaxTransitEvents(10),
					app.WithApplyingLookahead(30*time.Minute),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When wiring the HTTP surface like main does", func() {
			ctx := context.Background()
			svc := app.New(app.WithProvider(ephemeris.NewMeanLongitudeProvider()))
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			api.NewServer(svc, svc).Register(ctx, mux)

			convey.Convey("Then the health endpoint answers", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("And the stats endpoint answers", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "provider_state")
			})
		})
	})
}
