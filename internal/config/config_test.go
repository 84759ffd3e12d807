package config_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/meridianlab/meridian/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then all defaults should be populated", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.EphemerisStrategy, convey.ShouldEqual, config.StrategyMeeus)
			convey.So(cfg.VSOP87Path, convey.ShouldBeEmpty)
			convey.So(cfg.EphemerisTimeoutMS, convey.ShouldEqual, 5000)
			convey.So(cfg.MaxTransitEvents, convey.ShouldEqual, 100)
			convey.So(cfg.EntryRegistrySize, convey.ShouldEqual, 10_000)
			convey.So(cfg.ApplyingLookaheadMin, convey.ShouldEqual, 60)
		})
	})
}
