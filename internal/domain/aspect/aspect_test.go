package aspect_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/meridianlab/meridian/internal/domain/aspect"
)

func TestClassify(t *testing.T) {
	convey.Convey("Given the aspect classifier", t, func() {
		convey.Convey("When classifying exact angles", func() {
			convey.Convey("Then 0 is always a Conjunction with zero orb", func() {
				m, ok := aspect.Classify(0)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(m.Name, convey.ShouldEqual, "Conjunction")
				convey.So(m.Orb, convey.ShouldEqual, 0)
			})

			convey.Convey("And 180 is always an Opposition", func() {
				m, ok := aspect.Classify(180)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(m.Name, convey.ShouldEqual, "Opposition")
				convey.So(m.Orb, convey.ShouldEqual, 0)
			})

			convey.Convey("And 90 is always a Square", func() {
				m, ok := aspect.Classify(90)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(m.Name, convey.ShouldEqual, "Square")
				convey.So(m.Orb, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When classifying angles inside an orb window", func() {
			m, ok := aspect.Classify(117.5)

			convey.Convey("Then it matches Trine with the deviation as orb", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(m.Name, convey.ShouldEqual, "Trine")
				convey.So(m.Orb, convey.ShouldAlmostEqual, 2.5, 1e-9)
			})
		})

		convey.Convey("When the angle falls in the window boundary", func() {
			m, ok := aspect.Classify(8)

			convey.Convey("Then the edge is inclusive", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(m.Name, convey.ShouldEqual, "Conjunction")
				convey.So(m.Orb, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When the angle falls between windows", func() {
			_, ok := aspect.Classify(30)

			convey.Convey("Then no aspect matches", func() {
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When windows could overlap, the table order wins", func() {
			// 153 is within Inconjunct's 150±3 window and nothing else.
			m, ok := aspect.Classify(153)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(m.Name, convey.ShouldEqual, "Inconjunct")

			// 172 is within Opposition's 180±8 only.
			m, ok = aspect.Classify(172)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(m.Name, convey.ShouldEqual, "Opposition")
		})

		convey.Convey("When classifying repeatedly", func() {
			convey.Convey("Then the result is deterministic", func() {
				for i := 0; i < 10; i++ {
					m, ok := aspect.Classify(61.2)
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(m.Name, convey.ShouldEqual, "Sextile")
				}
			})
		})
	})
}

func TestTable(t *testing.T) {
	convey.Convey("Given the aspect table", t, func() {
		table := aspect.Table()

		convey.Convey("Then it holds the six aspects in priority order", func() {
			convey.So(len(table), convey.ShouldEqual, 6)
			convey.So(table[0].Name, convey.ShouldEqual, "Conjunction")
			convey.So(table[1].Name, convey.ShouldEqual, "Opposition")
			convey.So(table[2].Name, convey.ShouldEqual, "Trine")
			convey.So(table[3].Name, convey.ShouldEqual, "Square")
			convey.So(table[4].Name, convey.ShouldEqual, "Sextile")
			convey.So(table[5].Name, convey.ShouldEqual, "Inconjunct")
		})

		convey.Convey("And every weight sits in [0,1]", func() {
			for _, a := range table {
				convey.So(a.Weight, convey.ShouldBeGreaterThanOrEqualTo, 0)
				convey.So(a.Weight, convey.ShouldBeLessThanOrEqualTo, 1)
			}
		})

		convey.Convey("When mutating the copy", func() {
			table[0].MaxOrb = 99

			convey.Convey("Then the classifier is unaffected", func() {
				_, ok := aspect.Classify(30)
				convey.So(ok, convey.ShouldBeFalse)
			})
		})
	})
}
