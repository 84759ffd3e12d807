// Package aspect classifies angular separations against the fixed table of
// named astrological aspects.
package aspect

// Aspect describes one named angular relationship between two bodies.
type Aspect struct {
	Name   string  `json:"name"`
	Angle  float64 `json:"angle"`   // exact angle, degrees
	MaxOrb float64 `json:"max_orb"` // allowed deviation from Angle, degrees
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"` // scoring weight in [0,1]
}

// Match is an Aspect together with the orb of a concrete separation.
type Match struct {
	Aspect
	Orb float64 `json:"orb"`
}

// table lists the recognized aspects in priority order. Orb windows can
// overlap near their edges, so classification takes the first match; the
// order here is a fixed tie-break and must not be rearranged.
var table = []Aspect{
	{Name: "Conjunction", Angle: 0, MaxOrb: 8, Symbol: "☌", Weight: 1.0},
	{Name: "Opposition", Angle: 180, MaxOrb: 8, Symbol: "☍", Weight: 0.9},
	{Name: "Trine", Angle: 120, MaxOrb: 8, Symbol: "△", Weight: 0.8},
	{Name: "Square", Angle: 90, MaxOrb: 7, Symbol: "□", Weight: 0.85},
	{Name: "Sextile", Angle: 60, MaxOrb: 6, Symbol: "✶", Weight: 0.6},
	{Name: "Inconjunct", Angle: 150, MaxOrb: 3, Symbol: "⚻", Weight: 0.5},
}

// Classify matches an angular separation in [0,180] against the aspect
// table. It returns the first aspect whose orb window contains the angle,
// and false when the angle falls in no window.
func Classify(angle float64) (Match, bool) {
	for _, a := range table {
		orb := angle - a.Angle
		if orb < 0 {
			orb = -orb
		}
		if orb <= a.MaxOrb {
			return Match{Aspect: a, Orb: orb}, true
		}
	}
	return Match{}, false
}

// Table returns a copy of the aspect table in priority order.
func Table() []Aspect {
	out := make([]Aspect, len(table))
	copy(out, table)
	return out
}
