// Package body enumerates the ten celestial bodies tracked by charts and
// transit scoring, together with their display metadata and the relative
// importance weights used by the scoring heuristic.
package body

import (
	"fmt"
	"strings"
)

// Body identifies one of the tracked celestial bodies.
type Body int

// Tracked bodies, in traditional chart order.
const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// Count is the number of tracked bodies.
const Count = 10

var names = [Count]string{
	"Sun", "Moon", "Mercury", "Venus", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
}

var symbols = [Count]string{
	"☉", "☽", "☿", "♀", "♂", "♃", "♄", "♅", "♆", "♇",
}

// importance ranks each body's weight in transit scoring on a 0–10 scale.
// The Moon ranks highest because lunar transits set the day's tone; Mercury
// lowest among the personal planets.
var importance = [Count]int{
	9,  // Sun
	10, // Moon
	5,  // Mercury
	6,  // Venus
	7,  // Mars
	8,  // Jupiter
	8,  // Saturn
	6,  // Uranus
	6,  // Neptune
	7,  // Pluto
}

// All returns the tracked bodies in chart order.
func All() []Body {
	out := make([]Body, Count)
	for i := range out {
		out[i] = Body(i)
	}
	return out
}

func (b Body) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return names[b]
}

// Key returns the lowercase identifier used in event ids and JSON keys.
func (b Body) Key() string {
	return strings.ToLower(b.String())
}

// Symbol returns the astrological glyph for the body.
func (b Body) Symbol() string {
	if !b.Valid() {
		return "?"
	}
	return symbols[b]
}

// Importance returns the body's scoring weight on a 0–10 scale.
func (b Body) Importance() int {
	if !b.Valid() {
		return 0
	}
	return importance[b]
}

// Valid reports whether b names a tracked body.
func (b Body) Valid() bool {
	return b >= Sun && b <= Pluto
}

// Parse resolves a body from its name, case-insensitively.
func Parse(name string) (Body, error) {
	for i, n := range names {
		if strings.EqualFold(name, n) {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("unknown body %q", name)
}

// MarshalJSON encodes the body as its lowercase key.
func (b Body) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.Key() + `"`), nil
}

// UnmarshalJSON decodes a body from its name or lowercase key.
func (b *Body) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), `"`)
	parsed, err := Parse(name)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
