package astro

import (
	"fmt"
	"strings"
)

// Sign is one of the twelve zodiac signs, each covering a fixed 30° band of
// ecliptic longitude starting at Aries = 0°.
type Sign int

// The twelve signs in ecliptic order.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignWidth is the ecliptic span of a single sign, in degrees.
const SignWidth = 30.0

var signNames = [...]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signSymbols = [...]string{
	"♈", "♉", "♊", "♋", "♌", "♍", "♎", "♏", "♐", "♑", "♒", "♓",
}

func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Symbol returns the astrological glyph for the sign.
func (s Sign) Symbol() string {
	if s < Aries || s > Pisces {
		return "?"
	}
	return signSymbols[s]
}

// Start returns the absolute degree at which the sign's band begins.
func (s Sign) Start() float64 {
	return float64(s) * SignWidth
}

// SignAt locates the sign band containing an absolute ecliptic degree and
// returns the sign together with the offset into it, in [0,30).
func SignAt(absoluteDegree float64) (Sign, float64) {
	d := NormalizeDegrees(absoluteDegree)
	s := Sign(int(d / SignWidth))
	return s, d - s.Start()
}

// ParseSign resolves a sign from its English name, case-insensitively.
func ParseSign(name string) (Sign, error) {
	for i, n := range signNames {
		if strings.EqualFold(name, n) {
			return Sign(i), nil
		}
	}
	return 0, fmt.Errorf("unknown zodiac sign %q", name)
}

// MarshalJSON encodes the sign as its English name so persisted charts stay
// readable by the storage collaborator.
func (s Sign) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a sign from its English name.
func (s *Sign) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), `"`)
	parsed, err := ParseSign(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// AbsoluteDegree is the inverse of SignAt: it converts a sign plus an offset
// into the sign back to an absolute ecliptic degree in [0,360).
func AbsoluteDegree(s Sign, degreeInSign float64) float64 {
	return NormalizeDegrees(s.Start() + degreeInSign)
}
