package chart

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrIncompletePositions means the Sun or Moon position could not be
	// computed. Both are structurally required; sign and house logic
	// downstream cannot work without them.
	ErrIncompletePositions = errors.New("incomplete positions")

	// ErrInvalidBirthData means the supplied date, time, or coordinates
	// could not be parsed.
	ErrInvalidBirthData = errors.New("invalid birth data")
)
