package houses

import "errors"

// Sentinel error kinds for this package.
var (
	ErrLatitudeRange = errors.New("latitude out of range")
)
