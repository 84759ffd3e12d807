package repository

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNotFound       = errors.New("profile not found")
	ErrInvalidProfile = errors.New("invalid profile")
)
