package ephemeris

import "time"

// Option applies a configuration option to the MeeusProvider.
type Option func(*MeeusProvider)

// WithDataDir sets the directory holding the VSOP87 data files. When empty,
// the library's VSOP87 environment variable is used.
func WithDataDir(dir string) Option {
	return func(p *MeeusProvider) {
		p.dataDir = dir
	}
}

// WithInitTimeout bounds how long EnsureReady waits for the planetary data
// load before reporting the provider as Failed.
func WithInitTimeout(d time.Duration) Option {
	return func(p *MeeusProvider) {
		if d > 0 {
			p.timeout = d
		}
	}
}
