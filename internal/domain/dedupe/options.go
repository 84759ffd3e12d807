package dedupe

// Option applies a configuration option to the inMemoryRegistry.
type Option func(*inMemoryRegistry)

// WithMaxSize bounds the registry. With maxSize > 0 the oldest id is
// evicted when the bound is reached; maxSize <= 0 disables eviction.
func WithMaxSize(maxSize int) Option {
	return func(r *inMemoryRegistry) {
		r.maxSize = maxSize
	}
}
