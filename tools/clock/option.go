package clock

import "time"

type Option func(*Config)

// WithNowFunc overrides the current-instant source.
func WithNowFunc(fn func() time.Time) Option {
	return func(c *Config) {
		c.now = fn
	}
}

// WithLookupFunc overrides the timezone-database collaborator.
func WithLookupFunc(fn func(name string) (*time.Location, error)) Option {
	return func(c *Config) {
		c.lookup = fn
	}
}
