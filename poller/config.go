package poller

import (
	"golang.org/x/time/rate"

	"github.com/jaypwindley/wax/config"
)

// FromConfig creates a poller from a configuration entry.
func FromConfig(name string, pc config.PollerConfig, fn Func, options ...Option) (*Poller, error) {
	opts := append([]Option{WithInterval(pc.Interval.Std())}, options...)
	return New(name, fn, opts...)
}

// LimiterFromConfig builds the delivery pacer declared by a configuration
// entry, or nil when the entry asks for unpaced draining.
func LimiterFromConfig(pc config.PollerConfig) *rate.Limiter {
	if pc.MaxPerSecond <= 0 {
		return nil
	}
	burst := pc.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(pc.MaxPerSecond), burst)
}
