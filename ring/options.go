package ring

import (
	"github.com/jaypwindley/wax/metric"
)

// Option configures ring behavior using the functional options pattern.
type Option func(*ringOptions)

// LappedCallback is called with the reader's cursor ID whenever that
// reader detects it has been lapped. It runs outside the ring lock.
type LappedCallback func(readerID string)

// ringOptions holds internal configuration for ring instances. Statistics
// are always collected; Prometheus export is opt-in via WithMetrics.
type ringOptions struct {
	metricsReg     *metric.Registry
	metricsPrefix  string
	lappedCallback LappedCallback
}

// WithMetrics enables Prometheus metrics export for ring statistics under
// the given component prefix. If registry is nil or prefix is empty the
// option is ignored.
func WithMetrics(registry *metric.Registry, prefix string) Option {
	return func(opts *ringOptions) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

// WithLappedCallback sets a callback invoked each time a reader detects
// data loss. The caller decides whether to log, count, or ignore it.
func WithLappedCallback(callback LappedCallback) Option {
	return func(opts *ringOptions) {
		opts.lappedCallback = callback
	}
}

// applyOptions applies functional options to produce the final ring
// configuration.
func applyOptions(options ...Option) *ringOptions {
	opts := &ringOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}
	return opts
}

// maybeMetrics builds and registers ring metrics when the options ask for
// them.
func maybeMetrics(opts *ringOptions) (*ringMetrics, error) {
	if opts.metricsReg == nil || opts.metricsPrefix == "" {
		return nil, nil
	}
	return newRingMetrics(opts.metricsReg, opts.metricsPrefix)
}
