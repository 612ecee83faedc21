package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jaypwindley/wax/errors"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "250ms" or "5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("%w: duration must be a string like \"250ms\"", errors.ErrInvalidConfig)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%w: bad duration %q: %v", errors.ErrInvalidConfig, raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a standard time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the complete configuration for a wax deployment: the rings to
// allocate, the optional metrics endpoint, and the pollers that drive
// periodic work.
type Config struct {
	Rings   map[string]RingConfig   `yaml:"rings"`
	Metrics MetricsConfig           `yaml:"metrics"`
	Pollers map[string]PollerConfig `yaml:"pollers"`
}

// RingConfig declares one ring's geometry. Exactly one of the two forms
// must be used: Capacity for a typed ring (a power of two), or Stride and
// Rows together for a byte-stride ring.
type RingConfig struct {
	Capacity int `yaml:"capacity,omitempty"`
	Stride   int `yaml:"stride,omitempty"`
	Rows     int `yaml:"rows,omitempty"`

	// Metrics opts this ring into Prometheus export under its config name.
	Metrics bool `yaml:"metrics,omitempty"`
}

// Typed reports whether this entry declares a typed ring rather than a
// byte-stride ring.
func (rc RingConfig) Typed() bool { return rc.Capacity != 0 }

// MetricsConfig declares the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// PollerConfig declares the cadence and shutdown budget for one poller.
type PollerConfig struct {
	Interval    Duration `yaml:"interval,omitempty"`
	StopTimeout Duration `yaml:"stop_timeout,omitempty"`

	// MaxPerSecond caps deliveries for drain pollers; zero means unpaced.
	MaxPerSecond float64 `yaml:"max_per_second,omitempty"`
	Burst        int     `yaml:"burst,omitempty"`
}

// Default configuration values.
const (
	DefaultMetricsPort = 9090
	DefaultMetricsPath = "/metrics"

	DefaultPollInterval = 100 * time.Millisecond
	DefaultStopTimeout  = 5 * time.Second
)

// setDefaults fills zero values with working defaults. Ring geometry is
// deliberately not defaulted: sizing the buffer is the caller's decision.
func (c *Config) setDefaults() {
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	for name, pc := range c.Pollers {
		if pc.Interval == 0 {
			pc.Interval = Duration(DefaultPollInterval)
		}
		if pc.StopTimeout == 0 {
			pc.StopTimeout = Duration(DefaultStopTimeout)
		}
		c.Pollers[name] = pc
	}
}

// Validate checks the configuration for consistency. All failures are
// invalid-class errors naming the offending entry.
func (c *Config) Validate() error {
	for name, rc := range c.Rings {
		if err := rc.validate(); err != nil {
			return fmt.Errorf("ring %q: %w", name, err)
		}
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
			return fmt.Errorf("%w: metrics port %d out of range", errors.ErrInvalidConfig, c.Metrics.Port)
		}
		if c.Metrics.Path == "" || c.Metrics.Path[0] != '/' {
			return fmt.Errorf("%w: metrics path %q must start with /", errors.ErrInvalidConfig, c.Metrics.Path)
		}
	}

	for name, pc := range c.Pollers {
		if pc.Interval < 0 {
			return fmt.Errorf("%w: poller %q interval is negative", errors.ErrInvalidConfig, name)
		}
		if pc.MaxPerSecond < 0 {
			return fmt.Errorf("%w: poller %q max_per_second is negative", errors.ErrInvalidConfig, name)
		}
		if pc.Burst < 0 {
			return fmt.Errorf("%w: poller %q burst is negative", errors.ErrInvalidConfig, name)
		}
	}

	return nil
}

func (rc RingConfig) validate() error {
	typed := rc.Capacity != 0
	byteStride := rc.Stride != 0 || rc.Rows != 0

	switch {
	case typed && byteStride:
		return fmt.Errorf("%w: capacity and stride/rows are mutually exclusive", errors.ErrInvalidConfig)
	case !typed && !byteStride:
		return fmt.Errorf("%w: either capacity or stride and rows required", errors.ErrMissingConfig)
	case typed:
		if rc.Capacity < 0 {
			return fmt.Errorf("%w: capacity is negative", errors.ErrInvalidConfig)
		}
		if rc.Capacity&(rc.Capacity-1) != 0 {
			return fmt.Errorf("%w: capacity %d", errors.ErrNotPowerOfTwo, rc.Capacity)
		}
	default:
		if rc.Stride <= 0 {
			return fmt.Errorf("%w: stride %d", errors.ErrZeroStride, rc.Stride)
		}
		if rc.Rows <= 0 {
			return fmt.Errorf("%w: rows %d", errors.ErrZeroRows, rc.Rows)
		}
	}

	return nil
}
