package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jaypwindley/wax/errors"
)

// Result is the service function's verdict after one call. It steers the
// poller: Stop ends the loop, OK keeps the current interval, and any
// positive value becomes the new interval.
type Result time.Duration

const (
	// Stop ends the poller. A poller stopped this way cannot be
	// restarted.
	Stop Result = -1

	// OK keeps the current interval.
	OK Result = 0
)

// Every converts a duration into a Result that changes the interval.
func Every(d time.Duration) Result { return Result(d) }

// Func is the service function called once per interval. It must not
// block for long: a slow call delays subsequent ticks rather than
// overlapping them.
type Func func(ctx context.Context) Result

// DefaultInterval is the tick interval used when none is configured.
const DefaultInterval = 100 * time.Millisecond

// Poller calls a service function at regular intervals in its own
// goroutine. The service function controls the loop through its Result:
// it can keep the cadence, retune it, or end the loop entirely.
type Poller struct {
	name     string
	fn       Func
	logger   *slog.Logger
	interval atomic.Int64 // nanoseconds, retunable by the service function

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}

	ticks atomic.Int64
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the tick interval. Non-positive values are ignored
// and the default stands.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval.Store(int64(d))
		}
	}
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a poller that will call fn once per interval after Start.
func New(name string, fn Func, options ...Option) (*Poller, error) {
	if fn == nil {
		return nil, errors.WrapInvalid(errors.ErrNilService, "Poller", "New", "service check")
	}

	p := &Poller{
		name:   name,
		fn:     fn,
		logger: slog.Default(),
	}
	p.interval.Store(int64(DefaultInterval))

	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}

	p.logger = p.logger.With("poller", name)
	return p, nil
}

// Name returns the poller's configured name.
func (p *Poller) Name() string { return p.name }

// Interval returns the current tick interval.
func (p *Poller) Interval() time.Duration {
	return time.Duration(p.interval.Load())
}

// Ticks returns how many times the service function has been called.
func (p *Poller) Ticks() int64 { return p.ticks.Load() }

// Start launches the polling goroutine. It returns immediately; the
// first service call happens one interval later.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return errors.WrapInvalid(errors.ErrAlreadyStopped, "Poller", "Start", "lifecycle check")
	}
	if p.started {
		return errors.WrapInvalid(errors.ErrAlreadyStarted, "Poller", "Start", "lifecycle check")
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.started = true

	p.logger.Debug("poller starting", "interval", p.Interval())
	go p.run(runCtx)
	return nil
}

// Stop ends the polling goroutine and waits up to timeout for it to
// finish. Stopping a poller that never started or already stopped is not
// an error.
func (p *Poller) Stop(timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started || p.stopped {
		return nil
	}

	p.cancel()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-p.done:
		p.stopped = true
		p.logger.Debug("poller stopped", "ticks", p.Ticks())
		return nil
	case <-timer.C:
		return errors.WrapTransient(errors.ErrStopTimeout, "Poller", "Stop", "shutdown wait")
	}
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	timer := time.NewTimer(p.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-timer.C:
			p.ticks.Add(1)
			switch result := p.fn(ctx); {
			case result == Stop:
				p.logger.Debug("poller stopped by service function", "ticks", p.Ticks())
				return
			case result > 0:
				p.interval.Store(int64(result))
				p.logger.Debug("poller interval retuned", "interval", time.Duration(result))
			}
			timer.Reset(p.Interval())
		}
	}
}
