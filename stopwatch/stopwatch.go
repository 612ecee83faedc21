// Package stopwatch provides real-time and CPU-time stopwatches with lap
// readings at caller-chosen resolutions.
package stopwatch

import (
	"strconv"
	"time"
)

// Resolution is a divisor converting nanosecond readings into coarser
// units, used as a convenience label for Lap and Format.
type Resolution uint64

const (
	Seconds      Resolution = 1_000_000_000
	Milliseconds Resolution = 1_000_000
	Microseconds Resolution = 1_000
	Nanoseconds  Resolution = 1
)

var suffixTable = []struct {
	res  Resolution
	unit string
}{
	{Seconds, "s"},
	{Milliseconds, "ms"},
	{Microseconds, "µs"},
	{Nanoseconds, "ns"},
}

// Units returns a suitable suffix for the resolution, or the empty string
// if the resolution is not one of the defined labels.
func (r Resolution) Units() string {
	for _, s := range suffixTable {
		if s.res == r {
			return s.unit
		}
	}
	return ""
}

// Stopwatch measures elapsed time against a clock chosen at construction.
// It starts running when created; there is no stopped state, only Reset.
// A Stopwatch is not safe for concurrent use.
type Stopwatch struct {
	now   func() time.Duration
	start time.Duration
}

// epoch anchors the real-time clock; readings are monotonic deltas from
// process start, immune to wall-clock adjustments.
var epoch = time.Now()

func realNow() time.Duration { return time.Since(epoch) }

// New creates a running stopwatch on the real-time clock.
func New() *Stopwatch {
	s := &Stopwatch{now: realNow}
	s.Reset()
	return s
}

// Reset restarts the measurement from now.
func (s *Stopwatch) Reset() { s.start = s.now() }

// Elapsed returns the time since construction or the last Reset.
func (s *Stopwatch) Elapsed() time.Duration { return s.now() - s.start }

// Lap returns the elapsed time in units of the given resolution, without
// resetting.
func (s *Stopwatch) Lap(res Resolution) int64 {
	if res == 0 {
		res = Nanoseconds
	}
	return int64(s.Elapsed()) / int64(res)
}

// Format returns the elapsed time as a number with the resolution's unit
// suffix, such as "250ms".
func (s *Stopwatch) Format(res Resolution) string {
	return strconv.FormatInt(s.Lap(res), 10) + res.Units()
}
