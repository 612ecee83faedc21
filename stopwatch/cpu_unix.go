//go:build unix

package stopwatch

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/jaypwindley/wax/errors"
)

// NewCPU creates a running stopwatch on process CPU time: user plus
// system time consumed by the whole process, not wall time. Useful for
// separating compute cost from time spent blocked.
func NewCPU() (*Stopwatch, error) {
	// Probe once so a broken clock fails at construction, not first read.
	if _, err := cpuNow(); err != nil {
		return nil, errors.WrapFatal(err, "Stopwatch", "NewCPU", "clock probe")
	}

	s := &Stopwatch{now: func() time.Duration {
		d, err := cpuNow()
		if err != nil {
			return 0
		}
		return d
	}}
	s.Reset()
	return s, nil
}

func cpuNow() (time.Duration, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	user := time.Duration(ru.Utime.Sec)*time.Second + time.Duration(ru.Utime.Usec)*time.Microsecond
	sys := time.Duration(ru.Stime.Sec)*time.Second + time.Duration(ru.Stime.Usec)*time.Microsecond
	return user + sys, nil
}
