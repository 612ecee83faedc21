//go:build !unix

package stopwatch

import (
	stderrors "errors"

	"github.com/jaypwindley/wax/errors"
)

// NewCPU is unavailable on platforms without rusage accounting.
func NewCPU() (*Stopwatch, error) {
	return nil, errors.WrapFatal(stderrors.ErrUnsupported, "Stopwatch", "NewCPU", "clock probe")
}
