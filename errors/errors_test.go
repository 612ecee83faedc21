package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassString(t *testing.T) {
	tests := []struct {
		class ErrorClass
		want  string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.class.String())
	}
}

func TestWrapFormat(t *testing.T) {
	base := stderrors.New("boom")
	err := Wrap(base, "Store", "Index", "bounds check")
	require.Error(t, err)
	assert.Equal(t, "Store.Index: bounds check failed: boom", err.Error())
	assert.True(t, stderrors.Is(err, base), "wrapped error must unwrap to base")
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "Store", "Index", "bounds check"))
	assert.NoError(t, WrapInvalid(nil, "Store", "Index", "bounds check"))
	assert.NoError(t, WrapFatal(nil, "Store", "Index", "bounds check"))
	assert.NoError(t, WrapTransient(nil, "Store", "Index", "bounds check"))
}

func TestClassificationPreservedThroughChain(t *testing.T) {
	err := WrapInvalid(ErrOutOfRange, "Store", "Index", "bounds check")
	assert.True(t, IsInvalid(err))
	assert.False(t, IsFatal(err))
	assert.True(t, stderrors.Is(err, ErrOutOfRange))

	var ce *ClassifiedError
	require.True(t, stderrors.As(err, &ce))
	assert.Equal(t, ErrorInvalid, ce.Class)
	assert.Equal(t, "Store", ce.Component)
	assert.Equal(t, "Index", ce.Operation)
}

func TestStandardVariablesClassifyInvalid(t *testing.T) {
	invalid := []error{
		ErrZeroCapacity,
		ErrNotPowerOfTwo,
		ErrZeroStride,
		ErrZeroRows,
		ErrOutOfRange,
		ErrNilSource,
		ErrWriteTooLong,
		ErrInvalidConfig,
		ErrMissingConfig,
	}

	for _, err := range invalid {
		assert.True(t, IsInvalid(err), "expected %v to classify as invalid", err)
		assert.Equal(t, ErrorInvalid, Classify(err))
	}
}

func TestClassifyDefaults(t *testing.T) {
	assert.Equal(t, ErrorTransient, Classify(nil))
	assert.Equal(t, ErrorTransient, Classify(stderrors.New("mystery")))
	assert.Equal(t, ErrorFatal, Classify(WrapFatal(stderrors.New("bad"), "Ring", "New", "metrics")))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(ErrStopTimeout))
	assert.True(t, IsTransient(WrapTransient(stderrors.New("later"), "Poller", "Stop", "drain")))
	assert.False(t, IsTransient(ErrOutOfRange))
	assert.False(t, IsTransient(nil))
}
