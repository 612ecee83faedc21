// Package errors provides standardized error handling patterns for wax.
//
// # Error Classification
//
// Errors fall into three classes:
//
//   - Invalid: violated call-site contracts and bad configuration (do not retry)
//   - Fatal: unrecoverable states (stop processing)
//   - Transient: temporary conditions (retry may help)
//
// In this library nearly every failure is a contract violation at the call
// site - a zero capacity, an out-of-range index, a write longer than the
// stride - so Invalid dominates. The classification system integrates with
// Go's standard error handling, supporting errors.Is(), errors.As(), and
// error wrapping chains.
//
// Note that the routine read-side outcomes of a ring buffer (empty buffer,
// lapped reader) are NOT handled here. Those are hot-path result
// classifications owned by the ring package as plain sentinel values, because
// they occur constantly under normal operation and must stay cheap to check.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapInvalid(err, "ByteStore", "Write", "length check")
//	errors.WrapFatal(err, "Ring", "New", "metrics registration")
//	errors.WrapTransient(err, "Poller", "Stop", "drain")
//
// The generic Wrap() function adds context without setting a class.
//
// # Standard Error Variables
//
// Use the pre-defined variables instead of creating custom messages:
//
//	if stride == 0 {
//	    return errors.ErrZeroStride
//	}
//
// Classification is preserved through error chains:
//
//	wrapped := errors.WrapInvalid(errors.ErrOutOfRange, "Store", "Index", "bounds check")
//	errors.IsInvalid(wrapped) // true
package errors
