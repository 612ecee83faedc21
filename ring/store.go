package ring

import (
	"unsafe"

	"github.com/jaypwindley/wax/errors"
)

// Store is the typed fixed-capacity backing store. At this level there is
// only the concept of a write cursor: no synchronization, no lap tracking.
// Records of type T live in a contiguous slice allocated once at
// construction and never resized.
//
// Capacity must be a nonzero power of two so that wrap arithmetic reduces
// to a bitmask AND.
type Store[T any] struct {
	slots   []T
	mask    int
	writeAt int
	hasData bool
}

// NewStore creates a typed store with the given slot capacity.
func NewStore[T any](capacity int) (*Store[T], error) {
	if capacity <= 0 {
		return nil, errors.WrapInvalid(errors.ErrZeroCapacity, "Store", "NewStore", "capacity check")
	}
	if capacity&(capacity-1) != 0 {
		return nil, errors.WrapInvalid(errors.ErrNotPowerOfTwo, "Store", "NewStore", "capacity check")
	}

	return &Store[T]{
		slots: make([]T, capacity),
		mask:  capacity - 1,
	}, nil
}

// Capacity returns the number of records the store can hold.
func (s *Store[T]) Capacity() int { return len(s.slots) }

// Storage returns the total backing size in bytes.
func (s *Store[T]) Storage() int {
	var zero T
	return len(s.slots) * int(unsafe.Sizeof(zero))
}

// Write copies one record into the current write slot and advances the
// cursor. It returns the slot index where the record landed, suitable
// for Index.
func (s *Store[T]) Write(rec T) int {
	index := s.writeAt
	s.slots[index] = rec
	s.advance()
	return index
}

// At returns the address of the NEXT slot to be written, without advancing
// the cursor. This is meant to obtain space in the store to be filled
// later, such as by a read from a communications device. When the fill
// completes, call Next to advance the cursor so that subsequent At calls
// return subsequent slots.
func (s *Store[T]) At() *T { return &s.slots[s.writeAt] }

// Next advances the write cursor to the next slot without modifying the
// store contents, and returns the address of the slot just vacated. Used
// with At, this signals the successful end of a deferred write.
func (s *Store[T]) Next() *T {
	at := &s.slots[s.writeAt]
	s.advance()
	return at
}

// Last returns the address of the most recently written slot. The second
// return value is false if nothing has ever been written.
func (s *Store[T]) Last() (*T, bool) {
	if !s.hasData {
		return nil, false
	}
	idx := (s.writeAt - 1 + len(s.slots)) & s.mask
	return &s.slots[idx], true
}

// Index returns the address of the slot at index i, failing when i is
// outside [0, capacity).
func (s *Store[T]) Index(i int) (*T, error) {
	if i < 0 || i >= len(s.slots) {
		return nil, errors.WrapInvalid(errors.ErrOutOfRange, "Store", "Index", "bounds check")
	}
	return &s.slots[i], nil
}

// FindIn scans slots [0, limit) for the first record satisfying match and
// returns its index. The second return value is false when there is no
// match, the store has never been written, or the bound is inverted.
//
// FindIn is not synchronized; see Ring.Find for the lap-aware bound.
func (s *Store[T]) FindIn(limit int, match MatchFunc[T]) (int, bool) {
	if !s.hasData || limit <= 0 || limit > len(s.slots) {
		return 0, false
	}
	for i := 0; i < limit; i++ {
		if match(s.slots[i]) {
			return i, true
		}
	}
	return 0, false
}

func (s *Store[T]) advance() {
	s.writeAt = (s.writeAt + 1) & s.mask
	s.hasData = true
}

func (s *Store[T]) wrap(i int) int { return i & s.mask }
