package ring

import (
	"github.com/jaypwindley/wax/errors"
)

// Writer is a write cursor bound to a Ring. It carries no position of its
// own: the write position lives on the shared ring, so writing through one
// Writer advances the position seen by all writers on that ring. The
// design assumes a single logical writer; with more than one, the index
// bookkeeping stays consistent but which writer's record lands in which
// slot is unspecified.
type Writer[T any] struct {
	r *Ring[T]
}

// Ptr returns the address of the current write slot. It is meant to be
// used with Ready to implement deferred writes, such as from a network:
// call Ptr to obtain a place to put the record when it becomes available,
// fill it, then call Ready to commit the advance.
func (w *Writer[T]) Ptr() *T {
	w.r.mu.Lock()
	defer w.r.mu.Unlock()
	return w.r.store.At()
}

// Ready advances the shared write position, completing a deferred write
// started with Ptr. If the advance wraps to the first slot, the ring's lap
// counter increments.
func (w *Writer[T]) Ready() {
	w.r.mu.Lock()
	defer w.r.mu.Unlock()
	w.r.commitLocked()
}

// Put copies one record into the ring at the current write position and
// advances, returning the slot index where the record landed. It is the
// atomic composition of Ptr, fill, and Ready.
func (w *Writer[T]) Put(rec T) int {
	w.r.mu.Lock()
	defer w.r.mu.Unlock()

	index := w.r.store.writeAt
	*w.r.store.At() = rec
	w.r.commitLocked()
	return index
}

// ByteWriter is a write cursor bound to a ByteRing.
type ByteWriter struct {
	r *ByteRing
}

// Ptr returns the current write row. Used with Ready to implement
// deferred writes.
func (w *ByteWriter) Ptr() []byte {
	w.r.mu.Lock()
	defer w.r.mu.Unlock()
	return w.r.store.At()
}

// Ready advances the shared write position, completing a deferred write
// started with Ptr.
func (w *ByteWriter) Ready() {
	w.r.mu.Lock()
	defer w.r.mu.Unlock()
	w.r.commitLocked()
}

// Put copies len(src) bytes into the ring at the current write position
// and advances, returning the byte offset where writing began. The write
// fails if src is nil or longer than the stride.
func (w *ByteWriter) Put(src []byte) (int, error) {
	if src == nil {
		return 0, errors.WrapInvalid(errors.ErrNilSource, "ByteWriter", "Put", "source check")
	}
	if len(src) > w.r.store.Stride() {
		return 0, errors.WrapInvalid(errors.ErrWriteTooLong, "ByteWriter", "Put", "length check")
	}

	w.r.mu.Lock()
	defer w.r.mu.Unlock()

	offset := w.r.store.writeAt
	copy(w.r.store.At(), src)
	w.r.commitLocked()
	return offset, nil
}
