package ring

import (
	"sync"

	"github.com/jaypwindley/wax/errors"
)

// Ring is the practical, synchronized ring buffer over a typed Store. It
// adds a mutex, a monotonic lap counter, and lap detection for readers.
// Obtain cursors with NewWriter and NewReader.
//
// The design assumes a single logical writer. Any number of readers may
// drain concurrently, each at its own pace; a reader that falls a full lap
// behind loses data and is told so via ErrLapped. The writer is never
// blocked or refused.
type Ring[T any] struct {
	mu    sync.Mutex
	store *Store[T]
	lap   uint64

	stats   *Statistics
	metrics *ringMetrics
	opts    *ringOptions
}

// New creates a synchronized ring with the given slot capacity, which must
// be a nonzero power of two.
func New[T any](capacity int, options ...Option) (*Ring[T], error) {
	store, err := NewStore[T](capacity)
	if err != nil {
		return nil, err
	}

	opts := applyOptions(options...)

	metrics, err := maybeMetrics(opts)
	if err != nil {
		return nil, errors.WrapFatal(err, "Ring", "New", "metrics registration")
	}

	return &Ring[T]{
		store:   store,
		stats:   NewStatistics(),
		metrics: metrics,
		opts:    opts,
	}, nil
}

// Capacity returns the number of records the ring can hold.
func (r *Ring[T]) Capacity() int { return r.store.Capacity() }

// Storage returns the total backing size in bytes.
func (r *Ring[T]) Storage() int { return r.store.Storage() }

// Lap returns how many times the write cursor has wrapped to the start.
func (r *Ring[T]) Lap() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lap
}

// Oldest returns the index of the least-recently-written record still in
// the ring. The second return value is false if nothing has ever been
// written.
func (r *Ring[T]) Oldest() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.oldestLocked()
}

// Stats returns ring statistics, always collected.
func (r *Ring[T]) Stats() *Statistics { return r.stats }

// NewWriter returns a write cursor bound to this ring. The write position
// is shared ring state, so all writers on one ring advance each other;
// create more than one only if you know what you are doing.
func (r *Ring[T]) NewWriter() *Writer[T] { return &Writer[T]{r: r} }

// NewReader returns an independent read cursor positioned at slot 0.
// A Reader must not be shared between goroutines.
func (r *Ring[T]) NewReader() *Reader[T] {
	return &Reader[T]{r: r, id: newCursorID()}
}

// Find scans for the first record satisfying match, bounding the scan to
// slots that have actually been written: [0, write position) until the
// ring has wrapped, the full capacity afterward. It returns the matching
// index, or false if the ring is empty or nothing matches.
//
// The scan itself runs outside the ring lock: under concurrent writes the
// result is best-effort, and a caller needing a point-in-time-consistent
// view must impose its own synchronization.
func (r *Ring[T]) Find(match MatchFunc[T]) (int, bool) {
	r.mu.Lock()
	limit := r.store.writeAt
	if r.lap > 0 {
		limit = r.store.Capacity()
	}
	r.mu.Unlock()

	return r.store.FindIn(limit, match)
}

// oldestLocked computes the oldest valid slot index. Once the ring has
// wrapped, the slot the writer is about to overwrite next is always the
// least-recently-written survivor.
func (r *Ring[T]) oldestLocked() (int, bool) {
	if !r.store.hasData {
		return 0, false
	}
	if r.lap == 0 {
		return 0, true
	}
	return r.store.writeAt, true
}

// commitLocked advances the shared write cursor and maintains the lap
// counter. This is the sole place lap changes.
func (r *Ring[T]) commitLocked() {
	r.store.Next()
	wrapped := r.store.writeAt == 0
	if wrapped {
		r.lap++
		r.stats.Lap()
	}
	r.stats.Write()
	if r.metrics != nil {
		r.metrics.recordWrite(r.lap, r.store.writeAt, wrapped)
	}
}

// ByteRing is the synchronized ring buffer over a ByteStore. Cursor
// semantics are identical to Ring; only the addressing unit differs
// (byte offsets in stride multiples rather than slot indexes).
type ByteRing struct {
	mu    sync.Mutex
	store *ByteStore
	lap   uint64

	stats   *Statistics
	metrics *ringMetrics
	opts    *ringOptions
}

// NewBytes creates a synchronized byte-stride ring holding rows records of
// stride bytes each.
func NewBytes(stride, rows int, options ...Option) (*ByteRing, error) {
	store, err := NewByteStore(stride, rows)
	if err != nil {
		return nil, err
	}

	opts := applyOptions(options...)

	metrics, err := maybeMetrics(opts)
	if err != nil {
		return nil, errors.WrapFatal(err, "ByteRing", "NewBytes", "metrics registration")
	}

	return &ByteRing{
		store:   store,
		stats:   NewStatistics(),
		metrics: metrics,
		opts:    opts,
	}, nil
}

// Capacity returns the number of records the ring can hold.
func (r *ByteRing) Capacity() int { return r.store.Capacity() }

// Storage returns the total backing size in bytes.
func (r *ByteRing) Storage() int { return r.store.Storage() }

// Stride returns the fixed byte size of one record.
func (r *ByteRing) Stride() int { return r.store.Stride() }

// Lap returns how many times the write cursor has wrapped to the start.
func (r *ByteRing) Lap() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lap
}

// Oldest returns the byte offset of the least-recently-written record
// still in the ring. The second return value is false if nothing has ever
// been written.
func (r *ByteRing) Oldest() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.oldestLocked()
}

// Stats returns ring statistics, always collected.
func (r *ByteRing) Stats() *Statistics { return r.stats }

// NewWriter returns a write cursor bound to this ring.
func (r *ByteRing) NewWriter() *ByteWriter { return &ByteWriter{r: r} }

// NewReader returns an independent read cursor positioned at offset 0.
// A ByteReader must not be shared between goroutines.
func (r *ByteRing) NewReader() *ByteReader {
	return &ByteReader{r: r, id: newCursorID()}
}

// Find scans row by row for the first record satisfying match, with the
// same lap-aware bound and best-effort consistency as Ring.Find. It
// returns the matching byte offset.
func (r *ByteRing) Find(match func([]byte) bool) (int, bool) {
	r.mu.Lock()
	limit := r.store.writeAt
	if r.lap > 0 {
		limit = r.store.Storage()
	}
	r.mu.Unlock()

	return r.store.FindIn(limit, match)
}

func (r *ByteRing) oldestLocked() (int, bool) {
	if !r.store.hasData {
		return 0, false
	}
	if r.lap == 0 {
		return 0, true
	}
	return r.store.writeAt, true
}

func (r *ByteRing) commitLocked() {
	r.store.Next()
	wrapped := r.store.writeAt == 0
	if wrapped {
		r.lap++
		r.stats.Lap()
	}
	r.stats.Write()
	if r.metrics != nil {
		r.metrics.recordWrite(r.lap, r.store.writeAt, wrapped)
	}
}
