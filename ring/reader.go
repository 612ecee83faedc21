package ring

import (
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/jaypwindley/wax/errors"
)

// Read outcomes. These are routine results on the hot path, not failures:
// an empty ring at startup and a lapped reader under load both occur
// constantly in normal operation, so they are plain sentinels that cost
// one comparison to check and are never wrapped.
var (
	// ErrEmpty reports that there is nothing new to read.
	ErrEmpty = stderrors.New("ring: empty")

	// ErrLapped reports that the writer overwrote this reader's next
	// unread record. The cursor has already repositioned itself to the
	// oldest surviving record, so the next call makes forward progress.
	ErrLapped = stderrors.New("ring: reader lapped")
)

func newCursorID() string { return uuid.NewString() }

// Reader is an independent read cursor on a Ring. Each Reader holds its
// own position and its own belief about the current lap; any number may
// exist on one ring, but a single Reader must not be used from more than
// one goroutine at a time.
//
// A Reader holds a reference to its ring and is valid for as long as it
// is reachable; the ring's storage cannot be released out from under it.
type Reader[T any] struct {
	r           *Ring[T]
	id          string
	readAt      int
	believedLap uint64
	lastErr     error
}

// ID returns a unique identifier for this cursor, useful as a log or
// metric label when several readers drain one ring.
func (rd *Reader[T]) ID() string { return rd.id }

// LastError returns the outcome of the most recent Peek or Get: nil,
// ErrEmpty, or ErrLapped.
func (rd *Reader[T]) LastError() error { return rd.lastErr }

// Position returns the slot index this cursor will consume next.
func (rd *Reader[T]) Position() int { return rd.readAt }

// Peek returns the record at the current read position without advancing.
// Repeated calls return the same record. On ErrEmpty or ErrLapped no
// record is returned.
func (rd *Reader[T]) Peek() (T, error) {
	var zero T

	rd.r.mu.Lock()
	p, err := rd.peekLocked()
	if err != nil {
		rd.r.mu.Unlock()
		rd.outcome(err)
		return zero, err
	}
	val := *p
	rd.r.mu.Unlock()

	rd.lastErr = nil
	rd.r.stats.Peek()
	if m := rd.r.metrics; m != nil {
		m.recordPeek()
	}
	return val, nil
}

// Get returns the record at the current read position and advances the
// cursor, wrapping and counting its own lap as needed. On ErrLapped the
// cursor has repositioned to the oldest surviving record; calling Get
// again retrieves it.
func (rd *Reader[T]) Get() (T, error) {
	var zero T

	rd.r.mu.Lock()
	p, err := rd.peekLocked()
	if err != nil {
		rd.r.mu.Unlock()
		rd.outcome(err)
		return zero, err
	}
	val := *p
	rd.readAt = rd.r.store.wrap(rd.readAt + 1)
	if rd.readAt == 0 {
		rd.believedLap++
	}
	rd.r.mu.Unlock()

	rd.lastErr = nil
	rd.r.stats.Read()
	if m := rd.r.metrics; m != nil {
		m.recordRead()
	}
	return val, nil
}

// Swap repositions the cursor to an arbitrary slot index and returns the
// previous position. It fails if the index is outside [0, capacity). The
// cursor's lap belief is left alone, so jumping across the write position
// may legitimately surface ErrLapped on the next access.
func (rd *Reader[T]) Swap(index int) (int, error) {
	if index < 0 || index >= rd.r.store.Capacity() {
		return 0, errors.WrapInvalid(errors.ErrOutOfRange, "Reader", "Swap", "bounds check")
	}
	prev := rd.readAt
	rd.readAt = index
	return prev, nil
}

// peekLocked runs the lap-detection protocol and returns the address of
// the record at the read position, or the outcome sentinel. Called with
// the ring lock held; on ErrLapped it has already resynchronized the
// cursor to a valid, bounded position.
func (rd *Reader[T]) peekLocked() (*T, error) {
	r := rd.r

	if !r.store.hasData {
		return nil, ErrEmpty
	}

	switch {
	case rd.readAt < r.store.writeAt:
		// Reading behind the writer within the same wrap is only valid
		// on the same lap. A smaller lap means everything up to the
		// write position has been overwritten at least once: park the
		// cursor one lap behind at the oldest surviving record.
		if rd.believedLap < r.lap {
			rd.believedLap = r.lap - 1
			rd.readAt, _ = r.oldestLocked()
			return nil, ErrLapped
		}

	case rd.readAt == r.store.writeAt:
		// Caught up to the writer. Equal laps means nothing new.
		// Exactly one lap behind means the next record is the oldest
		// survivor, which is fine. Further behind means lapped.
		if rd.believedLap == r.lap {
			return nil, ErrEmpty
		}
		if rd.believedLap+1 < r.lap {
			rd.believedLap = r.lap - 1
			rd.readAt, _ = r.oldestLocked()
			return nil, ErrLapped
		}

	default: // rd.readAt > r.store.writeAt
		// Ahead of the writer's wrap position: valid only when reading
		// trailing records from the previous lap that the writer has
		// not reached again, i.e. exactly one lap behind.
		if rd.believedLap+1 != r.lap {
			rd.believedLap = r.lap
			rd.readAt, _ = r.oldestLocked()
			return nil, ErrLapped
		}
	}

	return &r.store.slots[rd.readAt], nil
}

// outcome records a non-data result. Runs outside the ring lock so the
// lapped callback cannot deadlock against ring operations.
func (rd *Reader[T]) outcome(err error) {
	rd.lastErr = err
	switch err {
	case ErrEmpty:
		rd.r.stats.EmptyRead()
		if m := rd.r.metrics; m != nil {
			m.recordEmpty()
		}
	case ErrLapped:
		rd.r.stats.LappedRead()
		if m := rd.r.metrics; m != nil {
			m.recordLapped()
		}
		if cb := rd.r.opts.lappedCallback; cb != nil {
			cb(rd.id)
		}
	}
}

// ByteReader is an independent read cursor on a ByteRing. Semantics match
// Reader exactly; positions are byte offsets in stride multiples.
type ByteReader struct {
	r           *ByteRing
	id          string
	readAt      int
	believedLap uint64
	lastErr     error
}

// ID returns a unique identifier for this cursor.
func (rd *ByteReader) ID() string { return rd.id }

// LastError returns the outcome of the most recent Peek or Get: nil,
// ErrEmpty, or ErrLapped.
func (rd *ByteReader) LastError() error { return rd.lastErr }

// Position returns the byte offset this cursor will consume next.
func (rd *ByteReader) Position() int { return rd.readAt }

// Peek copies the record at the current read position into dst without
// advancing, returning the number of bytes copied (at most one stride).
func (rd *ByteReader) Peek(dst []byte) (int, error) {
	rd.r.mu.Lock()
	row, err := rd.peekLocked()
	if err != nil {
		rd.r.mu.Unlock()
		rd.outcome(err)
		return 0, err
	}
	n := copy(dst, row)
	rd.r.mu.Unlock()

	rd.lastErr = nil
	rd.r.stats.Peek()
	if m := rd.r.metrics; m != nil {
		m.recordPeek()
	}
	return n, nil
}

// Get copies the record at the current read position into dst and
// advances the cursor, returning the number of bytes copied. The copy is
// taken under the ring lock, so dst never observes a torn record even
// while the writer is running.
func (rd *ByteReader) Get(dst []byte) (int, error) {
	rd.r.mu.Lock()
	row, err := rd.peekLocked()
	if err != nil {
		rd.r.mu.Unlock()
		rd.outcome(err)
		return 0, err
	}
	n := copy(dst, row)
	rd.readAt = rd.r.store.wrap(rd.readAt + rd.r.store.stride)
	if rd.readAt == 0 {
		rd.believedLap++
	}
	rd.r.mu.Unlock()

	rd.lastErr = nil
	rd.r.stats.Read()
	if m := rd.r.metrics; m != nil {
		m.recordRead()
	}
	return n, nil
}

// Swap repositions the cursor to an arbitrary row-aligned byte offset and
// returns the previous position. It fails if the offset is outside
// [0, storage) or not a stride multiple.
func (rd *ByteReader) Swap(offset int) (int, error) {
	if offset < 0 || offset >= rd.r.store.Storage() || offset%rd.r.store.Stride() != 0 {
		return 0, errors.WrapInvalid(errors.ErrOutOfRange, "ByteReader", "Swap", "bounds check")
	}
	prev := rd.readAt
	rd.readAt = offset
	return prev, nil
}

func (rd *ByteReader) peekLocked() ([]byte, error) {
	r := rd.r

	if !r.store.hasData {
		return nil, ErrEmpty
	}

	switch {
	case rd.readAt < r.store.writeAt:
		if rd.believedLap < r.lap {
			rd.believedLap = r.lap - 1
			rd.readAt, _ = r.oldestLocked()
			return nil, ErrLapped
		}

	case rd.readAt == r.store.writeAt:
		if rd.believedLap == r.lap {
			return nil, ErrEmpty
		}
		if rd.believedLap+1 < r.lap {
			rd.believedLap = r.lap - 1
			rd.readAt, _ = r.oldestLocked()
			return nil, ErrLapped
		}

	default: // rd.readAt > r.store.writeAt
		if rd.believedLap+1 != r.lap {
			rd.believedLap = r.lap
			rd.readAt, _ = r.oldestLocked()
			return nil, ErrLapped
		}
	}

	return r.store.row(rd.readAt), nil
}

func (rd *ByteReader) outcome(err error) {
	rd.lastErr = err
	switch err {
	case ErrEmpty:
		rd.r.stats.EmptyRead()
		if m := rd.r.metrics; m != nil {
			m.recordEmpty()
		}
	case ErrLapped:
		rd.r.stats.LappedRead()
		if m := rd.r.metrics; m != nil {
			m.recordLapped()
		}
		if cb := rd.r.opts.lappedCallback; cb != nil {
			cb(rd.id)
		}
	}
}
