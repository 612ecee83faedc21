package ring

import (
	"github.com/jaypwindley/wax/errors"
)

// ByteStore is the byte-stride fixed-capacity backing store. It holds
// anonymous contents: each record is an opaque span of at most stride
// bytes, for cases where the record type is heterogeneous or chosen at
// runtime. Prefer the typed Store where the record type is known.
//
// Positions in a ByteStore are byte offsets that are always multiples of
// the stride; wrap arithmetic is modulo stride*rows.
type ByteStore struct {
	buf     []byte
	stride  int
	rows    int
	writeAt int
	hasData bool
}

// NewByteStore creates a byte-stride store holding rows records of stride
// bytes each.
func NewByteStore(stride, rows int) (*ByteStore, error) {
	if stride <= 0 {
		return nil, errors.WrapInvalid(errors.ErrZeroStride, "ByteStore", "NewByteStore", "stride check")
	}
	if rows <= 0 {
		return nil, errors.WrapInvalid(errors.ErrZeroRows, "ByteStore", "NewByteStore", "row count check")
	}

	return &ByteStore{
		buf:    make([]byte, stride*rows),
		stride: stride,
		rows:   rows,
	}, nil
}

// Capacity returns the number of records the store can hold.
func (s *ByteStore) Capacity() int { return s.rows }

// Storage returns the total backing size in bytes.
func (s *ByteStore) Storage() int { return len(s.buf) }

// Stride returns the fixed byte size of one record.
func (s *ByteStore) Stride() int { return s.stride }

// Write copies len(src) bytes into the current write row and advances the
// cursor. It returns the byte offset where writing began, suitable for
// Index. The write fails if src is nil or longer than the stride; a short
// write leaves the remainder of the row untouched.
func (s *ByteStore) Write(src []byte) (int, error) {
	if src == nil {
		return 0, errors.WrapInvalid(errors.ErrNilSource, "ByteStore", "Write", "source check")
	}
	if len(src) > s.stride {
		return 0, errors.WrapInvalid(errors.ErrWriteTooLong, "ByteStore", "Write", "length check")
	}
	offset := s.writeAt
	copy(s.row(offset), src)
	s.advance()
	return offset, nil
}

// At returns the NEXT row to be written, without advancing the cursor.
// Used with Next to implement deferred writes.
func (s *ByteStore) At() []byte { return s.row(s.writeAt) }

// Next advances the write cursor to the next row without modifying the
// store contents, and returns the row just vacated.
func (s *ByteStore) Next() []byte {
	at := s.row(s.writeAt)
	s.advance()
	return at
}

// Last returns the most recently written row. The second return value is
// false if nothing has ever been written.
func (s *ByteStore) Last() ([]byte, bool) {
	if !s.hasData {
		return nil, false
	}
	return s.row(s.wrap(s.writeAt - s.stride + len(s.buf))), true
}

// Index returns the bytes starting at the given offset, failing when the
// offset is outside [0, storage). Offsets produced by Write and Oldest are
// row-aligned; for those the returned slice is exactly one row.
func (s *ByteStore) Index(offset int) ([]byte, error) {
	if offset < 0 || offset >= len(s.buf) {
		return nil, errors.WrapInvalid(errors.ErrOutOfRange, "ByteStore", "Index", "bounds check")
	}
	end := offset + s.stride
	if end > len(s.buf) {
		end = len(s.buf)
	}
	return s.buf[offset:end], nil
}

// FindIn scans rows at byte offsets [0, limit) for the first row
// satisfying match and returns its offset. The second return value is
// false when there is no match, the store has never been written, or the
// bound is inverted.
//
// FindIn is not synchronized; see ByteRing.Find for the lap-aware bound.
func (s *ByteStore) FindIn(limit int, match func([]byte) bool) (int, bool) {
	if !s.hasData || limit <= 0 || limit > len(s.buf) {
		return 0, false
	}
	for off := 0; off < limit; off += s.stride {
		if match(s.row(off)) {
			return off, true
		}
	}
	return 0, false
}

func (s *ByteStore) row(offset int) []byte {
	return s.buf[offset : offset+s.stride]
}

func (s *ByteStore) advance() {
	s.writeAt = s.wrap(s.writeAt + s.stride)
	s.hasData = true
}

func (s *ByteStore) wrap(i int) int { return i % len(s.buf) }
