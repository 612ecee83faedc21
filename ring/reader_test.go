package ring

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jaypwindley/wax/errors"
)

func TestReaderEmptyBeforeFirstWrite(t *testing.T) {
	r, err := New[int](4)
	require.NoError(t, err)

	rd := r.NewReader()
	_, err = rd.Get()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.ErrorIs(t, rd.LastError(), ErrEmpty)

	_, err = rd.Peek()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReaderDrainsInWriteOrder(t *testing.T) {
	r, err := New[int](8)
	require.NoError(t, err)

	w := r.NewWriter()
	for i := 0; i < 8; i++ {
		w.Put(i)
	}

	rd := r.NewReader()
	for i := 0; i < 8; i++ {
		v, err := rd.Get()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}

	// Caught up: reader and writer are both back at slot 0 one lap apart.
	_, err = rd.Get()
	assert.ErrorIs(t, err, ErrEmpty)
}

// A reader interleaved with the writer crosses all three positional cases
// (behind, caught up, ahead of the wrapped writer) without ever being
// lapped.
func TestReaderInterleavedAcrossWrap(t *testing.T) {
	r, err := New[string](4)
	require.NoError(t, err)

	w := r.NewWriter()
	rd := r.NewReader()

	w.Put("A")
	w.Put("B")
	w.Put("C")

	v, err := rd.Get()
	require.NoError(t, err)
	assert.Equal(t, "A", v)
	v, err = rd.Get()
	require.NoError(t, err)
	assert.Equal(t, "B", v)

	// D fills the last slot and wraps the writer; E overwrites A, which
	// the reader has already consumed.
	w.Put("D")
	w.Put("E")
	assert.Equal(t, uint64(1), r.Lap())

	// The reader is now positionally ahead of the writer, exactly one lap
	// behind, and drains the survivors in order.
	for _, want := range []string{"C", "D", "E"} {
		v, err = rd.Get()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	_, err = rd.Get()
	assert.ErrorIs(t, err, ErrEmpty)
}

// A reader that never kept up: five writes into a two-slot ring. The
// first read reports the loss and repositions; the next read returns the
// oldest survivor, which is the fourth write.
func TestReaderLappedRepositionsToOldest(t *testing.T) {
	r, err := New[int](2)
	require.NoError(t, err)

	w := r.NewWriter()
	for i := 1; i <= 5; i++ {
		w.Put(i)
	}

	rd := r.NewReader()
	_, err = rd.Get()
	require.ErrorIs(t, err, ErrLapped)
	assert.ErrorIs(t, rd.LastError(), ErrLapped)

	oldest, ok := r.Oldest()
	require.True(t, ok)
	assert.Equal(t, oldest, rd.Position(), "lapped cursor must park at the oldest survivor")

	v, err := rd.Get()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	v, err = rd.Get()
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	_, err = rd.Get()
	assert.ErrorIs(t, err, ErrEmpty)
}

// General form of the lapped property: after N >= 2*capacity writes, a
// stale reader gets exactly one ErrLapped and then the record from write
// number N-capacity.
func TestReaderLappedSurvivorIndex(t *testing.T) {
	const capacity = 4
	const n = 10

	r, err := New[int](capacity)
	require.NoError(t, err)

	w := r.NewWriter()
	for i := 0; i < n; i++ {
		w.Put(i)
	}

	rd := r.NewReader()
	_, err = rd.Get()
	require.ErrorIs(t, err, ErrLapped)

	for want := n - capacity; want < n; want++ {
		v, err := rd.Get()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err = rd.Get()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestPeekDoesNotAdvance(t *testing.T) {
	r, err := New[int](4)
	require.NoError(t, err)

	r.NewWriter().Put(42)
	rd := r.NewReader()

	for i := 0; i < 3; i++ {
		v, err := rd.Peek()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Equal(t, 0, rd.Position())
	}

	v, err := rd.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, rd.Position())
}

func TestPeekLappedRepositions(t *testing.T) {
	r, err := New[int](2)
	require.NoError(t, err)

	w := r.NewWriter()
	for i := 1; i <= 5; i++ {
		w.Put(i)
	}

	rd := r.NewReader()
	_, err = rd.Peek()
	require.ErrorIs(t, err, ErrLapped)

	// The resynchronized peek sees the oldest survivor and still does not
	// consume it.
	v, err := rd.Peek()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	v, err = rd.Peek()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestReaderSwap(t *testing.T) {
	r, err := New[int](4)
	require.NoError(t, err)

	w := r.NewWriter()
	for i := 0; i < 3; i++ {
		w.Put(i)
	}

	rd := r.NewReader()
	v, err := rd.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	// Jump back to slot 0 and re-read it.
	prev, err := rd.Swap(0)
	require.NoError(t, err)
	assert.Equal(t, 1, prev)

	v, err = rd.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	_, err = rd.Swap(4)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
	_, err = rd.Swap(-1)
	require.Error(t, err)
}

func TestReadersAreIndependent(t *testing.T) {
	r, err := New[int](8)
	require.NoError(t, err)

	w := r.NewWriter()
	for i := 0; i < 4; i++ {
		w.Put(i)
	}

	fast := r.NewReader()
	slow := r.NewReader()
	assert.NotEqual(t, fast.ID(), slow.ID())

	for i := 0; i < 4; i++ {
		v, err := fast.Get()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	_, err = fast.Get()
	assert.ErrorIs(t, err, ErrEmpty)

	// The slow reader's cursor did not move.
	v, err := slow.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestLappedCallbackReceivesCursorID(t *testing.T) {
	var gotID atomic.Value
	r, err := New[int](2, WithLappedCallback(func(readerID string) {
		gotID.Store(readerID)
	}))
	require.NoError(t, err)

	w := r.NewWriter()
	for i := 0; i < 5; i++ {
		w.Put(i)
	}

	rd := r.NewReader()
	_, err = rd.Get()
	require.ErrorIs(t, err, ErrLapped)
	assert.Equal(t, rd.ID(), gotID.Load())
}

func TestByteReaderLappedRepositionsToOldest(t *testing.T) {
	r, err := NewBytes(4, 2)
	require.NoError(t, err)

	w := r.NewWriter()
	for _, rec := range []string{"one", "two", "thr", "fou", "fiv"} {
		_, err := w.Put([]byte(rec))
		require.NoError(t, err)
	}

	rd := r.NewReader()
	dst := make([]byte, 4)

	_, err = rd.Get(dst)
	require.ErrorIs(t, err, ErrLapped)

	oldest, ok := r.Oldest()
	require.True(t, ok)
	assert.Equal(t, oldest, rd.Position())

	n, err := rd.Get(dst)
	require.NoError(t, err)
	assert.Equal(t, "fou", string(dst[:3]))
	assert.Equal(t, 4, n)

	_, err = rd.Get(dst)
	require.NoError(t, err)
	assert.Equal(t, "fiv", string(dst[:3]))

	_, err = rd.Get(dst)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestByteReaderSwapAlignment(t *testing.T) {
	r, err := NewBytes(8, 4)
	require.NoError(t, err)

	rd := r.NewReader()

	_, err = rd.Swap(16)
	assert.NoError(t, err)

	_, err = rd.Swap(3)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	_, err = rd.Swap(32)
	require.Error(t, err)
}

// One writer, several readers, each on its own cursor. Every reader must
// observe record values in strictly increasing order: overwrites may make
// it skip, but never go backward or repeat.
func TestConcurrentReadersObserveMonotonicValues(t *testing.T) {
	const total = 10000

	r, err := New[int](64)
	require.NoError(t, err)

	var done atomic.Bool
	var g errgroup.Group

	g.Go(func() error {
		w := r.NewWriter()
		for i := 0; i < total; i++ {
			w.Put(i)
		}
		done.Store(true)
		return nil
	})

	for n := 0; n < 3; n++ {
		g.Go(func() error {
			rd := r.NewReader()
			last := -1
			for {
				v, err := rd.Get()
				switch err {
				case nil:
					if v <= last {
						t.Errorf("reader %s went backward: %d after %d", rd.ID(), v, last)
						return nil
					}
					last = v
				case ErrEmpty:
					if done.Load() {
						return nil
					}
				case ErrLapped:
					// Next Get resumes at the oldest survivor.
				}
			}
		})
	}

	require.NoError(t, g.Wait())
}
