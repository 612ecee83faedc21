// Package ring provides fixed-capacity circular buffers with lap
// detection, for high-rate producer/consumer data where overwrite is
// acceptable but must never pass unnoticed.
//
// # Design
//
// A single writer appends records continuously; any number of independent
// readers drain at their own pace. The writer is never blocked, slowed,
// or refused by a full ring - it always succeeds by overwriting the
// oldest record. A reader that falls a full lap behind therefore loses
// data, and the ring tells it so explicitly: the next read returns
// ErrLapped, the cursor repositions itself to the oldest surviving
// record, and the following read makes forward progress. Bounded memory
// and bounded writer latency are bought at the price of possible data
// loss for slow readers, surfaced rather than hidden.
//
// Two realizations share identical cursor semantics:
//
//   - Ring[T]: records are a fixed type known at construction; capacity
//     must be a power of two so wrap arithmetic is a bitmask AND.
//   - ByteRing: records are opaque spans of at most stride bytes, for
//     heterogeneous or runtime-chosen contents; positions are byte
//     offsets and wrap is modulo stride*rows.
//
// The unsynchronized Store and ByteStore underneath own the backing
// memory and the raw write cursor; the synchronized rings add one mutex,
// a monotonic lap counter, and the lap-detection protocol.
//
// # Usage
//
//	r, err := ring.New[Sample](1024)
//	if err != nil {
//		return err
//	}
//
//	w := r.NewWriter()
//	w.Put(sample)            // copy write
//
//	*w.Ptr() = sample        // deferred write: reserve, fill, commit
//	w.Ready()
//
//	rd := r.NewReader()
//	for {
//		s, err := rd.Get()
//		switch err {
//		case nil:
//			consume(s)
//		case ring.ErrEmpty:
//			return nil // caught up
//		case ring.ErrLapped:
//			lost++ // next Get returns the oldest survivor
//		}
//	}
//
// # Concurrency
//
// All cursor operations that touch shared state take the ring's mutex for
// an O(1), allocation-free critical section; no I/O or user callback runs
// under the lock. Readers never block the writer and never block each
// other beyond that. Reads are poll-based: an empty ring yields ErrEmpty
// immediately, there is no blocking read mode. A single cursor object is
// not safe for concurrent use from several goroutines - one cursor, one
// consuming goroutine. Ring.Find releases the lock before scanning, so
// its result is best-effort under concurrent writes.
//
// # Observability
//
// Every synchronized ring carries always-on atomic Statistics (writes,
// laps, reads, empty reads, lapped reads, throughput). Prometheus export
// is opt-in via WithMetrics and tracks the same events independently, so
// basic observability never depends on a metrics backend.
package ring
