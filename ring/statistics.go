package ring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks ring activity with atomic counters. A Statistics
// instance is always attached to every synchronized ring, independent of
// whether Prometheus export is enabled, so basic observability never
// requires external infrastructure.
type Statistics struct {
	writes      int64
	laps        int64
	reads       int64
	peeks       int64
	emptyReads  int64
	lappedReads int64

	mu        sync.RWMutex
	startTime time.Time
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// Write records a committed write.
func (s *Statistics) Write() {
	atomic.AddInt64(&s.writes, 1)
}

// Lap records a completed traversal of the ring by the write cursor.
func (s *Statistics) Lap() {
	atomic.AddInt64(&s.laps, 1)
}

// Read records a successful consuming read.
func (s *Statistics) Read() {
	atomic.AddInt64(&s.reads, 1)
}

// Peek records a successful non-consuming read.
func (s *Statistics) Peek() {
	atomic.AddInt64(&s.peeks, 1)
}

// EmptyRead records a read attempt that found nothing new.
func (s *Statistics) EmptyRead() {
	atomic.AddInt64(&s.emptyReads, 1)
}

// LappedRead records a read attempt that detected overwritten data.
func (s *Statistics) LappedRead() {
	atomic.AddInt64(&s.lappedReads, 1)
}

// Writes returns the total number of committed writes.
func (s *Statistics) Writes() int64 {
	return atomic.LoadInt64(&s.writes)
}

// Laps returns the total number of write-cursor wraps.
func (s *Statistics) Laps() int64 {
	return atomic.LoadInt64(&s.laps)
}

// Reads returns the total number of successful consuming reads.
func (s *Statistics) Reads() int64 {
	return atomic.LoadInt64(&s.reads)
}

// Peeks returns the total number of successful non-consuming reads.
func (s *Statistics) Peeks() int64 {
	return atomic.LoadInt64(&s.peeks)
}

// EmptyReads returns the total number of empty read attempts.
func (s *Statistics) EmptyReads() int64 {
	return atomic.LoadInt64(&s.emptyReads)
}

// LappedReads returns the total number of reads that detected data loss.
func (s *Statistics) LappedReads() int64 {
	return atomic.LoadInt64(&s.lappedReads)
}

// WriteThroughput returns the average number of writes per second since
// the tracker started.
func (s *Statistics) WriteThroughput() float64 {
	s.mu.RLock()
	elapsed := time.Since(s.startTime)
	s.mu.RUnlock()

	if elapsed == 0 {
		return 0.0
	}
	return float64(s.Writes()) / elapsed.Seconds()
}

// ReadThroughput returns the average number of successful reads per
// second since the tracker started.
func (s *Statistics) ReadThroughput() float64 {
	s.mu.RLock()
	elapsed := time.Since(s.startTime)
	s.mu.RUnlock()

	if elapsed == 0 {
		return 0.0
	}
	return float64(s.Reads()) / elapsed.Seconds()
}

// LappedRate returns the fraction of read attempts that detected data
// loss (0.0 to 1.0). A rising rate means readers are not keeping up with
// the writer.
func (s *Statistics) LappedRate() float64 {
	attempts := s.Reads() + s.EmptyReads() + s.LappedReads()
	if attempts == 0 {
		return 0.0
	}
	return float64(s.LappedReads()) / float64(attempts)
}

// Uptime returns how long the tracker has been running.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	atomic.StoreInt64(&s.writes, 0)
	atomic.StoreInt64(&s.laps, 0)
	atomic.StoreInt64(&s.reads, 0)
	atomic.StoreInt64(&s.peeks, 0)
	atomic.StoreInt64(&s.emptyReads, 0)
	atomic.StoreInt64(&s.lappedReads, 0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.mu.Unlock()
}

// Summary is a point-in-time snapshot of all statistics.
type Summary struct {
	Writes          int64         `json:"writes"`
	Laps            int64         `json:"laps"`
	Reads           int64         `json:"reads"`
	Peeks           int64         `json:"peeks"`
	EmptyReads      int64         `json:"empty_reads"`
	LappedReads     int64         `json:"lapped_reads"`
	WriteThroughput float64       `json:"write_throughput"`
	ReadThroughput  float64       `json:"read_throughput"`
	LappedRate      float64       `json:"lapped_rate"`
	Uptime          time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() Summary {
	return Summary{
		Writes:          s.Writes(),
		Laps:            s.Laps(),
		Reads:           s.Reads(),
		Peeks:           s.Peeks(),
		EmptyReads:      s.EmptyReads(),
		LappedReads:     s.LappedReads(),
		WriteThroughput: s.WriteThroughput(),
		ReadThroughput:  s.ReadThroughput(),
		LappedRate:      s.LappedRate(),
		Uptime:          s.Uptime(),
	}
}
