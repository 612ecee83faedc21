package ring

import (
	"testing"

	"github.com/valyala/fastrand"
)

type sample struct {
	Seq   uint64
	Value float64
}

func BenchmarkWriterPut(b *testing.B) {
	r, err := New[sample](1024)
	if err != nil {
		b.Fatal(err)
	}
	w := r.NewWriter()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Put(sample{Seq: uint64(i), Value: float64(fastrand.Uint32())})
	}
}

func BenchmarkWriterDeferred(b *testing.B) {
	r, err := New[sample](1024)
	if err != nil {
		b.Fatal(err)
	}
	w := r.NewWriter()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := w.Ptr()
		p.Seq = uint64(i)
		p.Value = float64(fastrand.Uint32())
		w.Ready()
	}
}

func BenchmarkReaderGet(b *testing.B) {
	r, err := New[sample](1024)
	if err != nil {
		b.Fatal(err)
	}
	w := r.NewWriter()
	rd := r.NewReader()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Put(sample{Seq: uint64(i)})
		if _, err := rd.Get(); err != nil {
			b.Fatal(err)
		}
	}
}

// One writer goroutine feeding the ring while every benchmark goroutine
// drains through its own cursor. ErrEmpty and ErrLapped are part of the
// normal read loop here, not failures.
func BenchmarkParallelReaders(b *testing.B) {
	r, err := New[sample](4096)
	if err != nil {
		b.Fatal(err)
	}

	stop := make(chan struct{})
	go func() {
		w := r.NewWriter()
		var seq uint64
		for {
			select {
			case <-stop:
				return
			default:
				seq++
				w.Put(sample{Seq: seq})
			}
		}
	}()
	defer close(stop)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		rd := r.NewReader()
		for pb.Next() {
			_, _ = rd.Get()
		}
	})
}

func BenchmarkByteWriterPut(b *testing.B) {
	const stride = 64

	r, err := NewBytes(stride, 1024)
	if err != nil {
		b.Fatal(err)
	}
	w := r.NewWriter()

	rec := make([]byte, stride)
	var rng fastrand.RNG
	for i := range rec {
		rec[i] = byte(rng.Uint32())
	}

	b.SetBytes(stride)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := w.Put(rec); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkByteReaderGet(b *testing.B) {
	const stride = 64

	r, err := NewBytes(stride, 1024)
	if err != nil {
		b.Fatal(err)
	}
	w := r.NewWriter()
	rd := r.NewReader()

	rec := make([]byte, stride)
	dst := make([]byte, stride)

	b.SetBytes(stride)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := w.Put(rec); err != nil {
			b.Fatal(err)
		}
		if _, err := rd.Get(dst); err != nil {
			b.Fatal(err)
		}
	}
}
