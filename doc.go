// Package wax provides fixed-capacity, overwrite-tolerant data
// structures and the small runtime pieces that usually surround them.
//
// # Philosophy
//
// The library is built for high-rate telemetry and instrumentation
// paths where the producer must never block and memory must never grow:
// a writer always succeeds, a slow consumer loses data, and the loss is
// always detected and reported rather than hidden. Everything else in
// the module exists to make that contract practical in production.
//
// # Packages
//
// Core:
//   - ring: lapping ring buffers. A typed, power-of-two variant and a
//     byte-stride variant share one cursor protocol: single writer,
//     independent readers, lap detection with self-healing cursors.
//
// Runtime:
//   - poller: interval-driven service loops, including adapters that
//     drain a ring into downstream work at a bounded rate.
//   - stopwatch: real-time and CPU-time measurement with lap readings
//     at caller-chosen resolutions.
//
// Infrastructure:
//   - config: strict YAML configuration for ring geometry, metrics,
//     and poller cadence.
//   - metric: Prometheus registry and exposition endpoint.
//   - errors: classified errors (transient, invalid, fatal) and the
//     module's standard error variables.
//
// # Usage
//
//	r, err := ring.New[Sample](4096)
//	if err != nil {
//		return err
//	}
//
//	w := r.NewWriter()
//	go acquire(w) // w.Put(sample), never blocks
//
//	rd := r.NewReader()
//	p, err := poller.New("drain", poller.Drain(rd, nil, consume),
//		poller.WithInterval(10*time.Millisecond))
//	if err != nil {
//		return err
//	}
//	if err := p.Start(ctx); err != nil {
//		return err
//	}
//	defer p.Stop(5 * time.Second)
//
// # Design Principles
//
// Loss over latency:
//   - The writer is never blocked, throttled, or refused.
//   - Readers absorb the cost of falling behind, and are told when
//     they have.
//
// Observability without infrastructure:
//   - Atomic statistics are always on.
//   - Prometheus export is opt-in and never required for correctness.
//
// Small surface:
//   - Rings know nothing about pollers, metrics backends, or config
//     files; each concern layers on through options and adapters.
package wax
