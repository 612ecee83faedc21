package poller

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/jaypwindley/wax/ring"
)

// Drain returns a service function that empties a ring reader each tick,
// delivering every record to handle. The returned Func:
//
//   - stops the tick early when the limiter runs out of tokens, resuming
//     next tick, so a fast writer cannot monopolize the poller;
//   - skips past data loss (the reader self-heals on ErrLapped);
//   - yields on ErrEmpty until the next tick.
//
// A nil limiter means unpaced draining. A handle error ends the current
// tick but not the poller; delivery resumes next tick with the cursor
// still positioned at the failed record's successor.
func Drain[T any](rd *ring.Reader[T], limiter *rate.Limiter, handle func(T) error) Func {
	return func(ctx context.Context) Result {
		for {
			if ctx.Err() != nil {
				return Stop
			}
			if limiter != nil && !limiter.Allow() {
				return OK
			}

			rec, err := rd.Get()
			switch err {
			case nil:
				if handle(rec) != nil {
					return OK
				}
			case ring.ErrEmpty:
				return OK
			case ring.ErrLapped:
				// Cursor already repositioned; keep draining.
			}
		}
	}
}

// DrainBytes is Drain for byte-stride rings. Each record is copied into
// buf before delivery; buf must be at least one stride long and is reused
// across deliveries, so handle must not retain it.
func DrainBytes(rd *ring.ByteReader, buf []byte, limiter *rate.Limiter, handle func([]byte) error) Func {
	return func(ctx context.Context) Result {
		for {
			if ctx.Err() != nil {
				return Stop
			}
			if limiter != nil && !limiter.Allow() {
				return OK
			}

			n, err := rd.Get(buf)
			switch err {
			case nil:
				if handle(buf[:n]) != nil {
					return OK
				}
			case ring.ErrEmpty:
				return OK
			case ring.ErrLapped:
				// Cursor already repositioned; keep draining.
			}
		}
	}
}
