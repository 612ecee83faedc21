// Package poller runs service functions at regular intervals in
// dedicated goroutines, with the service function steering its own loop:
// keep the cadence, retune the interval, or stop outright.
//
// The Drain and DrainBytes adapters turn a ring reader into a service
// function, optionally paced by a rate limiter, which is the standard way
// to move records out of a ring into slower downstream work without ever
// applying backpressure to the writer.
package poller
