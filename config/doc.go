// Package config loads and validates YAML configuration for wax
// deployments: ring geometry, the Prometheus exposition endpoint, and
// poller cadence. Decoding is strict and every validation failure is an
// invalid-class error naming the offending entry.
package config
