// Package metric provides Prometheus metrics registration for wax components.
//
// The Registry wraps a prometheus.Registry with component-scoped metric
// naming and duplicate detection, so that several ring or poller instances
// can export the same metric families under distinct component labels.
// Go runtime and process collectors are registered automatically.
//
// Typical usage:
//
//	registry := metric.NewRegistry()
//	r, err := ring.New[Sample](1024, ring.WithMetrics(registry, "telemetry"))
//	...
//	http.Handle("/metrics", registry.Handler())
//
// A small Server type is included for processes that want a dedicated
// metrics port rather than mounting the handler on an existing mux.
package metric
