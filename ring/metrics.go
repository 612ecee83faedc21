package ring

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jaypwindley/wax/metric"
)

// ringMetrics holds Prometheus metrics for one ring instance.
type ringMetrics struct {
	writes  prometheus.Counter
	laps    prometheus.Counter
	reads   prometheus.Counter
	peeks   prometheus.Counter
	empties prometheus.Counter
	lapped  prometheus.Counter

	lap      prometheus.Gauge
	position prometheus.Gauge
}

// newRingMetrics creates and registers ring metrics with the provided
// registry under the component prefix.
func newRingMetrics(registry *metric.Registry, prefix string) (*ringMetrics, error) {
	labels := prometheus.Labels{"component": prefix}

	m := &ringMetrics{
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metric.Namespace,
			Subsystem:   "ring",
			Name:        "writes_total",
			ConstLabels: labels,
			Help:        "Total number of records written",
		}),
		laps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metric.Namespace,
			Subsystem:   "ring",
			Name:        "laps_total",
			ConstLabels: labels,
			Help:        "Total number of write-cursor wraps",
		}),
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metric.Namespace,
			Subsystem:   "ring",
			Name:        "reads_total",
			ConstLabels: labels,
			Help:        "Total number of successful consuming reads",
		}),
		peeks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metric.Namespace,
			Subsystem:   "ring",
			Name:        "peeks_total",
			ConstLabels: labels,
			Help:        "Total number of successful non-consuming reads",
		}),
		empties: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metric.Namespace,
			Subsystem:   "ring",
			Name:        "empty_reads_total",
			ConstLabels: labels,
			Help:        "Total number of read attempts that found nothing new",
		}),
		lapped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metric.Namespace,
			Subsystem:   "ring",
			Name:        "lapped_total",
			ConstLabels: labels,
			Help:        "Total number of reads that detected overwritten data",
		}),
		lap: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metric.Namespace,
			Subsystem:   "ring",
			Name:        "lap",
			ConstLabels: labels,
			Help:        "Current lap count of the write cursor",
		}),
		position: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metric.Namespace,
			Subsystem:   "ring",
			Name:        "write_position",
			ConstLabels: labels,
			Help:        "Current write position within the ring",
		}),
	}

	if err := registry.RegisterCounter(prefix, "ring_writes", m.writes); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "ring_laps", m.laps); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "ring_reads", m.reads); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "ring_peeks", m.peeks); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "ring_empty_reads", m.empties); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "ring_lapped", m.lapped); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "ring_lap", m.lap); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "ring_write_position", m.position); err != nil {
		return nil, err
	}

	return m, nil
}

// recordWrite tracks a committed write and the resulting cursor state.
func (m *ringMetrics) recordWrite(lap uint64, position int, wrapped bool) {
	m.writes.Inc()
	if wrapped {
		m.laps.Inc()
	}
	m.lap.Set(float64(lap))
	m.position.Set(float64(position))
}

func (m *ringMetrics) recordRead() { m.reads.Inc() }

func (m *ringMetrics) recordPeek() { m.peeks.Inc() }

func (m *ringMetrics) recordEmpty() { m.empties.Inc() }

func (m *ringMetrics) recordLapped() { m.lapped.Inc() }
