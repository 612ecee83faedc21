package metric

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaypwindley/wax/errors"
)

func newTestCounter(name string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "test",
		Name:      name,
		Help:      "test counter",
	})
}

func TestRegisterCounter(t *testing.T) {
	r := NewRegistry()

	c := newTestCounter("events_total")
	require.NoError(t, r.RegisterCounter("ring-a", "events", c))

	c.Inc()
	c.Inc()

	families, err := r.PrometheusRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if mf.GetName() == "wax_test_events_total" {
			found = true
			require.Len(t, mf.GetMetric(), 1)
			assert.Equal(t, 2.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found, "registered counter must appear in gathered families")
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.RegisterCounter("ring-a", "events", newTestCounter("dup_total")))

	err := r.RegisterCounter("ring-a", "events", newTestCounter("dup2_total"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestSameNameDifferentComponent(t *testing.T) {
	r := NewRegistry()

	a := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   Namespace,
		Subsystem:   "ring",
		Name:        "writes_total",
		ConstLabels: prometheus.Labels{"component": "a"},
		Help:        "writes",
	})
	b := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   Namespace,
		Subsystem:   "ring",
		Name:        "writes_total",
		ConstLabels: prometheus.Labels{"component": "b"},
		Help:        "writes",
	})

	require.NoError(t, r.RegisterCounter("a", "writes", a))
	require.NoError(t, r.RegisterCounter("b", "writes", b))
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()

	c := newTestCounter("gone_total")
	require.NoError(t, r.RegisterCounter("ring-a", "gone", c))

	assert.True(t, r.Unregister("ring-a", "gone"))
	assert.False(t, r.Unregister("ring-a", "gone"), "second unregister must report false")

	// Name is free again after unregistration.
	require.NoError(t, r.RegisterCounter("ring-a", "gone", newTestCounter("gone_total")))
}

func TestHandlerServesExposition(t *testing.T) {
	r := NewRegistry()

	c := newTestCounter("served_total")
	require.NoError(t, r.RegisterCounter("ring-a", "served", c))
	c.Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "wax_test_served_total")
}
