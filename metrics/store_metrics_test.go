package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStoreMetrics_Observe(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewStoreMetricsWithRegisterer(registry)

	m.Observe("menu", "create", time.Now(), nil)
	m.Observe("menu", "create", time.Now(), nil)
	m.Observe("menu", "create", time.Now(), errors.New("boom"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.operations.WithLabelValues("menu", "create", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.operations.WithLabelValues("menu", "create", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestStoreMetrics_ReRegisterReturnsExisting(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := NewStoreMetricsWithRegisterer(registry)
	second := NewStoreMetricsWithRegisterer(registry)

	first.Observe("table", "find", time.Now(), nil)
	assert.Equal(t, float64(1), testutil.ToFloat64(second.operations.WithLabelValues("table", "find", "ok")))
}

func TestStoreMetrics_NilReceiver(t *testing.T) {
	var m *StoreMetrics
	assert.NotPanics(t, func() {
		m.Observe("order", "count", time.Now(), nil)
	})
}
