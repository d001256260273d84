package store

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidroman0O/gohooks/topo"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.Metric {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.Metric, len(families))
	for _, mf := range families {
		require.Len(t, mf.GetMetric(), 1)
		out[mf.GetName()] = mf.GetMetric()[0]
	}
	return out
}

func TestCollector(t *testing.T) {
	s := NewStore()
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(s, "hooks"))

	for id := topo.ID(1); id <= 3; id++ {
		require.NoError(t, Set(s, id, int(id)))
	}
	s.ResetUnseen()
	_, _ = Get[int](s, topo.ID(1))
	s.Purge()
	s.Remove(topo.ID(1))

	metrics := gather(t, reg)

	assert.Equal(t, 0.0, metrics["hooks_store_ids"].GetGauge().GetValue())
	assert.Equal(t, 3.0, metrics["hooks_store_slots"].GetGauge().GetValue())
	assert.Equal(t, 1.0, metrics["hooks_store_types"].GetGauge().GetValue())
	assert.Equal(t, 1.0, metrics["hooks_store_epochs_total"].GetCounter().GetValue())
	assert.Equal(t, 2.0, metrics["hooks_store_purged_total"].GetCounter().GetValue())
	assert.Equal(t, 1.0, metrics["hooks_store_removed_total"].GetCounter().GetValue())

	label := metrics["hooks_store_ids"].GetLabel()
	require.Len(t, label, 1)
	assert.Equal(t, "store_id", label[0].GetName())
	assert.Equal(t, s.ID(), label[0].GetValue())
}

func TestCollectorsForSeveralStores(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(NewStore(), "hooks"))
	reg.MustRegister(NewCollector(NewStore(), "hooks"))

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		assert.Len(t, mf.GetMetric(), 2, mf.GetName())
	}
}
