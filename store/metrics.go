package store

import "github.com/prometheus/client_golang/prometheus"

// Collector exports a store's Stats as Prometheus metrics.
type Collector struct {
	store *Store

	ids       *prometheus.Desc
	slots     *prometheus.Desc
	types     *prometheus.Desc
	orphans   *prometheus.Desc
	epochs    *prometheus.Desc
	purged    *prometheus.Desc
	removed   *prometheus.Desc
	reentrant *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for s. Every metric carries a store_id
// label so several stores can be registered side by side.
func NewCollector(s *Store, namespace string) *Collector {
	labels := prometheus.Labels{"store_id": s.ID()}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "store", name), help, nil, labels)
	}

	return &Collector{
		store:     s,
		ids:       desc("ids", "Number of live IDs."),
		slots:     desc("slots", "Number of allocated slots, live or free."),
		types:     desc("types", "Number of registered value types."),
		orphans:   desc("orphans", "Typed-table entries whose ID is gone."),
		epochs:    desc("epochs_total", "Completed GC epochs."),
		purged:    desc("purged_total", "IDs removed by GC purges."),
		removed:   desc("removed_total", "IDs removed explicitly."),
		reentrant: desc("reentrant_total", "Operations rejected as re-entrant."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.ids
	ch <- c.slots
	ch <- c.types
	ch <- c.orphans
	ch <- c.epochs
	ch <- c.purged
	ch <- c.removed
	ch <- c.reentrant
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.store.Stats()

	ch <- prometheus.MustNewConstMetric(c.ids, prometheus.GaugeValue, float64(st.IDs))
	ch <- prometheus.MustNewConstMetric(c.slots, prometheus.GaugeValue, float64(st.Slots))
	ch <- prometheus.MustNewConstMetric(c.types, prometheus.GaugeValue, float64(st.Types))
	ch <- prometheus.MustNewConstMetric(c.orphans, prometheus.GaugeValue, float64(st.Orphans))
	ch <- prometheus.MustNewConstMetric(c.epochs, prometheus.CounterValue, float64(st.Epochs))
	ch <- prometheus.MustNewConstMetric(c.purged, prometheus.CounterValue, float64(st.Purged))
	ch <- prometheus.MustNewConstMetric(c.removed, prometheus.CounterValue, float64(st.Removed))
	ch <- prometheus.MustNewConstMetric(c.reentrant, prometheus.CounterValue, float64(st.Reentrant))
}
