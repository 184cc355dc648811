package handler

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ErrNilProvider is returned by StatsCollector.Add for a nil provider,
	// including a nil pointer held in the interface.
	ErrNilProvider = errors.New("nil stats provider")
	// ErrDuplicateProvider is returned by StatsCollector.Add when a provider
	// with the same name is already exported.
	ErrDuplicateProvider = errors.New("duplicate stats provider")
)

// StatsCollector exports the Stats of a set of handlers as Prometheus
// counters labelled with the handler name.
type StatsCollector struct {
	mu        sync.RWMutex
	providers []StatsProvider
	names     map[string]struct{}

	delivered *prometheus.Desc
	failed    *prometheus.Desc
	filtered  *prometheus.Desc
}

// NewStatsCollector creates a collector under the given metric namespace.
// Register it with a prometheus.Registerer to expose it. Providers that Add
// would reject are skipped.
func NewStatsCollector(namespace string, providers ...StatsProvider) *StatsCollector {
	labels := []string{"handler"}
	c := &StatsCollector{
		names: make(map[string]struct{}),
		delivered: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "handler", "delivered_total"),
			"Entries successfully handed to the handler's destination.", labels, nil),
		failed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "handler", "failed_total"),
			"Entries whose delivery failed.", labels, nil),
		filtered: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "handler", "filtered_total"),
			"Entries rejected by the handler's filter.", labels, nil),
	}
	for _, p := range providers {
		_ = c.Add(p)
	}
	return c
}

// Add starts exporting p. Names label the exported series, so each must be
// unique within the collector.
func (c *StatsCollector) Add(p StatsProvider) error {
	if isNil(p) {
		return ErrNilProvider
	}
	name := p.Name()

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.names[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateProvider, name)
	}
	c.names[name] = struct{}{}
	c.providers = append(c.providers, p)
	return nil
}

func isNil(p StatsProvider) bool {
	if p == nil {
		return true
	}
	switch v := reflect.ValueOf(p); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.delivered
	ch <- c.failed
	ch <- c.filtered
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.providers {
		stats := p.Stats()
		if stats == nil {
			continue
		}
		name := p.Name()
		snap := stats.Snapshot()
		ch <- prometheus.MustNewConstMetric(c.delivered, prometheus.CounterValue, float64(snap.Delivered), name)
		ch <- prometheus.MustNewConstMetric(c.failed, prometheus.CounterValue, float64(snap.Failed), name)
		ch <- prometheus.MustNewConstMetric(c.filtered, prometheus.CounterValue, float64(snap.Filtered), name)
	}
}
