package telemetry

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "fresh_choice"

// HTTPDurationBuckets are latency buckets in seconds
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Metrics holds the Prometheus instruments the API records
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	importRows      *prometheus.CounterVec
	authFailures    *prometheus.CounterVec
}

// NewMetrics creates a registry with Go runtime collectors and the API instruments
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   HTTPDurationBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "CSV import rows by entity and outcome.",
		}, []string{"entity", "outcome"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Rejected authentication attempts by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.requests, m.requestDuration, m.inFlight, m.importRows, m.authFailures)
	return m
}

// ObserveRequest records one finished request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// InFlight returns the in-flight request gauge
func (m *Metrics) InFlight() prometheus.Gauge {
	return m.inFlight
}

// ImportRows returns the import row counter, labelled by entity and outcome
func (m *Metrics) ImportRows() *prometheus.CounterVec {
	return m.importRows
}

// AuthFailures returns the auth failure counter, labelled by reason
func (m *Metrics) AuthFailures() *prometheus.CounterVec {
	return m.authFailures
}

// RecordImport adds the row outcomes of one import
func (m *Metrics) RecordImport(entity string, imported, updated, skipped, failed int) {
	m.importRows.WithLabelValues(entity, "imported").Add(float64(imported))
	m.importRows.WithLabelValues(entity, "updated").Add(float64(updated))
	m.importRows.WithLabelValues(entity, "skipped").Add(float64(skipped))
	m.importRows.WithLabelValues(entity, "failed").Add(float64(failed))
}

// RecordAuthFailure counts a rejected login or token
func (m *Metrics) RecordAuthFailure(reason string) {
	m.authFailures.WithLabelValues(reason).Inc()
}

// Register adds extra collectors to the registry
func (m *Metrics) Register(cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := m.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// InventoryStats is a point-in-time snapshot of stock health
type InventoryStats struct {
	Items           int64
	Units           int64
	CostValue       float64
	LowStock        int64
	Expiring        int64
	PendingShopping int64
}

// InventoryStatsFunc loads the current snapshot
type InventoryStatsFunc func(ctx context.Context) (InventoryStats, error)

// InventoryCollector exports inventory gauges, loading them on every scrape
type InventoryCollector struct {
	load    InventoryStatsFunc
	timeout time.Duration
	logger  *zap.Logger

	items, units, value, lowStock, expiring, shopping *prometheus.Desc
}

// NewInventoryCollector creates a collector backed by load
func NewInventoryCollector(load InventoryStatsFunc, logger *zap.Logger) *InventoryCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "inventory", name), help, nil, nil)
	}
	return &InventoryCollector{
		load:     load,
		timeout:  5 * time.Second,
		logger:   logger,
		items:    desc("items", "Distinct inventory items."),
		units:    desc("units", "Units on hand across all items."),
		value:    desc("cost_value", "On-hand inventory value at cost."),
		lowStock: desc("low_stock_items", "Items at or below their low-stock level."),
		expiring: desc("expiring_items", "Items inside the expiration warning window."),
		shopping: desc("shopping_list_pending", "Unpurchased shopping-list entries."),
	}
}

// Describe implements prometheus.Collector
func (c *InventoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.items
	ch <- c.units
	ch <- c.value
	ch <- c.lowStock
	ch <- c.expiring
	ch <- c.shopping
}

// Collect implements prometheus.Collector. A failed load exports nothing.
func (c *InventoryCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	s, err := c.load(ctx)
	if err != nil {
		c.logger.Warn("Failed to load inventory stats", zap.Error(err))
		return
	}
	ch <- prometheus.MustNewConstMetric(c.items, prometheus.GaugeValue, float64(s.Items))
	ch <- prometheus.MustNewConstMetric(c.units, prometheus.GaugeValue, float64(s.Units))
	ch <- prometheus.MustNewConstMetric(c.value, prometheus.GaugeValue, s.CostValue)
	ch <- prometheus.MustNewConstMetric(c.lowStock, prometheus.GaugeValue, float64(s.LowStock))
	ch <- prometheus.MustNewConstMetric(c.expiring, prometheus.GaugeValue, float64(s.Expiring))
	ch <- prometheus.MustNewConstMetric(c.shopping, prometheus.GaugeValue, float64(s.PendingShopping))
}
