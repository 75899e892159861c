// Package prom exports catalog build metrics to Prometheus.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/catalogdb"
)

// Keys for the status label.
const (
	Fail = "fail"
	Ok   = "ok"
)

var _ catalogdb.MetricsCollector = (*Collector)(nil)

// Collector implements catalogdb.MetricsCollector on Prometheus collectors.
type Collector struct {
	filesTotal      *prometheus.CounterVec
	recordsTotal    *prometheus.CounterVec
	bytesTotal      *prometheus.CounterVec
	overwritesTotal *prometheus.CounterVec
	fileDuration    *prometheus.HistogramVec

	buildsTotal   *prometheus.CounterVec
	buildRecords  prometheus.Gauge
	buildDuration prometheus.Histogram
}

// New creates a Collector and registers it with reg. A nil reg registers
// with prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		filesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogdb_files_total",
			Help: "Total number of input files ingested.",
		}, []string{"layout", "status"}),
		recordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogdb_records_total",
			Help: "Cumulative number of records decoded from input files.",
		}, []string{"layout"}),
		bytesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogdb_read_bytes_total",
			Help: "Cumulative number of bytes read from the blob store.",
		}, []string{"layout"}),
		overwritesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogdb_overwrites_total",
			Help: "Cumulative number of records that replaced an earlier record with the same identifier.",
		}, []string{"layout"}),
		fileDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalogdb_file_duration_seconds",
			Help:    "Duration of reading and decoding one input file.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		}, []string{"layout"}),
		buildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogdb_builds_total",
			Help: "Total number of store builds.",
		}, []string{"status"}),
		buildRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalogdb_build_records",
			Help: "Number of records in the most recently built store.",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalogdb_build_duration_seconds",
			Help:    "Duration of store builds.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~3m
		}),
	}

	for _, col := range c.collectors() {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.filesTotal,
		c.recordsTotal,
		c.bytesTotal,
		c.overwritesTotal,
		c.fileDuration,
		c.buildsTotal,
		c.buildRecords,
		c.buildDuration,
	}
}

// RecordFile implements catalogdb.MetricsCollector.
func (c *Collector) RecordFile(layout string, records int, bytes int64, duration time.Duration, err error) {
	c.fileDuration.WithLabelValues(layout).Observe(duration.Seconds())
	if err != nil {
		c.filesTotal.WithLabelValues(layout, Fail).Inc()
		return
	}
	c.filesTotal.WithLabelValues(layout, Ok).Inc()
	c.recordsTotal.WithLabelValues(layout).Add(float64(records))
	c.bytesTotal.WithLabelValues(layout).Add(float64(bytes))
}

// RecordOverwrite implements catalogdb.MetricsCollector.
func (c *Collector) RecordOverwrite(layout string) {
	c.overwritesTotal.WithLabelValues(layout).Inc()
}

// RecordBuild implements catalogdb.MetricsCollector.
func (c *Collector) RecordBuild(records int, duration time.Duration, err error) {
	c.buildDuration.Observe(duration.Seconds())
	if err != nil {
		c.buildsTotal.WithLabelValues(Fail).Inc()
		return
	}
	c.buildsTotal.WithLabelValues(Ok).Inc()
	c.buildRecords.Set(float64(records))
}
