package catalogdb

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting build metrics.
// Implement this interface to integrate with monitoring systems; see
// metrics/prom for a Prometheus implementation.
type MetricsCollector interface {
	// RecordFile is called after each input file has been ingested.
	// layout is "bulk" or "single", records the number of records in the
	// file, bytes the number of bytes read from the store.
	RecordFile(layout string, records int, bytes int64, duration time.Duration, err error)

	// RecordOverwrite is called whenever a record replaces an earlier record
	// with the same identifier.
	RecordOverwrite(layout string)

	// RecordBuild is called once when a build finishes.
	RecordBuild(records int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFile(string, int, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordOverwrite(string)                              {}
func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FileCount       atomic.Int64
	FileErrors      atomic.Int64
	FileTotalNanos  atomic.Int64
	RecordCount     atomic.Int64
	BytesRead       atomic.Int64
	OverwriteCount  atomic.Int64
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
}

// RecordFile implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFile(_ string, records int, bytes int64, duration time.Duration, err error) {
	b.FileCount.Add(1)
	b.FileTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FileErrors.Add(1)
		return
	}
	b.RecordCount.Add(int64(records))
	b.BytesRead.Add(bytes)
}

// RecordOverwrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOverwrite(string) {
	b.OverwriteCount.Add(1)
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_ int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FileCount:      b.FileCount.Load(),
		FileErrors:     b.FileErrors.Load(),
		FileAvgNanos:   b.getAvgFileNanos(),
		RecordCount:    b.RecordCount.Load(),
		BytesRead:      b.BytesRead.Load(),
		OverwriteCount: b.OverwriteCount.Load(),
		BuildCount:     b.BuildCount.Load(),
		BuildErrors:    b.BuildErrors.Load(),
		BuildNanos:     b.BuildTotalNanos.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgFileNanos() int64 {
	count := b.FileCount.Load()
	if count == 0 {
		return 0
	}
	return b.FileTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FileCount      int64
	FileErrors     int64
	FileAvgNanos   int64
	RecordCount    int64
	BytesRead      int64
	OverwriteCount int64
	BuildCount     int64
	BuildErrors    int64
	BuildNanos     int64
}
