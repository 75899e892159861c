package catalogdb

import (
	"log/slog"

	"github.com/hupe1980/catalogdb/codec"
	"github.com/hupe1980/catalogdb/resource"
	"github.com/hupe1980/catalogdb/source"
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	resources        *resource.Controller
	workers          int
	capacityHint     int
	reassignments    source.Reassignments
}

// Option configures a Builder or a Build.
type Option func(*options)

// WithCodec configures the codec used for decoding input files.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithWorkers sets the number of input files decoded concurrently.
//
// Transformation and insertion always happen on a single goroutine in file
// order, so the resulting store does not depend on the worker count.
// Values <= 1 decode sequentially.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithResourceController bounds arena memory, decode concurrency and read
// throughput. Pass nil to disable limits.
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:     16 << 30,
//	    MaxBackgroundWorkers: 4,
//	})
//	st, _ := catalogdb.Build(ctx, in, catalogdb.WithResourceController(rc), catalogdb.WithWorkers(4))
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithCapacityHint pre-sizes the record map for the expected number of
// distinct identifiers.
func WithCapacityHint(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacityHint = n
		}
	}
}

// WithReassignments sets the table that credits withdrawn records to a user.
// It takes precedence over Input.Reassignments.
func WithReassignments(r source.Reassignments) Option {
	return func(o *options) {
		o.reassignments = r
	}
}

// WithMetricsCollector configures a metrics collector for monitoring builds.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &catalogdb.BasicMetricsCollector{}
//	st, _ := catalogdb.Build(ctx, in, catalogdb.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Files: %d, Overwrites: %d\n", stats.FileCount, stats.OverwriteCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for builds.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := catalogdb.NewJSONLogger(slog.LevelInfo)
//	st, _ := catalogdb.Build(ctx, in, catalogdb.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
