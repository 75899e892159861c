package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/process"

	"github.com/hupe1980/catalogdb"
	"github.com/hupe1980/catalogdb/blobstore"
	"github.com/hupe1980/catalogdb/blobstore/minio"
	"github.com/hupe1980/catalogdb/blobstore/s3"
	"github.com/hupe1980/catalogdb/codec"
	"github.com/hupe1980/catalogdb/metrics/prom"
	"github.com/hupe1980/catalogdb/resource"
	"github.com/hupe1980/catalogdb/source"
)

func run(ctx context.Context, w io.Writer) error {
	logger := newLogger()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}

	memLimit, err := parseSize("build.memory-limit", Config.Build.MemoryLimit)
	if err != nil {
		return err
	}
	ioLimit, err := parseSize("build.io-limit", Config.Build.IOLimit)
	if err != nil {
		return err
	}
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:     memLimit,
		MaxBackgroundWorkers: int64(Config.Build.Workers),
		IOLimitBytesPerSec:   ioLimit,
	})

	cd, ok := codec.ByName(Config.Build.Codec)
	if !ok {
		return fmt.Errorf("unknown codec %q", Config.Build.Codec)
	}

	opts := []catalogdb.Option{
		catalogdb.WithLogger(logger),
		catalogdb.WithCodec(cd),
		catalogdb.WithWorkers(Config.Build.Workers),
		catalogdb.WithResourceController(rc),
		catalogdb.WithCapacityHint(Config.Build.Capacity),
	}

	if Config.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		collector, err := prom.New(reg)
		if err != nil {
			return err
		}
		opts = append(opts, catalogdb.WithMetricsCollector(collector))

		srv := serveMetrics(logger, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	in := catalogdb.Input{
		Bulk:   source.Collection{Store: store, Prefix: Config.Source.Bulk},
		Single: source.Collection{Store: store, Prefix: Config.Source.Single},
	}
	if name := Config.Source.Reassignments; name != "" {
		if in.Reassignments, err = source.LoadReassignments(ctx, store, name); err != nil {
			return err
		}
		logger.Info("reassignments loaded", "file", name, "entries", len(in.Reassignments))
	}

	start := time.Now()
	st, err := catalogdb.Build(ctx, in, opts...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := printReport(w, st, rc, elapsed); err != nil {
		return err
	}

	if Config.Hold {
		logger.Info("holding store resident; send SIGINT or SIGTERM to exit", "records", st.Len())
		<-ctx.Done()
		logger.Info("goodbye")
	}
	return nil
}

func newLogger() *catalogdb.Logger {
	hopts := &slog.HandlerOptions{Level: parseLevel(Config.Log.Level)}
	if Config.Log.Format == "json" {
		return catalogdb.NewLogger(slog.NewJSONHandler(os.Stderr, hopts))
	}
	return catalogdb.NewLogger(slog.NewTextHandler(os.Stderr, hopts))
}

func openStore(ctx context.Context) (blobstore.BlobStore, error) {
	switch Config.Source.Kind {
	case "local":
		return blobstore.NewOSStore(Config.Source.Root), nil
	case "s3":
		if Config.S3.Bucket == "" {
			return nil, errors.New("--s3.bucket is required")
		}
		partSize, err := parseSize("s3.part-size", Config.S3.PartSize)
		if err != nil {
			return nil, err
		}
		return s3.New(ctx, Config.S3.Bucket,
			s3.WithPrefix(rootPrefix()),
			s3.WithRegion(Config.S3.Region),
			s3.WithEndpoint(Config.S3.Endpoint),
			s3.WithPartSize(partSize),
			s3.WithConcurrency(Config.S3.Concurrency),
		)
	case "minio":
		if Config.Minio.Bucket == "" {
			return nil, errors.New("--minio.bucket is required")
		}
		return minio.New(minio.Config{
			Endpoint:  Config.Minio.Endpoint,
			AccessKey: Config.Minio.AccessKey,
			SecretKey: Config.Minio.SecretKey,
			Region:    Config.Minio.Region,
			Secure:    Config.Minio.Secure,
		}, Config.Minio.Bucket, rootPrefix())
	default:
		return nil, fmt.Errorf("unknown source kind %q", Config.Source.Kind)
	}
}

// rootPrefix maps the default local root to an empty key prefix.
func rootPrefix() string {
	if Config.Source.Root == "." {
		return ""
	}
	return Config.Source.Root
}

func parseSize(flag, s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", flag, err)
	}
	return int64(n), nil //nolint:gosec // sizes beyond MaxInt64 are not meaningful
}

func serveMetrics(logger *catalogdb.Logger, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              Config.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", srv.Addr, "error", err)
		}
	}()
	return srv
}

func printReport(w io.Writer, st *catalogdb.Store, rc *resource.Controller, elapsed time.Duration) error {
	fp, err := st.Fingerprint()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "records:     %s\n", humanize.Comma(int64(st.Len())))
	fmt.Fprintf(w, "users:       %s\n", humanize.Comma(int64(st.UserCount())))
	fmt.Fprintf(w, "tags:        %s\n", humanize.Comma(int64(st.TagCount())))
	fmt.Fprintf(w, "fingerprint: %016x\n", fp)
	fmt.Fprintf(w, "elapsed:     %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "arena peak:  %s\n\n", humanize.IBytes(uint64(rc.PeakMemory()))) //nolint:gosec // non-negative

	if _, err := st.MemoryReport().WriteTo(w); err != nil {
		return err
	}

	rss, err := processRSS()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\nprocess rss: %s\n", humanize.IBytes(rss))
	return err
}

func processRSS() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // pids fit in int32
	if err != nil {
		return 0, err
	}
	info, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}
