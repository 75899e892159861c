// Command catalogdb builds the in-memory catalog from bulk and single record
// collections and reports its memory footprint.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
)

// Config is the top-level configuration of catalogdb.
var Config = new(struct {
	Source struct {
		Kind          string `long:"kind" env:"KIND" default:"local" choice:"local" choice:"s3" choice:"minio" description:"Blob store holding the input collections"`
		Root          string `long:"root" env:"ROOT" default:"." description:"Directory (local) or key prefix (s3, minio) of the input collections"`
		Bulk          string `long:"bulk" env:"BULK" default:"bulk/" description:"Prefix of the bulk collection"`
		Single        string `long:"single" env:"SINGLE" default:"single/" description:"Prefix of the single collection"`
		Reassignments string `long:"reassignments" env:"REASSIGNMENTS" description:"Name of the reassignment table, if any"`
	} `group:"Source" namespace:"source" env-namespace:"SOURCE"`

	S3 struct {
		Bucket      string `long:"bucket" env:"BUCKET" description:"S3 bucket"`
		Region      string `long:"region" env:"REGION" description:"AWS region"`
		Endpoint    string `long:"endpoint" env:"ENDPOINT" description:"Custom S3 endpoint"`
		PartSize    string `long:"part-size" env:"PART_SIZE" default:"8MiB" description:"Ranged request size for whole-object downloads"`
		Concurrency int    `long:"concurrency" env:"CONCURRENCY" default:"4" description:"Parallel ranged requests per download"`
	} `group:"S3" namespace:"s3" env-namespace:"S3"`

	Minio struct {
		Endpoint  string `long:"endpoint" env:"ENDPOINT" default:"localhost:9000" description:"MinIO endpoint"`
		Bucket    string `long:"bucket" env:"BUCKET" description:"MinIO bucket"`
		AccessKey string `long:"access-key" env:"ACCESS_KEY" description:"MinIO access key"`
		SecretKey string `long:"secret-key" env:"SECRET_KEY" description:"MinIO secret key"`
		Region    string `long:"region" env:"REGION" description:"MinIO region"`
		Secure    bool   `long:"secure" env:"SECURE" description:"Use TLS"`
	} `group:"MinIO" namespace:"minio" env-namespace:"MINIO"`

	Build struct {
		Workers     int    `long:"workers" env:"WORKERS" default:"4" description:"Number of input files decoded concurrently"`
		Codec       string `long:"codec" env:"CODEC" default:"go-json" choice:"json" choice:"go-json" description:"JSON decoder"`
		MemoryLimit string `long:"memory-limit" env:"MEMORY_LIMIT" default:"0" description:"Upper bound on arena memory, e.g. 4GiB (0 for none)"`
		IOLimit     string `long:"io-limit" env:"IO_LIMIT" default:"0" description:"Upper bound on read throughput per second, e.g. 64MiB (0 for none)"`
		Capacity    int    `long:"capacity" env:"CAPACITY" default:"0" description:"Expected number of records"`
	} `group:"Build" namespace:"build" env-namespace:"BUILD"`

	Log struct {
		Level  string `long:"level" env:"LEVEL" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Logging level"`
		Format string `long:"format" env:"FORMAT" default:"text" choice:"text" choice:"json" description:"Logging output format"`
	} `group:"Logging" namespace:"log" env-namespace:"LOG"`

	Metrics struct {
		Addr string `long:"addr" env:"ADDR" description:"Serve Prometheus metrics on this address while running, e.g. :9090"`
	} `group:"Metrics" namespace:"metrics" env-namespace:"METRICS"`

	Hold bool `long:"hold" env:"HOLD" description:"Keep the process and store resident after the build until SIGINT or SIGTERM"`
})

func main() {
	parser := flags.NewParser(Config, flags.Default)
	parser.LongDescription = `
Builds the catalog store from the bulk collection followed by the single
collection, then prints the memory footprint of each store component and of
the process.`

	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "catalogdb:", err)
		stop()
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
