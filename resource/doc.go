// Package resource implements the Controller that bounds the resources a
// catalog build may use.
//
// The Controller provides centralized management of three resource types:
//
//   - Memory: arena growth is charged against a hard byte limit
//   - Concurrency: the number of input files decoded at the same time
//   - IO: a token bucket on bytes read from the blob store
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Controller                           │
//	├─────────────────┬─────────────────┬─────────────────────────┤
//	│  Memory Limit   │  Decode         │  IO Rate Limiter        │
//	│  (semaphore)    │  Workers (sem)  │  (token bucket)         │
//	├─────────────────┼─────────────────┼─────────────────────────┤
//	│  AcquireMemory  │  AcquireBack-   │  AcquireIO              │
//	│  ReleaseMemory  │  ground         │  RateLimitedReader      │
//	│  MemoryUsage    │  ReleaseBack-   │                         │
//	│  PeakMemory     │  ground         │                         │
//	└─────────────────┴─────────────────┴─────────────────────────┘
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic
// counters for usage tracking. AcquireMemory blocks until memory is
// available or ctx is done; arenas call it with a short timeout so that a
// build over budget fails instead of hanging:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 8 << 30,
//	})
//
// # IO Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 100 * 1024 * 1024, // 100MB/s
//	})
//
//	reader := resource.NewRateLimitedReader(ctx, blobReader, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully: they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
