package catalogdb

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/catalogdb/resource"
	"github.com/hupe1980/catalogdb/source"
)

// Input names the collections and lookup tables of a build.
type Input struct {
	// Bulk files each hold a JSON array of records.
	Bulk source.Collection
	// Single files each hold one record and override bulk records with the
	// same identifier.
	Single source.Collection
	// Reassignments credits withdrawn records to a user. May be nil.
	Reassignments source.Reassignments
}

// Build ingests all bulk files, then all single files, each collection in
// lexicographic file order, and returns the finished Store.
//
// Any I/O, parse or schema error aborts the build; there is no partial
// result. Errors are wrapped in *SourceError.
func Build(ctx context.Context, in Input, optFns ...Option) (*Store, error) {
	if in.Bulk.Store == nil && in.Single.Store == nil {
		return nil, ErrNoSources
	}
	in.Bulk.Layout = source.LayoutBulk
	in.Single.Layout = source.LayoutSingle

	opts := make([]Option, 0, len(optFns)+1)
	opts = append(opts, WithReassignments(in.Reassignments))
	opts = append(opts, optFns...)
	b := NewBuilder(opts...)

	start := time.Now()
	st, err := b.build(ctx, in)
	records, users, tags := 0, 0, 0
	if st != nil {
		records, users, tags = st.Len(), st.UserCount(), st.TagCount()
	}
	b.opts.metricsCollector.RecordBuild(records, time.Since(start), err)
	b.opts.logger.LogBuild(ctx, records, users, tags, time.Since(start), err)
	return st, err
}

func (b *Builder) build(ctx context.Context, in Input) (*Store, error) {
	for _, c := range []source.Collection{in.Bulk, in.Single} {
		if c.Store == nil {
			continue
		}
		if err := b.ingest(ctx, c); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// ingest adds every file of c to the builder.
func (b *Builder) ingest(ctx context.Context, c source.Collection) error {
	start := time.Now()
	log := b.opts.logger.WithLayout(c.Layout.String())

	files, err := c.Files(ctx)
	if err != nil {
		return fileError(c.Layout, "", err)
	}

	var records, overwrites int
	consume := func(d decoded) error {
		err := d.err
		if err == nil {
			var added, replaced int
			added, replaced, err = b.addFile(d.file)
			records += added
			overwrites += replaced
		} else {
			err = fileError(c.Layout, d.name, err)
		}

		var n int
		var size int64
		if d.file != nil {
			n, size = len(d.file.Records), d.file.Bytes
		}
		b.opts.metricsCollector.RecordFile(c.Layout.String(), n, size, d.elapsed, err)
		log.LogFile(ctx, d.name, n, size, err)
		return err
	}

	if err := b.decodeAll(ctx, c, files, consume); err != nil {
		return err
	}
	log.LogSource(ctx, len(files), records, overwrites, time.Since(start))
	return nil
}

type decoded struct {
	name    string
	file    *source.File
	err     error
	elapsed time.Duration
}

func (b *Builder) decode(ctx context.Context, c source.Collection, name string) decoded {
	t := time.Now()
	f, err := c.Decode(ctx, name, b.opts.codec, b.opts.resources)
	return decoded{name: name, file: f, err: err, elapsed: time.Since(t)}
}

// decodeAll decodes files and hands them to consume strictly in order.
//
// With more than one worker, decoding runs ahead on separate goroutines while
// consume stays on a single goroutine, so the builder is never shared.
func (b *Builder) decodeAll(ctx context.Context, c source.Collection, files []string, consume func(decoded) error) error {
	workers := b.opts.workers
	if workers <= 1 || len(files) <= 1 {
		for _, name := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := consume(b.decode(ctx, c, name)); err != nil {
				return err
			}
		}
		return nil
	}

	slots := b.opts.resources
	if slots == nil {
		slots = resource.NewController(resource.Config{MaxBackgroundWorkers: int64(workers)})
	}

	g, gctx := errgroup.WithContext(ctx)
	pending := make(chan chan decoded, workers)

	g.Go(func() error {
		defer close(pending)
		for _, name := range files {
			result := make(chan decoded, 1)
			select {
			case pending <- result:
			case <-gctx.Done():
				return gctx.Err()
			}
			if err := slots.AcquireBackground(gctx); err != nil {
				result <- decoded{name: name, err: err}
				return err
			}
			g.Go(func() error {
				defer slots.ReleaseBackground()
				result <- b.decode(gctx, c, name)
				return nil
			})
		}
		return nil
	})

	g.Go(func() error {
		for result := range pending {
			var d decoded
			select {
			case d = <-result:
			case <-gctx.Done():
				return gctx.Err()
			}
			if err := consume(d); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}
