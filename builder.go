package catalogdb

import (
	"maps"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/catalogdb/internal/arena"
	"github.com/hupe1980/catalogdb/internal/transform"
	"github.com/hupe1980/catalogdb/model"
	"github.com/hupe1980/catalogdb/schema"
	"github.com/hupe1980/catalogdb/source"
)

// Builder assembles a Store from raw records.
//
// Records are inserted by identifier; a record replaces any earlier record
// with the same identifier. A Builder is owned by a single goroutine.
type Builder struct {
	opts    options
	tc      *transform.Context
	records map[uint64]model.Record
	single  *roaring64.Bitmap

	overwrites int
	finished   bool
}

// NewBuilder creates an empty Builder.
func NewBuilder(optFns ...Option) *Builder {
	o := applyOptions(optFns)

	var arenaOpts []arena.Option
	if o.resources != nil {
		arenaOpts = append(arenaOpts, arena.WithMemoryAcquirer(o.resources))
	}

	return &Builder{
		opts:    o,
		tc:      transform.NewContext(o.reassignments, arenaOpts...),
		records: make(map[uint64]model.Record, o.capacityHint),
		single:  roaring64.New(),
	}
}

// Add transforms raw and inserts it. origin names the collection the record
// came from; the last Add for an identifier wins. It reports whether an
// earlier record was replaced.
func (b *Builder) Add(raw *schema.RawRecord, origin source.Layout) (bool, error) {
	if b.finished {
		return false, ErrFinished
	}
	rec, err := b.tc.Transform(raw)
	if err != nil {
		return false, err
	}

	_, replaced := b.records[rec.GID]
	b.records[rec.GID] = rec
	if origin == source.LayoutSingle {
		b.single.Add(rec.GID)
	} else {
		b.single.Remove(rec.GID)
	}

	if replaced {
		b.overwrites++
		b.opts.metricsCollector.RecordOverwrite(origin.String())
	}
	return replaced, nil
}

// addFile inserts every record of f in order.
func (b *Builder) addFile(f *source.File) (added, replaced int, err error) {
	for i := range f.Records {
		raw := &f.Records[i]
		r, err := b.Add(raw, f.Layout)
		if err != nil {
			var gid uint64
			if raw.GID != nil {
				gid = *raw.GID
			}
			return added, replaced, recordError(f.Layout, f.Name, i, gid, raw.GID != nil, err)
		}
		added++
		if r {
			replaced++
		}
	}
	return added, replaced, nil
}

// Len returns the number of distinct identifiers inserted so far.
func (b *Builder) Len() int {
	return len(b.records)
}

// Overwrites returns how many inserts replaced an earlier record.
func (b *Builder) Overwrites() int {
	return b.overwrites
}

// Finish builds the dictionaries, compacts the arenas and returns the
// immutable Store. The Builder cannot be used afterwards.
func (b *Builder) Finish() (*Store, error) {
	if b.finished {
		return nil, ErrFinished
	}
	b.finished = true
	start := time.Now()

	users, err := b.dictionary(b.tc.Users.Build())
	if err != nil {
		return nil, err
	}
	tags, err := b.dictionary(b.tc.TagNames.Build())
	if err != nil {
		return nil, err
	}

	b.tc.Bytes.Finalize()
	b.tc.Tags.Finalize()
	b.tc.Torrents.Finalize()

	records := make(map[uint64]model.Record, len(b.records))
	maps.Copy(records, b.records)
	b.records = nil

	b.single.RunOptimize()

	st := &Store{
		bytes:    b.tc.Bytes,
		tags:     b.tc.Tags,
		torrents: b.tc.Torrents,
		users:    users,
		tagNames: tags,
		records:  records,
		order:    slices.Sorted(maps.Keys(records)),
		single:   b.single,
	}
	b.opts.logger.Debug("store finalized",
		"records", len(records),
		"elapsed", time.Since(start),
	)
	return st, nil
}

// dictionary stores the values of a built dictionary in the byte arena.
func (b *Builder) dictionary(values []string) ([]arena.StringHandle, error) {
	handles := make([]arena.StringHandle, len(values))
	for i, v := range values {
		h, err := b.tc.Bytes.Add(v)
		if err != nil {
			return nil, err
		}
		handles[i] = h
	}
	return handles, nil
}
