package catalogdb

import (
	"bytes"
	"io"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/hupe1980/catalogdb/internal/arena"
	"github.com/hupe1980/catalogdb/model"
)

// mapEntryOverhead approximates the per-entry bookkeeping of a Go map beyond
// key and value.
const mapEntryOverhead = 8

// MemoryComponent is the footprint of one part of a Store.
type MemoryComponent struct {
	Name    string
	Entries int
	Bytes   uint64
}

// MemoryReport lists the approximate memory footprint of a Store.
type MemoryReport struct {
	Components []MemoryComponent
}

// Total returns the sum of all component sizes.
func (r MemoryReport) Total() uint64 {
	var total uint64
	for _, c := range r.Components {
		total += c.Bytes
	}
	return total
}

// Component returns the component with the given name.
func (r MemoryReport) Component(name string) (MemoryComponent, bool) {
	for _, c := range r.Components {
		if c.Name == name {
			return c, true
		}
	}
	return MemoryComponent{}, false
}

// WriteTo renders the report as a table.
func (r MemoryReport) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.Header("Component", "Entries", "Size")
	for _, c := range r.Components {
		if err := table.Append([]string{c.Name, humanize.Comma(int64(c.Entries)), humanize.IBytes(c.Bytes)}); err != nil {
			return 0, err
		}
	}
	if err := table.Append([]string{"total", "", humanize.IBytes(r.Total())}); err != nil {
		return 0, err
	}
	if err := table.Render(); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// String returns the rendered table.
func (r MemoryReport) String() string {
	var buf bytes.Buffer
	_, _ = r.WriteTo(&buf)
	return buf.String()
}

// MemoryReport returns entry counts and approximate byte footprints of the
// store's components.
func (s *Store) MemoryReport() MemoryReport {
	var (
		recordSize = uint64(unsafe.Sizeof(model.Record{}))
		handleSize = uint64(unsafe.Sizeof(arena.StringHandle{}))
		n          = uint64(len(s.records))
	)

	bytesStats := s.bytes.Stats()
	tagStats := s.tags.Stats()
	torrentStats := s.torrents.Stats()

	return MemoryReport{Components: []MemoryComponent{
		{Name: "records", Entries: len(s.records), Bytes: n*(8+recordSize+mapEntryOverhead) + uint64(cap(s.order))*8},
		{Name: "users", Entries: len(s.users), Bytes: uint64(cap(s.users)) * handleSize},
		{Name: "tags", Entries: len(s.tagNames), Bytes: uint64(cap(s.tagNames)) * handleSize},
		{Name: "byte arena", Entries: bytesStats.Len, Bytes: uint64(bytesStats.BytesReserved)},         //nolint:gosec // non-negative
		{Name: "torrent arena", Entries: torrentStats.Len, Bytes: uint64(torrentStats.BytesReserved)}, //nolint:gosec // non-negative
		{Name: "tag arena", Entries: tagStats.Len, Bytes: uint64(tagStats.BytesReserved)},             //nolint:gosec // non-negative
		{Name: "provenance", Entries: int(s.single.GetCardinality()), Bytes: s.single.GetSizeInBytes()}, //nolint:gosec // bounded by record count
	}}
}
