package model

import (
	"fmt"

	"github.com/hupe1980/catalogdb/internal/arena"
)

// NoUploader marks a record without uploader attribution.
const NoUploader = ^uint32(0)

// ThumbPrefix is the CDN host prefix stripped from thumbnail URLs.
const ThumbPrefix = "https://ehgt.org/"

// OptionalGID is a gallery identifier that may be absent.
type OptionalGID struct {
	ID    uint64
	Valid bool
}

// SomeGID returns a present OptionalGID.
func SomeGID(id uint64) OptionalGID {
	return OptionalGID{ID: id, Valid: true}
}

// Get returns the identifier and whether it is present.
func (o OptionalGID) Get() (uint64, bool) {
	return o.ID, o.Valid
}

// String returns a string representation of the OptionalGID.
func (o OptionalGID) String() string {
	if !o.Valid {
		return "none"
	}
	return fmt.Sprintf("%d", o.ID)
}

// Record is one catalog entry.
//
// String fields are handles into the store's byte arena, Tags and Torrents are
// ranges into the store's slabs. A Record is only meaningful together with the
// store that produced it.
type Record struct {
	GID        uint64
	CurrentGID OptionalGID
	FirstGID   OptionalGID
	ParentGID  OptionalGID

	Token    arena.StringHandle
	Title    arena.StringHandle
	TitleJPN arena.StringHandle // zero when absent
	Thumb    arena.StringHandle // path below ThumbPrefix

	Rating   float64
	FileSize uint64
	Posted   uint64
	Dumped   uint64

	Tags     arena.Range
	Torrents arena.Range

	FileCount    uint32
	TorrentCount uint32
	Uploader     uint32 // user dictionary id or NoUploader

	Category Category
	Expunged bool
}

// HasUploader reports whether the record is attributed to a user.
func (r *Record) HasUploader() bool {
	return r.Uploader != NoUploader
}

// HasTitleJPN reports whether the record carries a secondary title.
func (r *Record) HasTitleJPN() bool {
	return !r.TitleJPN.IsZero()
}

// Tag is one resolved tag of a record.
type Tag struct {
	ID        uint32 // tag dictionary id
	Namespace Namespace
}

// Torrent describes one file transfer offered for a record.
type Torrent struct {
	Added       uint64
	FileSize    uint64 // fsize
	TorrentSize uint64 // tsize
	Hash        arena.StringHandle
	Name        arena.StringHandle // zero when absent
}
