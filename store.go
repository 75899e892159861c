package catalogdb

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/catalogdb/internal/arena"
	"github.com/hupe1980/catalogdb/model"
)

// Store is the immutable result of a build.
//
// A Store is safe for concurrent use by multiple goroutines.
type Store struct {
	bytes    *arena.Bytes
	tags     *arena.Slab[model.Tag]
	torrents *arena.Slab[model.Torrent]

	users    []arena.StringHandle // indexed by user id
	tagNames []arena.StringHandle // indexed by tag id

	records map[uint64]model.Record
	order   []uint64 // ascending identifiers
	single  *roaring64.Bitmap
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// UserCount returns the number of distinct uploaders.
func (s *Store) UserCount() int {
	return len(s.users)
}

// TagCount returns the number of distinct tag values.
func (s *Store) TagCount() int {
	return len(s.tagNames)
}

// Record returns the arena-backed record for gid.
func (s *Store) Record(gid uint64) (model.Record, bool) {
	rec, ok := s.records[gid]
	return rec, ok
}

// All iterates over all records in ascending identifier order.
func (s *Store) All() iter.Seq2[uint64, model.Record] {
	return func(yield func(uint64, model.Record) bool) {
		for _, gid := range s.order {
			if !yield(gid, s.records[gid]) {
				return
			}
		}
	}
}

// FromSingle reports whether the stored version of gid came from the single
// collection.
func (s *Store) FromSingle(gid uint64) bool {
	return s.single.Contains(gid)
}

// String resolves a handle issued by this store. The zero handle resolves to
// the empty string.
func (s *Store) String(h arena.StringHandle) (string, error) {
	if h.IsZero() {
		return "", nil
	}
	return s.bytes.Get(h)
}

// Tags returns the tags of rec. The slice must not be modified.
func (s *Store) Tags(rec model.Record) ([]model.Tag, error) {
	return s.tags.GetRange(rec.Tags)
}

// Torrents returns the transfer descriptors of rec. The slice must not be
// modified.
func (s *Store) Torrents(rec model.Record) ([]model.Torrent, error) {
	return s.torrents.GetRange(rec.Torrents)
}

// TagValue returns the tag string with dictionary id id.
func (s *Store) TagValue(id uint32) (string, error) {
	if int(id) >= len(s.tagNames) {
		return "", fmt.Errorf("%w: tag id %d of %d", arena.ErrOutOfBounds, id, len(s.tagNames))
	}
	return s.bytes.Get(s.tagNames[id])
}

// UserName returns the user name with dictionary id id.
func (s *Store) UserName(id uint32) (string, error) {
	if int(id) >= len(s.users) {
		return "", fmt.Errorf("%w: user id %d of %d", arena.ErrOutOfBounds, id, len(s.users))
	}
	return s.bytes.Get(s.users[id])
}

// Uploader returns the uploader name of rec, if it has one.
func (s *Store) Uploader(rec model.Record) (string, bool, error) {
	if !rec.HasUploader() {
		return "", false, nil
	}
	name, err := s.UserName(rec.Uploader)
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// Entry is a record with every handle resolved.
type Entry struct {
	GID        uint64
	CurrentGID model.OptionalGID
	FirstGID   model.OptionalGID
	ParentGID  model.OptionalGID

	Token    string
	Title    string
	TitleJPN string // empty when absent
	Thumb    string // path below model.ThumbPrefix

	Category     model.Category
	Uploader     string
	HasUploader  bool
	Rating       float64
	FileCount    uint32
	FileSize     uint64
	Posted       uint64
	Dumped       uint64
	Expunged     bool
	TorrentCount uint32

	Tags     []EntryTag
	Torrents []EntryTorrent
}

// ThumbURL returns the full thumbnail URL.
func (e *Entry) ThumbURL() string {
	return model.ThumbPrefix + e.Thumb
}

// EntryTag is a resolved tag.
type EntryTag struct {
	Namespace model.Namespace
	Value     string
}

// String returns the tag in "namespace:value" form.
func (t EntryTag) String() string {
	if t.Namespace == model.NamespaceNone {
		return t.Value
	}
	return t.Namespace.String() + ":" + t.Value
}

// EntryTorrent is a resolved transfer descriptor.
type EntryTorrent struct {
	Added       uint64
	FileSize    uint64
	TorrentSize uint64
	Hash        string
	Name        string // empty when absent
}

// Get returns the fully resolved record for gid, or ErrNotFound.
func (s *Store) Get(gid uint64) (Entry, error) {
	rec, ok := s.records[gid]
	if !ok {
		return Entry{}, fmt.Errorf("%w: gid %d", ErrNotFound, gid)
	}
	return s.resolve(rec)
}

func (s *Store) resolve(rec model.Record) (Entry, error) {
	e := Entry{
		GID:          rec.GID,
		CurrentGID:   rec.CurrentGID,
		FirstGID:     rec.FirstGID,
		ParentGID:    rec.ParentGID,
		Category:     rec.Category,
		Rating:       rec.Rating,
		FileCount:    rec.FileCount,
		FileSize:     rec.FileSize,
		Posted:       rec.Posted,
		Dumped:       rec.Dumped,
		Expunged:     rec.Expunged,
		TorrentCount: rec.TorrentCount,
	}

	var err error
	for _, f := range []struct {
		dst *string
		h   arena.StringHandle
	}{
		{&e.Token, rec.Token},
		{&e.Title, rec.Title},
		{&e.TitleJPN, rec.TitleJPN},
		{&e.Thumb, rec.Thumb},
	} {
		if *f.dst, err = s.String(f.h); err != nil {
			return Entry{}, err
		}
	}

	if e.Uploader, e.HasUploader, err = s.Uploader(rec); err != nil {
		return Entry{}, err
	}

	tags, err := s.Tags(rec)
	if err != nil {
		return Entry{}, err
	}
	e.Tags = make([]EntryTag, len(tags))
	for i, t := range tags {
		v, err := s.TagValue(t.ID)
		if err != nil {
			return Entry{}, err
		}
		e.Tags[i] = EntryTag{Namespace: t.Namespace, Value: v}
	}

	torrents, err := s.Torrents(rec)
	if err != nil {
		return Entry{}, err
	}
	e.Torrents = make([]EntryTorrent, len(torrents))
	for i, t := range torrents {
		hash, err := s.String(t.Hash)
		if err != nil {
			return Entry{}, err
		}
		name, err := s.String(t.Name)
		if err != nil {
			return Entry{}, err
		}
		e.Torrents[i] = EntryTorrent{
			Added:       t.Added,
			FileSize:    t.FileSize,
			TorrentSize: t.TorrentSize,
			Hash:        hash,
			Name:        name,
		}
	}
	return e, nil
}
