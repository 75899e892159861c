// Package transform turns validated raw records into arena-backed records.
//
// All mutable state shared between records lives in a Context. A Context is
// owned by a single goroutine.
package transform

import (
	"fmt"
	"strings"

	"github.com/hupe1980/catalogdb/internal/arena"
	"github.com/hupe1980/catalogdb/internal/dict"
	"github.com/hupe1980/catalogdb/model"
	"github.com/hupe1980/catalogdb/schema"
	"github.com/hupe1980/catalogdb/source"
)

// Context holds the arenas and dictionaries records are written into.
type Context struct {
	Bytes    *arena.Bytes
	Tags     *arena.Slab[model.Tag]
	Torrents *arena.Slab[model.Torrent]

	Users    *dict.Builder[string]
	TagNames *dict.Builder[string]

	// Reassigned credits withdrawn records to a user. May be nil.
	Reassigned source.Reassignments

	tagBuf     []model.Tag
	torrentBuf []model.Torrent
}

// NewContext creates a Context with empty arenas and dictionaries. opts
// apply to every arena.
func NewContext(reassigned source.Reassignments, opts ...arena.Option) *Context {
	return &Context{
		Bytes:      arena.NewBytes(opts...),
		Tags:       arena.NewSlab[model.Tag](opts...),
		Torrents:   arena.NewSlab[model.Torrent](opts...),
		Users:      dict.New[string](0),
		TagNames:   dict.New[string](0),
		Reassigned: reassigned,
	}
}

// Transform converts raw into a Record. raw is validated first. On error the
// arenas may hold orphaned bytes from the failed record.
func (c *Context) Transform(raw *schema.RawRecord) (model.Record, error) {
	if err := raw.Validate(); err != nil {
		return model.Record{}, err
	}

	rec := model.Record{
		GID:          *raw.GID,
		CurrentGID:   optional(raw.CurrentGID),
		FirstGID:     optional(raw.FirstGID),
		ParentGID:    optional(raw.ParentGID),
		Rating:       raw.Rating.Value,
		FileSize:     *raw.FileSize,
		Posted:       raw.Posted.Value,
		Dumped:       *raw.Dumped,
		FileCount:    raw.FileCount.Value,
		TorrentCount: raw.TorrentCount.Value,
		Uploader:     c.uploader(raw),
		Category:     *raw.Category,
		Expunged:     *raw.Expunged,
	}

	var err error
	if rec.Tags, err = c.tags(*raw.Tags); err != nil {
		return model.Record{}, err
	}
	if rec.Token, err = c.Bytes.Add(*raw.Token); err != nil {
		return model.Record{}, err
	}
	if rec.Title, err = c.Bytes.Add(*raw.Title); err != nil {
		return model.Record{}, err
	}
	if jpn, ok := raw.SecondaryTitle(); ok {
		if rec.TitleJPN, err = c.Bytes.Add(jpn); err != nil {
			return model.Record{}, err
		}
	}
	if rec.Thumb, err = c.Bytes.Add(strings.TrimPrefix(*raw.Thumb, model.ThumbPrefix)); err != nil {
		return model.Record{}, err
	}
	if rec.Torrents, err = c.torrents(*raw.Torrents); err != nil {
		return model.Record{}, err
	}
	return rec, nil
}

func optional(n schema.Nullable[uint64]) model.OptionalGID {
	if id, ok := n.Get(); ok {
		return model.SomeGID(id)
	}
	return model.OptionalGID{}
}

// uploader resolves the uploader to a user id. A withdrawn record without a
// reassignment has no uploader.
func (c *Context) uploader(raw *schema.RawRecord) uint32 {
	if !raw.Disowned() {
		return c.Users.Insert(*raw.Uploader)
	}
	if name, ok := c.Reassigned.Lookup(*raw.GID); ok {
		return c.Users.Insert(name)
	}
	return model.NoUploader
}

func (c *Context) tags(raw []string) (arena.Range, error) {
	c.tagBuf = c.tagBuf[:0]
	for _, s := range raw {
		t, err := schema.ParseTag(s)
		if err != nil {
			return arena.Range{}, fmt.Errorf("tag %q: %w", s, err)
		}
		c.tagBuf = append(c.tagBuf, model.Tag{
			ID:        c.TagNames.Insert(t.Value),
			Namespace: t.Namespace,
		})
	}
	return c.Tags.AddSlice(c.tagBuf)
}

func (c *Context) torrents(raw []schema.RawTorrent) (arena.Range, error) {
	c.torrentBuf = c.torrentBuf[:0]
	for i := range raw {
		rt := &raw[i]
		hash, err := c.Bytes.Add(*rt.Hash)
		if err != nil {
			return arena.Range{}, err
		}
		var name arena.StringHandle
		if rt.Name != nil {
			if name, err = c.Bytes.Add(*rt.Name); err != nil {
				return arena.Range{}, err
			}
		}
		c.torrentBuf = append(c.torrentBuf, model.Torrent{
			Added:       rt.Added.Value,
			FileSize:    rt.FileSize.Value,
			TorrentSize: rt.TorrentSize.Value,
			Hash:        hash,
			Name:        name,
		})
	}
	return c.Torrents.AddSlice(c.torrentBuf)
}
