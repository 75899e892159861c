package schema

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/hupe1980/catalogdb/model"
)

// DisownedUploader is the uploader literal of a withdrawn contribution.
const DisownedUploader = "(Disowned)"

// RawRecord is one catalog record as served by the upstream metadata API.
//
// Pointer fields are required; nil means the field was absent or null.
type RawRecord struct {
	Error        *bool            `json:"error"`
	Category     *model.Category  `json:"category"`
	Dumped       *uint64          `json:"dumped"`
	CurrentGID   Nullable[uint64] `json:"current_gid"`
	CurrentKey   *string          `json:"current_key"`
	Expunged     *bool            `json:"expunged"`
	FileCount    Flex[uint32]     `json:"filecount"`
	FileSize     *uint64          `json:"filesize"`
	FirstGID     Nullable[uint64] `json:"first_gid"`
	FirstKey     *string          `json:"first_key"`
	GID          *uint64          `json:"gid"`
	ParentGID    Nullable[uint64] `json:"parent_gid"`
	ParentKey    *string          `json:"parent_key"`
	Posted       Flex[uint64]     `json:"posted"`
	Rating       Flex[float64]    `json:"rating"`
	Tags         *[]string        `json:"tags"`
	Thumb        *string          `json:"thumb"`
	Title        *string          `json:"title"`
	TitleJPN     Text             `json:"title_jpn"`
	Token        *string          `json:"token"`
	TorrentCount Flex[uint32]     `json:"torrentcount"`
	Torrents     *[]RawTorrent    `json:"torrents"`
	Uploader     *string          `json:"uploader"`
}

// RawTorrent is one file-transfer descriptor of a RawRecord.
type RawTorrent struct {
	Added       Flex[uint64] `json:"added"`
	FileSize    Flex[uint64] `json:"fsize"`
	Hash        *string      `json:"hash"`
	Name        *string      `json:"name"`
	TorrentSize Flex[uint64] `json:"tsize"`
}

// Validate reports the first missing required field.
func (r *RawRecord) Validate() error {
	switch {
	case r.GID == nil:
		return missing("gid")
	case r.Category == nil:
		return missing("category")
	case r.Dumped == nil:
		return missing("dumped")
	case r.Expunged == nil:
		return missing("expunged")
	case !r.FileCount.Set:
		return missing("filecount")
	case r.FileSize == nil:
		return missing("filesize")
	case !r.Posted.Set:
		return missing("posted")
	case !r.Rating.Set:
		return missing("rating")
	case r.Tags == nil:
		return missing("tags")
	case r.Thumb == nil:
		return missing("thumb")
	case r.Title == nil:
		return missing("title")
	case !r.TitleJPN.Set:
		return missing("title_jpn")
	case r.Token == nil:
		return missing("token")
	case !r.TorrentCount.Set:
		return missing("torrentcount")
	case r.Torrents == nil:
		return missing("torrents")
	case r.Uploader == nil:
		return missing("uploader")
	}
	for i := range *r.Torrents {
		if err := (*r.Torrents)[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

func (t *RawTorrent) validate() error {
	switch {
	case !t.Added.Set:
		return missing("torrents.added")
	case !t.FileSize.Set:
		return missing("torrents.fsize")
	case t.Hash == nil:
		return missing("torrents.hash")
	case !t.TorrentSize.Set:
		return missing("torrents.tsize")
	}
	return nil
}

// SecondaryTitle returns title_jpn, treating null and a blank string as
// absent.
func (r *RawRecord) SecondaryTitle() (string, bool) {
	if !r.TitleJPN.Valid || strings.TrimSpace(r.TitleJPN.Value) == "" {
		return "", false
	}
	return r.TitleJPN.Value, true
}

// Text is a string field that must be present but may be null. Set is
// filled in by RawRecord.UnmarshalJSON from the object's keys.
type Text struct {
	Value string
	Valid bool
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Value, t.Valid = "", false
		return nil
	}
	if err := json.Unmarshal(data, &t.Value); err != nil {
		return err
	}
	t.Valid = true
	return nil
}

// Disowned reports whether the uploader is the withdrawn-contribution literal.
func (r *RawRecord) Disowned() bool {
	return r.Uploader != nil && *r.Uploader == DisownedUploader
}
