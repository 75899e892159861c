package catalogdb

import (
	"encoding/json"
	"testing"

	"github.com/hupe1980/catalogdb/blobstore"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	GID      uint64
	Title    string
	Uploader string
	Tags     []string
	Torrents int
}

func (f fixture) record() map[string]any {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	uploader := f.Uploader
	if uploader == "" {
		uploader = "uploader"
	}
	torrents := make([]map[string]any, f.Torrents)
	for i := range torrents {
		torrents[i] = map[string]any{
			"added": "1600000000",
			"fsize": 1000 + i,
			"tsize": "2000",
			"hash":  "hash-" + f.Title,
			"name":  f.Title + ".zip",
		}
	}
	return map[string]any{
		"gid":          f.GID,
		"token":        "tok",
		"category":     "Misc",
		"dumped":       1700000000,
		"current_gid":  nil,
		"first_gid":    f.GID,
		"parent_gid":   nil,
		"expunged":     false,
		"filecount":    "10",
		"filesize":     12345,
		"posted":       "1600000000",
		"rating":       "4.21",
		"tags":         tags,
		"thumb":        "https://ehgt.org/th/" + f.Title + ".jpg",
		"title":        f.Title,
		"title_jpn":    "",
		"torrentcount": len(torrents),
		"torrents":     torrents,
		"uploader":     uploader,
	}
}

func putBulk(t *testing.T, store *blobstore.MemoryStore, name string, fs ...fixture) {
	t.Helper()
	recs := make([]map[string]any, len(fs))
	for i, f := range fs {
		recs[i] = f.record()
	}
	data, err := json.Marshal(recs)
	require.NoError(t, err)
	store.Put(name, data)
}

func putSingle(t *testing.T, store *blobstore.MemoryStore, name string, f fixture) {
	t.Helper()
	data, err := json.Marshal(f.record())
	require.NoError(t, err)
	store.Put(name, data)
}
