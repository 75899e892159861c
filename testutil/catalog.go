package testutil

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/hupe1980/catalogdb/schema"
)

var (
	categories = []string{
		"Doujinshi", "Manga", "Artist CG", "Game CG", "Western",
		"Non-H", "Image Set", "Cosplay", "Asian Porn", "Misc", "private",
	}
	namespaces = []string{
		"", "artist", "group", "parody", "character", "female", "male",
		"mixed", "language", "other", "reclass", "cosplayer", "location", "temp",
	}
)

// CatalogConfig shapes generated records.
type CatalogConfig struct {
	Records     int     // number of records
	Users       int     // distinct uploaders; default 100
	Tags        int     // distinct tag values; default 500
	MaxTags     int     // tags per record are in [0, MaxTags]; default 8
	MaxTorrents int     // torrents per record are in [0, MaxTorrents]; default 2
	Skew        float64 // Zipf exponent for uploaders and tags; default 1.1
	Disowned    float64 // fraction of withdrawn records
}

func (c *CatalogConfig) defaults() {
	if c.Users <= 0 {
		c.Users = 100
	}
	if c.Tags <= 0 {
		c.Tags = 500
	}
	if c.MaxTags <= 0 {
		c.MaxTags = 8
	}
	if c.MaxTorrents < 0 {
		c.MaxTorrents = 0
	} else if c.MaxTorrents == 0 {
		c.MaxTorrents = 2
	}
	if c.Skew <= 0 {
		c.Skew = 1.1
	}
}

// Records generates cfg.Records records with consecutive identifiers
// starting at firstGID. Each record is a JSON-ready map that passes schema
// validation.
func (r *RNG) Records(cfg CatalogConfig, firstGID uint64) []map[string]any {
	cfg.defaults()
	users := newZipfTable(cfg.Users, cfg.Skew)
	tags := newZipfTable(cfg.Tags, cfg.Skew)

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]map[string]any, cfg.Records)
	for i := range out {
		gid := firstGID + uint64(i) //nolint:gosec // i is non-negative
		out[i] = r.recordLocked(cfg, gid, users, tags)
	}
	return out
}

func (r *RNG) recordLocked(cfg CatalogConfig, gid uint64, users, tags zipfTable) map[string]any {
	uploader := "user" + strconv.Itoa(r.zipfLocked(users))
	if r.rand.Float64() < cfg.Disowned {
		uploader = schema.DisownedUploader
	}

	tagList := make([]string, r.rand.Intn(cfg.MaxTags+1))
	for i := range tagList {
		ns := namespaces[r.rand.Intn(len(namespaces))]
		value := "tag" + strconv.Itoa(r.zipfLocked(tags))
		if ns != "" {
			value = ns + ":" + value
		}
		tagList[i] = value
	}

	torrents := make([]map[string]any, r.rand.Intn(cfg.MaxTorrents+1))
	for i := range torrents {
		torrents[i] = map[string]any{
			"added": strconv.FormatInt(1_500_000_000+r.rand.Int63n(200_000_000), 10),
			"fsize": strconv.FormatInt(r.rand.Int63n(1<<30), 10),
			"tsize": strconv.FormatInt(r.rand.Int63n(1<<20), 10),
			"hash":  fmt.Sprintf("%040x", r.rand.Uint64()),
			"name":  fmt.Sprintf("gallery-%d-%d.zip", gid, i),
		}
	}

	var titleJPN string
	if r.rand.Intn(2) == 0 {
		titleJPN = fmt.Sprintf("ギャラリー %d", gid)
	}

	var parent any
	if gid > 1 && r.rand.Intn(4) == 0 {
		parent = strconv.FormatUint(gid-1, 10)
	}

	return map[string]any{
		"gid":          gid,
		"token":        fmt.Sprintf("%010x", r.rand.Uint64()>>24),
		"category":     categories[r.rand.Intn(len(categories))],
		"dumped":       1_700_000_000 + r.rand.Int63n(10_000_000),
		"current_gid":  nil,
		"first_gid":    gid,
		"parent_gid":   parent,
		"expunged":     r.rand.Intn(20) == 0,
		"filecount":    strconv.Itoa(1 + r.rand.Intn(300)),
		"filesize":     r.rand.Int63n(1 << 30),
		"posted":       strconv.FormatInt(1_200_000_000+r.rand.Int63n(500_000_000), 10),
		"rating":       strconv.FormatFloat(float64(r.rand.Intn(501))/100, 'f', 2, 64),
		"tags":         tagList,
		"thumb":        fmt.Sprintf("https://ehgt.org/%02x/%d.jpg", r.rand.Intn(256), gid),
		"title":        fmt.Sprintf("Gallery %d", gid),
		"title_jpn":    titleJPN,
		"torrentcount": strconv.Itoa(len(torrents)),
		"torrents":     torrents,
		"uploader":     uploader,
	}
}

// BulkJSON encodes records as a bulk file: one JSON array.
func BulkJSON(recs []map[string]any) ([]byte, error) {
	return json.Marshal(recs)
}

// SingleJSON encodes one record as a single file.
func SingleJSON(rec map[string]any) ([]byte, error) {
	return json.Marshal(rec)
}
