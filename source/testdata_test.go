package source

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func recordJSON(gid uint64, uploader string) string {
	return fmt.Sprintf(`{
		"gid": %d, "token": "tok%d", "category": "Manga", "dumped": 1,
		"current_gid": null, "first_gid": null, "parent_gid": null,
		"expunged": false, "filecount": "3", "filesize": 300, "posted": "1600000000",
		"rating": "4.5", "tags": ["female:glasses", "english"],
		"thumb": "https://ehgt.org/t/%d.jpg", "title": "Title %d", "title_jpn": "",
		"torrentcount": "0", "torrents": [], "uploader": %q
	}`, gid, gid, gid, gid, uploader)
}

func compress(t *testing.T, c Compression, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch c {
	case CompressionNone:
		return data
	case CompressionZstd:
		w, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case CompressionGzip:
		w := gzip.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case CompressionS2:
		w := s2.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case CompressionLZ4:
		w := lz4.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}
	return buf.Bytes()
}
