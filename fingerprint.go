package catalogdb

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a digest of the store contents. Every record is hashed
// in ascending identifier order with all handles resolved, so two stores
// built from the same input have the same fingerprint regardless of how the
// input was decoded.
func (s *Store) Fingerprint() (uint64, error) {
	h := xxhash.New()
	var buf []byte

	for _, gid := range s.order {
		e, err := s.resolve(s.records[gid])
		if err != nil {
			return 0, err
		}

		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint64(buf, e.GID)
		buf = appendOptional(buf, e.CurrentGID.ID, e.CurrentGID.Valid)
		buf = appendOptional(buf, e.FirstGID.ID, e.FirstGID.Valid)
		buf = appendOptional(buf, e.ParentGID.ID, e.ParentGID.Valid)
		buf = appendString(buf, e.Token)
		buf = appendString(buf, e.Title)
		buf = appendString(buf, e.TitleJPN)
		buf = appendString(buf, e.Thumb)
		buf = append(buf, byte(e.Category), boolByte(e.Expunged), boolByte(s.FromSingle(gid)))
		buf = appendOptionalString(buf, e.Uploader, e.HasUploader)
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(e.Rating))
		buf = binary.LittleEndian.AppendUint32(buf, e.FileCount)
		buf = binary.LittleEndian.AppendUint64(buf, e.FileSize)
		buf = binary.LittleEndian.AppendUint64(buf, e.Posted)
		buf = binary.LittleEndian.AppendUint64(buf, e.Dumped)
		buf = binary.LittleEndian.AppendUint32(buf, e.TorrentCount)

		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(e.Tags))) //nolint:gosec // bounded by slab size
		for _, t := range e.Tags {
			buf = append(buf, byte(t.Namespace))
			buf = appendString(buf, t.Value)
		}
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(e.Torrents))) //nolint:gosec // bounded by slab size
		for _, t := range e.Torrents {
			buf = binary.LittleEndian.AppendUint64(buf, t.Added)
			buf = binary.LittleEndian.AppendUint64(buf, t.FileSize)
			buf = binary.LittleEndian.AppendUint64(buf, t.TorrentSize)
			buf = appendString(buf, t.Hash)
			buf = appendString(buf, t.Name)
		}

		_, _ = h.Write(buf)
	}
	return h.Sum64(), nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s))) //nolint:gosec // arena strings fit in uint32
	return append(buf, s...)
}

func appendOptional(buf []byte, v uint64, ok bool) []byte {
	buf = append(buf, boolByte(ok))
	return binary.LittleEndian.AppendUint64(buf, v)
}

func appendOptionalString(buf []byte, s string, ok bool) []byte {
	buf = append(buf, boolByte(ok))
	return appendString(buf, s)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
