// Package encoding packs tile rows compactly for snapshots.
package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// EncodeRLE encodes a sequence of tile bytes into base64(pairs).
// The pairs are (tile, varint run_len) repeated.
func EncodeRLE(tiles []byte) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	i := 0
	for i < len(tiles) {
		b := tiles[i]
		run := 1
		for j := i + 1; j < len(tiles) && tiles[j] == b; j++ {
			run++
		}

		buf.WriteByte(b)
		n := binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])

		i += run
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// DecodeRLE expands b64, refusing to produce more than limit tiles.
func DecodeRLE(b64 string, limit int) ([]byte, error) {
	if limit < 0 {
		return nil, fmt.Errorf("negative tile limit %d", limit)
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	var out []byte
	for i := 0; i < len(raw); {
		b := raw[i]
		i++
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if run == 0 {
			return nil, fmt.Errorf("empty run at %d", i)
		}
		if run > uint64(limit-len(out)) {
			return nil, fmt.Errorf("run of %d at %d exceeds %d tiles", run, i, limit)
		}
		out = append(out, bytes.Repeat([]byte{b}, int(run))...)
	}
	return out, nil
}
