// Package snapshot dumps the agent's world model to disk so a desync can be
// inspected after the session ends.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"treasurehunt.ai/internal/sim/encoding"
	"treasurehunt.ai/internal/sim/grid"
	"treasurehunt.ai/internal/sim/world"
)

const Version = 1

// maxTiles caps the known rectangle a snapshot may claim.
const maxTiles = 1 << 24

type Header struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	Cycle   int    `json:"cycle"`
	Reason  string `json:"reason,omitempty"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	Pos       [2]int          `json:"pos"`
	Home      [2]int          `json:"home"`
	Facing    string          `json:"facing"`
	Inventory world.Inventory `json:"inventory"`

	// Tiles holds the known rectangle north-up, row-major, starting at
	// (MinX, MaxY).
	MinX   int    `json:"min_x"`
	MaxY   int    `json:"max_y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tiles  string `json:"tiles"`
}

func FromState(runID, reason string, st *world.State) SnapshotV1 {
	snap := SnapshotV1{
		Header:    Header{Version: Version, RunID: runID, Cycle: st.Cycle, Reason: reason},
		Pos:       [2]int{st.Pos.X, st.Pos.Y},
		Home:      [2]int{st.Home.X, st.Home.Y},
		Facing:    st.Facing.String(),
		Inventory: st.Inv,
	}
	min, max, ok := st.Map.Bounds()
	if !ok {
		return snap
	}
	snap.MinX, snap.MaxY = min.X, max.Y
	snap.Width, snap.Height = max.X-min.X+1, max.Y-min.Y+1
	raw := make([]byte, 0, snap.Width*snap.Height)
	for y := max.Y; y >= min.Y; y-- {
		for x := min.X; x <= max.X; x++ {
			raw = append(raw, byte(st.Map.At(grid.Pos{X: x, Y: y})))
		}
	}
	snap.Tiles = encoding.EncodeRLE(raw)
	return snap
}

// Map rebuilds the remembered terrain.
func (s SnapshotV1) Map() (*world.Map, error) {
	if s.Width < 0 || s.Height < 0 || (s.Height > 0 && s.Width > maxTiles/s.Height) {
		return nil, fmt.Errorf("tiles: bad size %dx%d", s.Width, s.Height)
	}
	m := world.NewMap()
	raw, err := encoding.DecodeRLE(s.Tiles, s.Width*s.Height)
	if err != nil {
		return nil, fmt.Errorf("tiles: %w", err)
	}
	if len(raw) != s.Width*s.Height {
		return nil, fmt.Errorf("tiles: got %d cells want %dx%d", len(raw), s.Width, s.Height)
	}
	for i, b := range raw {
		m.Set(grid.Pos{X: s.MinX + i%s.Width, Y: s.MaxY - i/s.Width}, grid.Tile(b))
	}
	return m, nil
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Encode(f, snap); err != nil {
		return err
	}
	return f.Close()
}

// Encode writes snap to w as a zstd stream: a JSON header line, then the
// gob-encoded snapshot.
func Encode(w io.Writer, snap SnapshotV1) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := encodeBody(enc, snap); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func encodeBody(w io.Writer, snap SnapshotV1) error {
	bw := bufio.NewWriter(w)
	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return bw.Flush()
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)

	// Header line is for humans and zstdcat; gob carries it too.
	if _, err := br.ReadBytes('\n'); err != nil {
		return snap, fmt.Errorf("header: %w", err)
	}
	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	if snap.Header.Version != Version {
		return snap, fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	return snap, nil
}
