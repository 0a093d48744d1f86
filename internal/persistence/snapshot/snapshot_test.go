package snapshot

import (
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"treasurehunt.ai/internal/sim/grid"
	"treasurehunt.ai/internal/sim/world"
)

func TestWriteRead_RebuildsMap(t *testing.T) {
	st := world.NewState()
	st.Map = world.FromRows(
		"*****",
		"*k ~*",
		"*?T^*",
		"*****",
	)
	st.Pos = grid.Pos{X: 3, Y: -2}
	st.Inv = world.Inventory{HoldAxe: true, Dynamite: 1}
	st.Cycle = 42

	path := filepath.Join(t.TempDir(), "desync.snap.zst")
	require.NoError(t, WriteSnapshot(path, FromState("run-1", "drowned", st)))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Equal(t, Header{Version: Version, RunID: "run-1", Cycle: 42, Reason: "drowned"}, got.Header)
	require.Equal(t, [2]int{3, -2}, got.Pos)
	require.Equal(t, st.Inv, got.Inventory)

	m, err := got.Map()
	require.NoError(t, err)
	require.Equal(t, st.Map.String(), m.String())
	require.Equal(t, grid.Unseen, m.At(grid.Pos{X: 1, Y: -2}))
}

func TestFromState_EmptyMap(t *testing.T) {
	st := world.NewState()
	st.Map = world.NewMap()
	snap := FromState("r", "", st)
	m, err := snap.Map()
	require.NoError(t, err)
	require.Equal(t, 0, m.Len())
}

func TestReadSnapshot_Missing(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.snap.zst"))
	require.Error(t, err)
}

type brokenDisk struct{}

func (brokenDisk) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncode_WriteFailureReleasesEncoder(t *testing.T) {
	defer goleak.VerifyNone(t)

	st := world.NewState()
	rows := make([]string, 64)
	for i := range rows {
		// Alternating tiles defeat the run-length packing.
		rows[i] = strings.Repeat(" ~T*", 64)
	}
	st.Map = world.FromRows(rows...)

	err := Encode(brokenDisk{}, FromState("r", "", st))
	require.ErrorContains(t, err, "disk full")
}

func TestMap_RejectsCorruptTiles(t *testing.T) {
	huge := []byte{'~', 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}
	snap := SnapshotV1{Width: 3, Height: 2, Tiles: base64.StdEncoding.EncodeToString(huge)}
	_, err := snap.Map()
	require.Error(t, err)

	snap = SnapshotV1{Width: -1, Height: 2}
	_, err = snap.Map()
	require.Error(t, err)

	snap = SnapshotV1{Width: 1 << 40, Height: 1 << 40}
	_, err = snap.Map()
	require.Error(t, err)
}
