package agent

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"treasurehunt.ai/internal/persistence/snapshot"
	"treasurehunt.ai/internal/protocol"
	"treasurehunt.ai/internal/sim/grid"
	"treasurehunt.ai/internal/sim/tuning"
	"treasurehunt.ai/internal/sim/world"
	"treasurehunt.ai/internal/sim/worldtest"
)

type memTrace struct{ got []Decision }

func (m *memTrace) WriteDecision(d Decision) error {
	m.got = append(m.got, d)
	return nil
}

func newAgent(trace Tracer) *Agent {
	return New(Config{Tuning: tuning.Defaults(), Logger: zap.NewNop(), Trace: trace, RunID: "test"})
}

func TestAgent_OpenRoom(t *testing.T) {
	trace := &memTrace{}
	h := worldtest.NewHarness(t, newAgent(trace),
		".......",
		".     .",
		". $   .",
		".     .",
		".  ^  .",
		".......",
	)
	h.RequireWin(200)

	require.Len(t, trace.got, len(h.Actions))
	require.Equal(t, "treasure/direct", trace.got[0].Rule)
	for i, d := range trace.got {
		require.Equal(t, i, d.Cycle)
		require.Equal(t, "test", d.RunID)
		require.Equal(t, h.Actions[i].String(), d.Action)
	}
}

func TestAgent_ExploresThenUnlocks(t *testing.T) {
	h := worldtest.NewHarness(t, newAgent(nil),
		".........",
		".$  -   .",
		".****** .",
		".k   ^  .",
		".........",
	)
	h.RequireWin(400)
}

func TestAgent_ChopsRaftToCross(t *testing.T) {
	h := worldtest.NewHarness(t, newAgent(nil),
		"..........",
		".a  ~~  $.",
		".T  ~~ T .",
		".   ~~   .",
		".  ^~~   .",
		"..........",
	)
	h.RequireWin(600)
}

func TestAgent_BlastsIntoVault(t *testing.T) {
	h := worldtest.NewHarness(t, newAgent(nil),
		"........",
		".d  *$*.",
		".   ***.",
		".  ^   .",
		"........",
	)
	h.RequireWin(400)
}

func TestAgent_IdlesWithoutTreasure(t *testing.T) {
	a := newAgent(nil)
	h := worldtest.NewHarness(t, a,
		".....",
		".   .",
		". ^ .",
		".....",
	)
	require.False(t, h.Play(20))
	require.Equal(t, "", h.Game.Lost)
	require.Equal(t, 20, a.State().Cycle)
}

func openView() protocol.View {
	var v protocol.View
	for r := range v {
		for c := range v[r] {
			v[r][c] = grid.Space
		}
	}
	return v
}

func TestAgent_DesyncDumpsWorldModel(t *testing.T) {
	dir := t.TempDir()
	a := New(Config{Tuning: tuning.Defaults(), Logger: zap.NewNop(), RunID: "desync", SnapshotDir: dir})

	v := openView()
	v[0][2] = grid.Treasure
	in, err := a.Step(v)
	require.NoError(t, err)
	require.Equal(t, protocol.Forward, in)

	// The engine now shows water where the queued step lands.
	v = openView()
	v[1][2] = grid.Water
	_, err = a.Step(v)
	require.True(t, errors.Is(err, world.ErrDesync), "got %v", err)

	snap, err := snapshot.ReadSnapshot(filepath.Join(dir, "desync-desync.snap.zst"))
	require.NoError(t, err)
	require.Equal(t, "desync", snap.Header.RunID)
	require.Equal(t, 1, snap.Header.Cycle)
	require.Equal(t, [2]int{0, 1}, snap.Pos)
	m, err := snap.Map()
	require.NoError(t, err)
	require.Equal(t, grid.Water, m.At(grid.Pos{X: 0, Y: 2}))
}
