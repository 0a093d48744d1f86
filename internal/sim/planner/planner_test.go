package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"treasurehunt.ai/internal/protocol"
	"treasurehunt.ai/internal/sim/grid"
	"treasurehunt.ai/internal/sim/tuning"
	"treasurehunt.ai/internal/sim/world"
)

const (
	L = protocol.TurnLeft
	R = protocol.TurnRight
	F = protocol.Forward
	C = protocol.Chop
	B = protocol.Blast
	U = protocol.Unlock
)

// stateFrom builds a model whose map is rows, with the agent and home on
// the '^' cell facing north.
func stateFrom(rows ...string) *world.State {
	s := world.NewState()
	s.Map = world.FromRows(rows...)
	for r, row := range rows {
		for c := 0; c < len(row); c++ {
			p := grid.Pos{X: c, Y: -r}
			t := grid.Tile(row[c])
			if t == grid.FacingNorth {
				s.Pos, s.Home = p, p
			}
			s.Known.Observe(p, t)
		}
	}
	return s
}

func newPlanner(s *world.State) *Planner {
	return New(s, tuning.Defaults(), zap.NewNop())
}

// drain runs one planned route to completion.
func drain(t *testing.T, pl *Planner) (string, []protocol.Instruction) {
	t.Helper()
	d, err := pl.Next()
	require.NoError(t, err)
	require.False(t, d.Idle, "planner idled")
	out := []protocol.Instruction{d.Instruction}
	for pl.Pending() > 0 {
		d, err := pl.Next()
		require.NoError(t, err)
		require.Empty(t, d.Rule)
		out = append(out, d.Instruction)
	}
	return d.Rule, out
}

func requireSteps(t *testing.T, want, got []protocol.Instruction) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanner_FetchesTreasureAndReturns(t *testing.T) {
	s := stateFrom("^  $")
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "treasure/direct", rule)
	requireSteps(t, []protocol.Instruction{R, F, F, F}, steps)
	require.True(t, s.Inv.HoldTreasure)

	rule, steps = drain(t, pl)
	require.Equal(t, "return/walk", rule)
	requireSteps(t, []protocol.Instruction{L, L, F, F, F}, steps)
	require.Equal(t, s.Home, s.Pos)
}

func TestPlanner_PrefersDetourOverBlast(t *testing.T) {
	s := stateFrom(
		"    ",
		" *^ ",
	)
	s.Home = grid.Pos{Y: -1}
	s.Inv = world.Inventory{HoldTreasure: true, Dynamite: 1}
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "return/walk", rule)
	require.NotContains(t, steps, B)
	require.Equal(t, s.Home, s.Pos)
	require.Equal(t, 1, s.Inv.Dynamite)
}

func TestPlanner_BlastsWhenNoDetour(t *testing.T) {
	s := stateFrom(
		"  . ",
		" *^ ",
	)
	s.Home = grid.Pos{Y: -1}
	s.Inv = world.Inventory{HoldTreasure: true, Dynamite: 1}
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "return/walk", rule)
	requireSteps(t, []protocol.Instruction{L, B, F, F}, steps)
	require.Equal(t, s.Home, s.Pos)
	require.Zero(t, s.Inv.Dynamite)
}

func TestPlanner_KeyBeforeDoor(t *testing.T) {
	s := stateFrom("$-^k")
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "treasure/fetch_tool", rule)
	requireSteps(t, []protocol.Instruction{R, F}, steps)
	require.True(t, s.Inv.HoldKey)

	rule, steps = drain(t, pl)
	require.Equal(t, "treasure/direct", rule)
	requireSteps(t, []protocol.Instruction{L, L, F, U, F, F}, steps)
	require.True(t, s.Inv.HoldTreasure)
}

func TestPlanner_RaftFirstThenIsland(t *testing.T) {
	s := stateFrom(
		"^ T",
		"~~~",
		"  $",
	)
	s.Inv.HoldAxe = true
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "treasure/raft_first", rule)
	requireSteps(t, []protocol.Instruction{R, F, C, F}, steps)
	require.True(t, s.Inv.HoldRaft)

	rule, steps = drain(t, pl)
	require.Equal(t, "treasure/island", rule)
	requireSteps(t, []protocol.Instruction{R, F, F}, steps)
	require.True(t, s.Inv.HoldTreasure)
	require.False(t, s.Inv.UsingRaft)
}

func TestPlanner_CollectsVisibleTool(t *testing.T) {
	s := stateFrom(
		".....",
		". a .",
		". ^ .",
		".....",
	)
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "collect/axe", rule)
	requireSteps(t, []protocol.Instruction{F}, steps)
	require.True(t, s.Inv.HoldAxe)
	require.Empty(t, s.Known.Axes)
}

func TestPlanner_ExploresNearestFrontier(t *testing.T) {
	s := stateFrom(
		"     ",
		"     ",
		"  ^  ",
		"     ",
		"     ",
	)
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "explore/land", rule)
	requireSteps(t, []protocol.Instruction{R, F}, steps)
}

func TestPlanner_IdlesWhenNothingLeft(t *testing.T) {
	s := stateFrom(
		".........",
		".........",
		".........",
		"...   ...",
		"... ^ ...",
		"...   ...",
		".........",
		".........",
		".........",
	)
	pl := newPlanner(s)

	for i, want := range []grid.Direction{grid.West, grid.South} {
		d, err := pl.Next()
		require.NoError(t, err)
		require.True(t, d.Idle, "cycle %d", i)
		require.Equal(t, L, d.Instruction)
		require.Empty(t, d.Rule)
		require.Equal(t, want, s.Facing)
	}
}

func TestPlanner_LaunchesThenSails(t *testing.T) {
	s := stateFrom(
		"...........",
		"...........",
		"..  ~~~~~~~",
		"..^ ~~~~~~~",
		"..  ~~~~~~~",
		"...........",
		"...........",
	)
	s.Inv.HoldRaft = true
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "explore/launch", rule)
	requireSteps(t, []protocol.Instruction{R, F, F}, steps)
	require.True(t, s.Inv.UsingRaft)

	rule, _ = drain(t, pl)
	require.Equal(t, "explore/water", rule)
	require.True(t, s.Inv.UsingRaft)
	require.GreaterOrEqual(t, s.Pos.X, 9)
}

func TestPlanner_BlastsToVisibleTreasure(t *testing.T) {
	s := stateFrom("^*$")
	s.Inv.Dynamite = 1
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "treasure/blast", rule)
	requireSteps(t, []protocol.Instruction{R, B, F, F}, steps)
	require.True(t, s.Inv.HoldTreasure)
	require.Zero(t, s.Inv.Dynamite)
}

func TestPlanner_RaftsThenBlastsToTreasure(t *testing.T) {
	s := stateFrom("^~*$")
	s.Inv = world.Inventory{HoldRaft: true, Dynamite: 1}
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "treasure/river_blast", rule)
	requireSteps(t, []protocol.Instruction{R, F, B, F, F}, steps)
	require.True(t, s.Inv.HoldTreasure)
	require.Zero(t, s.Inv.Dynamite)
	require.False(t, s.Inv.HoldRaft)
	require.False(t, s.Inv.UsingRaft)
}

func TestPlanner_DirectUsesHeldAxeNotDynamite(t *testing.T) {
	s := stateFrom("^T$")
	s.Inv = world.Inventory{HoldAxe: true, Dynamite: 1}
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "treasure/direct", rule)
	requireSteps(t, []protocol.Instruction{R, C, F, F}, steps)
	require.True(t, s.Inv.HoldTreasure)
	require.Equal(t, 1, s.Inv.Dynamite)
}

func TestPlanner_RiverReturnPicksUpAxe(t *testing.T) {
	// The only raft-free way home chops the tree with the axe lying in
	// front of it; the water route needs two rafts.
	s := stateFrom(
		" Ta^",
		"~ ~ ",
	)
	s.Home = grid.Pos{}
	s.Inv = world.Inventory{HoldRaft: true, HoldTreasure: true}
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "return/river", rule)
	requireSteps(t, []protocol.Instruction{L, F, C, F, F}, steps)
	require.Equal(t, s.Home, s.Pos)
	require.True(t, s.Inv.HoldAxe)
}

func TestPlanner_FerriesHomeOneCrossingAtATime(t *testing.T) {
	s := stateFrom(
		" ~ ~^",
		"..T..",
	)
	s.Home = grid.Pos{}
	s.Inv = world.Inventory{HoldAxe: true, HoldRaft: true, HoldTreasure: true}
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "return/ferry", rule)
	requireSteps(t, []protocol.Instruction{L, F, F}, steps)
	require.Equal(t, grid.Pos{X: 2}, s.Pos)
	require.False(t, s.Inv.HoldRaft)
	require.False(t, s.Inv.UsingRaft)

	rule, steps = drain(t, pl)
	require.Equal(t, "return/fetch_raft", rule)
	requireSteps(t, []protocol.Instruction{L, C, F}, steps)
	require.True(t, s.Inv.HoldRaft)

	rule, steps = drain(t, pl)
	require.Equal(t, "return/walk", rule)
	requireSteps(t, []protocol.Instruction{L, L, F, L, F, F}, steps)
	require.Equal(t, s.Home, s.Pos)
	require.True(t, s.Inv.HoldTreasure)
}

func TestPlanner_ReturnsAcrossTwoRivers(t *testing.T) {
	s := stateFrom(
		".  T ~~~   ~~~  $.",
		".    ~~~ T ~~~ T .",
		".  ^ ~~~   ~~~   .",
	)
	at := grid.Pos{X: 16}
	s.Map.Set(at, grid.Space)
	s.Known.Observe(at, grid.Space)
	s.Pos = at
	s.Inv = world.Inventory{HoldAxe: true, HoldRaft: true, HoldTreasure: true}
	pl := newPlanner(s)

	for i := 0; i < 300 && s.Pos != s.Home; i++ {
		d, err := pl.Next()
		require.NoError(t, err)
		require.False(t, d.Idle, "idled at %v on cycle %d", s.Pos, i)
	}
	require.Equal(t, s.Home, s.Pos)
	require.True(t, s.Inv.HoldTreasure)
}

func TestPlanner_ChopsTowardHiddenGround(t *testing.T) {
	s := stateFrom(
		"........",
		"........",
		"..^  TTT",
		"........",
		"........",
	)
	s.Inv = world.Inventory{HoldAxe: true, HoldRaft: true}
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "explore/trees", rule)
	requireSteps(t, []protocol.Instruction{R, F, F, C, F, C, F}, steps)
	require.Equal(t, grid.Pos{X: 6, Y: -2}, s.Pos)
	require.True(t, s.Inv.HoldRaft)
}

func TestPlanner_LandsOnUnexploredShore(t *testing.T) {
	s := stateFrom(
		".......",
		".......",
		"..^~~  ",
		".......",
		".......",
	)
	s.Inv.UsingRaft = true
	pl := newPlanner(s)

	rule, steps := drain(t, pl)
	require.Equal(t, "explore/landing", rule)
	requireSteps(t, []protocol.Instruction{R, F, F, F}, steps)
	require.Equal(t, grid.Pos{X: 5, Y: -2}, s.Pos)
	require.False(t, s.Inv.UsingRaft)
}
