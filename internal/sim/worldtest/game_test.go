package worldtest

import (
	"testing"

	"treasurehunt.ai/internal/protocol"
	"treasurehunt.ai/internal/sim/grid"
)

func mustGame(t *testing.T, rows ...string) *Game {
	t.Helper()
	g, err := NewGame(rows...)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func act(t *testing.T, g *Game, ins string) {
	t.Helper()
	for i := 0; i < len(ins); i++ {
		if err := g.Act(protocol.Instruction(ins[i])); err != nil {
			t.Fatalf("act %q: %v", ins[i], err)
		}
	}
}

func TestNewGame_NeedsOneStart(t *testing.T) {
	if _, err := NewGame("   "); err == nil {
		t.Fatalf("expected error without a start")
	}
	if _, err := NewGame("^ ^"); err == nil {
		t.Fatalf("expected error with two starts")
	}
	if _, err := NewGame("^ Z"); err == nil {
		t.Fatalf("expected error for unknown tile")
	}
}

func TestGame_ViewIsEgocentric(t *testing.T) {
	g := mustGame(t,
		"k    ",
		"     ",
		"  >  ",
		"     ",
		"    a",
	)
	v := g.View()
	// Facing east the key (north-west) is behind-left and the axe
	// (south-east) is ahead-right.
	if v[4][0] != grid.Key {
		t.Fatalf("view[4][0]=%q want key", v[4][0])
	}
	if v[0][4] != grid.Axe {
		t.Fatalf("view[0][4]=%q want axe", v[0][4])
	}
	if v[2][2] != grid.FacingEast {
		t.Fatalf("centre=%q", v[2][2])
	}
}

func TestGame_Drowns(t *testing.T) {
	g := mustGame(t, "^", "~")
	act(t, g, "RRF")
	if g.Lost != "drowned" {
		t.Fatalf("lost=%q want drowned", g.Lost)
	}
	if err := g.Act(protocol.Forward); err != ErrGameOver {
		t.Fatalf("act after loss err=%v", err)
	}
}

func TestGame_RaftCrossingAndWin(t *testing.T) {
	g := mustGame(t,
		"$",
		" ",
		"~",
		"T",
		"^",
		"a",
	)
	act(t, g, "LLFLLFC")
	if !g.Inv.HoldAxe || !g.Inv.HoldRaft {
		t.Fatalf("inv=%+v want axe and raft", g.Inv)
	}
	act(t, g, "FF")
	if !g.Inv.UsingRaft {
		t.Fatalf("expected to be rafting at %v", g.Pos)
	}
	act(t, g, "FF")
	if g.Inv.UsingRaft || !g.Inv.HoldTreasure {
		t.Fatalf("inv=%+v after landing on treasure", g.Inv)
	}
	// The raft stayed behind, so the way back drowns.
	act(t, g, "LLFF")
	if g.Lost != "drowned" {
		t.Fatalf("lost=%q want drowned", g.Lost)
	}
}

func TestGame_BlockedMovesAreIgnored(t *testing.T) {
	g := mustGame(t, "*-T", "^  ")
	act(t, g, "FBUC")
	if g.Pos != (grid.Pos{Y: -1}) {
		t.Fatalf("moved into wall: %v", g.Pos)
	}
	if g.At(grid.Pos{}) != grid.Wall {
		t.Fatalf("wall removed without dynamite")
	}
}
