package worldtest

import (
	"errors"
	"fmt"

	"treasurehunt.ai/internal/protocol"
	"treasurehunt.ai/internal/sim/grid"
	"treasurehunt.ai/internal/sim/world"
)

// ErrGameOver is returned by Act once the game has been won or lost.
var ErrGameOver = errors.New("game over")

// Game is a ground-truth simulation of the treasure hunt, for driving an
// agent end to end in tests. Cells outside the given rows are boundary.
type Game struct {
	tiles map[grid.Pos]grid.Tile

	Pos    grid.Pos
	Facing grid.Direction
	Home   grid.Pos
	Inv    world.Inventory
	Steps  int

	Won  bool
	Lost string
}

// NewGame parses rows (north first). Exactly one cell must hold a facing
// marker; it becomes the start and home tile.
func NewGame(rows ...string) (*Game, error) {
	g := &Game{tiles: map[grid.Pos]grid.Tile{}}
	starts := 0
	for r, row := range rows {
		for c := 0; c < len(row); c++ {
			t, err := grid.ParseTile(row[c])
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", r, c, err)
			}
			p := grid.Pos{X: c, Y: -r}
			if t.IsMarker() {
				starts++
				g.Pos, g.Home = p, p
				g.Facing = facingOf(t)
				t = grid.Space
			}
			g.tiles[p] = t
		}
	}
	if starts != 1 {
		return nil, fmt.Errorf("want exactly one start marker, found %d", starts)
	}
	return g, nil
}

func facingOf(t grid.Tile) grid.Direction {
	switch t {
	case grid.FacingEast:
		return grid.East
	case grid.FacingSouth:
		return grid.South
	case grid.FacingWest:
		return grid.West
	}
	return grid.North
}

func (g *Game) At(p grid.Pos) grid.Tile {
	if t, ok := g.tiles[p]; ok {
		return t
	}
	return grid.Boundary
}

func (g *Game) Over() bool { return g.Won || g.Lost != "" }

// View is what the agent sees from where it stands.
func (g *Game) View() protocol.View {
	var v protocol.View
	for r := 0; r < protocol.ViewSize; r++ {
		for c := 0; c < protocol.ViewSize; c++ {
			v[r][c] = g.At(g.Pos.Add(g.Facing.Relative(protocol.ViewRadius-r, c-protocol.ViewRadius)))
		}
	}
	v[protocol.ViewRadius][protocol.ViewRadius] = grid.Marker(g.Facing)
	return v
}

// Act performs one instruction with the game's rules. Instructions the
// game cannot carry out are ignored, except stepping into water without a
// raft or off the map, which ends the game.
func (g *Game) Act(in protocol.Instruction) error {
	if g.Over() {
		return ErrGameOver
	}
	g.Steps++
	front := g.Pos.Step(g.Facing)
	t := g.At(front)
	switch in {
	case protocol.TurnLeft:
		g.Facing = g.Facing.Left()
	case protocol.TurnRight:
		g.Facing = g.Facing.Right()
	case protocol.Forward:
		switch {
		case t == grid.Water && !g.Inv.HoldRaft && !g.Inv.UsingRaft:
			g.Lost = "drowned"
		case t == grid.Boundary:
			g.Lost = "fell off the map"
		case t == grid.Water || t.Walkable():
			_ = g.Inv.Enter(t)
			if t.IsTool() {
				g.tiles[front] = grid.Space
			}
			g.Pos = front
		}
	case protocol.Chop:
		if t == grid.Tree && g.Inv.HoldAxe {
			_ = g.Inv.Chop()
			g.tiles[front] = grid.Space
		}
	case protocol.Blast:
		if (t.IsWall() || t == grid.Tree || t == grid.Door) && g.Inv.Dynamite > 0 {
			_ = g.Inv.Blast()
			g.tiles[front] = grid.Space
		}
	case protocol.Unlock:
		if t == grid.Door && g.Inv.HoldKey {
			g.tiles[front] = grid.Space
		}
	default:
		return fmt.Errorf("%w: %q", protocol.ErrBadInstruction, byte(in))
	}
	if g.Inv.HoldTreasure && g.Pos == g.Home {
		g.Won = true
	}
	return nil
}
