package grid

import "fmt"

// MaxExtent bounds every axis of the agent-relative map: the world is never
// wider than 80 tiles, and the agent may start anywhere inside it.
const MaxExtent = 80

// Pos is an absolute map coordinate. +X is east and +Y is north; the agent's
// start tile is the origin.
type Pos struct {
	X int
	Y int
}

// Origin is the agent's start (home) tile.
var Origin = Pos{}

func (p Pos) Add(o Pos) Pos { return Pos{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Pos) Sub(o Pos) Pos { return Pos{X: p.X - o.X, Y: p.Y - o.Y} }

// Step returns the 4-neighbour of p in direction d.
func (p Pos) Step(d Direction) Pos { return p.Add(d.Delta()) }

// Neighbors returns the 4-neighbours of p in fixed order: east, west, north,
// south. Searches expand in this order so results are deterministic.
func (p Pos) Neighbors() [4]Pos {
	return [4]Pos{
		{X: p.X + 1, Y: p.Y},
		{X: p.X - 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
		{X: p.X, Y: p.Y - 1},
	}
}

// Adjacent reports whether a and b are 4-neighbours.
func Adjacent(a, b Pos) bool { return Manhattan(a, b) == 1 }

// Manhattan is |dx| + |dy|.
func Manhattan(a, b Pos) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// InExtent reports whether p lies within the square of half-width extent
// centred on the origin.
func InExtent(p Pos, extent int) bool {
	return abs(p.X) <= extent && abs(p.Y) <= extent
}

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
