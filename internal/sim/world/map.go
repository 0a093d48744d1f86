package world

import (
	"strings"

	"treasurehunt.ai/internal/sim/grid"
)

// Map is the agent's remembered terrain. Cells never observed read as
// grid.Unseen.
type Map struct {
	tiles map[grid.Pos]grid.Tile
}

func NewMap() *Map {
	return &Map{tiles: make(map[grid.Pos]grid.Tile, 256)}
}

// FromRows builds a map from text rows. Row 0 is the northernmost row and
// its first byte sits at the origin, so row r column c is (c, -r). Bytes
// equal to grid.Unseen are left unset.
func FromRows(rows ...string) *Map {
	m := NewMap()
	for r, row := range rows {
		for c := 0; c < len(row); c++ {
			t := grid.Tile(row[c])
			if t == grid.Unseen {
				continue
			}
			m.Set(grid.Pos{X: c, Y: -r}, t)
		}
	}
	return m
}

func (m *Map) At(p grid.Pos) grid.Tile {
	if t, ok := m.tiles[p]; ok {
		return t
	}
	return grid.Unseen
}

func (m *Map) Set(p grid.Pos, t grid.Tile) {
	if t == grid.Unseen {
		delete(m.tiles, p)
		return
	}
	m.tiles[p] = t
}

func (m *Map) Known(p grid.Pos) bool {
	_, ok := m.tiles[p]
	return ok
}

func (m *Map) Len() int { return len(m.tiles) }

// Bounds returns the smallest rectangle holding every known cell.
func (m *Map) Bounds() (min, max grid.Pos, ok bool) {
	for p := range m.tiles {
		if !ok {
			min, max, ok = p, p, true
			continue
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max, ok
}

// String renders the known area north-up, for logs and test failures.
func (m *Map) String() string {
	min, max, ok := m.Bounds()
	if !ok {
		return ""
	}
	var sb strings.Builder
	for y := max.Y; y >= min.Y; y-- {
		for x := min.X; x <= max.X; x++ {
			sb.WriteByte(byte(m.At(grid.Pos{X: x, Y: y})))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
