package world

import "treasurehunt.ai/internal/sim/grid"

// Frontier remembers where useful things were last seen. Lists keep
// first-seen order and hold each location once.
type Frontier struct {
	Keys     []grid.Pos
	Axes     []grid.Pos
	Dynamite []grid.Pos
	Trees    []grid.Pos
	Walls    []grid.Pos

	Treasure        grid.Pos
	TreasureVisible bool
}

// Observe records that p currently shows t.
func (f *Frontier) Observe(p grid.Pos, t grid.Tile) {
	track(&f.Keys, p, t == grid.Key)
	track(&f.Axes, p, t == grid.Axe)
	track(&f.Dynamite, p, t == grid.Dynamite)
	track(&f.Trees, p, t == grid.Tree)
	track(&f.Walls, p, t.IsWall())
	if t == grid.Treasure && !f.TreasureVisible {
		f.Treasure = p
		f.TreasureVisible = true
	}
}

func track(list *[]grid.Pos, p grid.Pos, present bool) {
	for i, q := range *list {
		if q != p {
			continue
		}
		if !present {
			*list = append((*list)[:i], (*list)[i+1:]...)
		}
		return
	}
	if present {
		*list = append(*list, p)
	}
}
