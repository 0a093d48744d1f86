package planner

import (
	"treasurehunt.ai/internal/sim/grid"
	"treasurehunt.ai/internal/sim/pathing"
	"treasurehunt.ai/internal/sim/world"
)

// scan walks a square spiral out from the agent and returns the first known
// tile other than the agent's own that accept admits.
func (p *Planner) scan(accept func(grid.Pos, grid.Tile) bool) (grid.Pos, bool) {
	var hit grid.Pos
	found := false
	// The agent can sit anywhere in the world, so cover both extents.
	grid.Spiral(p.st.Pos, 2*p.tune.MaxExtent+1, func(q grid.Pos) bool {
		if q == p.st.Pos {
			return true
		}
		t := p.st.Map.At(q)
		if t == grid.Unseen || !accept(q, t) {
			return true
		}
		hit, found = q, true
		return false
	})
	return hit, found
}

// unrevealed reports whether any cell within the reveal radius of q is
// still unseen.
func (p *Planner) unrevealed(q grid.Pos) bool {
	hidden := false
	grid.Ring(q, p.tune.RevealRadius, func(c grid.Pos) bool {
		if grid.InExtent(c, p.tune.MaxExtent) && p.st.Map.At(c) == grid.Unseen {
			hidden = true
			return false
		}
		return true
	})
	return hidden
}

// frontier finds the nearest unrevealed tile that pol lets the agent stand
// on and that is connected to the agent under pol.
func (p *Planner) frontier(pol pathing.Policy, inv world.Inventory, accept func(grid.Tile) bool) (grid.Pos, bool) {
	var reach map[grid.Pos]struct{}
	return p.scan(func(q grid.Pos, t grid.Tile) bool {
		probe := inv
		if !accept(t) || !pol.Passable(t, &probe) || !p.unrevealed(q) {
			return false
		}
		if reach == nil {
			reach = pathing.Flood(p.st.Map, p.st.Pos, pol, inv)
		}
		_, ok := reach[q]
		return ok
	})
}

func anyTile(grid.Tile) bool   { return true }
func isWater(t grid.Tile) bool { return t == grid.Water }
func isLand(t grid.Tile) bool  { return t != grid.Water }

// exploreLand keeps to ground reachable without felling trees, so trees stay
// available as rafts.
func (p *Planner) exploreLand() bool {
	inv := world.Inventory{HoldKey: p.st.Inv.HoldKey}
	q, ok := p.frontier(pathing.Standard, inv, anyTile)
	return ok && p.route(q, pathing.Standard, inv)
}

// exploreTrees cuts through trees once a raft is in hand and enough trees
// remain to build another.
func (p *Planner) exploreTrees() bool {
	inv := p.st.Inv
	if !inv.HoldAxe || !inv.HoldRaft || !p.enoughTrees() {
		return false
	}
	onFoot := world.Inventory{HoldKey: inv.HoldKey, HoldAxe: true}
	q, ok := p.frontier(pathing.Standard, onFoot, anyTile)
	return ok && p.route(q, pathing.Standard, onFoot)
}

// exploreLaunch heads for unexplored ground across water and stops on the
// first water tile of the way there.
func (p *Planner) exploreLaunch() bool {
	inv := p.st.Inv
	if !inv.HoldRaft {
		return false
	}
	walker := world.Inventory{HoldKey: inv.HoldKey}
	q, ok := p.frontier(pathing.FirstWaterApproach, walker, anyTile)
	if !ok {
		return false
	}
	res := pathing.Search(p.st.Map, p.st.Pos, q, pathing.FirstWaterApproach, walker)
	if !res.Found {
		return false
	}
	return p.follow(pathing.CutAt(p.st.Map, res.Path, isWater), pathing.FirstWaterApproach)
}

func (p *Planner) exploreWater() bool {
	q, ok := p.frontier(pathing.WaterOnly, p.st.Inv, isWater)
	return ok && p.route(q, pathing.WaterOnly, p.st.Inv)
}

// exploreLanding sails toward unexplored land and steps ashore on the first
// land tile of the way there.
func (p *Planner) exploreLanding() bool {
	afloat := world.Inventory{HoldKey: p.st.Inv.HoldKey, HoldAxe: p.st.Inv.HoldAxe, UsingRaft: true}
	q, ok := p.frontier(pathing.Standard, afloat, isLand)
	if !ok {
		return false
	}
	res := pathing.Search(p.st.Map, p.st.Pos, q, pathing.IslandCross, afloat)
	if !res.Found {
		return false
	}
	return p.follow(pathing.CutAt(p.st.Map, res.Path, isLand), pathing.IslandCross)
}

// enoughTrees reports whether felling trees for exploration still leaves
// spare rafts: either many trees are known, or enough are reachable on foot,
// counting nearby ones first.
func (p *Planner) enoughTrees() bool {
	trees := p.st.Known.Trees
	if len(trees) > p.tune.TreePlenty {
		return true
	}
	onFoot := world.Inventory{HoldKey: p.st.Inv.HoldKey, HoldAxe: true}
	reach := pathing.Flood(p.st.Map, p.st.Pos, pathing.Standard, onFoot)
	n := 0
	count := func(near bool) bool {
		for _, t := range trees {
			if p.near(t) != near {
				continue
			}
			if _, ok := reach[t]; ok {
				n++
			}
			if n >= p.tune.TreeReserve {
				return true
			}
		}
		return false
	}
	return count(true) || count(false)
}

func (p *Planner) near(q grid.Pos) bool {
	d := q.Sub(p.st.Pos)
	r := p.tune.TreeScanRadius
	return d.X >= -r && d.X <= r && d.Y >= -r && d.Y <= r
}
