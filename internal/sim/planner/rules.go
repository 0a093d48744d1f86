package planner

import (
	"treasurehunt.ai/internal/sim/grid"
	"treasurehunt.ai/internal/sim/pathing"
	"treasurehunt.ai/internal/sim/world"
)

func (p *Planner) walkHome() bool { return p.goTo(p.st.Home) }

// riverHome covers the case where home lies across water and obstacles the
// standard rule cannot plan through; the route is kept only if executable.
func (p *Planner) riverHome() bool {
	inv := p.st.Inv
	if !inv.UsingRaft && !inv.HoldRaft {
		return false
	}
	return p.route(p.st.Home, pathing.RiverReturn, inv)
}

// ferryHome crosses only the first stretch of water on the way home and
// steps ashore, for trips that need more rafts than the agent carries. The
// landing must have a tree within walking distance for the next raft.
func (p *Planner) ferryHome() bool {
	inv := p.st.Inv
	if !inv.UsingRaft && !inv.HoldRaft {
		return false
	}
	res := pathing.Search(p.st.Map, p.st.Pos, p.st.Home, pathing.Standard, inv)
	if !res.Found {
		return false
	}
	leg := ashore(p.st.Map, res.Path, inv.UsingRaft)
	if len(leg) == len(res.Path) || !p.raftRecoverable(leg[len(leg)-1]) {
		return false
	}
	return p.follow(leg, pathing.Standard)
}

// ashore cuts path at the first land tile after its first water tile.
func ashore(m pathing.Grid, path []grid.Pos, afloat bool) []grid.Pos {
	wet := afloat
	return pathing.CutAt(m, path, func(t grid.Tile) bool {
		if t == grid.Water {
			wet = true
			return false
		}
		return wet
	})
}

// fetchRaft walks to the first reachable known tree and fells it.
func (p *Planner) fetchRaft() bool {
	inv := p.st.Inv
	if !inv.HoldAxe || inv.HoldRaft || inv.UsingRaft {
		return false
	}
	onFoot := world.Inventory{HoldKey: inv.HoldKey, HoldAxe: true}
	for _, tree := range p.st.Known.Trees {
		if p.reachable(tree, onFoot) && p.route(tree, pathing.Standard, onFoot) {
			return true
		}
	}
	return false
}

func (p *Planner) treasureDirect() bool {
	return p.route(p.st.Known.Treasure, pathing.Standard, p.onFoot())
}

func (p *Planner) treasureIsland() bool {
	goal := p.st.Known.Treasure
	if s, ok := p.raftSignal(goal); !ok || s >= 0 {
		return false
	}
	return p.route(goal, pathing.IslandCross, p.st.Inv)
}

func (p *Planner) treasureRiverBlast() bool {
	inv := p.st.Inv
	if !p.raftNeeded || p.dynamiteNeeded == 0 || p.dynamiteNeeded > inv.Dynamite {
		return false
	}
	if p.axeNeeded && !inv.HoldAxe {
		return false
	}
	return p.route(p.st.Known.Treasure, pathing.RiverReturn, inv)
}

func (p *Planner) treasureRaftFirst() bool {
	inv := p.st.Inv
	if !p.raftNeeded || inv.HoldRaft || inv.UsingRaft {
		return false
	}
	after := inv
	after.HoldRaft = true
	if !p.reachable(p.st.Known.Treasure, after) {
		return false
	}
	return p.fetchRaft()
}

func (p *Planner) treasureBlast() bool {
	inv := p.st.Inv
	if inv.Dynamite == 0 || p.dynamiteNeeded > inv.Dynamite {
		return false
	}
	return p.route(p.st.Known.Treasure, pathing.DynamiteCross, inv)
}

// treasureFetchTool goes after a missing key, or a missing axe the probe
// route needs, when the dynamite probe says the trip pays for itself.
func (p *Planner) treasureFetchTool() bool {
	inv := p.st.Inv
	var sites []grid.Pos
	if !inv.HoldKey {
		sites = append(sites, p.st.Known.Keys...)
	}
	if p.axeNeeded && !inv.HoldAxe {
		sites = append(sites, p.st.Known.Axes...)
	}
	for _, at := range sites {
		if s, ok := p.dynamiteSignal(at); !ok || s >= 0 {
			continue
		}
		if p.route(at, pathing.DynamiteCross, inv) {
			return true
		}
	}
	return false
}

func (p *Planner) collectKey() bool {
	if p.st.Inv.HoldKey {
		return false
	}
	return p.collect(p.st.Known.Keys)
}

func (p *Planner) collectAxe() bool {
	if p.st.Inv.HoldAxe {
		return false
	}
	return p.collect(p.st.Known.Axes)
}

func (p *Planner) collectDynamite() bool { return p.collect(p.st.Known.Dynamite) }

// collect takes the first site reachable without spending anything. Failing
// that it crosses water for a site, fetching a raft first if needed, but
// only where a tree next to the site can replace the raft.
func (p *Planner) collect(sites []grid.Pos) bool {
	inv := p.st.Inv
	free := p.onFoot()
	for _, at := range sites {
		if !p.reachable(at, free) {
			continue
		}
		if inv.UsingRaft && !p.raftRecoverable(at) {
			continue
		}
		pol := pathing.Standard
		if inv.UsingRaft {
			pol = pathing.IslandCross
		}
		if p.route(at, pol, free) {
			return true
		}
	}
	if inv.UsingRaft {
		return false
	}
	rafted := world.Inventory{HoldKey: inv.HoldKey, HoldAxe: inv.HoldAxe, HoldRaft: true}
	for _, at := range sites {
		if !p.reachable(at, rafted) || !p.raftRecoverable(at) {
			continue
		}
		if !inv.HoldRaft {
			return p.fetchRaft()
		}
		if p.route(at, pathing.IslandCross, rafted) {
			return true
		}
	}
	return false
}

// raftRecoverable reports whether a tree can be reached on foot from at, so
// the agent is not stranded after leaving its raft on the shore.
func (p *Planner) raftRecoverable(at grid.Pos) bool {
	inv := p.st.Inv
	if !inv.HoldAxe {
		return false
	}
	onFoot := world.Inventory{HoldKey: inv.HoldKey, HoldAxe: true}
	for _, tree := range p.st.Known.Trees {
		if pathing.Reach(p.st.Map, at, tree, pathing.Standard, onFoot) {
			return true
		}
	}
	return false
}
