package pathing

import (
	"treasurehunt.ai/internal/sim/grid"
	"treasurehunt.ai/internal/sim/world"
)

// ProbePenalty is the weight probe policies put on an obstacle. A probe
// cost below zero means every obstacle on the route is paid for by tools
// lying on the same route.
const ProbePenalty = 160

// Policy decides which tiles a search may enter and what each step costs.
// The inventory is the search's private copy; a policy may update it to
// model state that changes along the route, such as launching a raft.
type Policy interface {
	Name() string
	Passable(t grid.Tile, inv *world.Inventory) bool
	StepCost(t grid.Tile, inv *world.Inventory) int
}

var (
	Standard           Policy = standard{}
	IslandCross        Policy = islandCross{}
	RiverReturn        Policy = riverReturn{}
	DynamiteCross      Policy = dynamiteCross{}
	WaterOnly          Policy = waterOnly{}
	FirstWaterApproach Policy = firstWater{}
	RaftProbe          Policy = raftProbe{}
	DynamiteProbe      Policy = dynamiteProbe{}
)

var byName = map[string]Policy{}

func init() {
	for _, p := range []Policy{Standard, IslandCross, RiverReturn, DynamiteCross, WaterOnly, FirstWaterApproach, RaftProbe, DynamiteProbe} {
		byName[p.Name()] = p
	}
}

// ByName looks a policy up by its Name.
func ByName(name string) (Policy, bool) {
	p, ok := byName[name]
	return p, ok
}

type standard struct{}

func (standard) Name() string { return "standard" }
func (standard) Passable(t grid.Tile, inv *world.Inventory) bool {
	return inv.CanEnter(t)
}
func (standard) StepCost(grid.Tile, *world.Inventory) int { return 1 }

// islandCross makes water free so routes stay afloat as long as possible.
type islandCross struct{}

func (islandCross) Name() string { return "island_cross" }
func (islandCross) Passable(t grid.Tile, inv *world.Inventory) bool {
	return inv.CanEnter(t)
}
func (islandCross) StepCost(t grid.Tile, inv *world.Inventory) int {
	switch {
	case t == grid.Water:
		return 0
	case t == grid.Tree && inv.HoldAxe:
		return 3
	}
	return 1
}

// riverReturn assumes the agent is afloat and can clear anything, and
// prices obstacles so the route prefers open water and avoids walls.
type riverReturn struct{}

func (riverReturn) Name() string { return "river_return" }
func (riverReturn) Passable(t grid.Tile, inv *world.Inventory) bool {
	assumed := world.Inventory{HoldKey: inv.HoldKey, HoldAxe: true, Dynamite: 1, HoldRaft: true, UsingRaft: true}
	return assumed.CanEnter(t)
}
func (riverReturn) StepCost(t grid.Tile, _ *world.Inventory) int {
	c := 1
	switch {
	case t == grid.Space, t == grid.Water:
		c++
	case t == grid.Tree:
		c += 2
	case t.IsWall():
		c += ProbePenalty
	case t == grid.Treasure:
		c -= ProbePenalty
	}
	return c
}

// dynamiteCross launches the carried raft on the first water tile it
// prices and makes later water strongly preferred; walls are a last resort.
type dynamiteCross struct{}

func (dynamiteCross) Name() string { return "dynamite_cross" }
func (dynamiteCross) Passable(t grid.Tile, inv *world.Inventory) bool {
	return inv.CanEnter(t)
}
func (dynamiteCross) StepCost(t grid.Tile, inv *world.Inventory) int {
	c := 1
	if t == grid.Water && inv.HoldRaft {
		c++
		inv.HoldRaft = false
		inv.UsingRaft = true
	} else if t == grid.Water && inv.UsingRaft {
		c -= 50
	}
	if t.IsWall() {
		c += 100
	}
	return c
}

type waterOnly struct{}

func (waterOnly) Name() string { return "water_only" }
func (waterOnly) Passable(t grid.Tile, _ *world.Inventory) bool {
	return t == grid.Water || t.IsMarker()
}
func (waterOnly) StepCost(grid.Tile, *world.Inventory) int { return 1 }

// firstWater plans from land as if a raft were held. Callers cut the route
// at its first water tile.
type firstWater struct{}

func (firstWater) Name() string { return "first_water" }
func (firstWater) Passable(t grid.Tile, inv *world.Inventory) bool {
	assumed := world.Inventory{HoldKey: inv.HoldKey, HoldAxe: inv.HoldAxe, HoldRaft: true}
	return assumed.CanEnter(t)
}
func (firstWater) StepCost(grid.Tile, *world.Inventory) int { return 1 }

// raftProbe asks whether a raft alone reaches the goal.
type raftProbe struct{}

func (raftProbe) Name() string { return "raft_probe" }
func (raftProbe) Passable(t grid.Tile, inv *world.Inventory) bool {
	return t == grid.Water || inv.CanEnter(t)
}
func (raftProbe) StepCost(t grid.Tile, _ *world.Inventory) int {
	if t == grid.Tree || t.IsWall() {
		return ProbePenalty
	}
	return 0
}

// dynamiteProbe may cross anything seen and counts what the route would
// consume: walls and trees cost one penalty, water two, and dynamite picked
// up on the way refunds one.
type dynamiteProbe struct{}

func (dynamiteProbe) Name() string { return "dynamite_probe" }
func (dynamiteProbe) Passable(t grid.Tile, _ *world.Inventory) bool {
	return t != grid.Unseen && t != grid.Boundary
}
func (dynamiteProbe) StepCost(t grid.Tile, _ *world.Inventory) int {
	switch {
	case t.IsWall(), t == grid.Tree:
		return ProbePenalty
	case t == grid.Dynamite:
		return -ProbePenalty
	case t == grid.Water:
		return 2 * ProbePenalty
	}
	return 0
}
