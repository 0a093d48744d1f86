package planner

import (
	"treasurehunt.ai/internal/sim/grid"
	"treasurehunt.ai/internal/sim/pathing"
)

// worthy goals earn the probes a one-point bonus, so an obstacle-free probe
// route to them reads as negative.
func (p *Planner) worthy(goal grid.Pos) bool {
	if goal == p.st.Home {
		return true
	}
	switch p.st.Map.At(goal) {
	case grid.Treasure, grid.Axe, grid.Key:
		return true
	}
	return false
}

// raftSignal is negative when a raft alone opens a route to goal.
func (p *Planner) raftSignal(goal grid.Pos) (int, bool) {
	res := pathing.Search(p.st.Map, p.st.Pos, goal, pathing.RaftProbe, p.st.Inv)
	if !res.Found {
		return 0, false
	}
	s := res.Cost
	if p.worthy(goal) {
		s--
	}
	return s, true
}

// dynamiteSignal is negative when the dynamite held, plus any collected on
// the way, covers every obstacle between the agent and goal. A dynamite
// goal also counts the sticks lying next to it.
func (p *Planner) dynamiteSignal(goal grid.Pos) (int, bool) {
	res := pathing.Search(p.st.Map, p.st.Pos, goal, pathing.DynamiteProbe, p.st.Inv)
	if !res.Found {
		return 0, false
	}
	s := res.Cost
	switch {
	case p.worthy(goal):
		s -= p.st.Inv.Dynamite*pathing.ProbePenalty + 1
	case p.st.Map.At(goal) == grid.Dynamite:
		for _, n := range goal.Neighbors() {
			if p.st.Map.At(n) == grid.Dynamite {
				s -= pathing.ProbePenalty
			}
		}
	}
	return s, true
}

// probeTreasure records what the probe routes to the treasure would need.
func (p *Planner) probeTreasure() {
	p.dynamiteNeeded, p.axeNeeded, p.raftNeeded = 0, false, false
	goal := p.st.Known.Treasure
	if res := pathing.Search(p.st.Map, p.st.Pos, goal, pathing.DynamiteProbe, p.st.Inv); res.Found {
		for _, t := range pathing.Tiles(p.st.Map, res.Path) {
			switch {
			case t.IsWall():
				p.dynamiteNeeded++
			case t == grid.Tree:
				p.axeNeeded = true
			case t == grid.Water:
				p.raftNeeded = true
			}
		}
	}
	if res := pathing.Search(p.st.Map, p.st.Pos, goal, pathing.RaftProbe, p.st.Inv); res.Found {
		for _, t := range pathing.Tiles(p.st.Map, res.Path) {
			if t == grid.Water {
				p.raftNeeded = true
			}
		}
	}
}
