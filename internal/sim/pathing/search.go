package pathing

import (
	"github.com/emirpasic/gods/queues/priorityqueue"

	"treasurehunt.ai/internal/sim/grid"
	"treasurehunt.ai/internal/sim/world"
)

// Grid is the read side of the map a search runs over.
type Grid interface {
	At(p grid.Pos) grid.Tile
}

// Result is the outcome of one search. Path runs from start to goal
// inclusive and is empty when the goal was not reached. Cost is the
// accumulated step cost, which for probe policies is a signal rather than a
// distance.
type Result struct {
	Found    bool
	Cost     int
	Path     []grid.Pos
	Expanded int
}

type openNode struct {
	pos grid.Pos
	g   int
	h   int
	seq int
}

// byPriority orders by f, then by h so ties favour nodes nearer the goal,
// then by insertion so equal nodes pop in the order they were queued.
func byPriority(a, b interface{}) int {
	x, y := a.(openNode), b.(openNode)
	if fx, fy := x.g+x.h, y.g+y.h; fx != fy {
		return fx - fy
	}
	if x.h != y.h {
		return x.h - y.h
	}
	return x.seq - y.seq
}

// Search runs best-first search from start to goal under p. inv is copied,
// so policies that model state changes along the route never touch the
// caller's inventory. The map must not change during the call.
func Search(m Grid, start, goal grid.Pos, p Policy, inv world.Inventory) Result {
	local := inv
	best := map[grid.Pos]int{start: 0}
	came := map[grid.Pos]grid.Pos{}
	closed := map[grid.Pos]struct{}{}

	open := priorityqueue.NewWith(byPriority)
	seq := 0
	open.Enqueue(openNode{pos: start, h: grid.Manhattan(start, goal), seq: seq})

	expanded := 0
	for !open.Empty() {
		v, _ := open.Dequeue()
		cur := v.(openNode)
		if _, done := closed[cur.pos]; done {
			continue
		}
		if cur.g != best[cur.pos] {
			// Superseded by a cheaper entry.
			continue
		}
		if cur.pos == goal {
			return Result{Found: true, Cost: cur.g, Path: walkBack(came, start, goal), Expanded: expanded}
		}
		closed[cur.pos] = struct{}{}
		expanded++

		for _, next := range cur.pos.Neighbors() {
			if _, done := closed[next]; done {
				continue
			}
			t := m.At(next)
			if !p.Passable(t, &local) {
				continue
			}
			g := cur.g + p.StepCost(t, &local)
			if old, seen := best[next]; seen && g >= old {
				continue
			}
			best[next] = g
			came[next] = cur.pos
			seq++
			open.Enqueue(openNode{pos: next, g: g, h: grid.Manhattan(next, goal), seq: seq})
		}
	}
	return Result{Expanded: expanded}
}

func walkBack(came map[grid.Pos]grid.Pos, start, goal grid.Pos) []grid.Pos {
	path := []grid.Pos{goal}
	for p := goal; p != start; {
		p = came[p]
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Tiles lists the tiles entered along path, skipping the start tile.
func Tiles(m Grid, path []grid.Pos) []grid.Tile {
	if len(path) < 2 {
		return nil
	}
	out := make([]grid.Tile, 0, len(path)-1)
	for _, p := range path[1:] {
		out = append(out, m.At(p))
	}
	return out
}

// CutAt returns path up to and including the first tile after the start for
// which stop holds. The whole path comes back when no tile matches.
func CutAt(m Grid, path []grid.Pos, stop func(grid.Tile) bool) []grid.Pos {
	for i := 1; i < len(path); i++ {
		if stop(m.At(path[i])) {
			return path[:i+1]
		}
	}
	return path
}
