package pathing

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"treasurehunt.ai/internal/sim/grid"
	"treasurehunt.ai/internal/sim/world"
)

// Reach reports whether goal is connected to start through tiles p accepts.
// It is a plain breadth-first flood and ignores step costs.
func Reach(m Grid, start, goal grid.Pos, p Policy, inv world.Inventory) bool {
	if start == goal {
		return true
	}
	local := inv
	visited := map[grid.Pos]struct{}{start: {}}
	q := linkedlistqueue.New()
	q.Enqueue(start)
	for !q.Empty() {
		v, _ := q.Dequeue()
		cur := v.(grid.Pos)
		if cur == goal {
			return true
		}
		for _, next := range cur.Neighbors() {
			if _, ok := visited[next]; ok {
				continue
			}
			if !p.Passable(m.At(next), &local) {
				continue
			}
			visited[next] = struct{}{}
			q.Enqueue(next)
		}
	}
	return false
}

// Flood returns every tile connected to start under p, start included.
func Flood(m Grid, start grid.Pos, p Policy, inv world.Inventory) map[grid.Pos]struct{} {
	local := inv
	visited := map[grid.Pos]struct{}{start: {}}
	q := linkedlistqueue.New()
	q.Enqueue(start)
	for !q.Empty() {
		v, _ := q.Dequeue()
		for _, next := range v.(grid.Pos).Neighbors() {
			if _, ok := visited[next]; ok {
				continue
			}
			if !p.Passable(m.At(next), &local) {
				continue
			}
			visited[next] = struct{}{}
			q.Enqueue(next)
		}
	}
	return visited
}
