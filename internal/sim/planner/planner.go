// Package planner turns the agent's world model into instructions. Each
// cycle either pops a queued instruction or, when the queue is empty, runs
// the rule ladder once and queues the plan of the first rule that fires.
package planner

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	bt "github.com/joeycumines/go-behaviortree"
	"go.uber.org/zap"

	"treasurehunt.ai/internal/protocol"
	"treasurehunt.ai/internal/sim/grid"
	"treasurehunt.ai/internal/sim/pathing"
	"treasurehunt.ai/internal/sim/tuning"
	"treasurehunt.ai/internal/sim/world"
)

// Decision is the outcome of one cycle.
type Decision struct {
	Instruction protocol.Instruction
	// Rule names the rule that produced a plan this cycle. Empty when the
	// instruction came from an earlier plan or the agent idled.
	Rule string
	Idle bool
}

type Planner struct {
	st   *world.State
	tune tuning.Tuning
	log  *zap.Logger

	queue *linkedlistqueue.Queue
	tree  bt.Node
	fired string

	// Probe results toward the treasure, refreshed whenever it is in sight.
	dynamiteNeeded int
	axeNeeded      bool
	raftNeeded     bool
}

func New(st *world.State, tune tuning.Tuning, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	tune.Normalize()
	p := &Planner{
		st:    st,
		tune:  tune,
		log:   log,
		queue: linkedlistqueue.New(),
	}
	p.tree = p.ladder()
	return p
}

// Next produces this cycle's instruction and applies it to the model.
func (p *Planner) Next() (Decision, error) {
	var d Decision
	if p.queue.Empty() {
		rule, err := p.plan()
		if err != nil {
			return d, err
		}
		d.Rule = rule
	}
	if v, ok := p.queue.Dequeue(); ok {
		d.Instruction = v.(protocol.Instruction)
	} else {
		d.Instruction = p.tune.Idle()
		d.Idle = true
	}
	if err := p.st.Apply(d.Instruction); err != nil {
		p.queue.Clear()
		return d, err
	}
	return d, nil
}

// Pending is the number of queued instructions.
func (p *Planner) Pending() int { return p.queue.Size() }

// Reset drops any queued plan.
func (p *Planner) Reset() { p.queue.Clear() }

func (p *Planner) plan() (string, error) {
	p.fired = ""
	status, err := p.tree.Tick()
	if err != nil {
		return "", err
	}
	if status != bt.Success {
		p.log.Debug("no rule fired", zap.Stringer("pos", p.st.Pos), zap.Int("cycle", p.st.Cycle))
		return "", nil
	}
	p.log.Debug("plan",
		zap.String("rule", p.fired),
		zap.Int("steps", p.queue.Size()),
		zap.Stringer("pos", p.st.Pos),
		zap.Stringer("facing", p.st.Facing),
	)
	return p.fired, nil
}

// route plans to goal under pol and queues the plan if the agent's real
// inventory can execute it.
func (p *Planner) route(goal grid.Pos, pol pathing.Policy, inv world.Inventory) bool {
	res := pathing.Search(p.st.Map, p.st.Pos, goal, pol, inv)
	if !res.Found {
		return false
	}
	return p.follow(res.Path, pol)
}

func (p *Planner) follow(path []grid.Pos, pol pathing.Policy) bool {
	if len(path) < 2 {
		return false
	}
	if _, err := p.st.Inv.Walk(pathing.Tiles(p.st.Map, path)); err != nil {
		p.log.Debug("route not executable",
			zap.String("policy", pol.Name()),
			zap.Stringer("goal", path[len(path)-1]),
			zap.Error(err),
		)
		return false
	}
	ins, _, err := pathing.Steer(p.st.Map, path, p.st.Facing)
	if err != nil {
		p.log.Warn("steer failed", zap.Error(err))
		return false
	}
	for _, in := range ins {
		p.queue.Enqueue(in)
	}
	return true
}

func (p *Planner) reachable(goal grid.Pos, inv world.Inventory) bool {
	return pathing.Reach(p.st.Map, p.st.Pos, goal, pathing.Standard, inv)
}

// onFoot is the agent's inventory with nothing consumable: key and axe are
// kept, dynamite and any carried raft are not spent. A raft already in use
// stays in use.
func (p *Planner) onFoot() world.Inventory {
	inv := p.st.Inv
	return world.Inventory{HoldKey: inv.HoldKey, HoldAxe: inv.HoldAxe, UsingRaft: inv.UsingRaft}
}

// goTo tries the cheapest way of reaching goal first: on foot, then letting
// the raft and dynamite be spent where a route needs them.
func (p *Planner) goTo(goal grid.Pos) bool {
	if !p.reachable(goal, p.st.Inv) {
		return false
	}
	return p.route(goal, pathing.Standard, p.onFoot()) ||
		p.route(goal, pathing.DynamiteCross, p.st.Inv) ||
		p.route(goal, pathing.Standard, p.st.Inv)
}
