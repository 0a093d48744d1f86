package planner

import bt "github.com/joeycumines/go-behaviortree"

// ladder is the rule table in priority order. A rule is a guard followed by
// alternatives; the first alternative that queues instructions wins the
// cycle.
func (p *Planner) ladder() bt.Node {
	return bt.New(bt.Selector,
		p.rule(p.holdingTreasure,
			p.leaf("return/walk", p.walkHome),
			p.leaf("return/fetch_raft", p.fetchRaft),
			p.leaf("return/river", p.riverHome),
			p.leaf("return/ferry", p.ferryHome),
		),
		p.rule(p.treasureInSight,
			p.leaf("treasure/direct", p.treasureDirect),
			p.leaf("treasure/island", p.treasureIsland),
			p.leaf("treasure/river_blast", p.treasureRiverBlast),
			p.leaf("treasure/raft_first", p.treasureRaftFirst),
			p.leaf("treasure/blast", p.treasureBlast),
			p.leaf("treasure/fetch_tool", p.treasureFetchTool),
		),
		p.rule(always,
			p.leaf("collect/key", p.collectKey),
			p.leaf("collect/axe", p.collectAxe),
			p.leaf("collect/dynamite", p.collectDynamite),
			p.leaf("collect/raft", p.fetchRaft),
		),
		p.rule(p.onLand,
			p.leaf("explore/land", p.exploreLand),
			p.leaf("explore/trees", p.exploreTrees),
			p.leaf("explore/launch", p.exploreLaunch),
		),
		p.rule(p.afloat,
			p.leaf("explore/water", p.exploreWater),
			p.leaf("explore/landing", p.exploreLanding),
		),
	)
}

func (p *Planner) rule(guard func() bool, alternatives ...bt.Node) bt.Node {
	return bt.New(bt.Sequence, check(guard), bt.New(bt.Selector, alternatives...))
}

func check(cond func() bool) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if cond() {
			return bt.Success, nil
		}
		return bt.Failure, nil
	})
}

func (p *Planner) leaf(name string, fire func() bool) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if !fire() {
			return bt.Failure, nil
		}
		p.fired = name
		return bt.Success, nil
	})
}

func always() bool { return true }

func (p *Planner) holdingTreasure() bool { return p.st.Inv.HoldTreasure }

// treasureInSight also refreshes the probe results the treasure rules read.
func (p *Planner) treasureInSight() bool {
	if !p.st.Known.TreasureVisible || p.st.Inv.HoldTreasure {
		return false
	}
	p.probeTreasure()
	return true
}

func (p *Planner) onLand() bool { return !p.st.Inv.UsingRaft }
func (p *Planner) afloat() bool { return p.st.Inv.UsingRaft }
