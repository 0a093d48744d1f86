package worldtest

import (
	"testing"

	"treasurehunt.ai/internal/protocol"
)

// Stepper is the agent side of one cycle.
type Stepper interface {
	Step(v protocol.View) (protocol.Instruction, error)
}

// Harness drives an agent against a Game until the game ends.
type Harness struct {
	T     *testing.T
	Game  *Game
	Agent Stepper

	Actions []protocol.Instruction
}

func NewHarness(t *testing.T, agent Stepper, rows ...string) *Harness {
	t.Helper()
	g, err := NewGame(rows...)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return &Harness{T: t, Game: g, Agent: agent}
}

// Play runs up to maxSteps cycles and reports whether the game ended.
func (h *Harness) Play(maxSteps int) bool {
	h.T.Helper()
	for i := 0; i < maxSteps && !h.Game.Over(); i++ {
		in, err := h.Agent.Step(h.Game.View())
		if err != nil {
			h.T.Fatalf("step %d: %v", i, err)
		}
		h.Actions = append(h.Actions, in)
		if err := h.Game.Act(in); err != nil {
			h.T.Fatalf("act %d %q: %v", i, byte(in), err)
		}
	}
	return h.Game.Over()
}

// RequireWin plays and fails the test unless the agent brings the treasure
// home within maxSteps.
func (h *Harness) RequireWin(maxSteps int) {
	h.T.Helper()
	h.Play(maxSteps)
	if h.Game.Lost != "" {
		h.T.Fatalf("lost after %d steps: %s", h.Game.Steps, h.Game.Lost)
	}
	if !h.Game.Won {
		h.T.Fatalf("not won after %d steps (pos %v inv %+v)", h.Game.Steps, h.Game.Pos, h.Game.Inv)
	}
}
