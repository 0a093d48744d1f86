// Package transport carries views from the game engine to an agent and the
// agent's instructions back.
package transport

import "treasurehunt.ai/internal/protocol"

// Stepper consumes one view and returns the instruction to send.
type Stepper interface {
	Step(v protocol.View) (protocol.Instruction, error)
}
