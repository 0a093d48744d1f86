package pathing

import (
	"fmt"

	"treasurehunt.ai/internal/protocol"
	"treasurehunt.ai/internal/sim/grid"
)

// Turns aligns from with to. A reversal is two left turns.
func Turns(from, to grid.Direction) []protocol.Instruction {
	switch (to - from + 4) % 4 {
	case 1:
		return []protocol.Instruction{protocol.TurnRight}
	case 2:
		return []protocol.Instruction{protocol.TurnLeft, protocol.TurnLeft}
	case 3:
		return []protocol.Instruction{protocol.TurnLeft}
	}
	return nil
}

// Steer converts path into instructions for an agent at path[0] facing
// facing. Obstacles are cleared with the matching tool before stepping. It
// returns the facing after the last step.
func Steer(m Grid, path []grid.Pos, facing grid.Direction) ([]protocol.Instruction, grid.Direction, error) {
	var out []protocol.Instruction
	for i := 1; i < len(path); i++ {
		want, ok := grid.Heading(path[i-1], path[i])
		if !ok {
			return nil, facing, fmt.Errorf("pathing: step %d %v->%v is not a single move", i, path[i-1], path[i])
		}
		out = append(out, Turns(facing, want)...)
		facing = want
		switch t := m.At(path[i]); {
		case t == grid.Tree:
			out = append(out, protocol.Chop)
		case t == grid.Door:
			out = append(out, protocol.Unlock)
		case t.IsWall():
			out = append(out, protocol.Blast)
		}
		out = append(out, protocol.Forward)
	}
	return out, facing, nil
}
