package protocol

import (
	"errors"
	"fmt"
	"strings"

	"treasurehunt.ai/internal/sim/grid"
)

// Instruction is one action code sent to the game engine.
type Instruction byte

const (
	TurnLeft  Instruction = 'L'
	TurnRight Instruction = 'R'
	Forward   Instruction = 'F'
	Chop      Instruction = 'C'
	Blast     Instruction = 'B'
	Unlock    Instruction = 'U'
)

// View geometry: a 5x5 window centred on the agent. Row 0 is furthest ahead,
// column 0 is furthest left. The centre cell is not transmitted.
const (
	ViewSize   = 5
	ViewRadius = ViewSize / 2
	FrameSize  = ViewSize*ViewSize - 1
)

var (
	ErrBadFrame       = errors.New("protocol: bad view frame")
	ErrBadInstruction = errors.New("protocol: bad instruction")
)

func ParseInstruction(b byte) (Instruction, error) {
	switch in := Instruction(b); in {
	case TurnLeft, TurnRight, Forward, Chop, Blast, Unlock:
		return in, nil
	}
	// The engine accepts lower case too.
	switch in := Instruction(b - 'a' + 'A'); in {
	case TurnLeft, TurnRight, Forward, Chop, Blast, Unlock:
		return in, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadInstruction, b)
}

func (in Instruction) String() string { return string(rune(in)) }

// View is one observation in the agent's own frame.
type View [ViewSize][ViewSize]grid.Tile

// DecodeView parses a FrameSize-byte frame (row-major, centre skipped).
func DecodeView(b []byte) (View, error) {
	var v View
	if len(b) != FrameSize {
		return v, fmt.Errorf("%w: got %d bytes want %d", ErrBadFrame, len(b), FrameSize)
	}
	i := 0
	for r := 0; r < ViewSize; r++ {
		for c := 0; c < ViewSize; c++ {
			if r == ViewRadius && c == ViewRadius {
				v[r][c] = grid.FacingNorth
				continue
			}
			t, err := grid.ParseTile(b[i])
			if err != nil {
				return v, fmt.Errorf("%w: cell %d: %v", ErrBadFrame, i, err)
			}
			v[r][c] = t
			i++
		}
	}
	return v, nil
}

// Encode is the inverse of DecodeView.
func (v View) Encode() []byte {
	out := make([]byte, 0, FrameSize)
	for r := 0; r < ViewSize; r++ {
		for c := 0; c < ViewSize; c++ {
			if r == ViewRadius && c == ViewRadius {
				continue
			}
			out = append(out, byte(v[r][c]))
		}
	}
	return out
}

func (v View) String() string {
	var sb strings.Builder
	sb.WriteString("+-----+\n")
	for r := 0; r < ViewSize; r++ {
		sb.WriteByte('|')
		for c := 0; c < ViewSize; c++ {
			sb.WriteByte(byte(v[r][c]))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("+-----+\n")
	return sb.String()
}
