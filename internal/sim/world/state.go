package world

import (
	"fmt"

	"treasurehunt.ai/internal/protocol"
	"treasurehunt.ai/internal/sim/grid"
)

// State is everything the agent believes about the game.
type State struct {
	Map    *Map
	Inv    Inventory
	Pos    grid.Pos
	Facing grid.Direction
	Home   grid.Pos
	Known  Frontier
	Cycle  int
}

// NewState starts at the origin facing north. All positions are relative to
// that start, so the initial facing is a convention, not a guess.
func NewState() *State {
	s := &State{Map: NewMap(), Facing: grid.North, Home: grid.Origin}
	s.Map.Set(s.Pos, grid.Marker(s.Facing))
	return s
}

// Front is the tile the agent faces.
func (s *State) Front() grid.Pos { return s.Pos.Step(s.Facing) }

// ApplyView overwrites the 5x5 window around the agent with v, rotated into
// absolute coordinates.
func (s *State) ApplyView(v protocol.View) {
	for r := 0; r < protocol.ViewSize; r++ {
		for c := 0; c < protocol.ViewSize; c++ {
			p := s.Pos.Add(s.Facing.Relative(protocol.ViewRadius-r, c-protocol.ViewRadius))
			t := v[r][c]
			if p == s.Pos {
				t = grid.Marker(s.Facing)
			}
			s.Map.Set(p, t)
			s.Known.Observe(p, t)
		}
	}
}

// Apply advances the model by one instruction the agent is about to send.
// Blocked moves leave the state unchanged, mirroring the game.
func (s *State) Apply(in protocol.Instruction) error {
	front := s.Front()
	t := s.Map.At(front)
	switch in {
	case protocol.TurnLeft:
		s.Facing = s.Facing.Left()
	case protocol.TurnRight:
		s.Facing = s.Facing.Right()
	case protocol.Forward:
		if t == grid.Tree || t == grid.Door || t.IsWall() {
			return nil
		}
		onWater := s.Inv.UsingRaft
		if err := s.Inv.Enter(t); err != nil {
			return fmt.Errorf("forward onto %v: %w", front, err)
		}
		left := grid.Space
		if onWater {
			left = grid.Water
		}
		s.mark(s.Pos, left)
		s.Pos = front
	case protocol.Chop:
		if t != grid.Tree {
			return nil
		}
		if err := s.Inv.Chop(); err != nil {
			return fmt.Errorf("chop at %v: %w", front, err)
		}
		s.mark(front, grid.Space)
	case protocol.Blast:
		if t != grid.Tree && t != grid.Door && !t.IsWall() {
			return nil
		}
		if err := s.Inv.Blast(); err != nil {
			return fmt.Errorf("blast at %v: %w", front, err)
		}
		s.mark(front, grid.Space)
	case protocol.Unlock:
		if t != grid.Door {
			return nil
		}
		if err := s.Inv.Unlock(); err != nil {
			return fmt.Errorf("unlock at %v: %w", front, err)
		}
		s.mark(front, grid.Space)
	default:
		return fmt.Errorf("%w: %q", protocol.ErrBadInstruction, byte(in))
	}
	s.mark(s.Pos, grid.Marker(s.Facing))
	return nil
}

func (s *State) mark(p grid.Pos, t grid.Tile) {
	s.Map.Set(p, t)
	s.Known.Observe(p, t)
}
