package world

import (
	"errors"
	"fmt"

	"treasurehunt.ai/internal/sim/grid"
)

// ErrDesync means the model was asked to perform something the game would
// refuse, so model and game no longer agree.
var ErrDesync = errors.New("world model desync")

// Inventory is the agent's carried state.
type Inventory struct {
	HoldKey      bool `json:"key,omitempty"`
	HoldAxe      bool `json:"axe,omitempty"`
	Dynamite     int  `json:"dynamite,omitempty"`
	HoldRaft     bool `json:"raft,omitempty"`
	UsingRaft    bool `json:"using_raft,omitempty"`
	HoldTreasure bool `json:"treasure,omitempty"`
}

// CanEnter is the standard passability rule: t can be stepped onto, possibly
// after clearing it, with what inv holds.
func (inv Inventory) CanEnter(t grid.Tile) bool {
	switch {
	case t.Walkable():
		return true
	case t == grid.Door:
		return inv.HoldKey
	case t == grid.Tree:
		return inv.HoldAxe
	case t == grid.Water:
		return inv.HoldRaft || inv.UsingRaft
	case t.IsWall():
		return inv.Dynamite > 0
	}
	return false
}

// Chop fells a tree. Felling on land yields a raft.
func (inv *Inventory) Chop() error {
	if !inv.HoldAxe {
		return fmt.Errorf("%w: chop without axe", ErrDesync)
	}
	if !inv.UsingRaft {
		inv.HoldRaft = true
	}
	return nil
}

func (inv *Inventory) Blast() error {
	if inv.Dynamite <= 0 {
		return fmt.Errorf("%w: blast without dynamite", ErrDesync)
	}
	inv.Dynamite--
	return nil
}

func (inv *Inventory) Unlock() error {
	if !inv.HoldKey {
		return fmt.Errorf("%w: unlock without key", ErrDesync)
	}
	return nil
}

// Enter steps onto a cleared tile, launching or leaving the raft and
// collecting whatever lies there.
func (inv *Inventory) Enter(t grid.Tile) error {
	switch {
	case t == grid.Water:
		switch {
		case inv.UsingRaft:
		case inv.HoldRaft:
			inv.HoldRaft = false
			inv.UsingRaft = true
		default:
			return fmt.Errorf("%w: water without raft", ErrDesync)
		}
		return nil
	case t.Walkable():
		inv.UsingRaft = false
		switch t {
		case grid.Key:
			inv.HoldKey = true
		case grid.Axe:
			inv.HoldAxe = true
		case grid.Dynamite:
			inv.Dynamite++
		case grid.Treasure:
			inv.HoldTreasure = true
		}
		return nil
	}
	return fmt.Errorf("%w: cannot enter %q", ErrDesync, t)
}

// Walk simulates stepping onto each tile in order, clearing obstacles with
// the tool the executor would use. It returns the resulting inventory or
// the first step the agent could not make.
func (inv Inventory) Walk(tiles []grid.Tile) (Inventory, error) {
	for i, t := range tiles {
		var err error
		switch {
		case t == grid.Tree:
			err = inv.Chop()
			t = grid.Space
		case t == grid.Door:
			err = inv.Unlock()
			t = grid.Space
		case t.IsWall():
			err = inv.Blast()
			t = grid.Space
		}
		if err == nil {
			err = inv.Enter(t)
		}
		if err != nil {
			return inv, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return inv, nil
}
