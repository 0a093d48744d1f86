package grid

import "fmt"

// Tile is the content of one map cell. Values are the game's single-byte
// codes so views and traces can be printed as-is.
type Tile byte

const (
	Unseen    Tile = '?'
	Boundary  Tile = '.'
	Space     Tile = ' '
	Tree      Tile = 'T'
	Door      Tile = '-'
	Wall      Tile = '*'
	BlastWall Tile = 'W'
	Water     Tile = '~'
	Key       Tile = 'k'
	Axe       Tile = 'a'
	Dynamite  Tile = 'd'
	Treasure  Tile = '$'

	FacingNorth Tile = '^'
	FacingEast  Tile = '>'
	FacingSouth Tile = 'v'
	FacingWest  Tile = '<'
)

var knownTiles = map[Tile]struct{}{
	Unseen: {}, Boundary: {}, Space: {}, Tree: {}, Door: {}, Wall: {}, BlastWall: {},
	Water: {}, Key: {}, Axe: {}, Dynamite: {}, Treasure: {},
	FacingNorth: {}, FacingEast: {}, FacingSouth: {}, FacingWest: {},
}

// ParseTile validates a wire byte.
func ParseTile(b byte) (Tile, error) {
	t := Tile(b)
	if _, ok := knownTiles[t]; !ok {
		return Unseen, fmt.Errorf("grid: unknown tile code %q", b)
	}
	return t, nil
}

// Marker is the tile drawn at the agent's own cell when facing d.
func Marker(d Direction) Tile {
	switch d {
	case East:
		return FacingEast
	case South:
		return FacingSouth
	case West:
		return FacingWest
	}
	return FacingNorth
}

func (t Tile) IsMarker() bool {
	return t == FacingNorth || t == FacingEast || t == FacingSouth || t == FacingWest
}

// Walkable reports whether t can be entered with an empty inventory.
func (t Tile) Walkable() bool {
	switch t {
	case Space, Axe, Key, Dynamite, Treasure:
		return true
	}
	return t.IsMarker()
}

// IsWall covers both the permanent and the transient blast marker.
func (t Tile) IsWall() bool { return t == Wall || t == BlastWall }

// IsTool reports whether stepping on t collects something.
func (t Tile) IsTool() bool {
	return t == Axe || t == Key || t == Dynamite || t == Treasure
}

func (t Tile) String() string { return string(rune(t)) }
