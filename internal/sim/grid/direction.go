package grid

import "fmt"

// Direction is a cardinal heading. Values increase clockwise so a right
// turn is +1 mod 4.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

func (d Direction) Valid() bool { return d >= North && d <= West }

func (d Direction) Right() Direction { return (d + 1) % 4 }
func (d Direction) Left() Direction  { return (d + 3) % 4 }

// Delta is the unit step for d.
func (d Direction) Delta() Pos {
	switch d {
	case North:
		return Pos{Y: 1}
	case East:
		return Pos{X: 1}
	case South:
		return Pos{Y: -1}
	case West:
		return Pos{X: -1}
	}
	panic(fmt.Sprintf("grid: invalid direction %d", int(d)))
}

// Relative converts an offset expressed in the agent's frame (ahead, right)
// into an absolute offset for an agent facing d.
func (d Direction) Relative(ahead, right int) Pos {
	a := d.Delta()
	r := d.Right().Delta()
	return Pos{X: a.X*ahead + r.X*right, Y: a.Y*ahead + r.Y*right}
}

// Heading returns the direction of the single step from a to b. ok is false
// when a and b are not 4-neighbours.
func Heading(a, b Pos) (Direction, bool) {
	switch b.Sub(a) {
	case Pos{Y: 1}:
		return North, true
	case Pos{X: 1}:
		return East, true
	case Pos{Y: -1}:
		return South, true
	case Pos{X: -1}:
		return West, true
	}
	return North, false
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}
