package grid

// Spiral visits the square spiral centred on c, innermost ring first,
// stopping once an offset reaches radius on either axis or visit returns
// false. The first visited tile is c itself.
func Spiral(c Pos, radius int, visit func(Pos) bool) {
	x, y := 0, 0
	dx, dy := 0, -1
	for x != radius && y != radius {
		if !visit(Pos{X: c.X + x, Y: c.Y + y}) {
			return
		}
		if x == y || (x < 0 && x == -y) || (x > 0 && x == 1-y) {
			dx, dy = -dy, dx
		}
		x += dx
		y += dy
	}
}

// Ring visits every cell within Chebyshev distance r of c, excluding c,
// row by row.
func Ring(c Pos, r int, visit func(Pos) bool) {
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if !visit(Pos{X: c.X + dx, Y: c.Y + dy}) {
				return
			}
		}
	}
}
