package battle

// BresenhamLine returns the grid cells crossed by a straight line from a to
// b, both endpoints included, in order from a to b.
func BresenhamLine(a, b Point) []Point {
	dx := b.X - a.X
	if dx < 0 {
		dx = -dx
	}
	dy := b.Y - a.Y
	if dy < 0 {
		dy = -dy
	}
	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}

	line := make([]Point, 0, dx+dy+1)
	x, y := a.X, a.Y
	err := dx - dy
	for {
		line = append(line, Point{X: x, Y: y})
		if x == b.X && y == b.Y {
			return line
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// HasLineOfSight returns true if no intermediate cell between a and b blocks
// sight. Endpoints never block: a unit behind full cover can still be seen on
// its own tile. Intermediate cells off the grid block.
func HasLineOfSight(g *Grid, a, b Point) bool {
	line := BresenhamLine(a, b)
	for i := 1; i < len(line)-1; i++ {
		p := line[i]
		if !g.InBounds(p.X, p.Y) {
			return false
		}
		if g.TerrainAt(p).BlocksSight() {
			return false
		}
	}
	return true
}

// AttackBlock is the structured reason an attack request was denied.
type AttackBlock uint8

const (
	AttackOK AttackBlock = iota
	AttackOutOfRange
	AttackNoLineOfSight
	AttackNotActive      // command arrived outside the attacker's turn
	AttackNoActionPoints // active unit has no AP left
	AttackInvalidTarget  // unknown or unplaced target unit
)

func (a AttackBlock) String() string {
	switch a {
	case AttackOK:
		return "ok"
	case AttackOutOfRange:
		return "out of range"
	case AttackNoLineOfSight:
		return "no line of sight"
	case AttackNotActive:
		return "not active"
	case AttackNoActionPoints:
		return "no action points"
	case AttackInvalidTarget:
		return "invalid target"
	default:
		return "unknown"
	}
}

// CanAttack validates range then line of sight between two tiles.
func CanAttack(g *Grid, from, to Point, weaponRange float64) AttackBlock {
	if Euclidean(from, to) > weaponRange {
		return AttackOutOfRange
	}
	if !HasLineOfSight(g, from, to) {
		return AttackNoLineOfSight
	}
	return AttackOK
}

// ValidTargets returns the positions of every placed unit of the opposing
// team that can be attacked from the given tile, in row-major scan order.
// Incapacitated units stay targetable; they still occupy their tile.
func ValidTargets(g *Grid, from Point, weaponRange float64, opposing Team) []Point {
	var out []Point
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			u := g.tiles[y*g.Cols+x].Occupant
			if u == nil || u.Team != opposing {
				continue
			}
			p := Point{X: x, Y: y}
			if p == from {
				continue
			}
			if CanAttack(g, from, p, weaponRange) == AttackOK {
				out = append(out, p)
			}
		}
	}
	return out
}
