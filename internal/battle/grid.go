package battle

import "math"

// Terrain identifies the cover kind of a battlefield tile.
type Terrain uint8

const (
	TerrainEmpty     Terrain = iota // open ground
	TerrainHalfCover                // chest-high obstruction, see over it
	TerrainFullCover                // solid obstruction, blocks sight and movement
	terrainCount                    // sentinel
)

// BlocksSight returns true if the terrain fully blocks line of sight.
func (t Terrain) BlocksSight() bool {
	return t == TerrainFullCover
}

// BlocksMovement returns true if units cannot enter a tile with this terrain.
func (t Terrain) BlocksMovement() bool {
	return t == TerrainFullCover
}

// DefenseBonus returns the attacker-miss bonus granted to a unit standing on
// this terrain, in hit-chance percentage points.
func (t Terrain) DefenseBonus() int {
	switch t {
	case TerrainHalfCover:
		return 20
	case TerrainFullCover:
		return 40
	default:
		return 0
	}
}

func (t Terrain) String() string {
	switch t {
	case TerrainEmpty:
		return "empty"
	case TerrainHalfCover:
		return "half cover"
	case TerrainFullCover:
		return "full cover"
	default:
		return "unknown"
	}
}

// Point is a tile coordinate on the battlefield grid.
type Point struct {
	X int
	Y int
}

// Euclidean returns the straight-line distance between two tiles.
func Euclidean(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// Manhattan returns the orthogonal step distance between two tiles.
func Manhattan(a, b Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent returns true if b is one of the 8 tiles surrounding a.
func Adjacent(a, b Point) bool {
	if a == b {
		return false
	}
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// MoveBlock is the structured reason a movement request was denied.
type MoveBlock uint8

const (
	MoveOK MoveBlock = iota
	MoveOutOfBounds
	MoveOccupied
	MoveBlockedTerrain
	MoveNoUnit         // source tile has no occupant
	MoveNoPath         // no route within the mover's budget
	MoveNoActionPoints // active unit has no AP left
	MoveNotActive      // command arrived outside the unit's turn
)

func (m MoveBlock) String() string {
	switch m {
	case MoveOK:
		return "ok"
	case MoveOutOfBounds:
		return "out of bounds"
	case MoveOccupied:
		return "occupied"
	case MoveBlockedTerrain:
		return "blocked terrain"
	case MoveNoUnit:
		return "no unit"
	case MoveNoPath:
		return "no path"
	case MoveNoActionPoints:
		return "no action points"
	case MoveNotActive:
		return "not active"
	default:
		return "unknown"
	}
}

// Tile is one cell of the battlefield. Occupant stays set while a unit is
// incapacitated on it; the body still takes up the tile.
type Tile struct {
	Pos      Point
	Terrain  Terrain
	Occupant *Unit
}

// Grid is the authoritative battlefield state: terrain and occupancy.
// One battle session owns it exclusively.
type Grid struct {
	Cols  int
	Rows  int
	tiles []Tile // row-major: index = y*Cols + x
}

// NewGrid creates an all-empty battlefield of the given size.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{
		Cols:  cols,
		Rows:  rows,
		tiles: make([]Tile, cols*rows),
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			g.tiles[y*cols+x].Pos = Point{X: x, Y: y}
		}
	}
	return g
}

// InBounds returns true if (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Cols && y >= 0 && y < g.Rows
}

// At returns the tile at (x, y), or nil if out of bounds.
func (g *Grid) At(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.tiles[y*g.Cols+x]
}

// TerrainAt returns the terrain at p. Out-of-bounds reads as empty; callers
// that care about bounds check InBounds first.
func (g *Grid) TerrainAt(p Point) Terrain {
	t := g.At(p.X, p.Y)
	if t == nil {
		return TerrainEmpty
	}
	return t.Terrain
}

// SetTerrain sets the terrain kind of a tile. Out-of-bounds writes are ignored.
func (g *Grid) SetTerrain(x, y int, terrain Terrain) {
	if t := g.At(x, y); t != nil {
		t.Terrain = terrain
	}
}

// PlaceUnit puts an unplaced unit onto the tile at (x, y).
func (g *Grid) PlaceUnit(u *Unit, x, y int) MoveBlock {
	t := g.At(x, y)
	if t == nil {
		return MoveOutOfBounds
	}
	if t.Occupant != nil {
		return MoveOccupied
	}
	if t.Terrain.BlocksMovement() {
		return MoveBlockedTerrain
	}
	t.Occupant = u
	u.Pos = Point{X: x, Y: y}
	u.Placed = true
	return MoveOK
}

// RemoveUnit clears the occupant of (x, y) and returns it, or nil if the tile
// is empty or out of bounds.
func (g *Grid) RemoveUnit(x, y int) *Unit {
	t := g.At(x, y)
	if t == nil || t.Occupant == nil {
		return nil
	}
	u := t.Occupant
	t.Occupant = nil
	u.Placed = false
	return u
}

// MoveUnit relocates the occupant of from to to. The move is atomic: on any
// denial the grid and the unit are left untouched.
func (g *Grid) MoveUnit(from, to Point) MoveBlock {
	src := g.At(from.X, from.Y)
	dst := g.At(to.X, to.Y)
	if src == nil || dst == nil {
		return MoveOutOfBounds
	}
	if src.Occupant == nil {
		return MoveNoUnit
	}
	if dst.Occupant != nil {
		return MoveOccupied
	}
	if dst.Terrain.BlocksMovement() {
		return MoveBlockedTerrain
	}
	u := src.Occupant
	src.Occupant = nil
	dst.Occupant = u
	u.Pos = to
	return MoveOK
}

// UnitAt returns the occupant of p, or nil.
func (g *Grid) UnitAt(p Point) *Unit {
	t := g.At(p.X, p.Y)
	if t == nil {
		return nil
	}
	return t.Occupant
}

// neighborDirs is the fixed neighbor enumeration order: orthogonals first,
// then diagonals. Tie-breaks in pathing and approach-tile selection depend on
// this order staying stable.
var neighborDirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Neighbors returns the in-bounds tiles adjacent to (x, y), 4-connected or
// 8-connected, in the fixed enumeration order.
func (g *Grid) Neighbors(x, y int, diagonal bool) []Point {
	n := 4
	if diagonal {
		n = 8
	}
	out := make([]Point, 0, n)
	for _, d := range neighborDirs[:n] {
		nx, ny := x+d[0], y+d[1]
		if g.InBounds(nx, ny) {
			out = append(out, Point{X: nx, Y: ny})
		}
	}
	return out
}
