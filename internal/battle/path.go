package battle

import (
	"container/heap"
	"math"
)

// Movement step costs: orthogonal 1, diagonal sqrt2. The budget stat is a
// distance cost, not a step count.
const (
	orthogonalCost = 1.0
	diagonalCost   = math.Sqrt2

	// costEpsilon absorbs float error when a summed path cost is compared
	// against a budget, so e.g. three diagonal steps fit a 3*sqrt2 budget.
	costEpsilon = 1e-9
)

// UnboundedCost disables the cost cap on FindPath.
var UnboundedCost = math.Inf(1)

type pathNode struct {
	pos    Point
	g, h   float64
	parent *pathNode
	index  int // heap index
}

type openList []*pathNode

func (ol openList) Len() int           { return len(ol) }
func (ol openList) Less(i, j int) bool { return (ol[i].g + ol[i].h) < (ol[j].g + ol[j].h) }
func (ol openList) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].index = i
	ol[j].index = j
}
func (ol *openList) Push(x interface{}) {
	n := x.(*pathNode)
	n.index = len(*ol)
	*ol = append(*ol, n)
}
func (ol *openList) Pop() interface{} {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

// walkable reports whether a unit can stand on (x, y). Occupied tiles are not
// walkable even when the occupant is incapacitated.
func walkable(g *Grid, x, y int) bool {
	t := g.At(x, y)
	if t == nil {
		return false
	}
	return t.Occupant == nil && !t.Terrain.BlocksMovement()
}

// FindPath runs A* from start to goal and returns the tile sequence including
// both endpoints, or nil when no path exists within maxCost. An occupied goal
// fails by contract: callers wanting to approach an occupied unit path to a
// free adjacent tile instead (see NearestApproachTile). The start tile is
// exempt from the occupancy check since the mover stands on it.
func FindPath(g *Grid, start, goal Point, maxCost float64) []Point {
	if !g.InBounds(start.X, start.Y) || !walkable(g, goal.X, goal.Y) {
		return nil
	}
	if start == goal {
		return []Point{start}
	}

	key := func(p Point) int { return p.Y*g.Cols + p.X }

	first := &pathNode{pos: start, g: 0, h: Euclidean(start, goal)}
	ol := &openList{first}
	heap.Init(ol)

	closed := make(map[int]bool)
	best := map[int]*pathNode{key(start): first}

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if cur.pos == goal {
			return buildPath(cur)
		}
		k := key(cur.pos)
		if closed[k] {
			continue
		}
		closed[k] = true

		for _, d := range neighborDirs {
			nx, ny := cur.pos.X+d[0], cur.pos.Y+d[1]
			if !walkable(g, nx, ny) {
				continue
			}
			// Prevent diagonal corner-cutting past blocked cells.
			if d[0] != 0 && d[1] != 0 {
				if !walkable(g, cur.pos.X+d[0], cur.pos.Y) || !walkable(g, cur.pos.X, cur.pos.Y+d[1]) {
					continue
				}
			}
			np := Point{X: nx, Y: ny}
			nk := key(np)
			if closed[nk] {
				continue
			}
			cost := orthogonalCost
			if d[0] != 0 && d[1] != 0 {
				cost = diagonalCost
			}
			ng := cur.g + cost
			if ng > maxCost+costEpsilon {
				continue
			}
			if prev, ok := best[nk]; ok && ng >= prev.g {
				continue
			}
			node := &pathNode{pos: np, g: ng, h: Euclidean(np, goal), parent: cur}
			best[nk] = node
			heap.Push(ol, node)
		}
	}
	return nil
}

func buildPath(end *pathNode) []Point {
	var path []Point
	for n := end; n != nil; n = n.parent {
		path = append(path, n.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathCost sums the step costs along a path returned by FindPath.
func PathCost(path []Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		if path[i].X != path[i-1].X && path[i].Y != path[i-1].Y {
			total += diagonalCost
		} else {
			total += orthogonalCost
		}
	}
	return total
}

// TrimPathToBudget returns the longest path prefix whose cost fits the
// budget. The prefix always retains the start tile.
func TrimPathToBudget(path []Point, budget float64) []Point {
	if len(path) == 0 {
		return nil
	}
	cost := 0.0
	end := 1
	for i := 1; i < len(path); i++ {
		step := orthogonalCost
		if path[i].X != path[i-1].X && path[i].Y != path[i-1].Y {
			step = diagonalCost
		}
		if cost+step > budget+costEpsilon {
			break
		}
		cost += step
		end = i + 1
	}
	return path[:end]
}

// ReachableTiles returns every tile reachable from start within the movement
// cost budget, mapped to its cheapest cost. Cost-bounded Dijkstra expansion,
// not a step count. The start tile is included at cost zero.
func ReachableTiles(g *Grid, start Point, budget float64) map[Point]float64 {
	reach := map[Point]float64{start: 0}
	if !g.InBounds(start.X, start.Y) {
		return nil
	}

	first := &pathNode{pos: start, g: 0}
	ol := &openList{first}
	heap.Init(ol)

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if cur.g > reach[cur.pos] {
			continue
		}
		for _, d := range neighborDirs {
			nx, ny := cur.pos.X+d[0], cur.pos.Y+d[1]
			if !walkable(g, nx, ny) {
				continue
			}
			if d[0] != 0 && d[1] != 0 {
				if !walkable(g, cur.pos.X+d[0], cur.pos.Y) || !walkable(g, cur.pos.X, cur.pos.Y+d[1]) {
					continue
				}
			}
			cost := orthogonalCost
			if d[0] != 0 && d[1] != 0 {
				cost = diagonalCost
			}
			ng := cur.g + cost
			if ng > budget+costEpsilon {
				continue
			}
			np := Point{X: nx, Y: ny}
			if prev, ok := reach[np]; ok && ng >= prev {
				continue
			}
			reach[np] = ng
			heap.Push(ol, &pathNode{pos: np, g: ng})
		}
	}
	return reach
}

// NearestApproachTile picks the free tile adjacent to target closest to the
// mover. Neighbors are enumerated in the fixed neighborDirs order; exact
// distance ties keep the first candidate. This determinism is what makes AI
// movement reproducible.
func NearestApproachTile(g *Grid, mover, target Point) (Point, bool) {
	bestDist := math.MaxFloat64
	var best Point
	found := false
	for _, d := range neighborDirs {
		nx, ny := target.X+d[0], target.Y+d[1]
		p := Point{X: nx, Y: ny}
		if p == mover {
			// The mover's own tile counts as already adjacent.
			return mover, true
		}
		if !walkable(g, nx, ny) {
			continue
		}
		dist := Euclidean(mover, p)
		if dist < bestDist {
			bestDist = dist
			best = p
			found = true
		}
	}
	return best, found
}
