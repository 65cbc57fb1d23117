package core

import "github.com/zyedidia/generic/mapset"

const unreached = -1

// distanceField runs a breadth-first search rooted at end over open ground
// and returns, per cell index, the number of steps to end (unreached
// elsewhere). The root itself is at distance 0.
func (g *Grid) distanceField(end Position) []int {
	dist := make([]int, len(g.cells))
	for i := range dist {
		dist[i] = unreached
	}

	root := g.Idx(end)
	dist[root] = 0
	queue := make([]int, 0, len(g.cells))
	queue = append(queue, root)

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, n := range g.Pos(cur).Neighbors() {
			if !g.IsOpen(n) {
				continue
			}
			ni := g.Idx(n)
			if dist[ni] != unreached {
				continue
			}
			dist[ni] = dist[cur] + 1
			queue = append(queue, ni)
		}
	}
	return dist
}

// nextStep returns the neighbor of p, first in reading order, that is
// closest to the root of dist.
func (g *Grid) nextStep(p Position, dist []int) (Position, bool) {
	best := unreached
	var next Position
	for _, n := range p.Neighbors() {
		if !g.IsOpen(n) {
			continue
		}
		d := dist[g.Idx(n)]
		if d == unreached {
			continue
		}
		if best == unreached || d < best {
			best = d
			next = n
		}
	}
	return next, best != unreached
}

// ShortestPath returns a shortest 4-connected path from start to end over
// open ground, including both endpoints. The start cell may be occupied
// (it is normally the moving unit's own cell); every other cell must be
// open. Among equal-length paths, each step goes to the first neighbor in
// reading order (up, left, right, down) that still lies on a shortest path.
func (g *Grid) ShortestPath(start, end Position) ([]Position, bool) {
	if !g.InBounds(start) || !g.InBounds(end) {
		return nil, false
	}
	if start == end {
		return []Position{start}, true
	}
	if !g.IsOpen(end) {
		return nil, false
	}

	dist := g.distanceField(end)
	path := []Position{start}
	for cur := start; cur != end; {
		next, ok := g.nextStep(cur, dist)
		if !ok {
			return nil, false
		}
		path = append(path, next)
		cur = next
	}
	return path, true
}

// Distance is the number of steps on the shortest path from start to end
func (g *Grid) Distance(start, end Position) (int, bool) {
	path, ok := g.ShortestPath(start, end)
	if !ok {
		return 0, false
	}
	return len(path) - 1, true
}

// ReachableCells flood-fills open ground from start. The start cell is
// always part of the result, even when occupied.
func (g *Grid) ReachableCells(start Position) mapset.Set[Position] {
	reachable := mapset.New[Position]()
	if !g.InBounds(start) {
		return reachable
	}

	queue := []Position{start}
	reachable.Put(start)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range current.Neighbors() {
			if g.IsOpen(n) && !reachable.Has(n) {
				reachable.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return reachable
}

// DistanceMap holds step counts over open ground from a single origin.
type DistanceMap struct {
	g    *Grid
	dist []int
}

// DistancesFrom runs one BFS from start. The start cell may be occupied.
// Lookups on the result agree with Distance(start, p) for open p.
func (g *Grid) DistancesFrom(start Position) DistanceMap {
	if !g.InBounds(start) {
		return DistanceMap{g: g}
	}
	return DistanceMap{g: g, dist: g.distanceField(start)}
}

// To returns the step count to p, or false when p is unreachable
func (m DistanceMap) To(p Position) (int, bool) {
	if m.dist == nil || !m.g.InBounds(p) {
		return 0, false
	}
	d := m.dist[m.g.Idx(p)]
	return d, d != unreached
}
