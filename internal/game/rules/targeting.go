package rules

import (
	"sort"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// Target is one way for a unit to engage an enemy: the cell it must reach
// and how far away that cell is. Distance 0 means the unit is already
// adjacent and Cell is the enemy's own position.
type Target struct {
	Enemy    core.Unit
	Cell     core.Position
	Distance int
}

// InRange reports whether the target can be attacked without moving
func (t Target) InRange() bool { return t.Distance == 0 }

// TargetSelector enumerates and ranks reachable targets for a unit
type TargetSelector struct{}

// NewTargetSelector creates a new target selector
func NewTargetSelector() *TargetSelector {
	return &TargetSelector{}
}

// ReachableTargets lists, per living enemy of u, the closest reachable open
// cell next to that enemy (first in reading order on ties). An enemy that
// is already adjacent to u also yields a distance 0 candidate at its own
// position. Enemies with no reachable adjacent cell contribute nothing.
func (ts *TargetSelector) ReachableTargets(g *core.Grid, u core.Unit) []Target {
	enemies := g.Enemies(u.Faction)
	if len(enemies) == 0 {
		return nil
	}

	dist := g.DistancesFrom(u.Pos)
	var targets []Target
	for _, enemy := range enemies {
		found := false
		var best Target
		for _, cell := range g.AdjacentOpenCells(enemy.Pos) {
			d, ok := dist.To(cell)
			if !ok {
				continue
			}
			if !found || d < best.Distance {
				best = Target{Enemy: enemy, Cell: cell, Distance: d}
				found = true
			}
		}
		if found {
			targets = append(targets, best)
		}
		if u.Pos.IsAdjacentTo(enemy.Pos) {
			targets = append(targets, Target{Enemy: enemy, Cell: enemy.Pos, Distance: 0})
		}
	}
	return targets
}

// Select returns the best target for u, if any: shortest distance first,
// then lowest enemy hit points, then the target cell in reading order.
func (ts *TargetSelector) Select(g *core.Grid, u core.Unit) (Target, bool) {
	targets := ts.ReachableTargets(g, u)
	if len(targets) == 0 {
		return Target{}, false
	}
	SortTargets(targets)
	return targets[0], true
}

// SortTargets orders targets by (distance, enemy hit points, cell row,
// cell column). The sort is stable so candidates that tie on every key
// keep their enumeration order.
func SortTargets(targets []Target) {
	sort.SliceStable(targets, func(i, j int) bool {
		a, b := targets[i], targets[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.Enemy.HP != b.Enemy.HP {
			return a.Enemy.HP < b.Enemy.HP
		}
		return a.Cell.ReadingLess(b.Cell)
	})
}
