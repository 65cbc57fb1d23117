package core

import "fmt"

// BaseDamage is dealt by every attack before any faction bonus
const BaseDamage = 3

// AttackResult describes the outcome of a single attack
type AttackResult struct {
	Attacker Unit
	Target   Unit // target state after the hit; HP is 0 when killed
	Damage   int
	Killed   bool
}

// MoveUnit moves u one step along the shortest path toward dest and returns
// its new position. dest must be open ground reachable from u.
func (g *Grid) MoveUnit(u Unit, dest Position) (Position, error) {
	op := fmt.Sprintf("move toward %s", dest)

	if !g.InBounds(u.Pos) {
		return u.Pos, WrapUnitError(u, op, ErrOutOfBounds)
	}
	from := g.Idx(u.Pos)
	if g.cells[from].Kind != CellUnit {
		return u.Pos, WrapUnitError(u, op, ErrUnitNotFound)
	}
	if !g.IsOpen(dest) {
		return u.Pos, WrapUnitError(u, op, ErrCellNotOpen)
	}

	path, ok := g.ShortestPath(u.Pos, dest)
	if !ok {
		return u.Pos, WrapUnitError(u, op, ErrUnreachable)
	}

	next := path[1]
	to := g.Idx(next)
	g.cells[to] = g.cells[from]
	g.cells[from] = Cell{Kind: CellOpen}

	return next, nil
}

// AttackUnit hits the unit at target for BaseDamage+bonus. A target left
// with no hit points is removed and its cell becomes open ground.
func (g *Grid) AttackUnit(attacker Unit, target Position, bonus int) (AttackResult, error) {
	op := fmt.Sprintf("attack %s", target)

	if !g.InBounds(attacker.Pos) || g.cells[g.Idx(attacker.Pos)].Kind != CellUnit {
		return AttackResult{}, WrapUnitError(attacker, op, ErrUnitNotFound)
	}
	if !g.InBounds(target) {
		return AttackResult{}, WrapUnitError(attacker, op, ErrOutOfBounds)
	}
	idx := g.Idx(target)
	victim := &g.cells[idx]
	if victim.Kind != CellUnit {
		return AttackResult{}, WrapUnitError(attacker, op, ErrNoTargetUnit)
	}
	if g.ManhattanDistance(attacker.Pos, target) != 1 {
		return AttackResult{}, WrapUnitError(attacker, op, ErrNotAdjacent)
	}
	if victim.Faction == g.cells[g.Idx(attacker.Pos)].Faction {
		return AttackResult{}, WrapUnitError(attacker, op, ErrFriendlyFire)
	}

	damage := BaseDamage + bonus
	result := AttackResult{
		Attacker: attacker,
		Target:   Unit{Faction: victim.Faction, Pos: target},
		Damage:   damage,
	}

	if victim.HP <= damage {
		*victim = Cell{Kind: CellOpen}
		result.Killed = true
		return result, nil
	}

	victim.HP -= damage
	result.Target.HP = victim.HP
	return result, nil
}
