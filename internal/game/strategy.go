package game

import (
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/rules"
)

// Strategy decides what a unit does on its turn
type Strategy struct {
	selector *rules.TargetSelector
	elfBonus int
}

// NewStrategy creates a strategy where elves add elfBonus to their damage
func NewStrategy(elfBonus int) *Strategy {
	return &Strategy{
		selector: rules.NewTargetSelector(),
		elfBonus: elfBonus,
	}
}

// BonusFor returns the attack bonus for units of faction f
func (s *Strategy) BonusFor(f core.Faction) int {
	if f == core.Elf {
		return s.elfBonus
	}
	return 0
}

// Decide picks the best target for u. An adjacent best target is attacked,
// otherwise u moves toward the chosen cell. With no reachable target the
// unit does nothing.
func (s *Strategy) Decide(g *core.Grid, u core.Unit) core.Action {
	target, ok := s.selector.Select(g, u)
	if !ok {
		return core.NoAction()
	}
	if target.InRange() {
		return core.AttackAt(target.Cell, s.BonusFor(u.Faction))
	}
	return core.MoveToward(target.Cell)
}
