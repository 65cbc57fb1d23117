package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// WinConditionChecker handles combat over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// BothSidesStand reports whether goblins and elves are both still alive
func (wc *WinConditionChecker) BothSidesStand(g *core.Grid) bool {
	return g.CountFaction(core.Goblin) > 0 && g.CountFaction(core.Elf) > 0
}

// CheckCombatOver determines if at most one faction is left on the grid.
// Returns (isOver, winner, hasWinner); hasWinner is false only for a grid
// with no units at all.
func (wc *WinConditionChecker) CheckCombatOver(g *core.Grid) (bool, core.Faction, bool) {
	goblins := g.CountFaction(core.Goblin)
	elves := g.CountFaction(core.Elf)

	wc.logger.Debug().
		Int("goblins", goblins).
		Int("elves", elves).
		Msg("Checking combat over conditions")

	switch {
	case goblins > 0 && elves > 0:
		return false, 0, false
	case goblins > 0:
		wc.logger.Info().Stringer("winner", core.Goblin).Msg("Winner determined")
		return true, core.Goblin, true
	case elves > 0:
		wc.logger.Info().Stringer("winner", core.Elf).Msg("Winner determined")
		return true, core.Elf, true
	default:
		wc.logger.Info().Msg("No units left on the grid")
		return true, 0, false
	}
}
