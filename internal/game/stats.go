package game

import (
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// FactionStats summarizes one side of the combat
type FactionStats struct {
	Faction    core.Faction
	Units      int
	TotalHP    int
	Casualties int
}

// Stats returns per-faction statistics, goblins first
func (e *Engine) Stats() []FactionStats {
	stats := make([]FactionStats, len(core.Factions))
	for i, f := range core.Factions {
		stats[i].Faction = f
	}
	for _, u := range e.cs.Grid.UnitsInReadingOrder() {
		s := &stats[u.Faction]
		s.Units++
		s.TotalHP += u.HP
	}
	stats[core.Goblin].Casualties = e.cs.InitialGoblins - stats[core.Goblin].Units
	stats[core.Elf].Casualties = e.cs.InitialElves - stats[core.Elf].Units
	return stats
}

// updateCombatStats copies live unit counts into the lifecycle context
func (e *Engine) updateCombatStats() {
	ctx := e.stateMachine.Context()
	ctx.Goblins = e.cs.Grid.CountFaction(core.Goblin)
	ctx.Elves = e.cs.Grid.CountFaction(core.Elf)

	e.logger.Debug().
		Int("goblins", ctx.Goblins).
		Int("elves", ctx.Elves).
		Msg("Combat stats updated")
}
