package game

import (
	"fmt"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/config"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// RunMode selects how a combat reacts to elf deaths
type RunMode int

const (
	// ToCompletion fights until one faction is wiped out
	ToCompletion RunMode = iota
	// AbortOnElfDeath stops the combat as soon as any elf dies
	AbortOnElfDeath
)

func (m RunMode) String() string {
	switch m {
	case ToCompletion:
		return config.ModeToCompletion
	case AbortOnElfDeath:
		return config.ModeAbortOnElfDeath
	default:
		return fmt.Sprintf("RunMode(%d)", int(m))
	}
}

// ParseRunMode converts a configured mode name to a RunMode
func ParseRunMode(s string) (RunMode, error) {
	switch s {
	case config.ModeToCompletion, "":
		return ToCompletion, nil
	case config.ModeAbortOnElfDeath:
		return AbortOnElfDeath, nil
	default:
		return 0, fmt.Errorf("unknown run mode %q", s)
	}
}

// CombatState is the mutable state of one combat
type CombatState struct {
	Round          int // completed rounds
	Grid           *core.Grid
	InitialGoblins int
	InitialElves   int
}

func newCombatState(g *core.Grid) *CombatState {
	return &CombatState{
		Grid:           g,
		InitialGoblins: g.CountFaction(core.Goblin),
		InitialElves:   g.CountFaction(core.Elf),
	}
}

// Outcome is the final result of a combat
type Outcome struct {
	Winner          core.Faction
	CompletedRounds int
	TotalHP         int
	Score           int
	ElfDied         bool
	ElfCasualties   int
	Aborted         bool
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s win after %d rounds with %d hp (score %d)",
		o.Winner, o.CompletedRounds, o.TotalHP, o.Score)
}
