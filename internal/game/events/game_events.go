package events

import (
	"time"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// Event type constants
const (
	TypeCombatStarted   = "combat.started"
	TypeCombatEnded     = "combat.ended"
	TypeRoundStarted    = "round.started"
	TypeRoundEnded      = "round.ended"
	TypeUnitMoved       = "unit.moved"
	TypeUnitAttacked    = "unit.attacked"
	TypeUnitKilled      = "unit.killed"
	TypeStateTransition = "state.transition"
)

// CombatStartedEvent is published once the grid is loaded and before the
// first round runs
type CombatStartedEvent struct {
	BaseEvent
	Width          int
	Height         int
	Goblins        int
	Elves          int
	ElfAttackBonus int
	Mode           string
	Board          string
}

// NewCombatStartedEvent creates a new CombatStartedEvent
func NewCombatStartedEvent(combatID string, g *core.Grid, elfBonus int, mode, board string) *CombatStartedEvent {
	return &CombatStartedEvent{
		BaseEvent:      newBase(TypeCombatStarted, combatID),
		Width:          g.W,
		Height:         g.H,
		Goblins:        g.CountFaction(core.Goblin),
		Elves:          g.CountFaction(core.Elf),
		ElfAttackBonus: elfBonus,
		Mode:           mode,
		Board:          board,
	}
}

// CombatEndedEvent is published when a combat finishes, aborts or fails
type CombatEndedEvent struct {
	BaseEvent
	Winner          string
	CompletedRounds int
	TotalHP         int
	Score           int
	ElfDied         bool
	Aborted         bool
	Duration        time.Duration
}

// NewCombatEndedEvent creates a new CombatEndedEvent
func NewCombatEndedEvent(combatID, winner string, completedRounds, totalHP int, elfDied, aborted bool, duration time.Duration) *CombatEndedEvent {
	return &CombatEndedEvent{
		BaseEvent:       newBase(TypeCombatEnded, combatID),
		Winner:          winner,
		CompletedRounds: completedRounds,
		TotalHP:         totalHP,
		Score:           completedRounds * totalHP,
		ElfDied:         elfDied,
		Aborted:         aborted,
		Duration:        duration,
	}
}

// RoundStartedEvent is published before the first unit of a round acts
type RoundStartedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Units    int
}

// NewRoundStartedEvent creates a new RoundStartedEvent
func NewRoundStartedEvent(combatID string, round, units int) *RoundStartedEvent {
	return &RoundStartedEvent{
		BaseEvent: newBase(TypeRoundStarted, combatID),
		Metadata:  EventMetadata{Round: round},
		Units:     units,
	}
}

// RoundEndedEvent carries the grid state after a round. Complete is false
// for the final round in which a unit found no enemies left, or the round
// cut short by an elf death in abort mode.
type RoundEndedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Complete bool
	Board    string
	Units    []core.Unit
	TotalHP  int
}

// NewRoundEndedEvent creates a new RoundEndedEvent
func NewRoundEndedEvent(combatID string, round int, complete bool, board string, units []core.Unit, totalHP int) *RoundEndedEvent {
	return &RoundEndedEvent{
		BaseEvent: newBase(TypeRoundEnded, combatID),
		Metadata:  EventMetadata{Round: round},
		Complete:  complete,
		Board:     board,
		Units:     units,
		TotalHP:   totalHP,
	}
}

// UnitMovedEvent is published for every single step a unit takes
type UnitMovedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Faction   core.Faction
	HP        int
	From      core.Position
	To        core.Position
	Direction core.Direction
	Goal      core.Position
}

// NewUnitMovedEvent creates a new UnitMovedEvent
func NewUnitMovedEvent(combatID string, round int, u core.Unit, to, goal core.Position) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: newBase(TypeUnitMoved, combatID),
		Metadata:  EventMetadata{Round: round},
		Faction:   u.Faction,
		HP:        u.HP,
		From:      u.Pos,
		To:        to,
		Direction: u.Pos.DirectionTo(to),
		Goal:      goal,
	}
}

// UnitAttackedEvent is published for every attack, lethal or not
type UnitAttackedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Attacker core.Unit
	Target   core.Unit
	Damage   int
	Killed   bool
}

// NewUnitAttackedEvent creates a new UnitAttackedEvent
func NewUnitAttackedEvent(combatID string, round int, result core.AttackResult) *UnitAttackedEvent {
	return &UnitAttackedEvent{
		BaseEvent: newBase(TypeUnitAttacked, combatID),
		Metadata:  EventMetadata{Round: round},
		Attacker:  result.Attacker,
		Target:    result.Target,
		Damage:    result.Damage,
		Killed:    result.Killed,
	}
}

// UnitKilledEvent is published after a unit is removed from the grid
type UnitKilledEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Victim    core.Unit
	KilledBy  core.Unit
	Remaining int
}

// NewUnitKilledEvent creates a new UnitKilledEvent. Remaining is the
// victim faction's living unit count after the kill.
func NewUnitKilledEvent(combatID string, round int, victim, killer core.Unit, remaining int) *UnitKilledEvent {
	return &UnitKilledEvent{
		BaseEvent: newBase(TypeUnitKilled, combatID),
		Metadata:  EventMetadata{Round: round},
		Victim:    victim,
		KilledBy:  killer,
		Remaining: remaining,
	}
}

// StateTransitionEvent is published when the combat state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(combatID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, combatID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
