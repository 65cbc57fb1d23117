package states

import (
	"time"

	"github.com/rs/zerolog"
)

// CombatContext is the shared record the lifecycle states read and update
type CombatContext struct {
	CombatID string
	Logger   zerolog.Logger

	// Living unit counts, kept current by the engine after every round
	Goblins int
	Elves   int

	StartTime          time.Time // first entry into PhaseRunning
	PauseTime          time.Time // zero unless paused
	TotalPauseDuration time.Duration

	Winner      string // faction name, required by PhaseEnded
	AbortReason string // required by PhaseAborted
	Error       error  // required by PhaseError
}

// NewCombatContext creates a context whose logger is tagged with the combat ID
func NewCombatContext(combatID string, logger zerolog.Logger) *CombatContext {
	return &CombatContext{
		CombatID: combatID,
		Logger:   logger.With().Str("combat_id", combatID).Logger(),
	}
}

// UnitCount returns the number of living units on both sides
func (cc *CombatContext) UnitCount() int {
	return cc.Goblins + cc.Elves
}

// Elapsed returns the running time since the combat started, pauses excluded
func (cc *CombatContext) Elapsed() time.Duration {
	if cc.StartTime.IsZero() {
		return 0
	}
	paused := cc.TotalPauseDuration
	if !cc.PauseTime.IsZero() {
		paused += time.Since(cc.PauseTime)
	}
	return time.Since(cc.StartTime) - paused
}

// clear drops everything a finished run recorded
func (cc *CombatContext) clear() {
	cc.StartTime = time.Time{}
	cc.PauseTime = time.Time{}
	cc.TotalPauseDuration = 0
	cc.Winner = ""
	cc.AbortReason = ""
	cc.Error = nil
}
