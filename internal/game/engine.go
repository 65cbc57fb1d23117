package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/processor"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/rules"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/states"
)

// Engine runs a single combat on a grid it owns exclusively
type Engine struct {
	cs        *CombatState
	mode      RunMode
	elfBonus  int
	maxRounds int

	logger          zerolog.Logger
	strategy        *Strategy
	actionProcessor *processor.ActionProcessor
	winCondition    *rules.WinConditionChecker
	eventBus        *events.EventBus
	combatID        string
	stateMachine    *states.StateMachine
	turnProcessor   *TurnProcessor

	outcome *Outcome
}

// NewEngine creates a new engine with the given configuration
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	initializer := NewEngineInitializer(cfg)
	return initializer.Initialize(ctx)
}

// Step runs one round. It reports whether the combat is over afterwards.
// Stepping a finished combat returns ErrCombatOver.
func (e *Engine) Step(ctx context.Context) (bool, error) {
	phase := e.stateMachine.CurrentPhase()
	if phase.IsTerminal() {
		return true, core.WrapRoundError(e.cs.Round, "step", core.ErrCombatOver)
	}
	if !phase.CanStep() {
		return false, fmt.Errorf("combat is in %s phase and cannot step", phase)
	}

	if e.maxRounds > 0 && e.cs.Round >= e.maxRounds {
		err := core.WrapRoundError(e.cs.Round+1, "round limit", core.ErrRoundLimit)
		e.halt(err.Error())
		return true, err
	}

	status, err := e.turnProcessor.ProcessRound(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			e.halt("cancelled: " + err.Error())
		} else {
			e.fail(err)
		}
		return true, err
	}

	switch status {
	case RoundComplete:
		e.cs.Round++
		return false, nil
	case RoundAborted:
		e.finish(true)
	default:
		e.finish(false)
	}
	return true, nil
}

// Run steps rounds until the combat is over and returns its outcome
func (e *Engine) Run(ctx context.Context) (Outcome, error) {
	for {
		over, err := e.Step(ctx)
		if err != nil {
			return Outcome{}, err
		}
		if over {
			return *e.outcome, nil
		}
	}
}

// finish records the outcome and moves the lifecycle to its terminal phase
func (e *Engine) finish(aborted bool) {
	g := e.cs.Grid
	sc := e.stateMachine.Context()

	o := Outcome{
		CompletedRounds: e.cs.Round,
		TotalHP:         g.TotalHitPoints(),
		ElfCasualties:   e.cs.InitialElves - g.CountFaction(core.Elf),
		Aborted:         aborted,
	}
	o.ElfDied = o.ElfCasualties > 0
	o.Score = o.CompletedRounds * o.TotalHP

	if aborted {
		o.Winner = core.Goblin
		sc.Winner = core.Goblin.String()
		sc.AbortReason = "an elf died"
	} else if _, winner, ok := e.winCondition.CheckCombatOver(g); ok {
		o.Winner = winner
		sc.Winner = winner.String()
	}
	e.outcome = &o

	target := states.PhaseEnded
	reason := fmt.Sprintf("%s win", o.Winner)
	if aborted {
		target = states.PhaseAborted
		reason = sc.AbortReason
	}
	if err := e.stateMachine.TransitionTo(target, reason); err != nil {
		e.logger.Error().Err(err).Msg("Failed to record end of combat")
	}

	e.eventBus.Publish(events.NewCombatEndedEvent(
		e.combatID,
		o.Winner.String(),
		o.CompletedRounds,
		o.TotalHP,
		o.ElfDied,
		o.Aborted,
		sc.Elapsed(),
	))

	e.logger.Info().
		Stringer("winner", o.Winner).
		Int("completed_rounds", o.CompletedRounds).
		Int("total_hp", o.TotalHP).
		Int("score", o.Score).
		Int("elf_casualties", o.ElfCasualties).
		Bool("aborted", o.Aborted).
		Msg("Combat finished")
}

// fail moves the combat to the error phase
func (e *Engine) fail(err error) {
	sc := e.stateMachine.Context()
	sc.Error = err
	if tErr := e.stateMachine.TransitionTo(states.PhaseError, err.Error()); tErr != nil {
		e.logger.Error().Err(tErr).Msg("Failed to enter error phase")
	}
	e.logger.Error().
		Err(err).
		Bool("invariant_violation", core.IsInvariantViolation(err)).
		Int("round", e.cs.Round+1).
		Msg("Combat failed")
}

// halt aborts a combat without an outcome
func (e *Engine) halt(reason string) {
	sc := e.stateMachine.Context()
	sc.AbortReason = reason
	if err := e.stateMachine.TransitionTo(states.PhaseAborted, reason); err != nil {
		e.logger.Error().Err(err).Msg("Failed to record abort")
	}
	e.logger.Warn().Str("reason", reason).Int("round", e.cs.Round+1).Msg("Combat halted")
}

// Pause suspends stepping until Resume is called
func (e *Engine) Pause(reason string) error {
	return e.stateMachine.TransitionTo(states.PhasePaused, reason)
}

// Resume continues a paused combat
func (e *Engine) Resume(reason string) error {
	return e.stateMachine.TransitionTo(states.PhaseRunning, reason)
}

// Public accessors
func (e *Engine) Round() int                 { return e.cs.Round }
func (e *Engine) Phase() states.CombatPhase  { return e.stateMachine.CurrentPhase() }
func (e *Engine) CombatID() string           { return e.combatID }
func (e *Engine) Mode() RunMode              { return e.mode }
func (e *Engine) ElfBonus() int              { return e.elfBonus }
func (e *Engine) IsOver() bool               { return e.Phase().IsTerminal() }
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }

// Grid returns a copy of the current grid
func (e *Engine) Grid() *core.Grid { return e.cs.Grid.Clone() }

// Outcome returns the result of a finished combat
func (e *Engine) Outcome() (Outcome, bool) {
	if e.outcome == nil {
		return Outcome{}, false
	}
	return *e.outcome, true
}

// History returns the lifecycle transitions so far
func (e *Engine) History() []states.Transition { return e.stateMachine.History() }
