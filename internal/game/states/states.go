package states

import (
	"errors"
	"time"
)

// hooks implements State from optional callbacks; nil callbacks are no-ops
type hooks struct {
	phase    CombatPhase
	enter    func(*CombatContext) error
	exit     func(*CombatContext) error
	validate func(*CombatContext) error
}

func (h *hooks) Phase() CombatPhase { return h.phase }

func (h *hooks) Enter(ctx *CombatContext) error { return call(h.enter, ctx) }

func (h *hooks) Exit(ctx *CombatContext) error { return call(h.exit, ctx) }

func (h *hooks) Validate(ctx *CombatContext) error { return call(h.validate, ctx) }

func call(fn func(*CombatContext) error, ctx *CombatContext) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// defaultStates returns the built-in lifecycle for a single combat
func defaultStates() []State {
	return []State{
		&hooks{
			phase: PhaseInitializing,
			exit: func(ctx *CombatContext) error {
				ctx.Logger.Debug().Int("goblins", ctx.Goblins).Int("elves", ctx.Elves).Msg("Grid ready")
				return nil
			},
		},
		&hooks{
			phase:    PhaseRunning,
			enter:    startClock,
			validate: requireUnits,
		},
		&hooks{
			phase: PhasePaused,
			enter: func(ctx *CombatContext) error {
				ctx.PauseTime = time.Now()
				ctx.Logger.Info().Msg("Combat paused")
				return nil
			},
			exit: resumeClock,
			validate: func(ctx *CombatContext) error {
				if ctx.StartTime.IsZero() {
					return errors.New("cannot pause a combat that has not started")
				}
				return nil
			},
		},
		&hooks{
			phase: PhaseEnded,
			enter: func(ctx *CombatContext) error {
				ctx.Logger.Info().Str("winner", ctx.Winner).Dur("elapsed", ctx.Elapsed()).Msg("Combat ended")
				return nil
			},
			validate: func(ctx *CombatContext) error {
				if ctx.Winner == "" {
					return errors.New("cannot end combat without a winner")
				}
				return nil
			},
		},
		&hooks{
			phase: PhaseAborted,
			enter: func(ctx *CombatContext) error {
				ctx.Logger.Info().Str("reason", ctx.AbortReason).Dur("elapsed", ctx.Elapsed()).Msg("Combat aborted")
				return nil
			},
			validate: func(ctx *CombatContext) error {
				if ctx.AbortReason == "" {
					return errors.New("abort requires a reason")
				}
				return nil
			},
		},
		&hooks{
			phase: PhaseError,
			enter: func(ctx *CombatContext) error {
				ctx.Logger.Error().Err(ctx.Error).Msg("Combat entered error state")
				return nil
			},
			validate: func(ctx *CombatContext) error {
				if ctx.Error == nil {
					return errors.New("cannot enter error state without an error")
				}
				return nil
			},
		},
		&hooks{
			phase: PhaseReset,
			enter: func(ctx *CombatContext) error {
				ctx.clear()
				return nil
			},
		},
	}
}

func requireUnits(ctx *CombatContext) error {
	if ctx.UnitCount() == 0 {
		return errors.New("cannot run a combat with no units")
	}
	return nil
}

// startClock stamps the start time on the first entry only, so resuming keeps it
func startClock(ctx *CombatContext) error {
	if ctx.StartTime.IsZero() {
		ctx.StartTime = time.Now()
		ctx.Logger.Info().Time("start_time", ctx.StartTime).Msg("Combat started")
	}
	return nil
}

func resumeClock(ctx *CombatContext) error {
	if ctx.PauseTime.IsZero() {
		return nil
	}
	paused := time.Since(ctx.PauseTime)
	ctx.TotalPauseDuration += paused
	ctx.PauseTime = time.Time{}
	ctx.Logger.Info().Dur("paused_for", paused).Msg("Combat resumed")
	return nil
}
