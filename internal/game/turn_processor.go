package game

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/zyedidia/generic/mapset"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/processor"
)

// RoundStatus is how a round ended
type RoundStatus int

const (
	// RoundComplete means every unit in the round snapshot got its turn
	RoundComplete RoundStatus = iota
	// RoundIncomplete means a unit found no enemies left
	RoundIncomplete
	// RoundAborted means an elf died in AbortOnElfDeath mode
	RoundAborted
)

func (s RoundStatus) String() string {
	switch s {
	case RoundComplete:
		return "complete"
	case RoundIncomplete:
		return "incomplete"
	case RoundAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// TurnProcessor handles the orchestration of a single round
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessRound gives every unit alive at round start one turn, in reading
// order of their starting positions.
func (tp *TurnProcessor) ProcessRound(ctx context.Context) (RoundStatus, error) {
	e := tp.engine
	g := e.cs.Grid
	round := e.cs.Round + 1

	roundLogger := tp.logger.With().Int("round", round).Logger()
	roundLogger.Debug().Msg("Starting round")
	roundStart := time.Now()

	snapshot := g.UnitsInReadingOrder()
	e.eventBus.Publish(events.NewRoundStartedEvent(e.combatID, round, len(snapshot)))

	// Cells where units that already acted this round now stand. A snapshot
	// entry found on one of them belongs to a unit that died there.
	acted := mapset.New[core.Position]()
	status := RoundComplete

	for _, snap := range snapshot {
		if err := tp.checkContext(ctx, round, "unit turn"); err != nil {
			return RoundIncomplete, err
		}

		// Checked before the dead-unit skip: a round whose remaining
		// entries all died is still cut short once a faction is gone.
		if !e.winCondition.BothSidesStand(g) {
			roundLogger.Debug().
				Stringer("faction", snap.Faction).
				Stringer("pos", snap.Pos).
				Msg("No enemies left, round ends early")
			status = RoundIncomplete
			break
		}

		u, ok := g.UnitAt(snap.Pos)
		if !ok || acted.Has(snap.Pos) {
			roundLogger.Debug().Stringer("pos", snap.Pos).Msg("Skipping unit killed earlier this round")
			continue
		}

		elvesBefore := g.CountFaction(core.Elf)
		final, err := tp.takeTurn(u, round, roundLogger)
		if err != nil {
			return RoundIncomplete, core.WrapRoundError(round, "unit turn", err)
		}
		acted.Put(final.Pos)

		if e.mode == AbortOnElfDeath && g.CountFaction(core.Elf) < elvesBefore {
			roundLogger.Info().Stringer("pos", final.Pos).Msg("An elf died, aborting combat")
			status = RoundAborted
			break
		}
	}

	e.updateCombatStats()
	tp.publishRoundEnded(round, status)

	roundLogger.Debug().
		Stringer("status", status).
		Dur("duration", time.Since(roundStart)).
		Msg("Round finished")
	return status, nil
}

// takeTurn runs the two-phase turn of u: one action, then an attack if the
// first action was a move that brought an enemy into reach. It returns the
// unit as it stands after its turn.
func (tp *TurnProcessor) takeTurn(u core.Unit, round int, logger zerolog.Logger) (core.Unit, error) {
	e := tp.engine
	g := e.cs.Grid

	action := e.strategy.Decide(g, u)
	logger.Debug().
		Stringer("faction", u.Faction).
		Stringer("pos", u.Pos).
		Stringer("action", action).
		Msg("Unit decided")

	res, err := e.actionProcessor.Execute(g, u, action)
	if err != nil {
		return u, err
	}
	tp.publishResult(round, res)

	if !res.Moved {
		return res.Unit, nil
	}

	follow := e.strategy.Decide(g, res.Unit)
	if follow.Type != core.ActionAttack {
		return res.Unit, nil
	}
	res, err = e.actionProcessor.Execute(g, res.Unit, follow)
	if err != nil {
		return u, err
	}
	tp.publishResult(round, res)
	return res.Unit, nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, round int, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("round", round).
			Str("phase", phase).
			Msg("Combat round cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

func (tp *TurnProcessor) publishResult(round int, res processor.Result) {
	e := tp.engine
	if res.Moved {
		mover := res.Unit
		mover.Pos = res.From
		e.eventBus.Publish(events.NewUnitMovedEvent(e.combatID, round, mover, res.Unit.Pos, res.Action.Target))
	}
	if res.Attack == nil {
		return
	}
	e.eventBus.Publish(events.NewUnitAttackedEvent(e.combatID, round, *res.Attack))
	if res.Attack.Killed {
		remaining := e.cs.Grid.CountFaction(res.Attack.Target.Faction)
		e.eventBus.Publish(events.NewUnitKilledEvent(e.combatID, round, res.Attack.Target, res.Attack.Attacker, remaining))
	}
}

func (tp *TurnProcessor) publishRoundEnded(round int, status RoundStatus) {
	e := tp.engine
	g := e.cs.Grid
	e.eventBus.Publish(events.NewRoundEndedEvent(
		e.combatID,
		round,
		status == RoundComplete,
		mapgen.Render(g),
		g.UnitsInReadingOrder(),
		g.TotalHitPoints(),
	))
}
