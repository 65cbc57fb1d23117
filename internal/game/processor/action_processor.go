package processor

import (
	"fmt"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/rs/zerolog"
)

// Result reports what executing one action did to the grid
type Result struct {
	Action core.Action
	Unit   core.Unit // acting unit after the action
	From   core.Position
	Moved  bool
	Attack *core.AttackResult
}

// ActionProcessor applies decided actions to the grid. It is the only place
// the engine mutates unit state.
type ActionProcessor struct {
	logger zerolog.Logger
}

// NewActionProcessor creates a new action processor
func NewActionProcessor(logger zerolog.Logger) *ActionProcessor {
	return &ActionProcessor{
		logger: logger.With().Str("component", "ActionProcessor").Logger(),
	}
}

// Execute applies action for unit u. ActionNone is a no-op. Any error is an
// invariant violation returned with the unit and action attached.
func (ap *ActionProcessor) Execute(g *core.Grid, u core.Unit, action core.Action) (Result, error) {
	result := Result{Action: action, Unit: u, From: u.Pos}

	switch action.Type {
	case core.ActionNone:
		ap.logger.Debug().
			Stringer("faction", u.Faction).
			Stringer("pos", u.Pos).
			Msg("Unit has nothing to do")
		return result, nil

	case core.ActionMove:
		to, err := g.MoveUnit(u, action.Target)
		if err != nil {
			ap.logger.Error().Err(err).
				Stringer("action", action).
				Msg("Failed to apply move action")
			return result, err
		}
		result.Unit.Pos = to
		result.Moved = true
		ap.logger.Debug().
			Stringer("faction", u.Faction).
			Stringer("from", u.Pos).
			Stringer("to", to).
			Stringer("goal", action.Target).
			Msg("Unit moved")
		return result, nil

	case core.ActionAttack:
		attack, err := g.AttackUnit(u, action.Target, action.Bonus)
		if err != nil {
			ap.logger.Error().Err(err).
				Stringer("action", action).
				Msg("Failed to apply attack action")
			return result, err
		}
		result.Attack = &attack
		ap.logger.Debug().
			Stringer("faction", u.Faction).
			Stringer("attacker", u.Pos).
			Stringer("target", action.Target).
			Int("damage", attack.Damage).
			Int("target_hp", attack.Target.HP).
			Bool("killed", attack.Killed).
			Msg("Unit attacked")
		return result, nil

	default:
		return result, fmt.Errorf("unhandled action type %s", action.Type)
	}
}
