package core

import (
	"errors"
	"fmt"
)

// Invariant violations. Any of these reaching the engine means a logic bug
// and aborts the run.
var (
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrUnitNotFound     = errors.New("unit not found at its stated position")
	ErrCellNotOpen      = errors.New("cell is not open ground")
	ErrUnreachable      = errors.New("destination is unreachable")
	ErrNotAdjacent      = errors.New("target is not adjacent")
	ErrNoTargetUnit     = errors.New("no unit at target position")
	ErrFriendlyFire     = errors.New("target belongs to the same faction")
	ErrInvalidHitPoints = errors.New("hit points must be positive")
)

// Run-level conditions.
var (
	ErrCombatOver = errors.New("combat is over")
	ErrRoundLimit = errors.New("round limit reached without a winner")
)

var invariantErrors = []error{
	ErrOutOfBounds,
	ErrUnitNotFound,
	ErrCellNotOpen,
	ErrUnreachable,
	ErrNotAdjacent,
	ErrNoTargetUnit,
	ErrFriendlyFire,
}

// IsInvariantViolation reports whether err signals a broken grid invariant
// rather than an expected condition.
func IsInvariantViolation(err error) bool {
	for _, target := range invariantErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// WrapUnitError adds the acting unit and operation to err
func WrapUnitError(u Unit, op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s at %s: %s: %w", u.Faction, u.Pos, op, err)
}

// WrapPositionError adds a grid position and operation to err
func WrapPositionError(p Position, op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", op, p, err)
}

// WrapRoundError adds round and phase context to err
func WrapRoundError(round int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("round %d (%s): %w", round, phase, err)
}
