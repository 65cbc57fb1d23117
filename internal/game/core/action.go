package core

import "fmt"

// ActionType identifies what a unit does with its turn
type ActionType uint8

const (
	ActionNone ActionType = iota
	ActionMove
	ActionAttack
)

func (t ActionType) String() string {
	switch t {
	case ActionNone:
		return "none"
	case ActionMove:
		return "move"
	case ActionAttack:
		return "attack"
	default:
		return fmt.Sprintf("ActionType(%d)", uint8(t))
	}
}

// Action is a decided unit action. For ActionMove, Target is the destination
// cell the unit steps toward; for ActionAttack, Target holds the enemy and
// Bonus is added to BaseDamage.
type Action struct {
	Type   ActionType
	Target Position
	Bonus  int
}

// NoAction returns the idle action
func NoAction() Action { return Action{Type: ActionNone} }

// MoveToward returns a move one step toward dest
func MoveToward(dest Position) Action { return Action{Type: ActionMove, Target: dest} }

// AttackAt returns an attack on the unit at target
func AttackAt(target Position, bonus int) Action {
	return Action{Type: ActionAttack, Target: target, Bonus: bonus}
}

func (a Action) String() string {
	switch a.Type {
	case ActionMove:
		return fmt.Sprintf("move toward %s", a.Target)
	case ActionAttack:
		return fmt.Sprintf("attack %s (+%d)", a.Target, a.Bonus)
	default:
		return a.Type.String()
	}
}
