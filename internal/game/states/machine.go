package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events"
)

// State is one phase of the lifecycle. Validate runs before the move,
// Exit on the phase being left and Enter on the phase being entered.
type State interface {
	Phase() CombatPhase
	Enter(ctx *CombatContext) error
	Exit(ctx *CombatContext) error
	Validate(ctx *CombatContext) error
}

// Transition is one entry of the lifecycle history
type Transition struct {
	From      CombatPhase
	To        CombatPhase
	Timestamp time.Time
	Reason    string
}

// historyLimit bounds the history of a long interactive session
const historyLimit = 1000

// StateMachine drives a combat through its phases and publishes every move
type StateMachine struct {
	mu      sync.RWMutex
	phase   CombatPhase
	states  map[CombatPhase]State
	ctx     *CombatContext
	history []Transition
	bus     events.Publisher
}

// NewStateMachine starts in PhaseInitializing with the default states.
// bus may be nil.
func NewStateMachine(ctx *CombatContext, bus events.Publisher) *StateMachine {
	sm := &StateMachine{
		phase:  PhaseInitializing,
		states: make(map[CombatPhase]State),
		ctx:    ctx,
		bus:    bus,
	}
	for _, s := range defaultStates() {
		sm.states[s.Phase()] = s
	}
	return sm
}

// RegisterState replaces the implementation of a phase
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.states[state.Phase()] = state
}

func (sm *StateMachine) CurrentPhase() CombatPhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase
}

// CanTransitionTo reports whether the current phase may move to target
func (sm *StateMachine) CanTransitionTo(target CombatPhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase.CanTransitionTo(target)
}

// TransitionTo moves to target. The phase is unchanged when the move is
// not allowed, target's validation fails, or target's Enter fails.
func (sm *StateMachine) TransitionTo(target CombatPhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.move(target, reason)
}

func (sm *StateMachine) move(target CombatPhase, reason string) error {
	from := sm.phase
	if !from.CanTransitionTo(target) {
		return fmt.Errorf("invalid transition from %s to %s", from, target)
	}
	to, ok := sm.states[target]
	if !ok {
		return fmt.Errorf("no state implementation for phase %s", target)
	}
	if err := to.Validate(sm.ctx); err != nil {
		return fmt.Errorf("cannot enter %s: %w", target, err)
	}

	if cur, ok := sm.states[from]; ok {
		if err := cur.Exit(sm.ctx); err != nil {
			sm.ctx.Logger.Warn().Err(err).Stringer("from_phase", from).Msg("Exit hook failed")
		}
	}

	sm.phase = target
	if err := to.Enter(sm.ctx); err != nil {
		sm.phase = from
		return fmt.Errorf("failed to enter state %s: %w", target, err)
	}

	sm.history = append(sm.history, Transition{From: from, To: target, Timestamp: time.Now(), Reason: reason})
	if n := len(sm.history); n > historyLimit {
		sm.history = sm.history[n-historyLimit:]
	}

	if sm.bus != nil {
		sm.bus.Publish(events.NewStateTransitionEvent(sm.ctx.CombatID, from.String(), target.String(), reason))
	}
	sm.ctx.Logger.Debug().
		Stringer("from_phase", from).
		Stringer("to_phase", target).
		Str("reason", reason).
		Msg("Phase changed")
	return nil
}

// History returns a copy of the transitions since the last reset
func (sm *StateMachine) History() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return append([]Transition(nil), sm.history...)
}

// Context returns the shared combat context
func (sm *StateMachine) Context() *CombatContext {
	return sm.ctx
}

// Reset takes a terminal combat back to PhaseInitializing through
// PhaseReset and forgets its history
func (sm *StateMachine) Reset() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if err := sm.move(PhaseReset, "reset requested"); err != nil {
		return err
	}
	if err := sm.move(PhaseInitializing, "reset complete"); err != nil {
		return err
	}
	sm.history = nil
	return nil
}
