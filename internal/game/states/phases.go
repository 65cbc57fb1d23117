package states

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// CombatPhase is a step in a combat's lifecycle
type CombatPhase int

const (
	PhaseInitializing CombatPhase = iota // grid loaded, engine being wired
	PhaseRunning                         // rounds are being resolved
	PhasePaused                          // stepping suspended by the viewer
	PhaseEnded                           // one faction was eliminated
	PhaseAborted                         // elf death in abort mode, round limit or cancellation
	PhaseError                           // an invariant was violated
	PhaseReset                           // clearing run data before a rerun
)

// ErrUnknownPhase is returned by ParsePhase for names it does not know
var ErrUnknownPhase = errors.New("unknown combat phase")

var phaseNames = [...]string{
	PhaseInitializing: "Initializing",
	PhaseRunning:      "Running",
	PhasePaused:       "Paused",
	PhaseEnded:        "Ended",
	PhaseAborted:      "Aborted",
	PhaseError:        "Error",
	PhaseReset:        "Reset",
}

// next lists the phases reachable from each phase
var next = map[CombatPhase]mapset.Set[CombatPhase]{
	PhaseInitializing: phaseSet(PhaseRunning, PhaseError),
	PhaseRunning:      phaseSet(PhasePaused, PhaseEnded, PhaseAborted, PhaseError),
	PhasePaused:       phaseSet(PhaseRunning, PhaseAborted, PhaseError),
	PhaseEnded:        phaseSet(PhaseReset),
	PhaseAborted:      phaseSet(PhaseReset),
	PhaseError:        phaseSet(PhaseReset),
	PhaseReset:        phaseSet(PhaseInitializing),
}

func phaseSet(phases ...CombatPhase) mapset.Set[CombatPhase] {
	s := mapset.New[CombatPhase]()
	for _, p := range phases {
		s.Put(p)
	}
	return s
}

func (p CombatPhase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Unknown(%d)", int(p))
}

// IsTerminal reports whether no further rounds can ever run in this phase
func (p CombatPhase) IsTerminal() bool {
	switch p {
	case PhaseEnded, PhaseAborted, PhaseError:
		return true
	}
	return false
}

// CanStep reports whether a round may be resolved in this phase
func (p CombatPhase) CanStep() bool { return p == PhaseRunning }

// CanTransitionTo reports whether target is reachable from p in one move
func (p CombatPhase) CanTransitionTo(target CombatPhase) bool {
	allowed, ok := next[p]
	return ok && allowed.Has(target)
}

// AllowedTransitions returns the phases reachable from p, in declaration order
func (p CombatPhase) AllowedTransitions() []CombatPhase {
	var out []CombatPhase
	for i := range phaseNames {
		if q := CombatPhase(i); p.CanTransitionTo(q) {
			out = append(out, q)
		}
	}
	return out
}

// ParsePhase converts a phase name back to its CombatPhase
func ParsePhase(s string) (CombatPhase, error) {
	for i, name := range phaseNames {
		if name == s {
			return CombatPhase(i), nil
		}
	}
	return PhaseInitializing, fmt.Errorf("%w: %q", ErrUnknownPhase, s)
}
