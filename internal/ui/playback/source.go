// Package playback feeds the viewer one round at a time, either from a live
// engine or from a recorded replay.
package playback

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/states"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/replay"
)

// Snapshot is one drawable moment of a combat
type Snapshot struct {
	Round  int // full rounds completed
	Grid   *core.Grid
	Status string
	Over   bool
}

// Source produces snapshots for the viewer
type Source interface {
	Current() Snapshot
	// Advance moves forward by one round. It is a no-op once Over is set.
	Advance(ctx context.Context) error
	// Rewind returns to the state before the first round
	Rewind(ctx context.Context) error
}

// Pauser is implemented by sources whose lifecycle records pauses
type Pauser interface {
	SetPaused(paused bool) error
}

// EngineFactory builds a fresh engine for a live source
type EngineFactory func(ctx context.Context) (*game.Engine, error)

// EngineSource steps a live engine
type EngineSource struct {
	start  EngineFactory
	engine *game.Engine
}

// NewEngineSource starts the first engine from start
func NewEngineSource(ctx context.Context, start EngineFactory) (*EngineSource, error) {
	s := &EngineSource{start: start}
	if err := s.Rewind(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *EngineSource) Current() Snapshot {
	e := s.engine
	snap := Snapshot{
		Round:  e.Round(),
		Grid:   e.Grid(),
		Status: e.Phase().String(),
		Over:   e.IsOver(),
	}
	if o, ok := e.Outcome(); ok {
		snap.Status = o.String()
	}
	return snap
}

// Advance steps one round. A paused engine is resumed for that round
// and paused again afterwards unless the combat ended.
func (s *EngineSource) Advance(ctx context.Context) error {
	e := s.engine
	if e.IsOver() {
		return nil
	}
	paused := e.Phase() == states.PhasePaused
	if paused {
		if err := e.Resume("single step"); err != nil {
			return err
		}
	}
	_, err := e.Step(ctx)
	if errors.Is(err, core.ErrCombatOver) {
		err = nil
	}
	if paused && !e.IsOver() {
		if pErr := e.Pause("single step"); pErr != nil && err == nil {
			err = pErr
		}
	}
	return err
}

// SetPaused moves the engine between Running and Paused. It does nothing
// once the combat is over or when already in the requested phase.
func (s *EngineSource) SetPaused(paused bool) error {
	e := s.engine
	switch phase := e.Phase(); {
	case phase.IsTerminal():
		return nil
	case paused && phase == states.PhaseRunning:
		return e.Pause("viewer paused")
	case !paused && phase == states.PhasePaused:
		return e.Resume("viewer resumed")
	}
	return nil
}

func (s *EngineSource) Rewind(ctx context.Context) error {
	engine, err := s.start(ctx)
	if err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	s.engine = engine
	return nil
}

// Engine returns the engine currently being stepped
func (s *EngineSource) Engine() *game.Engine { return s.engine }

// ReplaySource walks the frames of a recorded combat
type ReplaySource struct {
	frames []Snapshot
	pos    int
}

// NewReplaySource parses every frame of r up front
func NewReplaySource(r *replay.Replay) (*ReplaySource, error) {
	opts := mapgen.DefaultParseOptions()

	initial, err := mapgen.Parse(r.Header.Board, opts)
	if err != nil {
		return nil, fmt.Errorf("replay header board: %w", err)
	}
	frames := make([]Snapshot, 0, len(r.Frames)+1)
	frames = append(frames, Snapshot{Grid: initial, Status: "Round 0"})

	for _, f := range r.Frames {
		g, err := mapgen.Parse(f.Board, opts)
		if err != nil {
			return nil, fmt.Errorf("replay round %d: %w", f.Round, err)
		}
		completed := f.Round
		if !f.Complete {
			completed--
		}
		frames = append(frames, Snapshot{
			Round:  completed,
			Grid:   g,
			Status: fmt.Sprintf("Round %d, %d hp left", f.Round, f.TotalHP),
		})
	}

	if t := r.Trailer; t != nil {
		last := &frames[len(frames)-1]
		last.Over = true
		last.Status = fmt.Sprintf("%s win after %d rounds with %d hp (score %d)",
			t.Winner, t.CompletedRounds, t.TotalHP, t.Score)
		if t.Aborted {
			last.Status += ", aborted"
		}
	}
	return &ReplaySource{frames: frames}, nil
}

func (s *ReplaySource) Current() Snapshot {
	snap := s.frames[s.pos]
	snap.Grid = snap.Grid.Clone()
	return snap
}

func (s *ReplaySource) Advance(context.Context) error {
	if s.pos < len(s.frames)-1 {
		s.pos++
	}
	return nil
}

func (s *ReplaySource) Rewind(context.Context) error {
	s.pos = 0
	return nil
}

// Len is the number of snapshots including the starting grid
func (s *ReplaySource) Len() int { return len(s.frames) }
