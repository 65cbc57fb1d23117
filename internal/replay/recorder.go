// Package replay records combats round by round and stores them as JSON
// lines so the viewer can play them back.
package replay

import (
	"sync"
	"time"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events"
)

// Header describes the combat as it started
type Header struct {
	CombatID       string
	Width          int
	Height         int
	ElfAttackBonus int
	Mode           string
	StartedAt      time.Time
	Board          string
}

// Frame is the grid after one round
type Frame struct {
	Round    int
	Complete bool
	Board    string
	Units    []core.Unit
	TotalHP  int
}

// Trailer holds the combat outcome
type Trailer struct {
	Winner          string
	CompletedRounds int
	TotalHP         int
	Score           int
	ElfDied         bool
	Aborted         bool
	Duration        time.Duration
}

// Replay is a full combat recording
type Replay struct {
	Header  Header
	Frames  []Frame
	Trailer *Trailer
}

// Finished reports whether the recording reached the end of the combat
func (r *Replay) Finished() bool { return r.Trailer != nil }

// Recorder is an event subscriber that builds a Replay
type Recorder struct {
	id string

	mu     sync.Mutex
	replay Replay
}

// NewRecorder creates a new recorder
func NewRecorder(id string) *Recorder {
	return &Recorder{id: id}
}

func (r *Recorder) ID() string { return r.id }

func (r *Recorder) InterestedIn(eventType string) bool {
	return recorded(eventType)
}

var recorded = events.TypeSet(events.TypeCombatStarted, events.TypeRoundEnded, events.TypeCombatEnded)

func (r *Recorder) HandleEvent(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case *events.CombatStartedEvent:
		r.replay = Replay{Header: Header{
			CombatID:       e.CombatID(),
			Width:          e.Width,
			Height:         e.Height,
			ElfAttackBonus: e.ElfAttackBonus,
			Mode:           e.Mode,
			StartedAt:      e.Timestamp(),
			Board:          e.Board,
		}}
	case *events.RoundEndedEvent:
		units := make([]core.Unit, len(e.Units))
		copy(units, e.Units)
		r.replay.Frames = append(r.replay.Frames, Frame{
			Round:    e.Metadata.Round,
			Complete: e.Complete,
			Board:    e.Board,
			Units:    units,
			TotalHP:  e.TotalHP,
		})
	case *events.CombatEndedEvent:
		r.replay.Trailer = &Trailer{
			Winner:          e.Winner,
			CompletedRounds: e.CompletedRounds,
			TotalHP:         e.TotalHP,
			Score:           e.Score,
			ElfDied:         e.ElfDied,
			Aborted:         e.Aborted,
			Duration:        e.Duration,
		}
	}
}

// Replay returns a copy of what has been recorded so far
func (r *Recorder) Replay() *Replay {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.replay
	out.Frames = make([]Frame, len(r.replay.Frames))
	copy(out.Frames, r.replay.Frames)
	if r.replay.Trailer != nil {
		t := *r.replay.Trailer
		out.Trailer = &t
	}
	return &out
}
