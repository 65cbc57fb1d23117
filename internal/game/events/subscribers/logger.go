package subscribers

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events"
)

// LoggerSubscriber writes one structured log line per combat event
type LoggerSubscriber struct {
	id      string
	logger  zerolog.Logger
	level   zerolog.Level
	accepts func(string) bool // nil accepts everything
	devMode bool
}

// NewLoggerSubscriber logs at level; NoLevel and TraceLevel log at info
func NewLoggerSubscriber(id string, logger zerolog.Logger, level zerolog.Level) *LoggerSubscriber {
	if level == zerolog.NoLevel || level == zerolog.TraceLevel {
		level = zerolog.InfoLevel
	}
	return &LoggerSubscriber{
		id:     id,
		logger: logger.With().Str("subscriber", "event_logger").Logger(),
		level:  level,
	}
}

func (ls *LoggerSubscriber) ID() string { return ls.id }

// SetEventFilter restricts logging to the given types; empty logs all
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.accepts = nil
		return
	}
	ls.accepts = events.TypeSet(eventTypes...)
}

// SetDevMode embeds the whole event as JSON in every line
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	return ls.accepts == nil || ls.accepts(eventType)
}

func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	line := ls.logger.WithLevel(ls.level).
		Str("event_type", event.Type()).
		Str("combat_id", event.CombatID()).
		Time("timestamp", event.Timestamp())

	if round, ok := events.RoundOf(event); ok {
		line.Int("round", round)
	}
	describe(line, event)

	if ls.devMode {
		line.Interface("event_data", event)
	}
	line.Msg("Combat event")
}

// describe adds the fields specific to each event type
func describe(line *zerolog.Event, event events.Event) {
	switch e := event.(type) {
	case *events.CombatStartedEvent:
		line.Int("width", e.Width).
			Int("height", e.Height).
			Int("goblins", e.Goblins).
			Int("elves", e.Elves).
			Int("elf_attack_bonus", e.ElfAttackBonus).
			Str("mode", e.Mode)
	case *events.CombatEndedEvent:
		line.Str("winner", e.Winner).
			Int("completed_rounds", e.CompletedRounds).
			Int("total_hp", e.TotalHP).
			Int("score", e.Score).
			Bool("elf_died", e.ElfDied).
			Bool("aborted", e.Aborted).
			Dur("duration", e.Duration)
	case *events.RoundStartedEvent:
		line.Int("units", e.Units)
	case *events.RoundEndedEvent:
		line.Bool("complete", e.Complete).
			Int("units", len(e.Units)).
			Int("total_hp", e.TotalHP)
	case *events.UnitMovedEvent:
		line.Stringer("faction", e.Faction).
			Int("from_x", e.From.X).
			Int("from_y", e.From.Y).
			Int("to_x", e.To.X).
			Int("to_y", e.To.Y).
			Stringer("direction", e.Direction)
	case *events.UnitAttackedEvent:
		line.Stringer("attacker", e.Attacker.Faction).
			Stringer("attacker_pos", e.Attacker.Pos).
			Stringer("target_pos", e.Target.Pos).
			Int("damage", e.Damage).
			Int("target_hp", e.Target.HP).
			Bool("killed", e.Killed)
	case *events.UnitKilledEvent:
		line.Stringer("victim", e.Victim.Faction).
			Stringer("victim_pos", e.Victim.Pos).
			Stringer("killed_by", e.KilledBy.Pos).
			Int("remaining", e.Remaining)
	case *events.StateTransitionEvent:
		line.Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)
	}
}
