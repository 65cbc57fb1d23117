package events

import (
	"time"
)

// Event is anything published on the bus during a combat
type Event interface {
	Type() string
	Timestamp() time.Time
	CombatID() string
}

// BaseEvent carries the fields every event shares
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Combat    string    `json:"combat_id"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) CombatID() string     { return e.Combat }

func newBase(eventType, combatID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Combat:    combatID,
	}
}

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscriber receives the event types it declares interest in
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// EventMetadata holds the round an event belongs to; 1-based
type EventMetadata struct {
	Round int `json:"round,omitempty"`
}

// Publisher is the narrow view of the bus that the state machine needs
type Publisher interface {
	Publish(Event)
}

// Bus is the full event bus
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(id string)
	SubscribeFunc(eventType string, handler EventHandler) string
}

// RoundOf returns the round number carried by a round or unit event
func RoundOf(e Event) (int, bool) {
	switch ev := e.(type) {
	case *RoundStartedEvent:
		return ev.Metadata.Round, true
	case *RoundEndedEvent:
		return ev.Metadata.Round, true
	case *UnitMovedEvent:
		return ev.Metadata.Round, true
	case *UnitAttackedEvent:
		return ev.Metadata.Round, true
	case *UnitKilledEvent:
		return ev.Metadata.Round, true
	default:
		return 0, false
	}
}

// TypeSet builds an InterestedIn predicate for a fixed list of event types
func TypeSet(types ...string) func(string) bool {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(eventType string) bool {
		_, ok := set[eventType]
		return ok
	}
}

var _ Bus = (*EventBus)(nil)
