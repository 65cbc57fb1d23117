package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AllEvents registers a function handler for every event type
const AllEvents = "*"

type funcHandler struct {
	id        string
	eventType string
	fn        EventHandler
}

// EventBus delivers events on the publisher's goroutine. Subscribers are
// called in subscription order, then function handlers in the order they
// were added. Handlers may publish or subscribe while being called; those
// changes apply from the next Publish. A panicking handler is logged and
// skipped.
type EventBus struct {
	mu          sync.Mutex
	subscribers []Subscriber
	handlers    []funcHandler
	nextHandler int
	published   map[string]int
	logger      zerolog.Logger
}

// NewEventBus creates a bus that logs to the global logger
func NewEventBus() *EventBus {
	return NewEventBusWithLogger(log.Logger)
}

// NewEventBusWithLogger creates a bus that logs to logger
func NewEventBusWithLogger(logger zerolog.Logger) *EventBus {
	return &EventBus{
		published: make(map[string]int),
		logger:    logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a subscriber. A subscriber with the same ID is replaced in
// place and keeps its position.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	id := subscriber.ID()
	for i, s := range eb.subscribers {
		if s.ID() == id {
			eb.subscribers[i] = subscriber
			eb.logger.Debug().Str("subscriber_id", id).Msg("Subscriber replaced")
			return
		}
	}
	eb.subscribers = append(eb.subscribers, subscriber)
	eb.logger.Debug().Str("subscriber_id", id).Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber or function handler by ID
func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, s := range eb.subscribers {
		if s.ID() == id {
			eb.subscribers = append(eb.subscribers[:i:i], eb.subscribers[i+1:]...)
			eb.logger.Debug().Str("subscriber_id", id).Msg("Subscriber removed from event bus")
			return
		}
	}
	for i, h := range eb.handlers {
		if h.id == id {
			eb.handlers = append(eb.handlers[:i:i], eb.handlers[i+1:]...)
			eb.logger.Debug().Str("handler_id", id).Msg("Function handler removed from event bus")
			return
		}
	}
}

// SubscribeFunc adds a handler for one event type, or AllEvents, and
// returns an ID that Unsubscribe accepts
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextHandler++
	id := fmt.Sprintf("%s#%d", eventType, eb.nextHandler)
	eb.handlers = append(eb.handlers, funcHandler{id: id, eventType: eventType, fn: handler})
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", id).
		Msg("Function handler added to event bus")
	return id
}

// Publish sends event to every interested subscriber and matching handler
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.Lock()
	eb.published[eventType]++
	subs := make([]Subscriber, 0, len(eb.subscribers))
	for _, s := range eb.subscribers {
		if s.InterestedIn(eventType) {
			subs = append(subs, s)
		}
	}
	handlers := make([]funcHandler, 0, len(eb.handlers))
	for _, h := range eb.handlers {
		if h.eventType == eventType || h.eventType == AllEvents {
			handlers = append(handlers, h)
		}
	}
	eb.mu.Unlock()

	eb.logger.Trace().
		Str("event_type", eventType).
		Str("combat_id", event.CombatID()).
		Int("receivers", len(subs)+len(handlers)).
		Msg("Publishing event")

	for _, s := range subs {
		eb.deliver(s.ID(), event, s.HandleEvent, "Subscriber panicked while handling event")
	}
	for _, h := range handlers {
		eb.deliver(h.id, event, h.fn, "Function handler panicked while handling event")
	}
}

func (eb *EventBus) deliver(id string, event Event, fn EventHandler, panicMsg string) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("receiver_id", id).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg(panicMsg)
		}
	}()
	fn(event)
}

// SubscriberCount returns the number of subscribers
func (eb *EventBus) SubscriberCount() int {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	return len(eb.subscribers)
}

// HandlerCount returns the number of function handlers registered for
// eventType, not counting AllEvents handlers
func (eb *EventBus) HandlerCount(eventType string) int {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	n := 0
	for _, h := range eb.handlers {
		if h.eventType == eventType {
			n++
		}
	}
	return n
}

// Published returns how many events of eventType have been published
func (eb *EventBus) Published(eventType string) int {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	return eb.published[eventType]
}
