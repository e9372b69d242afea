package playback

import (
	"fmt"
	"sync"
	"time"

	"neurondemo/internal/log"
)

// EventType identifies what changed in the scheduler
type EventType int

const (
	EventStatusChanged EventType = iota + 1
	EventCommandTyped
	EventHistoryAppended
	EventOutputRevealed
	EventHistoryCleared
)

func (t EventType) String() string {
	switch t {
	case EventStatusChanged:
		return "status_changed"
	case EventCommandTyped:
		return "command_typed"
	case EventHistoryAppended:
		return "history_appended"
	case EventOutputRevealed:
		return "output_revealed"
	case EventHistoryCleared:
		return "history_cleared"
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// Event is delivered to subscribers after every scheduler mutation
type Event struct {
	Type      EventType
	Snapshot  Snapshot
	Index     int          // history index for appended/revealed events
	Entry     HistoryEntry // history entry for appended/revealed events
	Timestamp int64
}

// EventHandler receives events. Handlers run synchronously while the
// scheduler is locked and must not call back into the Scheduler.
type EventHandler func(Event)

// allEvents is the subscription key for handlers that want every event
const allEvents EventType = 0

// EventBus fans scheduler events out to the UI and other sinks
type EventBus struct {
	subscribers map[EventType]map[string]EventHandler
	mutex       sync.RWMutex
	nextID      int
}

// NewEventBus creates a new event bus instance
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[EventType]map[string]EventHandler),
		nextID:      1,
	}
}

// Subscribe registers an event handler for a specific event type
func (eb *EventBus) Subscribe(eventType EventType, handler EventHandler) string {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	subscriptionID := fmt.Sprintf("sub_%d", eb.nextID)
	eb.nextID++

	if eb.subscribers[eventType] == nil {
		eb.subscribers[eventType] = make(map[string]EventHandler)
	}
	eb.subscribers[eventType][subscriptionID] = handler

	return subscriptionID
}

// SubscribeAll registers a handler for every event type
func (eb *EventBus) SubscribeAll(handler EventHandler) string {
	return eb.Subscribe(allEvents, handler)
}

// Unsubscribe removes an event handler
func (eb *EventBus) Unsubscribe(subscriptionID string) {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	for eventType, handlers := range eb.subscribers {
		if _, ok := handlers[subscriptionID]; !ok {
			continue
		}
		delete(handlers, subscriptionID)
		if len(handlers) == 0 {
			delete(eb.subscribers, eventType)
		}
		return
	}
}

// Fire synchronously delivers an event to all subscribers
func (eb *EventBus) Fire(event Event) {
	eb.mutex.RLock()
	handlers := make([]EventHandler, 0, len(eb.subscribers[event.Type])+len(eb.subscribers[allEvents]))
	for _, h := range eb.subscribers[event.Type] {
		handlers = append(handlers, h)
	}
	for _, h := range eb.subscribers[allEvents] {
		handlers = append(handlers, h)
	}
	eb.mutex.RUnlock()

	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixNano()
	}

	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error("event handler panicked", "event", event.Type.String(), "panic", r)
				}
			}()
			handler(event)
		}()
	}
}

// GetSubscriberCount returns the number of subscribers for an event type
func (eb *EventBus) GetSubscriberCount(eventType EventType) int {
	eb.mutex.RLock()
	defer eb.mutex.RUnlock()

	return len(eb.subscribers[eventType])
}

// Clear removes all subscribers
func (eb *EventBus) Clear() {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	eb.subscribers = make(map[EventType]map[string]EventHandler)
}
