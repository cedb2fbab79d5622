package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Turn events
	EventTurnStarted EventType = "TURN_STARTED"
	EventTurnEnded   EventType = "TURN_ENDED"

	// Card events
	EventCardDrawn  EventType = "CARD_DRAWN"
	EventCardPlayed EventType = "CARD_PLAYED"

	// Minion events
	EventMinionSummoned EventType = "MINION_SUMMONED"
	EventMinionMoved    EventType = "MINION_MOVED"
	EventMinionDamaged  EventType = "MINION_DAMAGED"
	EventMinionHealed   EventType = "MINION_HEALED"
	EventMinionBuffed   EventType = "MINION_BUFFED"
	EventMinionDied     EventType = "MINION_DIED"

	// Weapon events
	EventWeaponEquipped EventType = "WEAPON_EQUIPPED"
	EventWeaponBroken   EventType = "WEAPON_BROKEN"

	// Tower events
	EventTowerDamaged   EventType = "TOWER_DAMAGED"
	EventTowerDestroyed EventType = "TOWER_DESTROYED"

	// Game events
	EventGameStarted EventType = "GAME_STARTED"
	EventGameEnded   EventType = "GAME_ENDED"
)

// Event represents a state change that other subsystems may react to.
// Events are a side-channel for observation; the rules core never depends
// on a listener being attached.
type Event struct {
	Type        EventType
	GameID      string
	PlayerID    string // player the event belongs to (owner of the card/minion/tower)
	TargetID    string // ID of the affected object (minion, tower, card name)
	SourceID    string // ID of the object that caused the change, if any
	Amount      int    // numeric value (damage, healing, attack bonus, mana)
	OldValue    int    // value before the change (health, durability)
	NewValue    int    // value after the change
	X, Y        int    // board cell the event relates to, if positional
	FromX       int    // origin cell for movement events
	FromY       int
	Winner      string // winning player for EventGameEnded; empty on a draw
	Description string
	Timestamp   time.Time
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with
// type filtering. Listeners run on the publishing goroutine in publish order.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	listener := TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	}
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], listener)
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}

	if typedListeners, ok := bus.typedListeners[event.Type]; ok {
		for _, listener := range typedListeners {
			listener.Callback(event)
		}
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, gameID, playerID, targetID string) Event {
	return Event{
		Type:      eventType,
		GameID:    gameID,
		PlayerID:  playerID,
		TargetID:  targetID,
		Timestamp: time.Now(),
	}
}
