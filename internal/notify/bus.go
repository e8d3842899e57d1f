// Package notify decouples business logic from toast rendering. Producers
// (session manager, views) push events into a Bus; the presentation layer
// drains them and decides how long each one stays on screen.
package notify

import "sync"

// Kind classifies an event for rendering.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
	KindInfo
)

// Event is one user-visible notification.
type Event struct {
	Kind    Kind
	Message string
}

// Bus is a bounded in-process event sink. Publishing never blocks: when the
// buffer is full the oldest event is dropped, since a stale toast is worth
// less than a fresh one.
type Bus struct {
	mu     sync.Mutex
	events []Event
	limit  int
}

// NewBus creates a bus holding at most limit pending events.
func NewBus(limit int) *Bus {
	if limit <= 0 {
		limit = 16
	}
	return &Bus{limit: limit}
}

// Publish enqueues an event.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) >= b.limit {
		b.events = b.events[1:]
	}
	b.events = append(b.events, e)
}

// Success publishes a success event.
func (b *Bus) Success(message string) { b.Publish(Event{Kind: KindSuccess, Message: message}) }

// Error publishes an error event.
func (b *Bus) Error(message string) { b.Publish(Event{Kind: KindError, Message: message}) }

// Info publishes an informational event.
func (b *Bus) Info(message string) { b.Publish(Event{Kind: KindInfo, Message: message}) }

// Drain returns all pending events and clears the queue.
func (b *Bus) Drain() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.events
	b.events = nil
	return out
}
