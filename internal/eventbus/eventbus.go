package eventbus

import "sync"

// Event is any notification published during a planning pass.
type Event interface{}

// EventBus decouples the planner from its progress consumers.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// defaultBuffer is how far a subscriber may lag before publishes to it
// are dropped.
const defaultBuffer = 16

// Bus fans published events out to every subscriber channel.
type Bus struct {
	mu     sync.RWMutex
	buffer int
	subs   map[chan Event]struct{}
	closed bool
}

// New creates a bus with the default subscriber buffer.
func New() *Bus { return NewBuffered(defaultBuffer) }

// NewBuffered creates a bus whose subscriber channels hold up to n
// pending events.
func NewBuffered(n int) *Bus {
	if n < 1 {
		n = 1
	}
	return &Bus{buffer: n, subs: make(map[chan Event]struct{})}
}

// Publish delivers e to every subscriber with buffer room. Delivery
// never blocks; a lagging subscriber loses events rather than stalling
// the planning pass.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a new subscriber channel. On a closed bus the
// returned channel is already closed.
func (b *Bus) Subscribe() <-chan Event {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes the subscriber and closes its channel. Unknown
// channels are ignored.
func (b *Bus) Unsubscribe(sub <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		if ch == sub {
			delete(b.subs, ch)
			close(ch)
			return
		}
	}
}

// Close closes every subscriber channel. Further publishes are dropped
// and later subscriptions come back closed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
