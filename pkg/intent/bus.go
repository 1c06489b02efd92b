package intent

import "sync"

// subscriberBuffer is the channel capacity of each subscription. A
// subscriber that falls further behind loses intents.
const subscriberBuffer = 200

// subscription represents a single intent subscriber.
type subscription struct {
	ch chan Intent
}

// Bus is a Dispatcher that broadcasts every intent to its subscribers.
// Sends never block: a full subscriber channel drops the intent.
type Bus struct {
	mu sync.RWMutex

	subscribers []*subscription
	closed      bool
}

// NewBus creates an empty intent bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make([]*subscription, 0),
	}
}

// Subscribe returns a channel that receives every dispatched intent.
func (b *Bus) Subscribe() <-chan Intent {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Intent)
		close(ch)
		return ch
	}

	sub := &subscription{ch: make(chan Intent, subscriberBuffer)}
	b.subscribers = append(b.subscribers, sub)

	return sub.ch
}

// Unsubscribe closes and removes a subscription.
func (b *Bus) Unsubscribe(ch <-chan Intent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub.ch == ch {
			close(sub.ch)
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			break
		}
	}
}

// Dispatch sends in to every subscriber.
func (b *Bus) Dispatch(in Intent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, sub := range b.subscribers {
		select {
		case sub.ch <- in:
		default:
			// Channel buffer full, drop intent to keep the event handler moving
		}
	}
}

// Close closes the bus and all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	for _, sub := range b.subscribers {
		close(sub.ch)
	}
	b.subscribers = nil
}
