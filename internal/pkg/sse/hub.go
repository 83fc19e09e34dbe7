package sse

import (
	"sync"
)

// Event is one server-sent event addressed to an account.
type Event struct {
	AccountID string
	Name      string
	Data      interface{}
}

const subscriberBuffer = 10

// Hub fans events out to the live streams of each account. Publishing never
// blocks; a subscriber whose buffer is full misses the event.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for accountID. The returned func unregisters
// it and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(accountID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	if h.subscribers[accountID] == nil {
		h.subscribers[accountID] = make(map[chan Event]struct{})
	}
	h.subscribers[accountID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[accountID][ch]; !ok {
			return
		}
		delete(h.subscribers[accountID], ch)
		close(ch)
		if len(h.subscribers[accountID]) == 0 {
			delete(h.subscribers, accountID)
		}
	}

	return ch, cleanup
}

func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[event.AccountID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close ends every live stream. Later subscriptions get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for accountID, subs := range h.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(h.subscribers, accountID)
	}
}

// SubscriberCount returns the number of live streams for an account.
func (h *Hub) SubscriberCount(accountID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[accountID])
}
