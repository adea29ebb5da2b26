package events

import (
	"sync"
)

const wildcard Kind = "*"

// HubOption customizes Hub construction.
type HubOption func(*Hub)

// HubWithLogger injects a logger for diagnostic messages.
func HubWithLogger(logger Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

// Hub delivers events to handlers registered per kind. Delivery is
// synchronous and follows registration order: kind-specific handlers first,
// then handlers registered with SubscribeAll.
type Hub struct {
	mu          sync.RWMutex
	nextID      uint64
	subscribers map[Kind][]*subscriber
	logger      Logger
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Subscription represents an active registration.
type Subscription struct {
	cancel func()
}

// Close removes the handler. It is safe to call more than once.
func (s Subscription) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// NewHub constructs an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{subscribers: map[Kind][]*subscriber{}}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Subscribe registers handler for events of the given kind.
func (h *Hub) Subscribe(kind Kind, handler Handler) Subscription {
	if handler == nil {
		return Subscription{}
	}
	h.mu.Lock()
	h.nextID++
	sub := &subscriber{id: h.nextID, handler: handler}
	h.subscribers[kind] = append(h.subscribers[kind], sub)
	h.mu.Unlock()
	var once sync.Once
	return Subscription{cancel: func() {
		once.Do(func() { h.remove(kind, sub.id) })
	}}
}

// SubscribeAll registers handler for every kind.
func (h *Hub) SubscribeAll(handler Handler) Subscription {
	return h.Subscribe(wildcard, handler)
}

// Emit delivers event to the current subscribers. Handlers added or removed
// while an event is being delivered take effect from the next Emit.
func (h *Hub) Emit(event Event) {
	h.mu.RLock()
	subs := h.snapshot(event.Kind)
	h.mu.RUnlock()
	if len(subs) == 0 {
		if h.logger != nil {
			h.logger.Printf("events: %s had no subscribers", event.Kind)
		}
		return
	}
	for _, sub := range subs {
		sub.handler(event)
	}
}

// Len reports how many handlers would receive an event of the given kind.
func (h *Hub) Len(kind Kind) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[kind]) + len(h.subscribers[wildcard])
}

func (h *Hub) snapshot(kind Kind) []*subscriber {
	specific := h.subscribers[kind]
	all := h.subscribers[wildcard]
	if kind == wildcard {
		all = nil
	}
	items := make([]*subscriber, 0, len(specific)+len(all))
	items = append(items, specific...)
	items = append(items, all...)
	return items
}

func (h *Hub) remove(kind Kind, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subscribers[kind]
	for i, sub := range subs {
		if sub.id != id {
			continue
		}
		next := make([]*subscriber, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(h.subscribers, kind)
		} else {
			h.subscribers[kind] = next
		}
		return
	}
}
