package media

import "sync"

// Handlers is a registry of time-update handlers that Element implementations
// embed. Notify calls handlers in subscription order; a handler removed while
// a notification is in flight is not called for the rest of it.
type Handlers struct {
	mu     sync.Mutex
	nextID uint64
	items  []handlerEntry
}

type handlerEntry struct {
	id      uint64
	handler TimeUpdateHandler
}

// Add registers handler and returns its removal function.
func (h *Handlers) Add(handler TimeUpdateHandler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.items = append(h.items, handlerEntry{id: id, handler: handler})
	return func() { h.remove(id) }
}

// Len reports the number of registered handlers.
func (h *Handlers) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Notify delivers t to every registered handler.
func (h *Handlers) Notify(t float64) {
	h.mu.Lock()
	ids := make([]uint64, len(h.items))
	for i, item := range h.items {
		ids[i] = item.id
	}
	h.mu.Unlock()
	for _, id := range ids {
		if handler := h.lookup(id); handler != nil {
			handler(t)
		}
	}
}

func (h *Handlers) lookup(id uint64) TimeUpdateHandler {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, item := range h.items {
		if item.id == id {
			return item.handler
		}
	}
	return nil
}

func (h *Handlers) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, item := range h.items {
		if item.id == id {
			h.items = append(h.items[:i:i], h.items[i+1:]...)
			return
		}
	}
}
