// Package pubsub notifies in-process listeners when tables change and turns
// queries into live subscriptions that re-run on every committed change.
package pubsub

import "sync"

type listener struct {
	notify chan struct{}
}

type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*listener]struct{}
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*listener]struct{})}
}

// Publish wakes every listener of the given tables. It never blocks: a listener
// that already has a wake-up pending keeps just the one.
func (h *Hub) Publish(tables ...string) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	woken := make(map[*listener]struct{})
	for _, table := range tables {
		for l := range h.topics[table] {
			if _, done := woken[l]; done {
				continue
			}
			woken[l] = struct{}{}
			select {
			case l.notify <- struct{}{}:
			default:
			}
		}
	}
}

func (h *Hub) listen(tables []string) (*listener, func()) {
	l := &listener{notify: make(chan struct{}, 1)}

	h.mu.Lock()
	for _, table := range tables {
		if h.topics[table] == nil {
			h.topics[table] = make(map[*listener]struct{})
		}
		h.topics[table][l] = struct{}{}
	}
	h.mu.Unlock()

	return l, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for _, table := range tables {
			delete(h.topics[table], l)
			if len(h.topics[table]) == 0 {
				delete(h.topics, table)
			}
		}
	}
}

// Listeners reports how many subscriptions watch table.
func (h *Hub) Listeners(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[table])
}
