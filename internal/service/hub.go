package service

import (
	"sync"
)

// Hub fans out "thread changed" notifications to subscribers. Each
// subscriber channel has a buffer of one, so bursts of changes coalesce
// into a single pending notification and Publish never blocks.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe registers interest in threadID. The returned cancel function
// unregisters and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(threadID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[threadID] == nil {
		h.subs[threadID] = make(map[chan struct{}]struct{})
	}
	h.subs[threadID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[threadID], ch)
			if len(h.subs[threadID]) == 0 {
				delete(h.subs, threadID)
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Publish notifies every subscriber of threadID.
func (h *Hub) Publish(threadID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[threadID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions for threadID.
func (h *Hub) Subscribers(threadID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[threadID])
}
