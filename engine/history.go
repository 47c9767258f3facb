package engine

import (
	"sync"

	"github.com/aaeabdo/sloburn/model"
)

// History is a bounded ring buffer of classified events. When full, each
// append silently evicts the oldest event. Events are expected in rough
// timestamp order; the window scanners filter by timestamp, so modest
// reordering inside a batch is harmless.
type History struct {
	buf  []model.Event
	head int
	size int
	cap  int
	mu   sync.RWMutex
}

// NewHistory creates a ring buffer with the given capacity.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		buf: make([]model.Event, capacity),
		cap: capacity,
	}
}

// Push adds an event to the ring buffer, evicting the oldest at capacity.
func (h *History) Push(e model.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.head] = e
	h.head = (h.head + 1) % h.cap
	if h.size < h.cap {
		h.size++
	}
}

// Len returns the number of events stored.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Cap returns the fixed capacity of the buffer.
func (h *History) Cap() int {
	return h.cap
}

// Snapshot returns a copy of all stored events, oldest first. Callers
// may scan or mutate the copy freely.
func (h *History) Snapshot() []model.Event {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]model.Event, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(h.head-h.size+i+h.cap)%h.cap]
	}
	return out
}

// Recent returns up to n of the newest events, newest first.
func (h *History) Recent(n int) []model.Event {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n > h.size {
		n = h.size
	}
	if n <= 0 {
		return nil
	}
	out := make([]model.Event, n)
	for i := 0; i < n; i++ {
		out[i] = h.buf[(h.head-1-i+h.cap*2)%h.cap]
	}
	return out
}
