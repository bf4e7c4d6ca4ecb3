package state

import "sync"

// PointerHub fans pointer-down events out to subscribers. The board publishes
// every press it sees; popovers subscribe while they are mounted.
type PointerHub struct {
	mu   sync.Mutex
	next uint64
	subs map[uint64]func(Point)
}

func NewPointerHub() *PointerHub {
	return &PointerHub{subs: make(map[uint64]func(Point))}
}

// Subscription is a registered listener. Close is safe to call more than once.
type Subscription struct {
	hub  *PointerHub
	id   uint64
	once sync.Once
}

// Subscribe registers fn for every subsequent pointer-down.
func (h *PointerHub) Subscribe(fn func(Point)) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.subs[h.next] = fn
	return &Subscription{hub: h, id: h.next}
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		delete(s.hub.subs, s.id)
	})
}

// PointerDown delivers p to all current subscribers. Listeners run outside the
// lock so they may unsubscribe themselves.
func (h *PointerHub) PointerDown(p Point) {
	h.mu.Lock()
	fns := make([]func(Point), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}

// Len reports the number of live subscriptions.
func (h *PointerHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
