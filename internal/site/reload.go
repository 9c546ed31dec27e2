package site

import "sync"

// reloads fans rebuild notifications out to connected browsers.
// A subscriber that has not consumed the previous ping misses nothing: one
// pending ping is enough to trigger its reload.
type reloads struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newReloads() *reloads {
	return &reloads{subs: make(map[chan struct{}]struct{})}
}

// subscribe registers a listener. The returned func unregisters it and must
// be called exactly once.
func (r *reloads) subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()

	return ch, func() {
		r.mu.Lock()
		delete(r.subs, ch)
		r.mu.Unlock()
	}
}

func (r *reloads) broadcast() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ch := range r.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (r *reloads) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
