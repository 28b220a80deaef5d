package playground

import "sync"

// Signal is a minimal reactive value implementing attrs.ValueSource, enough
// to drive the dynamic scenarios without a real reactive runtime.
type Signal struct {
	mu     sync.RWMutex
	value  any
	subs   map[uint64]func()
	nextID uint64
}

// NewSignal creates a signal holding the initial value.
func NewSignal(value any) *Signal {
	return &Signal{
		value: value,
		subs:  make(map[uint64]func()),
	}
}

// Current returns the signal's current value.
func (s *Signal) Current() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// OnChange registers a change listener and returns its release.
func (s *Signal) OnChange(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Set updates the value and notifies subscribers. Copy-before-notify so no
// lock is held during callbacks.
func (s *Signal) Set(value any) {
	s.mu.Lock()
	s.value = value
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Subscribers returns the live listener count.
func (s *Signal) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
