// Package signal provides one-shot scope-end notification. A Signal models
// an externally-owned lifetime boundary: handlers registered with OnEnd run
// at most once, when the scope ends, and pending background work bound to
// the scope uses that to cancel itself.
package signal

import "sync"

// Signal is a one-shot scope-end notifier.
type Signal struct {
	mu       sync.Mutex
	ended    bool
	handlers []func()
}

// New returns a signal for a scope that has not ended yet.
func New() *Signal { return &Signal{} }

// OnEnd registers handler to run at most once, when End fires. If the scope
// already ended, handler runs immediately on the calling goroutine.
func (s *Signal) OnEnd(handler func()) {
	if handler == nil {
		return
	}
	s.mu.Lock()
	if !s.ended {
		s.handlers = append(s.handlers, handler)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	handler()
}

// End marks the scope as ended and runs the registered handlers in
// registration order on the calling goroutine. Subsequent calls are no-ops.
func (s *Signal) End() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	handlers := s.handlers
	s.handlers = nil
	s.mu.Unlock()

	for _, h := range handlers {
		h()
	}
}

// Ended reports whether the scope has ended.
func (s *Signal) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// Child returns a signal that ends when s ends. Ending the child early does
// not affect the parent.
func (s *Signal) Child() *Signal {
	c := New()
	s.OnEnd(c.End)
	return c
}
