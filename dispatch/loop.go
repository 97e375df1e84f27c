package dispatch

import (
	"sync"

	"github.com/eapache/queue"
)

// Loop is a serial dispatcher: every dispatched function runs on the same
// single goroutine, in dispatch order. Dispatch never blocks; pending
// functions queue without bound.
type Loop struct {
	mu     sync.Mutex
	q      *queue.Queue
	closed bool

	wake chan struct{}
	done chan struct{}
}

// NewLoop starts the delivery goroutine. Callers must Close the loop when
// done with it.
func NewLoop() *Loop {
	l := &Loop{
		q:    queue.New(),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

// Dispatch enqueues fn for the delivery goroutine. Functions dispatched
// after Close are dropped.
func (l *Loop) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.q.Add(fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Close drains already-dispatched functions, stops the delivery goroutine
// and waits for it to exit. Idempotent.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	<-l.done
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		if l.q.Length() == 0 {
			if l.closed {
				l.mu.Unlock()
				return
			}
			l.mu.Unlock()
			<-l.wake
			continue
		}
		fn := l.q.Remove().(func())
		l.mu.Unlock()
		fn()
	}
}
