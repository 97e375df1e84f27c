package deferred

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NetPo4ki/go-deferred/dispatch"
)

// ErrCallbackRegistered is returned by Then or Catch when a callback of the
// same kind was already registered on the handle.
var ErrCallbackRegistered = errors.New("deferred: callback already registered")

// task is the single shared mutable record behind a Handle. state, the
// outcome and the registered callbacks are only touched with mu held, so the
// race between a finishing worker and a concurrent Cancel resolves in mutex
// acquisition order: whichever records its terminal state first wins.
type task[T any] struct {
	mu       sync.Mutex
	state    State
	value    T
	err      error
	onValue  func(T)
	onError  func(error)
	thenSet  bool
	catchSet bool
	abandon  context.CancelFunc

	work func(context.Context) (T, error)

	id   uuid.UUID
	exec Executor
	disp dispatch.Dispatcher
	obs  Observer
}

func newTask[T any](work func(context.Context) (T, error), opts Options) *task[T] {
	return &task[T]{
		work: work,
		id:   uuid.New(),
		exec: opts.Executor,
		disp: opts.Dispatcher,
		obs:  opts.Observer,
	}
}

// start submits the work. It is a no-op unless the task is still Pending,
// which keeps already-cancelled tasks (scope ended before Load) off the
// executor entirely.
func (t *task[T]) start() {
	t.mu.Lock()
	if t.state != StatePending {
		t.mu.Unlock()
		return
	}
	t.state = StateRunning
	ctx, cancel := context.WithCancel(context.Background())
	t.abandon = cancel
	t.mu.Unlock()

	t.obs.TaskStarted(t.id)
	began := time.Now()
	t.exec.Submit(ctx, func() {
		defer cancel()
		value, err := t.run(ctx)
		t.finish(value, err, time.Since(began))
	})
}

// run invokes work exactly once, converting a panic into a failure.
func (t *task[T]) run(ctx context.Context) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return t.work(ctx)
}

// finish records the outcome unless cancellation already won the race, and
// delivers a callback registered earlier through the dispatcher.
func (t *task[T]) finish(value T, err error, dur time.Duration) {
	t.mu.Lock()
	if t.state != StateRunning {
		t.mu.Unlock()
		t.obs.OutcomeDiscarded(t.id)
		return
	}
	var deliver func()
	if err != nil {
		t.state = StateFailed
		t.err = err
		if cb := t.onError; cb != nil {
			t.onError = nil
			deliver = func() { cb(err) }
		}
	} else {
		t.state = StateCompleted
		t.value = value
		if cb := t.onValue; cb != nil {
			t.onValue = nil
			deliver = func() { cb(value) }
		}
	}
	t.mu.Unlock()

	t.obs.TaskFinished(t.id, dur, err)
	if deliver != nil {
		recorded := time.Now()
		t.disp.Dispatch(func() {
			deliver()
			t.obs.CallbackDelivered(t.id, time.Since(recorded))
		})
	}
}

// cancel suppresses delivery and asks the executor to abandon the work.
// Idempotent; a no-op once the task reached any terminal state.
func (t *task[T]) cancel() {
	t.mu.Lock()
	if t.state.terminal() {
		t.mu.Unlock()
		return
	}
	t.state = StateCancelled
	t.onValue = nil
	t.onError = nil
	abandon := t.abandon
	t.mu.Unlock()

	if abandon != nil {
		abandon()
	}
	t.obs.TaskCancelled(t.id)
}

func (t *task[T]) registerThen(cb func(T)) error {
	t.mu.Lock()
	if t.thenSet {
		t.mu.Unlock()
		return ErrCallbackRegistered
	}
	t.thenSet = true
	state := t.state
	value := t.value
	if state == StatePending || state == StateRunning {
		t.onValue = cb
	}
	t.mu.Unlock()

	// Late registration: the outcome is already known, deliver on the
	// caller. Failed and Cancelled leave the value path silent.
	if state == StateCompleted {
		cb(value)
		t.obs.CallbackDelivered(t.id, 0)
	}
	return nil
}

func (t *task[T]) registerCatch(cb func(error)) error {
	t.mu.Lock()
	if t.catchSet {
		t.mu.Unlock()
		return ErrCallbackRegistered
	}
	t.catchSet = true
	state := t.state
	err := t.err
	if state == StatePending || state == StateRunning {
		t.onError = cb
	}
	t.mu.Unlock()

	if state == StateFailed {
		cb(err)
		t.obs.CallbackDelivered(t.id, 0)
	}
	return nil
}

func (t *task[T]) snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
