package deferred

// Handle is the caller-facing side of one deferred task. It holds no state
// of its own; Then, Catch and Cancel all forward to the underlying task.
type Handle[T any] struct {
	t *task[T]
}

// Then registers the at-most-one value consumer. If the task already
// completed, cb runs synchronously on the calling goroutine with the stored
// value; if it was cancelled, cb is silently dropped; if it failed, the
// error stays on the Catch path. Otherwise cb is stored and runs once, after
// the work finishes, through the task's dispatcher. A second registration
// returns ErrCallbackRegistered. Then never blocks.
func (h *Handle[T]) Then(cb func(T)) error {
	if cb == nil {
		return nil
	}
	return h.t.registerThen(cb)
}

// Catch is the error-path mirror of Then: it registers the at-most-one
// consumer for a failed outcome, with the same state and ordering rules.
func (h *Handle[T]) Catch(cb func(error)) error {
	if cb == nil {
		return nil
	}
	return h.t.registerCatch(cb)
}

// Cancel suppresses delivery and best-effort asks the executor to abandon
// the work. Idempotent, never blocks, and a no-op once the task completed or
// failed; manual calls and scope-end both land here.
func (h *Handle[T]) Cancel() { h.t.cancel() }

// State returns a snapshot of the task's current state.
func (h *Handle[T]) State() State { return h.t.snapshot() }
