package deferred

import (
	"time"

	"github.com/google/uuid"
)

// Observer receives task lifecycle hooks. Implementations must be safe for
// concurrent use; hooks fire from worker and caller goroutines alike.
type Observer interface {
	// TaskStarted fires when work is submitted to the executor.
	TaskStarted(id uuid.UUID)
	// TaskFinished fires when work returns, with its wall time and error.
	// It does not fire for tasks cancelled before the work finished.
	TaskFinished(id uuid.UUID, dur time.Duration, err error)
	// TaskCancelled fires once per task, on the first effective cancel.
	TaskCancelled(id uuid.UUID)
	// CallbackDelivered fires after a consumer callback ran; wait is the
	// time the outcome sat recorded before delivery.
	CallbackDelivered(id uuid.UUID, wait time.Duration)
	// OutcomeDiscarded fires when work finished after cancellation and its
	// outcome was dropped.
	OutcomeDiscarded(id uuid.UUID)
}

// NopObserver ignores all hooks.
type NopObserver struct{}

func (NopObserver) TaskStarted(uuid.UUID)                        {}
func (NopObserver) TaskFinished(uuid.UUID, time.Duration, error) {}
func (NopObserver) TaskCancelled(uuid.UUID)                      {}
func (NopObserver) CallbackDelivered(uuid.UUID, time.Duration)   {}
func (NopObserver) OutcomeDiscarded(uuid.UUID)                   {}
