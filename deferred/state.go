package deferred

import "fmt"

// State is the lifecycle state of a deferred task.
type State int

const (
	StatePending   State = iota // created, work not yet submitted
	StateRunning                // work submitted to the executor
	StateCompleted              // work returned a value
	StateFailed                 // work returned an error or panicked
	StateCancelled              // delivery suppressed; the outcome, if any, is discarded
)

// terminal reports whether no further transition may occur.
func (s State) terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateFailed:
		return "Failed"
	case StateCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
