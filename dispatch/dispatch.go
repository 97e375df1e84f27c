// Package dispatch provides execution contexts for callback delivery.
// A Dispatcher decides which goroutine runs a function handed to it; the
// deferred package uses one to keep consumer callbacks off worker
// goroutines when the caller needs that.
package dispatch

// Dispatcher runs functions on a delivery execution context.
type Dispatcher interface {
	Dispatch(fn func())
}

// Inline runs functions immediately on the calling goroutine.
type Inline struct{}

func (Inline) Dispatch(fn func()) {
	if fn != nil {
		fn()
	}
}
