package signal

import "context"

// FromContext returns a signal that ends when ctx is done. Contexts that can
// never be cancelled yield a signal that never ends.
func FromContext(ctx context.Context) *Signal {
	s := New()
	if ctx.Done() == nil {
		return s
	}
	Bind(ctx, s)
	return s
}

// Bind ends sig when ctx is done. The returned stop function releases the
// binding without ending the signal; it reports whether it did so before the
// binding fired.
func Bind(ctx context.Context, sig *Signal) (stop func() bool) {
	return context.AfterFunc(ctx, sig.End)
}
