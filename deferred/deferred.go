package deferred

import (
	"context"

	"github.com/NetPo4ki/go-deferred/dispatch"
)

// ScopeSignal delivers a single "scope ended" notification. OnEnd registers
// handler to run at most once, exactly when the scope ends; if the scope has
// already ended, handler runs immediately on the calling goroutine.
type ScopeSignal interface {
	OnEnd(handler func())
}

// Executor runs work off the caller's goroutine. Submit must not block on
// fn's completion. Cancelling ctx is a best-effort request to abandon the
// work; fn may ignore it and run to completion.
type Executor interface {
	Submit(ctx context.Context, fn func())
}

// goExecutor launches one goroutine per task.
type goExecutor struct{}

func (goExecutor) Submit(_ context.Context, fn func()) { go fn() }

type Option func(*Options)

type Options struct {
	Executor   Executor
	Dispatcher dispatch.Dispatcher
	Observer   Observer
}

func defaultOptions() Options {
	return Options{Executor: goExecutor{}, Dispatcher: dispatch.Inline{}, Observer: NopObserver{}}
}

// WithExecutor replaces the default one-goroutine-per-task executor.
func WithExecutor(e Executor) Option { return func(o *Options) { o.Executor = e } }

// WithDispatcher routes delivery of a stored callback through d instead of
// running it on whichever goroutine finished the work.
func WithDispatcher(d dispatch.Dispatcher) Option { return func(o *Options) { o.Dispatcher = d } }

// WithObserver attaches lifecycle hooks.
func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// Load submits work to a background executor and returns a handle to its
// eventual result. The handle's Cancel is registered with sig, so the task
// is cancelled automatically when the scope ends; if the scope has already
// ended, work is never executed.
func Load[T any](sig ScopeSignal, work func() (T, error), optFns ...Option) *Handle[T] {
	return LoadContext(sig, func(context.Context) (T, error) { return work() }, optFns...)
}

// LoadContext is Load for context-aware work. The context is cancelled when
// the task is cancelled, so cooperative work can stop early; work that
// ignores it runs to completion and its outcome is discarded.
func LoadContext[T any](sig ScopeSignal, work func(context.Context) (T, error), optFns ...Option) *Handle[T] {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	t := newTask(work, opts)
	h := &Handle[T]{t: t}
	if sig != nil {
		sig.OnEnd(h.Cancel)
	}
	t.start()
	return h
}
