// Package future provides the settle-once promise returned by flow spawners
//
// A Future resolves or rejects exactly once. Continuations registered with
// Then fire exactly once each, immediately when the future has already
// settled. Futures satisfy api.Awaitable and may themselves be awaited from
// inside other flows
package future

import (
	"context"
	"sync"
)

type (
	// Future is the eventual result of a flow or any other asynchronous
	// computation. The zero value is not usable; construct with New,
	// Resolved, or Rejected
	Future struct {
		value     any
		err       error
		canceller func()
		resolved  []func(any)
		rejected  []func(error)
		done      chan struct{}
		state     state
		mu        sync.Mutex
	}

	state uint8
)

const (
	pending state = iota
	isResolved
	isRejected
)

// New creates an unsettled future
func New() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved creates a future already fulfilled with the provided value
func Resolved(value any) *Future {
	f := New()
	f.Resolve(value)
	return f
}

// Rejected creates a future already rejected with the provided error
func Rejected(err error) *Future {
	f := New()
	f.Reject(err)
	return f
}

// Resolve fulfills the future. Only the first settlement takes effect;
// Resolve reports whether it was the one to settle the future
func (f *Future) Resolve(value any) bool {
	f.mu.Lock()
	if f.state != pending {
		f.mu.Unlock()
		return false
	}
	f.state = isResolved
	f.value = value
	calls := f.resolved
	f.resolved = nil
	f.rejected = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range calls {
		fn(value)
	}
	return true
}

// Reject settles the future with an error. Only the first settlement takes
// effect; Reject reports whether it was the one to settle the future
func (f *Future) Reject(err error) bool {
	f.mu.Lock()
	if f.state != pending {
		f.mu.Unlock()
		return false
	}
	f.state = isRejected
	f.err = err
	calls := f.rejected
	f.resolved = nil
	f.rejected = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range calls {
		fn(err)
	}
	return true
}

// Then registers continuations for settlement. Exactly one of the two
// callbacks fires, exactly once. If the future has already settled, the
// matching callback is invoked before Then returns. Either callback may be
// nil
func (f *Future) Then(resolved func(any), rejected func(error)) {
	f.mu.Lock()
	switch f.state {
	case pending:
		if resolved != nil {
			f.resolved = append(f.resolved, resolved)
		}
		if rejected != nil {
			f.rejected = append(f.rejected, rejected)
		}
		f.mu.Unlock()

	case isResolved:
		value := f.value
		f.mu.Unlock()
		if resolved != nil {
			resolved(value)
		}

	case isRejected:
		err := f.err
		f.mu.Unlock()
		if rejected != nil {
			rejected(err)
		}
	}
}

// Await blocks until the future settles or the context is done
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Settled returns true once the future has resolved or rejected
func (f *Future) Settled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state != pending
}

// OnCancel installs the handler invoked by Cancel while the future is
// still pending. The flow driver uses this to inject its cancellation
// error at the current suspension point
func (f *Future) OnCancel(fn func()) {
	f.mu.Lock()
	f.canceller = fn
	f.mu.Unlock()
}

// Cancel requests cooperative cancellation. Cancelling a settled future is
// a no-op, as is cancelling a future with no handler installed
func (f *Future) Cancel() {
	f.mu.Lock()
	if f.state != pending {
		f.mu.Unlock()
		return
	}
	fn := f.canceller
	f.mu.Unlock()

	if fn != nil {
		fn()
	}
}
