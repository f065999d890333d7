package flow

import "errors"

var (
	// ErrNoCurrentContext is the defect raised when a spawner is invoked
	// with no ambient invocation context. Flows may only be spawned from
	// inside an action or another flow's step
	ErrNoCurrentContext = errors.New("no ambient invocation context")

	// ErrNoActionContext is the defect raised when no action boundary can
	// be derived from the ambient context chain
	ErrNoActionContext = errors.New("no action boundary in context chain")

	// ErrNotAwaitable is the defect raised when a coroutine yields a
	// value that does not expose then-style continuation registration
	ErrNotAwaitable = errors.New("yielded value is not awaitable")

	// ErrCanceled is injected into a coroutine at its current suspension
	// point when its future is cancelled. A body that handles it keeps
	// running; one that returns it rejects the future with it
	ErrCanceled = errors.New("flow canceled")
)
