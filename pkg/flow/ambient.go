package flow

import (
	"sync"

	"github.com/kode4food/strand/pkg/api"
)

// ambient is the push/restore registry for the currently executing
// invocation context. Steps run on a single logical thread, so the stack
// is strictly bracketed; the mutex provides visibility to coroutine
// goroutines reading it while the dispatch worker is blocked in a
// generator handshake
type ambient struct {
	stack []*api.Context
	mu    sync.Mutex
}

// Current returns the ambient invocation context, or nil outside any
// action or step
func (e *Engine) Current() *api.Context {
	return e.ambient.current()
}

// RunWith executes work with ctx as the ambient current context, restoring
// the prior ambient state afterward, including when work panics
func (e *Engine) RunWith(ctx *api.Context, work func()) {
	e.ambient.push(ctx)
	defer e.ambient.pop()
	work()
}

func (a *ambient) current() *api.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

func (a *ambient) push(ctx *api.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stack = append(a.stack, ctx)
}

func (a *ambient) pop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stack = a.stack[:len(a.stack)-1]
}

// nearestAction resolves the closest action boundary from an ambient
// context: the context itself if it marks an action, otherwise the action
// ancestor captured when the context was built
func nearestAction(ctx *api.Context) *api.Context {
	if ctx.IsAction() {
		return ctx
	}
	return ctx.ParentAction
}
