package flow

import "github.com/kode4food/strand/pkg/api"

// Do runs fn inside a new top-level action boundary. The body is enqueued
// onto the dispatch worker and Do blocks until it returns, so spawners
// invoked from fn find an ambient action context. Do must not be called
// from inside a flow body or another action's turn, as the worker would
// be waiting on itself
func (e *Engine) Do(name string, fn func()) {
	e.DoIn(name, nil, nil, fn)
}

// DoIn is Do with explicit tree and scope references, which every flow
// spawned under the action inherits unchanged
func (e *Engine) DoIn(name string, tree, scope any, fn func()) {
	done := make(chan struct{})
	e.dispatch.Enqueue(func() {
		defer close(done)
		id := e.allocateID()
		ctx := &api.Context{
			Base: api.Base{
				Name:   name,
				ID:     id,
				Tree:   tree,
				Scope:  scope,
				RootID: id,
				Kind:   api.KindAction,
			},
		}
		e.hub.Publish(api.EventTypeActionStarted, 0, &api.ActionStartedEvent{
			ActionID: id,
			Name:     name,
			RootID:   id,
		})
		defer e.hub.Publish(api.EventTypeActionCompleted, 0,
			&api.ActionCompletedEvent{
				ActionID: id,
				Name:     name,
			},
		)
		e.RunWith(ctx, fn)
	})
	<-done
}
