// Package flow implements the coroutine-to-future execution engine
//
// A spawner turns a coroutine body into a flow: a single future whose every
// spawn, resume, error resume, return, and throw runs as a discrete,
// interceptable step carrying an immutable invocation context. Steps are
// driven one at a time on the engine's dispatch worker, terminal
// settlements are always deferred to a later turn, and cancellation is
// injected cooperatively at the flow's current suspension point
package flow
