package flow

type (
	// Task is the handle a coroutine body uses to suspend itself. Await
	// hands a value to the driver and blocks the body's goroutine until
	// the driver resumes it with a result or an error
	Task struct {
		args   []any
		resume chan resumption
		yield  chan outcome
	}

	// Body is a coroutine. It runs on its own goroutine, suspending at
	// each Await until the driver resumes it. Returning fulfills the
	// flow's future; returning an error rejects it
	Body func(t *Task) (any, error)

	// resumption carries the driver's answer back into a suspended body
	resumption struct {
		value any
		err   error
	}

	// outcome carries what a body produced at each suspension point or at
	// its final return
	outcome struct {
		value any
		err   error
		done  bool
	}
)

// Await suspends the body, yielding value to the driver, and blocks until
// the flow is resumed. Resumption with an error, including the injected
// cancellation error, surfaces as Await's error return
func (t *Task) Await(value any) (any, error) {
	t.yield <- outcome{value: value}
	r := <-t.resume
	return r.value, r.err
}

// Args returns the arguments the flow was spawned with
func (t *Task) Args() []any {
	return t.args
}

// Arg returns the nth spawn argument, or nil when out of range
func (t *Task) Arg(n int) any {
	if n < 0 || n >= len(t.args) {
		return nil
	}
	return t.args[n]
}

// newTask starts body on its own goroutine. The goroutine parks until the
// first advance, so a freshly spawned flow performs no work before its
// spawn step is dispatched. A body panic is captured as a rejection
// outcome rather than unwinding the process
func newTask(body Body, args []any) *Task {
	t := &Task{
		args:   args,
		resume: make(chan resumption),
		yield:  make(chan outcome),
	}
	go func() {
		r := <-t.resume
		if r.err != nil {
			t.yield <- outcome{err: r.err, done: true}
			return
		}
		defer func() {
			if rec := recover(); rec != nil {
				t.yield <- outcome{err: newPanicError(rec), done: true}
			}
		}()
		value, err := body(t)
		t.yield <- outcome{value: value, err: err, done: true}
	}()
	return t
}

// advance feeds one resumption into the body and blocks until the body
// either suspends again or finishes. Callers run on the dispatch worker,
// so the body observes a consistent ambient context for the duration
func (t *Task) advance(r resumption) outcome {
	t.resume <- r
	return <-t.yield
}
