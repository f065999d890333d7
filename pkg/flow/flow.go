package flow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kode4food/strand/pkg/journal"
	"github.com/kode4food/strand/pkg/api"
	"github.com/kode4food/strand/pkg/future"
	"github.com/kode4food/strand/pkg/log"
)

// flowInstance drives one coroutine from spawn to settlement. All fields
// other than fut and token are touched only from dispatch turns, so the
// single worker is the synchronization
type flowInstance struct {
	engine       *Engine
	base         *api.Base
	fut          *future.Future
	task         *Task
	interceptors []Interceptor
	token        string
	seq          int
	pending      int64
	suspensions  int64
	done         bool
	canceled     bool
}

// performStep derives the step's invocation context, records and publishes
// the step, and runs it under that ambient context with the flow's
// interceptor chain applied, first interceptor outermost
func (fl *flowInstance) performStep(
	step api.StepType, args []any, run func(),
) {
	ctx := fl.base.Step(step, args...)
	fl.seq++
	entry := &journal.Entry{
		FlowID:    fl.base.ID,
		Name:      fl.base.Name,
		Token:     fl.token,
		Step:      step,
		Args:      stringifyArgs(args),
		Seq:       fl.seq,
		Timestamp: time.Now(),
	}
	err := fl.engine.journal.Record(context.Background(), entry)
	if err != nil {
		slog.Error("Unable to record step",
			log.FlowID(fl.base.ID),
			log.Step(step),
			log.Error(err))
	}
	fl.engine.hub.Publish(api.EventTypeStepPerformed, fl.base.ID,
		&api.StepPerformedEvent{
			FlowID: fl.base.ID,
			Name:   fl.base.Name,
			Step:   step,
			Args:   args,
		},
	)

	wrapped := run
	for i := len(fl.interceptors) - 1; i >= 0; i-- {
		in := fl.interceptors[i]
		next := wrapped
		wrapped = func() {
			in(ctx, next)
		}
	}
	fl.engine.RunWith(ctx, wrapped)
}

// dispatch advances the coroutine by one resumption and deals with
// whatever it produces next
func (fl *flowInstance) dispatch(r resumption) {
	fl.handle(fl.task.advance(r))
}

func (fl *flowInstance) handle(out outcome) {
	if out.done {
		fl.done = true
		fl.pending = 0
		fl.engine.Defer(func() {
			fl.settle(out)
		})
		return
	}

	aw, ok := out.value.(api.Awaitable)
	if !ok {
		fl.done = true
		panic(fmt.Errorf("%w: %T", ErrNotAwaitable, out.value))
	}

	fl.suspensions++
	tok := fl.suspensions
	fl.pending = tok
	aw.Then(
		func(value any) {
			fl.engine.Defer(func() {
				fl.continueWith(tok, api.StepResume, resumption{value: value})
			})
		},
		func(err error) {
			fl.engine.Defer(func() {
				fl.continueWith(tok, api.StepResumeError, resumption{err: err})
			})
		},
	)
}

// continueWith resumes the flow from the suspension identified by tok.
// A stale token means cancellation already resumed this suspension, so
// the settlement of the originally awaited value is dropped
func (fl *flowInstance) continueWith(
	tok int64, step api.StepType, r resumption,
) {
	if fl.done || fl.pending != tok {
		return
	}
	fl.pending = 0
	fl.performStep(step, resumptionArgs(r), func() {
		fl.dispatch(r)
	})
}

// requestCancel is installed as the future's cancel handler. The
// cancellation error is injected exactly once, at the flow's current
// suspension point, from a dispatch turn
func (fl *flowInstance) requestCancel() {
	fl.engine.Defer(func() {
		if fl.done || fl.canceled {
			return
		}
		fl.canceled = true
		fl.engine.hub.Publish(api.EventTypeCancelRequested, fl.base.ID,
			&api.CancelRequestedEvent{
				FlowID: fl.base.ID,
				Name:   fl.base.Name,
			},
		)
		if fl.pending == 0 {
			return
		}
		fl.pending = 0
		fl.performStep(api.StepResumeError, []any{ErrCanceled}, func() {
			fl.dispatch(resumption{err: ErrCanceled})
		})
	})
}

// settle performs the flow's terminal step. It always runs one turn after
// the step that produced the result, so callers observing the returned
// future never see it settle synchronously
func (fl *flowInstance) settle(out outcome) {
	if out.err != nil {
		fl.updateDigest(api.FlowRejected, out.err)
		fl.performStep(api.StepThrow, []any{out.err}, func() {
			fl.fut.Reject(out.err)
		})
		fl.engine.hub.Publish(api.EventTypeFlowRejected, fl.base.ID,
			&api.FlowRejectedEvent{
				FlowID: fl.base.ID,
				Name:   fl.base.Name,
				Error:  out.err.Error(),
			},
		)
		return
	}
	fl.updateDigest(api.FlowFulfilled, nil)
	fl.performStep(api.StepReturn, []any{out.value}, func() {
		fl.fut.Resolve(out.value)
	})
	fl.engine.hub.Publish(api.EventTypeFlowFulfilled, fl.base.ID,
		&api.FlowFulfilledEvent{
			FlowID: fl.base.ID,
			Name:   fl.base.Name,
			Result: out.value,
		},
	)
}

func (fl *flowInstance) updateDigest(status api.FlowStatus, err error) {
	v, ok := fl.engine.flows.Load(fl.base.ID)
	if !ok {
		return
	}
	next := *v.(*api.FlowDigest)
	next.Status = status
	next.SettledAt = time.Now()
	if err != nil {
		next.Error = err.Error()
	}
	fl.engine.flows.Store(fl.base.ID, &next)
}

func resumptionArgs(r resumption) []any {
	if r.err != nil {
		return []any{r.err}
	}
	return []any{r.value}
}

func stringifyArgs(args []any) []string {
	if len(args) == 0 {
		return nil
	}
	res := make([]string, len(args))
	for i, a := range args {
		res[i] = fmt.Sprintf("%v", a)
	}
	return res
}
