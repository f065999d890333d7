// Package dispatch provides the engine's single-worker turn queue
//
// All flow steps execute on one worker in strict FIFO order, which is what
// gives each flow its sequential-step guarantee and gives terminal
// settlements their always-deferred contract
package dispatch

import (
	"log/slog"
	"sync"

	"github.com/kode4food/caravan"
	"github.com/kode4food/caravan/message"
	"github.com/kode4food/caravan/topic"
)

type (
	// Runner executes queued turns sequentially on a single worker
	Runner struct {
		queue    topic.Topic[Turn]
		prod     topic.Producer[Turn]
		cons     topic.Consumer[Turn]
		onPanic  PanicFunc
		stop     chan struct{}
		stopOnce sync.Once
		started  sync.Once
		runWG    sync.WaitGroup
	}

	// Turn is a unit of deferred work
	Turn func()

	// PanicFunc is notified when a turn panics. The worker itself always
	// survives the panic
	PanicFunc func(recovered any)
)

// NewRunner creates a new turn runner
func NewRunner(onPanic PanicFunc) *Runner {
	queue := caravan.NewTopic[Turn]()
	return &Runner{
		queue:   queue,
		prod:    queue.NewProducer(),
		cons:    queue.NewConsumer(),
		onPanic: onPanic,
		stop:    make(chan struct{}),
	}
}

// Start begins processing queued turns
func (r *Runner) Start() {
	r.started.Do(func() {
		r.runWG.Go(func() {
			for {
				select {
				case <-r.stop:
					return
				case fn, ok := <-r.cons.Receive():
					if !ok {
						return
					}
					r.runTurn(fn)
				}
			}
		})
	})
}

// Enqueue schedules a turn to run after all previously enqueued turns
func (r *Runner) Enqueue(fn Turn) {
	if fn == nil {
		return
	}
	message.Send(r.prod, fn)
}

// Flush waits for queued turns to complete and stops the runner
func (r *Runner) Flush() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
	r.runWG.Wait()
	for {
		select {
		case fn, ok := <-r.cons.Receive():
			if !ok {
				r.close()
				return
			}
			r.runTurn(fn)
		default:
			r.close()
			return
		}
	}
}

func (r *Runner) close() {
	r.prod.Close()
	r.cons.Close()
}

func (r *Runner) runTurn(fn Turn) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Dispatch turn panic",
				slog.Any("panic", rec))
			if r.onPanic != nil {
				r.onPanic(rec)
			}
		}
	}()
	fn()
}
