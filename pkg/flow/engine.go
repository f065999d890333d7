package flow

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kode4food/strand/internal/dispatch"
	"github.com/kode4food/strand/pkg/journal"
	"github.com/kode4food/strand/pkg/api"
	"github.com/kode4food/strand/pkg/events"
)

type (
	// Engine drives flows. It owns the id allocator, the ambient context
	// registry, the single dispatch worker that serializes all steps, the
	// event hub, and the step journal
	Engine struct {
		hub      *events.Hub
		journal  journal.Journal
		dispatch *dispatch.Runner
		ambient  ambient
		flows    sync.Map // map[api.ID]*api.FlowDigest
		ids      atomic.Int64
		defect   atomic.Value // error
	}

	// Dependencies supplies the engine's collaborators. Nil fields fall
	// back to in-process defaults
	Dependencies struct {
		Hub     *events.Hub
		Journal journal.Journal
	}
)

// New creates a new flow engine
func New(deps Dependencies) *Engine {
	if deps.Hub == nil {
		deps.Hub = events.NewHub()
	}
	if deps.Journal == nil {
		deps.Journal = journal.NewMemory()
	}
	e := &Engine{
		hub:     deps.Hub,
		journal: deps.Journal,
	}
	e.dispatch = dispatch.NewRunner(e.recordDefect)
	return e
}

// Start begins processing dispatched turns. Actions and flow resumptions
// are not delivered until the engine has been started
func (e *Engine) Start() {
	e.dispatch.Start()
}

// Stop drains pending turns and closes the event hub
func (e *Engine) Stop() error {
	e.dispatch.Flush()
	e.hub.Close()
	return nil
}

// Hub returns the engine's event hub
func (e *Engine) Hub() *events.Hub {
	return e.hub
}

// Defer schedules work to run after the current synchronous execution
// completes, strictly after any previously deferred work
func (e *Engine) Defer(work func()) {
	e.dispatch.Enqueue(work)
}

// ActiveFlows returns digests for all flows the engine has seen that have
// not yet been discarded, most recently spawned last
func (e *Engine) ActiveFlows() []*api.FlowDigest {
	var res []*api.FlowDigest
	e.flows.Range(func(_, v any) bool {
		res = append(res, v.(*api.FlowDigest))
		return true
	})
	return res
}

// FlowDigest returns the digest for a single flow, if the engine still
// tracks it
func (e *Engine) FlowDigest(flowID api.ID) (*api.FlowDigest, bool) {
	v, ok := e.flows.Load(flowID)
	if !ok {
		return nil, false
	}
	return v.(*api.FlowDigest), true
}

// LastDefect returns the most recent defect recovered at the dispatch
// boundary, or nil. Defects indicate engine misuse, never runtime failure
func (e *Engine) LastDefect() error {
	if err, ok := e.defect.Load().(error); ok {
		return err
	}
	return nil
}

func (e *Engine) allocateID() api.ID {
	return api.ID(e.ids.Add(1))
}

func (e *Engine) recordDefect(recovered any) {
	if err, ok := recovered.(error); ok {
		e.defect.Store(err)
		return
	}
	e.defect.Store(fmt.Errorf("defect: %v", recovered))
}
