package flow

import (
	"time"

	"github.com/google/uuid"

	"github.com/kode4food/strand/pkg/api"
	"github.com/kode4food/strand/pkg/future"
)

type (
	// Spawner instantiates a flow each time it is called, returning the
	// flow's future immediately. The body itself does not begin running
	// until the spawn step is dispatched
	Spawner func(args ...any) *future.Future

	// Interceptor wraps the execution of every step of a flow. It must
	// invoke next exactly once; the ambient invocation context for the
	// step is already installed when it runs
	Interceptor func(ctx *api.Context, next func())

	// Option configures a spawner at construction time
	Option func(*spawnConfig)

	spawnConfig struct {
		interceptors []Interceptor
	}
)

// WithInterceptors attaches step interceptors to every flow the spawner
// creates. Interceptors run outermost first, in the order given
func WithInterceptors(ins ...Interceptor) Option {
	return func(c *spawnConfig) {
		c.interceptors = append(c.interceptors, ins...)
	}
}

// Spawner builds a spawner for the named coroutine body. Calling the
// result outside any action or flow is a defect and panics
func (e *Engine) Spawner(name string, body Body, opts ...Option) Spawner {
	cfg := &spawnConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return func(args ...any) *future.Future {
		return e.spawnFlow(name, body, cfg, args)
	}
}

func (e *Engine) spawnFlow(
	name string, body Body, cfg *spawnConfig, args []any,
) *future.Future {
	parent := e.Current()
	if parent == nil {
		panic(ErrNoCurrentContext)
	}
	action := nearestAction(parent)
	if action == nil {
		panic(ErrNoActionContext)
	}

	base := parent.ChildBase(name, e.allocateID(), api.KindStep, action)
	fl := &flowInstance{
		engine:       e,
		base:         base,
		fut:          future.New(),
		interceptors: cfg.interceptors,
		token:        uuid.NewString(),
	}
	fl.task = newTask(body, args)
	fl.fut.OnCancel(fl.requestCancel)

	e.flows.Store(fl.base.ID, &api.FlowDigest{
		FlowID:    fl.base.ID,
		Name:      name,
		Token:     fl.token,
		ParentID:  fl.base.ParentID,
		RootID:    fl.base.RootID,
		Status:    api.FlowActive,
		SpawnedAt: time.Now(),
	})
	e.hub.Publish(api.EventTypeFlowSpawned, fl.base.ID, &api.FlowSpawnedEvent{
		FlowID:   fl.base.ID,
		Name:     name,
		Token:    fl.token,
		ParentID: fl.base.ParentID,
		RootID:   fl.base.RootID,
		Args:     args,
	})

	e.Defer(func() {
		fl.performStep(api.StepSpawn, args, func() {
			fl.dispatch(resumption{})
		})
	})
	return fl.fut
}
