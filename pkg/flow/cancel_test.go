package flow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/strand/pkg/api"
	"github.com/kode4food/strand/pkg/flow"
	"github.com/kode4food/strand/pkg/future"
)

func TestCancelCaughtByBody(t *testing.T) {
	eng := newEngine(t)
	spawner := eng.Spawner("graceful", func(tk *flow.Task) (any, error) {
		_, err := tk.Await(future.New())
		if errors.Is(err, flow.ErrCanceled) {
			return "cleaned up", nil
		}
		return nil, err
	})

	var fut *future.Future
	eng.Do("test", func() {
		fut = spawner()
	})
	fut.Cancel()

	value, err := settle(t, fut)
	assert.NoError(t, err)
	assert.Equal(t, "cleaned up", value)
}

func TestCancelUncaughtRejects(t *testing.T) {
	eng := newEngine(t)
	spawner := eng.Spawner("abrupt", func(tk *flow.Task) (any, error) {
		_, err := tk.Await(future.New())
		return nil, err
	})

	var fut *future.Future
	eng.Do("test", func() {
		fut = spawner()
	})
	fut.Cancel()

	_, err := settle(t, fut)
	assert.ErrorIs(t, err, flow.ErrCanceled)

	flows := eng.ActiveFlows()
	assert.Len(t, flows, 1)
	assert.Equal(t, api.FlowRejected, flows[0].Status)
	assert.Equal(t, flow.ErrCanceled.Error(), flows[0].Error)
}

func TestDoubleCancelInjectsOnce(t *testing.T) {
	eng := newEngine(t)
	injections := 0
	spawner := eng.Spawner("once", func(tk *flow.Task) (any, error) {
		for {
			_, err := tk.Await(future.New())
			if errors.Is(err, flow.ErrCanceled) {
				injections++
				return injections, nil
			}
		}
	})

	var fut *future.Future
	eng.Do("test", func() {
		fut = spawner()
	})
	fut.Cancel()
	fut.Cancel()

	value, err := settle(t, fut)
	assert.NoError(t, err)
	assert.Equal(t, 1, value)
	assert.NoError(t, eng.LastDefect())
}

func TestCancelAfterSettlementIsNoop(t *testing.T) {
	eng := newEngine(t)
	spawner := eng.Spawner("settled", func(tk *flow.Task) (any, error) {
		return "done", nil
	})

	var fut *future.Future
	eng.Do("test", func() {
		fut = spawner()
	})

	value, err := settle(t, fut)
	assert.NoError(t, err)
	assert.Equal(t, "done", value)

	fut.Cancel()

	flows := eng.ActiveFlows()
	assert.Len(t, flows, 1)
	assert.Equal(t, api.FlowFulfilled, flows[0].Status)
	assert.NoError(t, eng.LastDefect())
}

func TestStaleResumptionDropped(t *testing.T) {
	eng := newEngine(t)
	abandoned := future.New()
	followup := future.New()

	spawner := eng.Spawner("stale", func(tk *flow.Task) (any, error) {
		_, err := tk.Await(abandoned)
		if !errors.Is(err, flow.ErrCanceled) {
			return nil, err
		}
		return tk.Await(followup)
	})

	var fut *future.Future
	eng.Do("test", func() {
		fut = spawner()
	})
	fut.Cancel()

	// the abandoned settlement must not resume the flow a second time
	abandoned.Resolve("late")
	followup.Resolve("fresh")

	value, err := settle(t, fut)
	assert.NoError(t, err)
	assert.Equal(t, "fresh", value)
	assert.NoError(t, eng.LastDefect())
}
