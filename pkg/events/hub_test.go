package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/strand/pkg/api"
	"github.com/kode4food/strand/pkg/events"
)

const receiveTimeout = 1 * time.Second

func receiveOne(t *testing.T, cons events.Consumer) *events.Event {
	t.Helper()
	select {
	case ev, ok := <-cons.Receive():
		if !ok {
			assert.Fail(t, "consumer closed")
			return nil
		}
		return ev
	case <-time.After(receiveTimeout):
		assert.Fail(t, "timed out waiting for event")
		return nil
	}
}

func TestHubDeliversInOrder(t *testing.T) {
	hub := events.NewHub()
	t.Cleanup(hub.Close)

	cons := hub.NewConsumer()
	t.Cleanup(cons.Close)

	hub.Publish(api.EventTypeFlowSpawned, 1, "first")
	hub.Publish(api.EventTypeStepPerformed, 1, "second")
	hub.Publish(api.EventTypeFlowFulfilled, 1, "third")

	first := receiveOne(t, cons)
	second := receiveOne(t, cons)
	third := receiveOne(t, cons)

	assert.Equal(t, api.EventTypeFlowSpawned, first.Type)
	assert.Equal(t, "first", first.Data)
	assert.Equal(t, api.EventTypeStepPerformed, second.Type)
	assert.Equal(t, api.EventTypeFlowFulfilled, third.Type)

	assert.Less(t, first.Sequence, second.Sequence)
	assert.Less(t, second.Sequence, third.Sequence)
	assert.False(t, first.Timestamp.IsZero())
}

func TestHubMultipleConsumers(t *testing.T) {
	hub := events.NewHub()
	t.Cleanup(hub.Close)

	one := hub.NewConsumer()
	t.Cleanup(one.Close)
	two := hub.NewConsumer()
	t.Cleanup(two.Close)

	hub.Publish(api.EventTypeFlowSpawned, 7, nil)

	assert.Equal(t, api.ID(7), receiveOne(t, one).FlowID)
	assert.Equal(t, api.ID(7), receiveOne(t, two).FlowID)
}

func TestFilterEvents(t *testing.T) {
	filter := events.FilterEvents(
		api.EventTypeFlowFulfilled, api.EventTypeFlowRejected,
	)

	assert.True(t, filter(&events.Event{Type: api.EventTypeFlowFulfilled}))
	assert.True(t, filter(&events.Event{Type: api.EventTypeFlowRejected}))
	assert.False(t, filter(&events.Event{Type: api.EventTypeStepPerformed}))
}

func TestFilterFlow(t *testing.T) {
	filter := events.FilterFlow(42)

	assert.True(t, filter(&events.Event{FlowID: 42}))
	assert.False(t, filter(&events.Event{FlowID: 43}))
}

func TestAndOrFilters(t *testing.T) {
	matched := &events.Event{
		Type:   api.EventTypeStepPerformed,
		FlowID: 42,
	}
	other := &events.Event{
		Type:   api.EventTypeStepPerformed,
		FlowID: 43,
	}

	and := events.AndFilters(
		events.FilterFlow(42),
		events.FilterEvents(api.EventTypeStepPerformed),
	)
	assert.True(t, and(matched))
	assert.False(t, and(other))

	or := events.OrFilters(
		events.FilterFlow(43),
		events.FilterEvents(api.EventTypeFlowFulfilled),
	)
	assert.True(t, or(other))
	assert.False(t, or(&events.Event{Type: api.EventTypeFlowSpawned}))
}
