package server_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/kode4food/strand/internal/server"
	"github.com/kode4food/strand/pkg/api"
	"github.com/kode4food/strand/pkg/events"
)

func dialWebSocket(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/engine/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func TestWebSocketStreamsSubscribedEvents(t *testing.T) {
	eng, router := newTestServer(t)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	conn := dialWebSocket(t, ts)
	assert.NoError(t, conn.WriteJSON(api.SubscribeRequest{
		Type: "subscribe",
		Data: api.ClientSubscription{
			EventTypes: []api.EventType{api.EventTypeFlowSpawned},
		},
	}))

	// let the subscribe settle before producing events
	time.Sleep(100 * time.Millisecond)
	runFlow(t, eng, "streamed")

	_ = conn.SetReadDeadline(time.Now().Add(settleTimeout))
	var ev api.WebSocketEvent
	assert.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, api.EventTypeFlowSpawned, ev.Type)
	assert.NotZero(t, ev.FlowID)
	assert.NotZero(t, ev.Sequence)
}

func TestWebSocketIgnoresUnfilteredEvents(t *testing.T) {
	eng, router := newTestServer(t)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	conn := dialWebSocket(t, ts)
	assert.NoError(t, conn.WriteJSON(api.SubscribeRequest{
		Type: "subscribe",
		Data: api.ClientSubscription{
			EventTypes: []api.EventType{api.EventTypeFlowRejected},
		},
	}))

	time.Sleep(100 * time.Millisecond)
	runFlow(t, eng, "filtered")

	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var ev api.WebSocketEvent
	assert.Error(t, conn.ReadJSON(&ev))
}

func TestBuildFilter(t *testing.T) {
	none := server.BuildFilter(&api.ClientSubscription{})
	assert.False(t, none(&events.Event{Type: api.EventTypeFlowSpawned}))

	byType := server.BuildFilter(&api.ClientSubscription{
		EventTypes: []api.EventType{api.EventTypeFlowSpawned},
	})
	assert.True(t, byType(&events.Event{Type: api.EventTypeFlowSpawned}))
	assert.False(t, byType(&events.Event{Type: api.EventTypeFlowFulfilled}))

	byFlow := server.BuildFilter(&api.ClientSubscription{FlowID: 2})
	assert.True(t, byFlow(&events.Event{FlowID: 2}))
	assert.False(t, byFlow(&events.Event{FlowID: 3}))

	both := server.BuildFilter(&api.ClientSubscription{
		FlowID:     2,
		EventTypes: []api.EventType{api.EventTypeStepPerformed},
	})
	assert.True(t, both(&events.Event{
		FlowID: 2, Type: api.EventTypeStepPerformed,
	}))
	assert.False(t, both(&events.Event{
		FlowID: 2, Type: api.EventTypeFlowSpawned,
	}))
}
