package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/kode4food/strand/pkg/api"
	"github.com/kode4food/strand/pkg/events"
	"github.com/kode4food/strand/pkg/log"
)

// Client represents a WebSocket client connection for event streaming
type Client struct {
	server   *Server
	conn     *websocket.Conn
	consumer events.Consumer
	filter   events.EventFilter
}

const (
	writeWait          = 10 * time.Second
	pongWait           = 60 * time.Second
	pingPeriod         = (pongWait * 9) / 10
	maxMessageSize     = 512
	wsBufferSize       = 1024
	incomingBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  wsBufferSize,
	WriteBufferSize: wsBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleWebSocket upgrades an HTTP connection to WebSocket and starts
// streaming engine events based on client subscriptions
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed",
			log.Error(err))
		return
	}

	noopFilter := func(*events.Event) bool { return false }
	client := &Client{
		server:   s,
		conn:     conn,
		consumer: s.engine.Hub().NewConsumer(),
		filter:   noopFilter,
	}
	s.registerWebSocket(client)

	go client.run()
}

// Close terminates the client's connection; its run loop then unwinds
func (c *Client) Close() {
	_ = c.conn.Close()
}

func (c *Client) run() {
	defer func() {
		c.server.unregisterWebSocket(c)
		c.consumer.Close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	incoming := make(chan []byte, incomingBufferSize)
	go c.readMessages(incoming)

	for {
		select {
		case message, ok := <-incoming:
			if !ok {
				return
			}
			c.handleSubscribe(message)

		case event, ok := <-c.consumer.Receive():
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if !c.sendEventIfMatched(event) {
				return
			}

		case <-ticker.C:
			if !c.sendPing() {
				return
			}
		}
	}
}

func (c *Client) readMessages(incoming chan []byte) {
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			close(incoming)
			return
		}
		incoming <- message
	}
}

func (c *Client) handleSubscribe(message []byte) {
	var sub api.SubscribeRequest
	if err := json.Unmarshal(message, &sub); err != nil {
		slog.Error("Failed to parse WebSocket message",
			log.Error(err))
		return
	}

	if sub.Type != "subscribe" {
		return
	}

	c.filter = BuildFilter(&sub.Data)
}

func (c *Client) sendEventIfMatched(event *events.Event) bool {
	if !c.filter(event) {
		return true
	}

	wsEvent := &api.WebSocketEvent{
		Type:      event.Type,
		FlowID:    event.FlowID,
		Data:      event.Data,
		Timestamp: event.Timestamp.UnixMilli(),
		Sequence:  event.Sequence,
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(wsEvent); err != nil {
		slog.Error("WebSocket write failed",
			log.Error(err))
		return false
	}
	return true
}

func (c *Client) sendPing() bool {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := c.conn.WriteMessage(websocket.PingMessage, nil)
	return err == nil
}

// BuildFilter creates an event filter based on client subscription
// preferences for event types and a single flow
func BuildFilter(sub *api.ClientSubscription) events.EventFilter {
	var flowFilter events.EventFilter
	if sub.FlowID != 0 {
		flowFilter = events.FilterFlow(sub.FlowID)
	}

	var eventTypeFilter events.EventFilter
	if len(sub.EventTypes) > 0 {
		eventTypeFilter = events.FilterEvents(sub.EventTypes...)
	}

	switch {
	case flowFilter != nil && eventTypeFilter != nil:
		return events.AndFilters(flowFilter, eventTypeFilter)
	case flowFilter != nil:
		return flowFilter
	case eventTypeFilter != nil:
		return eventTypeFilter
	default:
		return func(*events.Event) bool { return false }
	}
}
