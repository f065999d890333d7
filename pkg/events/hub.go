// Package events provides the engine's event hub
//
// Every action boundary, spawn, step, and settlement is published to the
// hub as it happens. Consumers receive events in publication order; the
// WebSocket server and tests subscribe here
package events

import (
	"sync/atomic"
	"time"

	"github.com/kode4food/caravan"
	"github.com/kode4food/caravan/message"
	"github.com/kode4food/caravan/topic"

	"github.com/kode4food/strand/pkg/api"
)

type (
	// Hub broadcasts engine events to any number of consumers
	Hub struct {
		queue topic.Topic[*Event]
		prod  topic.Producer[*Event]
		seq   atomic.Int64
	}

	// Event is the envelope published for each engine occurrence
	Event struct {
		Type      api.EventType `json:"type"`
		FlowID    api.ID        `json:"flow_id,omitempty"`
		Data      any           `json:"data,omitempty"`
		Timestamp time.Time     `json:"timestamp"`
		Sequence  int64         `json:"sequence"`
	}

	// Consumer receives published events in order
	Consumer = topic.Consumer[*Event]
)

// NewHub creates a new event hub
func NewHub() *Hub {
	queue := caravan.NewTopic[*Event]()
	return &Hub{
		queue: queue,
		prod:  queue.NewProducer(),
	}
}

// Publish broadcasts an event to all consumers, stamping it with the next
// hub sequence and the current time
func (h *Hub) Publish(typ api.EventType, flowID api.ID, data any) {
	message.Send(h.prod, &Event{
		Type:      typ,
		FlowID:    flowID,
		Data:      data,
		Timestamp: time.Now(),
		Sequence:  h.seq.Add(1),
	})
}

// NewConsumer subscribes to events published after this call
func (h *Hub) NewConsumer() Consumer {
	return h.queue.NewConsumer()
}

// Close stops the hub's producer. Consumers drain and then close
func (h *Hub) Close() {
	h.prod.Close()
}
