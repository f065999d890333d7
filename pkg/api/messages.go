package api

type (
	// ErrorResponse is the standard HTTP error payload
	ErrorResponse struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}

	// SubscribeRequest is a WebSocket message requesting event streaming
	SubscribeRequest struct {
		Type string             `json:"type"`
		Data ClientSubscription `json:"data"`
	}

	// ClientSubscription narrows the events a WebSocket client receives
	ClientSubscription struct {
		FlowID     ID          `json:"flow_id,omitempty"`
		EventTypes []EventType `json:"event_types,omitempty"`
	}

	// FlowsListResponse lists the engine's tracked flow digests
	FlowsListResponse struct {
		Flows []*FlowDigest `json:"flows"`
		Count int           `json:"count"`
	}

	// WebSocketEvent is the wire form of a streamed engine event
	WebSocketEvent struct {
		Type      EventType `json:"type"`
		FlowID    ID        `json:"flow_id,omitempty"`
		Data      any       `json:"data,omitempty"`
		Timestamp int64     `json:"timestamp"`
		Sequence  int64     `json:"sequence"`
	}
)
