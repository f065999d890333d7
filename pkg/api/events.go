package api

type (
	// ActionStartedEvent is emitted when an action boundary is entered
	ActionStartedEvent struct {
		ActionID ID     `json:"action_id"`
		Name     string `json:"name"`
		RootID   ID     `json:"root_id"`
	}

	// ActionCompletedEvent is emitted when an action boundary is exited
	ActionCompletedEvent struct {
		ActionID ID     `json:"action_id"`
		Name     string `json:"name"`
	}

	// FlowSpawnedEvent is emitted when a spawner builds a new flow
	FlowSpawnedEvent struct {
		FlowID   ID     `json:"flow_id"`
		Name     string `json:"name"`
		Token    string `json:"token"`
		ParentID ID     `json:"parent_id"`
		RootID   ID     `json:"root_id"`
		Args     []any  `json:"args,omitempty"`
	}

	// StepPerformedEvent is emitted for every discrete step of a flow
	StepPerformedEvent struct {
		FlowID ID       `json:"flow_id"`
		Name   string   `json:"name"`
		Step   StepType `json:"step"`
		Args   []any    `json:"args,omitempty"`
	}

	// FlowFulfilledEvent is emitted when a flow's future resolves
	FlowFulfilledEvent struct {
		FlowID ID     `json:"flow_id"`
		Name   string `json:"name"`
		Result any    `json:"result,omitempty"`
	}

	// FlowRejectedEvent is emitted when a flow's future rejects
	FlowRejectedEvent struct {
		FlowID ID     `json:"flow_id"`
		Name   string `json:"name"`
		Error  string `json:"error"`
	}

	// CancelRequestedEvent is emitted when a flow's future is cancelled
	// before settlement
	CancelRequestedEvent struct {
		FlowID ID     `json:"flow_id"`
		Name   string `json:"name"`
	}

	EventType string
)

const (
	EventTypeActionStarted   EventType = "action_started"
	EventTypeActionCompleted EventType = "action_completed"
	EventTypeFlowSpawned     EventType = "flow_spawned"
	EventTypeStepPerformed   EventType = "step_performed"
	EventTypeFlowFulfilled   EventType = "flow_fulfilled"
	EventTypeFlowRejected    EventType = "flow_rejected"
	EventTypeCancelRequested EventType = "cancel_requested"
)
