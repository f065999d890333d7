package api

import "time"

type (
	// FlowStatus describes where a flow is in its lifecycle
	FlowStatus string

	// FlowDigest is a lightweight summary of a flow kept by the engine
	// while it is live and reported through the introspection API
	FlowDigest struct {
		FlowID    ID         `json:"flow_id"`
		Name      string     `json:"name"`
		Token     string     `json:"token"`
		ParentID  ID         `json:"parent_id"`
		RootID    ID         `json:"root_id"`
		Status    FlowStatus `json:"status"`
		SpawnedAt time.Time  `json:"spawned_at"`
		SettledAt time.Time  `json:"settled_at,omitzero"`
		Error     string     `json:"error,omitempty"`
	}
)

const (
	FlowActive    FlowStatus = "active"
	FlowFulfilled FlowStatus = "fulfilled"
	FlowRejected  FlowStatus = "rejected"
)

// IsTerminal returns true once the flow's future has settled
func (s FlowStatus) IsTerminal() bool {
	return s == FlowFulfilled || s == FlowRejected
}
