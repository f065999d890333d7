// Package journal records the step history of every flow
//
// Each discrete step appends one entry, making a flow's full
// spawn-to-settlement trail queryable after the fact. Backends: in-process
// memory (the default) and Redis
package journal

import (
	"context"
	"time"

	"github.com/kode4food/strand/pkg/api"
)

type (
	// Journal is an append-only record of flow steps
	Journal interface {
		// Record appends one step entry to its flow's trail
		Record(ctx context.Context, entry *Entry) error

		// Steps returns a flow's entries in the order they were recorded
		Steps(ctx context.Context, flowID api.ID) ([]*Entry, error)

		// Flows returns the ids of all recorded flows in ascending order
		Flows(ctx context.Context) ([]api.ID, error)
	}

	// Entry is one recorded step. Args are stringified before recording
	// so that entries remain serializable regardless of what a coroutine
	// yields or throws
	Entry struct {
		FlowID    api.ID       `json:"flow_id"`
		Name      string       `json:"name"`
		Token     string       `json:"token"`
		Step      api.StepType `json:"step"`
		Args      []string     `json:"args,omitempty"`
		Seq       int          `json:"seq"`
		Timestamp time.Time    `json:"timestamp"`
	}
)
