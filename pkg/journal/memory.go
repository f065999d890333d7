package journal

import (
	"context"
	"slices"
	"sync"

	"github.com/kode4food/strand/pkg/api"
)

// Memory is an in-process journal. It is the default backend and the one
// used by tests
type Memory struct {
	flows map[api.ID][]*Entry
	mu    sync.RWMutex
}

// NewMemory creates an empty in-process journal
func NewMemory() *Memory {
	return &Memory{
		flows: map[api.ID][]*Entry{},
	}
}

func (m *Memory) Record(_ context.Context, entry *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flows[entry.FlowID] = append(m.flows[entry.FlowID], entry)
	return nil
}

func (m *Memory) Steps(
	_ context.Context, flowID api.ID,
) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.flows[flowID]), nil
}

func (m *Memory) Flows(_ context.Context) ([]api.ID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]api.ID, 0, len(m.flows))
	for id := range m.flows {
		res = append(res, id)
	}
	slices.Sort(res)
	return res, nil
}
