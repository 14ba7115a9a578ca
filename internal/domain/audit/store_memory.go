package audit

import (
	"context"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Insert(_ context.Context, evt Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
	return nil
}

func (m *MemoryStore) Count(_ context.Context, filter Filter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, evt := range m.events {
		if filter.matches(evt) {
			total++
		}
	}
	return total, nil
}

func (m *MemoryStore) List(_ context.Context, filter Filter, includeDetails bool, limit, offset int) ([]Event, error) {
	m.mu.RLock()
	var out []Event
	for _, evt := range m.events {
		if !filter.matches(evt) {
			continue
		}
		if !includeDetails {
			evt.Before, evt.After = nil, nil
		}
		out = append(out, evt)
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
