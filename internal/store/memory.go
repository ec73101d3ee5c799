package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/benbeisheim/clickchess-backend/internal/model"
)

// MemoryStore keeps encoded snapshots in process memory. Encoding on save
// keeps stored states detached from the caller's values.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string][]byte)}
}

func (m *MemoryStore) Save(ctx context.Context, state model.SessionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.ID] = raw
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, id string) (model.SessionState, error) {
	m.mu.RLock()
	raw, ok := m.states[id]
	m.mu.RUnlock()
	if !ok {
		return model.SessionState{}, ErrNotFound
	}
	var state model.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.SessionState{}, err
	}
	return state, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
