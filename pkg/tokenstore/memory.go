package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Getter for tests and local development.
type MemoryStore struct {
	mu          sync.RWMutex
	records     map[string][]byte
	unavailable error
}

// NewMemoryStore creates a store seeded with the given records.
func NewMemoryStore(records map[string][]byte) *MemoryStore {
	m := &MemoryStore{records: make(map[string][]byte, len(records))}
	for k, v := range records {
		m.records[k] = clone(v)
	}
	return m
}

// Get returns a copy of the stored value so callers cannot mutate the store.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.unavailable != nil {
		return nil, false, m.unavailable
	}

	v, ok := m.records[key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

// Set stores value under key, replacing any previous value.
func (m *MemoryStore) Set(key string, value []byte) {
	m.mu.Lock()
	m.records[key] = clone(value)
	m.mu.Unlock()
}

// Delete removes key. Missing keys are ignored.
func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	delete(m.records, key)
	m.mu.Unlock()
}

// SetUnavailable makes every subsequent Get fail with err until it is
// called again with nil.
func (m *MemoryStore) SetUnavailable(err error) {
	m.mu.Lock()
	m.unavailable = err
	m.mu.Unlock()
}

// Len returns the number of stored records.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
