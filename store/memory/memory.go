// Package memory provides an in-process implementation of store.Store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/smallnest/clickflow/store"
)

// MemoryStore keeps values in a map guarded by a RWMutex.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ store.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return value, nil
}

// Set stores value under key
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Delete removes key
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Keys lists the stored keys in lexical order
func (m *MemoryStore) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
