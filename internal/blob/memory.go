package blob

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemStore is an in-memory Store for tests and local development. Setting
// Err makes every Put fail with it, for exercising intake failure paths.
type MemStore struct {
	Err error

	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{objects: make(map[string][]byte)}
}

// Put stores body under key and returns a memory:// URL.
func (m *MemStore) Put(ctx context.Context, key string, body io.Reader) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("blob: read body for %s: %w", key, err)
	}
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return "memory://" + key, nil
}

// Object returns a stored object's bytes, if present.
func (m *MemStore) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	return data, ok
}

// Len reports how many objects are stored.
func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
