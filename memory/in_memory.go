package memory

import (
	"context"
	"sync"

	"github.com/hupe1980/skillmesh/core"
)

// InMemoryStore is a naive process-local MemorySource holding arbitrary
// structured content per named layer. Concurrency: protected by RWMutex.
// Layers that were never written are simply absent from snapshots.
type InMemoryStore struct {
	mu     sync.RWMutex
	layers map[string]any
}

// NewInMemoryStore creates an empty layered memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{layers: make(map[string]any)}
}

// Put stores content under a layer name, replacing prior content.
func (m *InMemoryStore) Put(layer string, content any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers[layer] = content
}

// Delete removes a layer.
func (m *InMemoryStore) Delete(layer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.layers, layer)
}

// GetContext implements core.MemorySource returning a snapshot across the
// requested layers. Unknown layers are skipped.
func (m *InMemoryStore) GetContext(_ context.Context, layers []string) (core.MemoryContext, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot := make(core.MemoryContext, len(layers))
	for _, layer := range layers {
		if content, ok := m.layers[layer]; ok {
			snapshot[layer] = content
		}
	}
	return snapshot, nil
}
