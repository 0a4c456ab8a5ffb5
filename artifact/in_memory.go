package artifact

import "sync"

// InMemoryStore is a process-local core.ArtifactStore implementation useful
// for tests, examples and single-process prototypes. It keeps all payloads
// in a nested map guarded by an RWMutex. Data is copied on save and on
// retrieval to avoid accidental external mutation of internal buffers.
//
// Layout: chatID -> artifactID -> raw bytes
//
// No retention limits, size quotas or eviction are enforced. Production
// deployments should use a durable backend (object store, database) that
// survives process restarts.
type InMemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]map[string][]byte
}

// NewInMemoryStore returns an empty in-memory artifact store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{artifacts: make(map[string]map[string][]byte)}
}

// Save stores (or overwrites) the artifact bytes for the given chat and id.
// The input slice is copied before storage.
func (s *InMemoryStore) Save(chatID, artifactID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.artifacts[chatID]; !exists {
		s.artifacts[chatID] = make(map[string][]byte)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.artifacts[chatID][artifactID] = cp
	return nil
}

// Get returns a copy of the stored artifact bytes or ErrNotFound.
func (s *InMemoryStore) Get(chatID, artifactID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.artifacts[chatID]
	if !ok {
		return nil, ErrNotFound
	}
	data, ok := m[artifactID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the artifact ids stored for the chat. The slice is a
// snapshot and safe for caller mutation.
func (s *InMemoryStore) List(chatID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.artifacts[chatID]
	if !ok {
		return []string{}, nil
	}
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids, nil
}

// Delete removes the artifact if present or returns ErrNotFound.
func (s *InMemoryStore) Delete(chatID, artifactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.artifacts[chatID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := m[artifactID]; !ok {
		return ErrNotFound
	}
	delete(m, artifactID)
	return nil
}
