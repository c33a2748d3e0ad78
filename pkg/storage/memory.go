package storage

import "sync"

type memoryAdapter struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns a process-local Adapter. Used by tests and as a
// throwaway backend when no database path is configured.
func NewMemory() Adapter {
	return &memoryAdapter{data: map[string]string{}}
}

func (m *memoryAdapter) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryAdapter) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryAdapter) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
