package storage

import "sync"

// MemoryStore implements Store using an in-process map. It is suitable for
// tests and throwaway guest sessions; nothing survives the process.
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string][]byte
	watchers []WatchFunc
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get decodes the value under key into out
func (m *MemoryStore) Get(key string, out any) bool {
	raw, ok := m.GetRaw(key)
	if !ok {
		return false
	}
	return decode(raw, out)
}

// GetRaw returns the stored bytes under key
func (m *MemoryStore) GetRaw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.values[key]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp, true
}

// Set stores the JSON encoding of value under key
func (m *MemoryStore) Set(key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		return err
	}
	return m.SetRaw(key, raw)
}

// SetRaw stores raw bytes under key
func (m *MemoryStore) SetRaw(key string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(raw))
	copy(cp, raw)
	m.values[key] = cp
	return nil
}

// Remove deletes the key
func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Watch registers fn for external change notifications. A memory store has no
// external writers; watchers only fire through EmitExternalChange.
func (m *MemoryStore) Watch(fn WatchFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watchers = append(m.watchers, fn)
}

// EmitExternalChange delivers a change notification to all watchers, as if
// another process had written the key. Used by tests and embedding hosts that
// bridge their own change feeds.
func (m *MemoryStore) EmitExternalChange(key string) {
	m.mu.RLock()
	watchers := append([]WatchFunc(nil), m.watchers...)
	m.mu.RUnlock()
	for _, fn := range watchers {
		fn(ChangeEvent{Key: key})
	}
}

// Keys lists every stored key
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}

// Close releases resources; a memory store has none
func (m *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
