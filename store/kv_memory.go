package store

import (
	"context"
	"sync"

	"github.com/sicko7947/grocer"
)

// MemoryKV implements grocer.KeyValue in memory (for testing)
type MemoryKV struct {
	values map[string][]byte
	mu     sync.RWMutex
}

// NewMemoryKV creates an empty in-memory key-value backend
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, grocer.ErrKeyNotFound
	}

	// Copy bytes
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	return valueCopy, nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy bytes
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	m.values[key] = valueCopy
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

var _ grocer.KeyValue = (*MemoryKV)(nil)
