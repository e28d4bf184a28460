package store

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var ErrNotFound = errors.New("key not found")

// Storage is the durable key-value surface holding the serialized cart.
// Load returns ErrNotFound when nothing was persisted under key.
type Storage interface {
	Load(c context.Context, key string) ([]byte, error)
	Save(c context.Context, key string, value []byte) error
	Delete(c context.Context, key string) error
}

// MemoryStorage keeps values for the lifetime of the process.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string][]byte{}}
}

func (m *MemoryStorage) Load(c context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(value), nil
}

func (m *MemoryStorage) Save(c context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = slices.Clone(value)
	return nil
}

func (m *MemoryStorage) Delete(c context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
