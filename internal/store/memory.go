// internal/store/memory.go
//
// In-memory stores.
//
// Characteristics:
//   - Memory[T] keeps session values keyed by ID in a map.
//   - MemoryTables keeps lookup tables for the lifetime of the process.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for sessions.
type Store[T any] interface {
	// Save persists or updates a value.
	Save(ctx context.Context, id string, v T) error

	// Get retrieves a value by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (T, error)

	// Delete removes a value. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error

	// DeleteFunc removes every value for which del returns true and
	// reports how many were removed.
	DeleteFunc(ctx context.Context, del func(id string, v T) bool) (int, error)
}

// memory is an in-memory map-based Store implementation.
type memory[T any] struct {
	mu    sync.RWMutex // guards items
	items map[string]T
}

// NewMemory constructs a new in-memory Store.
func NewMemory[T any]() Store[T] {
	return &memory[T]{items: make(map[string]T)}
}

func (m *memory[T]) Save(ctx context.Context, id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = v
	return nil
}

func (m *memory[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[id]; ok {
		return v, nil
	}
	var zero T
	return zero, ErrNotFound
}

func (m *memory[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memory[T]) DeleteFunc(ctx context.Context, del func(id string, v T) bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, v := range m.items {
		if del(id, v) {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

// MemoryTables is a TableStore that never touches disk.
type MemoryTables struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewMemoryTables returns an empty MemoryTables.
func NewMemoryTables() *MemoryTables {
	return &MemoryTables{tables: make(map[string]*Table)}
}

func (m *MemoryTables) LoadTable(ctx context.Context, name string) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[name]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

func (m *MemoryTables) SaveTable(ctx context.Context, t *Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[t.Name] = t
	return nil
}

func (m *MemoryTables) Close() error { return nil }
