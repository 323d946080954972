package store

import (
	"context"
	"sync"
)

// Slot is a string-keyed value store, the persistence primitive the story
// collection is written to.
type Slot interface {
	// Get returns the value under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set overwrites the value under key.
	Set(ctx context.Context, key string, value []byte) error
}

// MemorySlot is an in-process Slot. The zero value is ready to use.
//
// Thread-safety: MemorySlot is safe for concurrent use via internal mutex.
type MemorySlot struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int
}

// NewMemorySlot returns an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Get implements Slot.
func (m *MemorySlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements Slot.
func (m *MemorySlot) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	m.values[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

// Writes returns how many times Set has been called.
func (m *MemorySlot) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
