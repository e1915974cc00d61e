package kv

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Nothing survives Close.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
	err  error
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return "", false, m.err
	}

	v, ok := m.data[key]

	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.data[key] = value

	return nil
}

// Fail makes subsequent calls return err; nil restores normal behaviour.
func (m *Memory) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.err = err
}

func (m *Memory) Close() error {
	return nil
}
