package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]json.RawMessage{}}
}

func (s *MemoryStore) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap("get", keys, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.data, keys), nil
}

func (s *MemoryStore) Set(ctx context.Context, items map[string]any) error {
	if err := ctx.Err(); err != nil {
		return wrap("set", keysOf(items), err)
	}
	encoded, err := encode(items)
	if err != nil {
		return wrap("set", keysOf(items), err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range encoded {
		s.data[k] = v
	}
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return wrap("remove", keys, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return wrap("clear", nil, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string]json.RawMessage{}
	return nil
}
