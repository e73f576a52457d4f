package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the whole namespace in one JSON document on disk.
type FileStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]json.RawMessage
}

// NewFileStore loads the document at filePath, or starts empty if the file does not
// exist. Returns an error only on unexpected I/O or decode failures.
func NewFileStore(filePath string) (*FileStore, error) {
	s := &FileStore{filePath: filePath, data: map[string]json.RawMessage{}}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, wrap("open", nil, err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, wrap("open", nil, err)
	}
	if s.data == nil {
		s.data = map[string]json.RawMessage{}
	}
	return s, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.filePath
}

func (s *FileStore) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap("get", keys, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.data, keys), nil
}

func (s *FileStore) Set(ctx context.Context, items map[string]any) error {
	if err := ctx.Err(); err != nil {
		return wrap("set", keysOf(items), err)
	}
	encoded, err := encode(items)
	if err != nil {
		return wrap("set", keysOf(items), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := clone(s.data)
	for k, v := range encoded {
		next[k] = v
	}
	if err := s.writeAtomic(next); err != nil {
		return wrap("set", keysOf(items), err)
	}
	s.data = next
	return nil
}

func (s *FileStore) Remove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return wrap("remove", keys, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := clone(s.data)
	for _, k := range keys {
		delete(next, k)
	}
	if err := s.writeAtomic(next); err != nil {
		return wrap("remove", keys, err)
	}
	s.data = next
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return wrap("clear", nil, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := map[string]json.RawMessage{}
	if err := s.writeAtomic(next); err != nil {
		return wrap("clear", nil, err)
	}
	s.data = next
	return nil
}

// writeAtomic writes to a temp file then renames it over filePath.
// Caller must hold s.mu.
func (s *FileStore) writeAtomic(data map[string]json.RawMessage) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := s.filePath + ".tmp"
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, encoded, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}

func pick(data map[string]json.RawMessage, keys []string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if v, ok := data[k]; ok {
			out[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

func clone(data map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
