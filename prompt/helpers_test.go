package prompt_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prompt-collector/prompt"
	"prompt-collector/storage"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T) (*prompt.Manager, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return prompt.NewManager(store, prompt.WithClock(func() time.Time { return fixedNow })), store
}

// failingStore reads through to a real store and fails every write.
type failingStore struct {
	storage.Store
	writes int
}

func (f *failingStore) Set(ctx context.Context, items map[string]any) error {
	f.writes++
	return &storage.Error{Op: "set", Err: errors.New("disk full")}
}

func (f *failingStore) Remove(ctx context.Context, keys ...string) error {
	f.writes++
	return &storage.Error{Op: "remove", Keys: keys, Err: errors.New("disk full")}
}

func seed(t *testing.T, store storage.Store, items map[string]any) {
	t.Helper()
	require.NoError(t, store.Set(context.Background(), items))
}

func rawValue(t *testing.T, store storage.Store, key string) json.RawMessage {
	t.Helper()
	got, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	return got[key]
}

func requireValidation(t *testing.T, err error) {
	t.Helper()
	var verr *prompt.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
}

func requireDuplicate(t *testing.T, err error) {
	t.Helper()
	var derr *prompt.DuplicateError
	require.True(t, errors.As(err, &derr), "expected DuplicateError, got %v", err)
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	var nerr *prompt.NotFoundError
	require.True(t, errors.As(err, &nerr), "expected NotFoundError, got %v", err)
}

func newMemory() *storage.MemoryStore {
	return storage.NewMemoryStore()
}

func mustExport(t *testing.T, c prompt.Collection) []byte {
	t.Helper()
	data, err := prompt.ExportJSON(c)
	require.NoError(t, err)
	return data
}

func jsonInt(ts prompt.Timestamp) string {
	data, _ := json.Marshal(int64(ts))
	return string(data)
}
