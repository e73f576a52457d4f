package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"prompt-collector/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prompts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, map[string]any{
		"buffer": []string{"a", "b"},
		"theme":  "dark",
	}))

	got, err := s.Get(ctx, "buffer", "theme", "collections")
	require.NoError(t, err)
	require.Len(t, got, 2)

	var buffer []string
	require.NoError(t, json.Unmarshal(got["buffer"], &buffer))
	require.Equal(t, []string{"a", "b"}, buffer)
	require.JSONEq(t, `"dark"`, string(got["theme"]))
}

func TestSetOverwritesAndRemove(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, map[string]any{"a": 1, "b": 2}))
	require.NoError(t, s.Set(ctx, map[string]any{"a": 5}))
	require.NoError(t, s.Remove(ctx, "b"))

	got, err := s.Get(ctx, "a", "b")
	require.NoError(t, err)
	require.Equal(t, "5", string(got["a"]))
	require.NotContains(t, got, "b")

	require.NoError(t, s.Clear(ctx))
	got, err = s.Get(ctx, "a")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), map[string]any{"activeCollectionIndex": 2}))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	got, err := s2.Get(context.Background(), "activeCollectionIndex")
	require.NoError(t, err)
	require.Equal(t, "2", string(got["activeCollectionIndex"]))
}

func TestClosedStoreReturnsStorageError(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "prompts.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Get(context.Background(), "a")
	var serr *storage.Error
	require.True(t, errors.As(err, &serr), "expected *storage.Error, got %v", err)
	require.Equal(t, "get", serr.Op)
}
