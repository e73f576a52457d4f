// Package storage is the flat key/value namespace the prompt store persists into.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Store is a persistent key/value store holding JSON values.
//
// Get returns only the keys that are present. Set merges the given pairs into the
// store and leaves every other key untouched. Writers are not coordinated: two
// read-modify-write cycles racing on the same key end with the last Set winning.
type Store interface {
	Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error)
	Set(ctx context.Context, items map[string]any) error
	Remove(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}

// Error reports a failed store operation.
type Error struct {
	Op   string
	Keys []string
	Err  error
}

func (e *Error) Error() string {
	if len(e.Keys) > 0 {
		return fmt.Sprintf("storage %s [%s]: %v", e.Op, strings.Join(e.Keys, ","), e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, keys []string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Keys: keys, Err: err}
}

// encode marshals every value of items. A value that is already a
// json.RawMessage is kept as is.
func encode(items map[string]any) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(items))
	for k, v := range items {
		if raw, ok := v.(json.RawMessage); ok {
			out[k] = append(json.RawMessage(nil), raw...)
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		out[k] = data
	}
	return out, nil
}

func keysOf(items map[string]any) []string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	return keys
}
