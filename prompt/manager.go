// Package prompt holds the prompt buffer and the named prompt collections on top of
// a storage.Store.
//
// Every operation reads the keys it needs, transforms them, and writes them back.
// Nothing is cached between calls and nothing is locked: when two writers race on
// the same key, the last write wins.
package prompt

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"prompt-collector/storage"
)

// Manager runs buffer, collection and preference operations against a store.
type Manager struct {
	store storage.Store
	now   func() time.Time
}

type Option func(*Manager)

// WithClock overrides the time source used for added/created/updated stamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(store storage.Store, opts ...Option) *Manager {
	m := &Manager{store: store, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) timestamp() Timestamp {
	return TimestampOf(m.now())
}

// State reads every key in one call.
func (m *Manager) State(ctx context.Context) (State, error) {
	raw, err := m.store.Get(ctx,
		KeyBuffer, KeyCollections, KeyActiveCollectionIndex,
		KeyBufferToggleState, KeyCollectionToggleState, KeyTheme,
	)
	if err != nil {
		return State{}, err
	}

	var st State
	if st.Buffer, err = decodeBuffer(raw); err != nil {
		return State{}, err
	}
	if st.Collections, err = decodeCollections(raw); err != nil {
		return State{}, err
	}
	if idx, ok := decodeActiveIndex(raw); ok {
		st.ActiveIndex = &idx
	}
	if st.Toggles, err = decodeToggles(raw); err != nil {
		return State{}, err
	}
	theme, ok := decodeTheme(raw)
	st.Theme, st.ThemeExplicit = theme, ok
	return st, nil
}

func decode[T any](raw map[string]json.RawMessage, key string, def T) (T, error) {
	data, ok := raw[key]
	if !ok || string(data) == "null" {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def, &StorageError{Op: "decode", Keys: []string{key}, Err: err}
	}
	return v, nil
}

func decodeBuffer(raw map[string]json.RawMessage) ([]string, error) {
	buffer, err := decode(raw, KeyBuffer, []string{})
	if buffer == nil {
		buffer = []string{}
	}
	return buffer, err
}

func decodeCollections(raw map[string]json.RawMessage) ([]Collection, error) {
	cols, err := decode(raw, KeyCollections, []Collection{})
	if err != nil {
		return nil, err
	}
	if cols == nil {
		cols = []Collection{}
	}
	for i := range cols {
		if cols[i].Prompts == nil {
			cols[i].Prompts = []Prompt{}
		}
	}
	return cols, nil
}

// decodeActiveIndex reports ok only for a stored integral number. Anything else
// (absent, null, a string, a fraction) counts as no active collection.
func decodeActiveIndex(raw map[string]json.RawMessage) (int, bool) {
	data, present := raw[KeyActiveCollectionIndex]
	if !present {
		return 0, false
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, false
	}
	f, isNum := v.(float64)
	if !isNum || f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func decodeToggles(raw map[string]json.RawMessage) (Toggles, error) {
	buffer, err := decode(raw, KeyBufferToggleState, true)
	if err != nil {
		return Toggles{}, err
	}
	collection, err := decode(raw, KeyCollectionToggleState, true)
	if err != nil {
		return Toggles{}, err
	}
	return Toggles{Buffer: buffer, Collection: collection}, nil
}

func decodeTheme(raw map[string]json.RawMessage) (Theme, bool) {
	data, ok := raw[KeyTheme]
	if !ok {
		return "", false
	}
	var t Theme
	if err := json.Unmarshal(data, &t); err != nil || !t.Valid() {
		return "", false
	}
	return t, true
}
