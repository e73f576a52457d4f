package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

const subscriberBuffer = 32

// Change is the before/after value of one key. A nil value means absent.
type Change struct {
	OldValue json.RawMessage `json:"oldValue,omitempty"`
	NewValue json.RawMessage `json:"newValue,omitempty"`
}

// ChangeSet is published once per successful write.
type ChangeSet struct {
	ID      string            `json:"id"`
	Changes map[string]Change `json:"changes,omitempty"`
	Cleared bool              `json:"cleared,omitempty"`
}

// Notifier wraps a Store and tells subscribers about every write that went through
// it, so several open views of the same data can re-read after someone else's change.
type Notifier struct {
	Store

	mu   sync.Mutex
	subs map[string]chan ChangeSet
}

func NewNotifier(s Store) *Notifier {
	return &Notifier{Store: s, subs: make(map[string]chan ChangeSet)}
}

// Subscribe registers a new listener. The channel is closed by Unsubscribe.
// A listener that falls behind misses change sets instead of blocking writers.
func (n *Notifier) Subscribe() (string, <-chan ChangeSet) {
	id := uuid.New().String()
	ch := make(chan ChangeSet, subscriberBuffer)
	n.mu.Lock()
	n.subs[id] = ch
	n.mu.Unlock()
	return id, ch
}

func (n *Notifier) Unsubscribe(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if ch, ok := n.subs[id]; ok {
		delete(n.subs, id)
		close(ch)
	}
}

// Subscribers returns the number of live subscriptions.
func (n *Notifier) Subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

func (n *Notifier) Set(ctx context.Context, items map[string]any) error {
	encoded, err := encode(items)
	if err != nil {
		return wrap("set", keysOf(items), err)
	}
	keys := make([]string, 0, len(encoded))
	pass := make(map[string]any, len(encoded))
	for k, v := range encoded {
		keys = append(keys, k)
		pass[k] = v
	}

	before, err := n.Store.Get(ctx, keys...)
	if err != nil {
		return err
	}
	if err := n.Store.Set(ctx, pass); err != nil {
		return err
	}

	changes := make(map[string]Change, len(encoded))
	for k, v := range encoded {
		if old, ok := before[k]; ok && bytes.Equal(old, v) {
			continue
		}
		changes[k] = Change{OldValue: before[k], NewValue: v}
	}
	if len(changes) > 0 {
		n.publish(ChangeSet{Changes: changes})
	}
	return nil
}

func (n *Notifier) Remove(ctx context.Context, keys ...string) error {
	before, err := n.Store.Get(ctx, keys...)
	if err != nil {
		return err
	}
	if err := n.Store.Remove(ctx, keys...); err != nil {
		return err
	}
	if len(before) == 0 {
		return nil
	}
	changes := make(map[string]Change, len(before))
	for k, v := range before {
		changes[k] = Change{OldValue: v}
	}
	n.publish(ChangeSet{Changes: changes})
	return nil
}

func (n *Notifier) Clear(ctx context.Context) error {
	if err := n.Store.Clear(ctx); err != nil {
		return err
	}
	n.publish(ChangeSet{Cleared: true})
	return nil
}

func (n *Notifier) publish(cs ChangeSet) {
	cs.ID = uuid.New().String()
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- cs:
		default:
		}
	}
}
