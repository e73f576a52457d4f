package prompt

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"
)

// Collections returns every collection in stored order.
func (m *Manager) Collections(ctx context.Context) ([]Collection, error) {
	raw, err := m.store.Get(ctx, KeyCollections)
	if err != nil {
		return nil, err
	}
	return decodeCollections(raw)
}

// Collection returns the collection at index.
func (m *Manager) Collection(ctx context.Context, index int) (Collection, error) {
	cols, err := m.Collections(ctx)
	if err != nil {
		return Collection{}, err
	}
	if !inRange(index, len(cols)) {
		return Collection{}, collectionNotFound(index)
	}
	return cols[index], nil
}

// CreateCollection appends an empty collection named name.
func (m *Manager) CreateCollection(ctx context.Context, name string) (Collection, error) {
	name, err := validateName(name)
	if err != nil {
		return Collection{}, err
	}
	cols, err := m.Collections(ctx)
	if err != nil {
		return Collection{}, err
	}
	if nameTaken(cols, name, -1) {
		return Collection{}, duplicate("a collection named %q already exists", name)
	}

	now := m.timestamp()
	c := Collection{Name: name, Created: now, Updated: now, Prompts: []Prompt{}}
	cols = append(cols, c)
	if err := m.store.Set(ctx, map[string]any{KeyCollections: cols}); err != nil {
		return Collection{}, err
	}
	return c, nil
}

// RenameCollection renames the collection at index. Names are compared
// case-sensitively against the other collections. Renaming to the current name
// changes nothing.
func (m *Manager) RenameCollection(ctx context.Context, index int, newName string) error {
	name, err := validateName(newName)
	if err != nil {
		return err
	}
	cols, err := m.Collections(ctx)
	if err != nil {
		return err
	}
	if !inRange(index, len(cols)) {
		return collectionNotFound(index)
	}
	if cols[index].Name == name {
		return nil
	}
	if nameTaken(cols, name, index) {
		return duplicate("a collection named %q already exists", name)
	}
	cols[index].Name = name
	cols[index].Updated = m.timestamp()
	return m.store.Set(ctx, map[string]any{KeyCollections: cols})
}

// DeleteCollection removes the collection at index and keeps the active index
// pointing at the same collection: cleared if it was the deleted one, shifted
// down by one if it came after it.
func (m *Manager) DeleteCollection(ctx context.Context, index int) error {
	raw, err := m.store.Get(ctx, KeyCollections, KeyActiveCollectionIndex)
	if err != nil {
		return err
	}
	cols, err := decodeCollections(raw)
	if err != nil {
		return err
	}
	if !inRange(index, len(cols)) {
		return collectionNotFound(index)
	}
	cols = slices.Delete(cols, index, index+1)

	updates := map[string]any{KeyCollections: cols}
	if active, ok := decodeActiveIndex(raw); ok {
		switch {
		case active == index:
			updates[KeyActiveCollectionIndex] = nil
		case active > index:
			updates[KeyActiveCollectionIndex] = active - 1
		}
	}
	return m.store.Set(ctx, updates)
}

// AddPromptToCollection appends text as a new, not-done prompt.
func (m *Manager) AddPromptToCollection(ctx context.Context, collectionIndex int, text string) error {
	now := m.timestamp()
	return m.mutateCollection(ctx, collectionIndex, func(c *Collection) (bool, error) {
		return true, appendPrompt(c, text, now)
	})
}

// EditCollectionPrompt replaces a prompt's text, keeping its representation,
// added time and done flag.
func (m *Manager) EditCollectionPrompt(ctx context.Context, collectionIndex, promptIndex int, newText string) error {
	text := strings.TrimSpace(newText)
	if text == "" {
		return invalid("prompt text is empty")
	}
	return m.mutateCollection(ctx, collectionIndex, func(c *Collection) (bool, error) {
		if !inRange(promptIndex, len(c.Prompts)) {
			return false, promptNotFound(collectionIndex, promptIndex)
		}
		c.Prompts[promptIndex].Text = text
		return true, nil
	})
}

// SetPromptDone marks a prompt done or not done, converting a bare prompt to
// record form first.
func (m *Manager) SetPromptDone(ctx context.Context, collectionIndex, promptIndex int, done bool) error {
	now := m.timestamp()
	return m.mutateCollection(ctx, collectionIndex, func(c *Collection) (bool, error) {
		if !inRange(promptIndex, len(c.Prompts)) {
			return false, promptNotFound(collectionIndex, promptIndex)
		}
		p := c.Prompts[promptIndex].Normalize(now)
		p.Done = done
		c.Prompts[promptIndex] = p
		return true, nil
	})
}

// ResetCollectionDoneFlags clears every done flag. A collection with nothing done
// is left untouched.
func (m *Manager) ResetCollectionDoneFlags(ctx context.Context, collectionIndex int) error {
	return m.mutateCollection(ctx, collectionIndex, func(c *Collection) (bool, error) {
		if !c.HasDone() {
			return false, nil
		}
		for i := range c.Prompts {
			c.Prompts[i].Done = false
		}
		return true, nil
	})
}

// DeletePromptFromCollection removes one prompt.
func (m *Manager) DeletePromptFromCollection(ctx context.Context, collectionIndex, promptIndex int) error {
	return m.mutateCollection(ctx, collectionIndex, func(c *Collection) (bool, error) {
		if !inRange(promptIndex, len(c.Prompts)) {
			return false, promptNotFound(collectionIndex, promptIndex)
		}
		c.Prompts = slices.Delete(c.Prompts, promptIndex, promptIndex+1)
		return true, nil
	})
}

// ReorderPrompt moves the prompt at from so that it ends up at position to.
func (m *Manager) ReorderPrompt(ctx context.Context, collectionIndex, from, to int) error {
	return m.mutateCollection(ctx, collectionIndex, func(c *Collection) (bool, error) {
		if !inRange(from, len(c.Prompts)) {
			return false, promptNotFound(collectionIndex, from)
		}
		if !inRange(to, len(c.Prompts)) {
			return false, promptNotFound(collectionIndex, to)
		}
		if from == to {
			return false, nil
		}
		moved := c.Prompts[from]
		c.Prompts = slices.Delete(c.Prompts, from, from+1)
		c.Prompts = slices.Insert(c.Prompts, to, moved)
		return true, nil
	})
}

// ActiveCollectionIndex returns the stored active index, if any.
func (m *Manager) ActiveCollectionIndex(ctx context.Context) (int, bool, error) {
	raw, err := m.store.Get(ctx, KeyActiveCollectionIndex)
	if err != nil {
		return 0, false, err
	}
	idx, ok := decodeActiveIndex(raw)
	return idx, ok, nil
}

// SetActiveCollectionIndex makes the collection at *index active, or clears the
// active collection when index is nil. Activating a collection expands its view.
func (m *Manager) SetActiveCollectionIndex(ctx context.Context, index *int) error {
	if index == nil {
		return m.store.Set(ctx, map[string]any{KeyActiveCollectionIndex: nil})
	}
	cols, err := m.Collections(ctx)
	if err != nil {
		return err
	}
	if !inRange(*index, len(cols)) {
		return invalid("collection index %d is out of range", *index)
	}
	return m.store.Set(ctx, map[string]any{
		KeyActiveCollectionIndex: *index,
		KeyCollectionToggleState: true,
	})
}

// ActiveCollection returns the active collection and its index.
func (m *Manager) ActiveCollection(ctx context.Context) (Collection, int, error) {
	raw, err := m.store.Get(ctx, KeyCollections, KeyActiveCollectionIndex)
	if err != nil {
		return Collection{}, 0, err
	}
	cols, err := decodeCollections(raw)
	if err != nil {
		return Collection{}, 0, err
	}
	idx, ok := decodeActiveIndex(raw)
	if !ok || !inRange(idx, len(cols)) {
		return Collection{}, 0, notFound("no active collection selected")
	}
	return cols[idx], idx, nil
}

// AddToActiveCollection appends text to the active collection.
func (m *Manager) AddToActiveCollection(ctx context.Context, text string) (int, error) {
	_, idx, err := m.ActiveCollection(ctx)
	if err != nil {
		return 0, err
	}
	return idx, m.AddPromptToCollection(ctx, idx, text)
}

// SaveToCollection adds text to the collection called name. If there is no such
// collection it is created holding just that prompt and becomes the active one.
// It returns the collection's index and whether it was created.
func (m *Manager) SaveToCollection(ctx context.Context, text, name string) (int, bool, error) {
	name, err := validateName(name)
	if err != nil {
		return 0, false, err
	}
	cols, err := m.Collections(ctx)
	if err != nil {
		return 0, false, err
	}
	now := m.timestamp()

	if idx := indexByName(cols, name); idx >= 0 {
		c := cols[idx].clone()
		if err := appendPrompt(&c, text, now); err != nil {
			return 0, false, err
		}
		c.Updated = now
		cols[idx] = c
		return idx, false, m.store.Set(ctx, map[string]any{KeyCollections: cols})
	}

	c := Collection{Name: name, Created: now, Updated: now, Prompts: []Prompt{}}
	if err := appendPrompt(&c, text, now); err != nil {
		return 0, false, err
	}
	cols = append(cols, c)
	idx := len(cols) - 1
	return idx, true, m.store.Set(ctx, map[string]any{
		KeyCollections:           cols,
		KeyActiveCollectionIndex: idx,
		KeyCollectionToggleState: true,
	})
}

// mutateCollection applies fn to a copy of the collection at index and writes the
// collections back when fn reports a change. Nothing is written on error.
func (m *Manager) mutateCollection(ctx context.Context, index int, fn func(c *Collection) (bool, error)) error {
	cols, err := m.Collections(ctx)
	if err != nil {
		return err
	}
	if !inRange(index, len(cols)) {
		return collectionNotFound(index)
	}
	c := cols[index].clone()
	changed, err := fn(&c)
	if err != nil || !changed {
		return err
	}
	c.Updated = m.timestamp()
	cols[index] = c
	return m.store.Set(ctx, map[string]any{KeyCollections: cols})
}

func appendPrompt(c *Collection, text string, now Timestamp) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return invalid("prompt text is empty")
	}
	if len(c.Prompts) >= MaxPromptsPerCollection {
		return invalid("collection %q already holds %d prompts", c.Name, MaxPromptsPerCollection)
	}
	c.Prompts = append(c.Prompts, NewPrompt(text, now, false))
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("collection name is empty")
	}
	if utf8.RuneCountInString(name) > MaxCollectionNameLength {
		return "", invalid("collection name is longer than %d characters", MaxCollectionNameLength)
	}
	return name, nil
}

// nameTaken reports whether a collection other than except is called name.
func nameTaken(cols []Collection, name string, except int) bool {
	for i, c := range cols {
		if i != except && c.Name == name {
			return true
		}
	}
	return false
}

func indexByName(cols []Collection, name string) int {
	for i, c := range cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}

func collectionNotFound(index int) error {
	return notFound("collection %d not found", index)
}

func promptNotFound(collectionIndex, promptIndex int) error {
	return notFound("prompt %d not found in collection %d", promptIndex, collectionIndex)
}
