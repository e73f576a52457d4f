package prompt

import (
	"context"
	"slices"
	"strings"
)

// Buffer returns the rolling buffer, oldest first.
func (m *Manager) Buffer(ctx context.Context) ([]string, error) {
	raw, err := m.store.Get(ctx, KeyBuffer)
	if err != nil {
		return nil, err
	}
	return decodeBuffer(raw)
}

// BufferDisplay returns the buffer most recent first. Display indices used by
// DeleteFromBuffer and EditBuffer refer to this order.
func (m *Manager) BufferDisplay(ctx context.Context) ([]string, error) {
	buffer, err := m.Buffer(ctx)
	if err != nil {
		return nil, err
	}
	slices.Reverse(buffer)
	return buffer, nil
}

// AddToBuffer appends text as the most recent entry, evicting the oldest entries
// past BufferCapacity. Exact duplicates are rejected.
func (m *Manager) AddToBuffer(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return invalid("prompt text is empty")
	}
	buffer, err := m.Buffer(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(buffer, text) {
		return duplicate("this text already exists in the buffer")
	}
	buffer = pushBounded(buffer, text, BufferCapacity)
	return m.store.Set(ctx, map[string]any{KeyBuffer: buffer})
}

// DeleteFromBuffer removes the entry at displayIndex.
func (m *Manager) DeleteFromBuffer(ctx context.Context, displayIndex int) error {
	buffer, err := m.Buffer(ctx)
	if err != nil {
		return err
	}
	i, err := storageIndex(len(buffer), displayIndex)
	if err != nil {
		return err
	}
	buffer = slices.Delete(buffer, i, i+1)
	return m.store.Set(ctx, map[string]any{KeyBuffer: buffer})
}

// EditBuffer replaces the entry at displayIndex with the trimmed newText, which
// becomes the most recent entry.
func (m *Manager) EditBuffer(ctx context.Context, displayIndex int, newText string) error {
	text := strings.TrimSpace(newText)
	if text == "" {
		return invalid("prompt text is empty")
	}
	buffer, err := m.Buffer(ctx)
	if err != nil {
		return err
	}
	i, err := storageIndex(len(buffer), displayIndex)
	if err != nil {
		return err
	}
	for j, existing := range buffer {
		if j != i && existing == text {
			return duplicate("this text already exists in the buffer")
		}
	}
	buffer = slices.Delete(buffer, i, i+1)
	buffer = append(buffer, text)
	return m.store.Set(ctx, map[string]any{KeyBuffer: buffer})
}

// storageIndex maps an index into the most-recent-first view onto the stored order.
func storageIndex(length, displayIndex int) (int, error) {
	if displayIndex < 0 || displayIndex >= length {
		return 0, notFound("buffer entry %d not found", displayIndex)
	}
	return length - 1 - displayIndex, nil
}

func pushBounded(list []string, item string, limit int) []string {
	list = append(list, item)
	if len(list) > limit {
		list = list[len(list)-limit:]
	}
	return list
}
