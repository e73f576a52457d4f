package prompt

import "context"

// Toggles returns the expand/collapse preferences. Unset means expanded.
func (m *Manager) Toggles(ctx context.Context) (Toggles, error) {
	raw, err := m.store.Get(ctx, KeyBufferToggleState, KeyCollectionToggleState)
	if err != nil {
		return Toggles{}, err
	}
	return decodeToggles(raw)
}

func (m *Manager) SetBufferToggleState(ctx context.Context, expanded bool) error {
	return m.store.Set(ctx, map[string]any{KeyBufferToggleState: expanded})
}

func (m *Manager) SetCollectionToggleState(ctx context.Context, expanded bool) error {
	return m.store.Set(ctx, map[string]any{KeyCollectionToggleState: expanded})
}

// Theme returns the stored theme and whether one was explicitly chosen.
func (m *Manager) Theme(ctx context.Context) (Theme, bool, error) {
	raw, err := m.store.Get(ctx, KeyTheme)
	if err != nil {
		return "", false, err
	}
	t, ok := decodeTheme(raw)
	return t, ok, nil
}

// ResolveTheme returns the explicit theme, or the system preference when none is
// stored.
func (m *Manager) ResolveTheme(ctx context.Context, systemDark bool) (Theme, error) {
	t, ok, err := m.Theme(ctx)
	if err != nil {
		return "", err
	}
	if ok {
		return t, nil
	}
	return SystemTheme(systemDark), nil
}

func (m *Manager) SetTheme(ctx context.Context, t Theme) error {
	if !t.Valid() {
		return invalid("unknown theme %q", t)
	}
	return m.store.Set(ctx, map[string]any{KeyTheme: t})
}

// ClearTheme forgets the explicit choice so the system preference applies again.
func (m *Manager) ClearTheme(ctx context.Context) error {
	return m.store.Remove(ctx, KeyTheme)
}

// ToggleTheme persists the opposite of the currently effective theme and returns it.
func (m *Manager) ToggleTheme(ctx context.Context, systemDark bool) (Theme, error) {
	current, err := m.ResolveTheme(ctx, systemDark)
	if err != nil {
		return "", err
	}
	next := current.Opposite()
	if err := m.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// SystemTheme maps a dark-background preference to a theme.
func SystemTheme(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}
