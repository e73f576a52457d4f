package prompt

import (
	"context"
	"log"
)

// DefaultCollectionName names the collection seeded on first run.
const DefaultCollectionName = "First Prompt Collection"

var defaultPrompts = []string{
	"Explain [quantum physics] like I'm five years old.",
	"Give me a pros and cons list of [moving to Berlin, Germany].",
	"Make this email more professional: ['Hey, just checking if you got a chance to look at the thing I sent?]'",
	"Brainstorm YouTube video ideas about [personal finance for beginners].",
	"Summarize the following article in bullet points: [paste article here]",
}

// DefaultCollection returns the seeded example collection stamped with now.
func DefaultCollection(now Timestamp) Collection {
	prompts := make([]Prompt, len(defaultPrompts))
	for i, text := range defaultPrompts {
		prompts[i] = NewPrompt(text, now, false)
	}
	return Collection{Name: DefaultCollectionName, Created: now, Updated: now, Prompts: prompts}
}

// needsDefaults is the first-run predicate: setup has never run, there are no
// collections and no numeric active index.
func needsDefaults(installed bool, cols []Collection, activeOK bool) bool {
	return !installed && len(cols) == 0 && !activeOK
}

// InitializeDefaultsIfFirstTime seeds the default collection and makes it active
// on a fresh install, and reports whether it did. Setup runs once: it leaves an
// installed marker, so deleting every collection later does not bring the default
// back. A store that already holds collections from before the marker existed is
// only marked.
func (m *Manager) InitializeDefaultsIfFirstTime(ctx context.Context) (bool, error) {
	raw, err := m.store.Get(ctx, KeyInstalled, KeyCollections, KeyActiveCollectionIndex)
	if err != nil {
		return false, err
	}
	if _, installed := raw[KeyInstalled]; installed {
		return false, nil
	}
	cols, err := decodeCollections(raw)
	if err != nil {
		return false, err
	}
	_, activeOK := decodeActiveIndex(raw)
	now := m.timestamp()
	if !needsDefaults(false, cols, activeOK) {
		return false, m.store.Set(ctx, map[string]any{KeyInstalled: now})
	}

	err = m.store.Set(ctx, map[string]any{
		KeyCollections:           []Collection{DefaultCollection(now)},
		KeyActiveCollectionIndex: 0,
		KeyCollectionToggleState: true,
		KeyInstalled:             now,
	})
	if err != nil {
		return false, err
	}
	log.Printf("seeded %q as the active collection", DefaultCollectionName)
	return true, nil
}
