package prompt

import (
	"context"
	"strings"
)

const SourceBuffer = "Buffer"

// SearchResult is one prompt whose text matched a search.
type SearchResult struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	// CollectionIndex and PromptIndex locate collection hits; both are -1 for
	// buffer hits.
	CollectionIndex int `json:"collectionIndex"`
	PromptIndex     int `json:"promptIndex"`
}

// Search returns every buffer entry and collection prompt containing term,
// ignoring case. Buffer hits come first, then collections in order.
func (m *Manager) Search(ctx context.Context, term string) ([]SearchResult, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return []SearchResult{}, nil
	}
	raw, err := m.store.Get(ctx, KeyBuffer, KeyCollections)
	if err != nil {
		return nil, err
	}
	buffer, err := decodeBuffer(raw)
	if err != nil {
		return nil, err
	}
	cols, err := decodeCollections(raw)
	if err != nil {
		return nil, err
	}

	results := []SearchResult{}
	for _, text := range buffer {
		if strings.Contains(strings.ToLower(text), needle) {
			results = append(results, SearchResult{Text: text, Source: SourceBuffer, CollectionIndex: -1, PromptIndex: -1})
		}
	}
	for ci, c := range cols {
		for pi, p := range c.Prompts {
			if strings.Contains(strings.ToLower(p.Text), needle) {
				results = append(results, SearchResult{
					Text:            p.Text,
					Source:          "Collection: " + c.Name,
					CollectionIndex: ci,
					PromptIndex:     pi,
				})
			}
		}
	}
	return results, nil
}
