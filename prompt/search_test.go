package prompt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"prompt-collector/prompt"
)

func TestSearchAcrossBufferAndCollections(t *testing.T) {
	m, store := newTestManager(t)
	seed(t, store, map[string]any{
		prompt.KeyBuffer: []string{"Summarize THIS", "unrelated"},
		prompt.KeyCollections: []prompt.Collection{
			{Name: "Work", Prompts: []prompt.Prompt{prompt.BarePrompt("nothing"), prompt.NewPrompt("summarize the meeting", 1, false)}},
		},
	})

	results, err := m.Search(context.Background(), "summarize")
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, prompt.SearchResult{Text: "Summarize THIS", Source: "Buffer", CollectionIndex: -1, PromptIndex: -1}, results[0])
	require.Equal(t, prompt.SearchResult{Text: "summarize the meeting", Source: "Collection: Work", CollectionIndex: 0, PromptIndex: 1}, results[1])
}

func TestSearchEmptyTerm(t *testing.T) {
	m, store := newTestManager(t)
	seed(t, store, map[string]any{prompt.KeyBuffer: []string{"a"}})

	results, err := m.Search(context.Background(), "  ")
	require.NoError(t, err)
	require.Empty(t, results)
}
