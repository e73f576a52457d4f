package prompt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPromptDecodesBothRepresentations(t *testing.T) {
	var prompts []Prompt
	require.NoError(t, json.Unmarshal([]byte(`["bare", {"text":"rich","added":12.0}, {"text":"done","added":3,"done":true}]`), &prompts))

	require.True(t, prompts[0].IsBare())
	require.Equal(t, "bare", prompts[0].Text)
	require.Equal(t, NewPrompt("rich", 12, false), prompts[1])
	require.Equal(t, NewPrompt("done", 3, true), prompts[2])
}

func TestPromptNormalize(t *testing.T) {
	bare := BarePrompt("x")
	rich := bare.Normalize(42)
	require.False(t, rich.IsBare())
	require.Equal(t, Timestamp(42), rich.Added)

	already := NewPrompt("y", 1, true)
	require.Equal(t, already, already.Normalize(42))
}

func TestNeedsDefaults(t *testing.T) {
	one := []Collection{{Name: "A"}}
	require.True(t, needsDefaults(false, nil, false))
	require.False(t, needsDefaults(true, nil, false))
	require.False(t, needsDefaults(false, one, false))
	require.False(t, needsDefaults(false, nil, true))
}

func TestRecordPromptKeepsZeroAdded(t *testing.T) {
	data, err := json.Marshal(NewPrompt("x", 0, false))
	require.NoError(t, err)
	require.JSONEq(t, `{"text":"x","added":0,"done":false}`, string(data))
}

func TestPushBounded(t *testing.T) {
	list := []string{"a", "b", "c"}
	require.Equal(t, []string{"b", "c", "d"}, pushBounded(list, "d", 3))
	require.Equal(t, []string{"a", "b", "c", "d"}, pushBounded([]string{"a", "b", "c"}, "d", 5))
}

func TestThemeOpposite(t *testing.T) {
	require.Equal(t, ThemeDark, ThemeLight.Opposite())
	require.Equal(t, ThemeLight, ThemeDark.Opposite())
	require.False(t, Theme("").Valid())
}
