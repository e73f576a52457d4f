package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Storage keys.
const (
	KeyBuffer                = "buffer"
	KeyCollections           = "collections"
	KeyActiveCollectionIndex = "activeCollectionIndex"
	KeyCollectionToggleState = "collectionToggleState"
	KeyBufferToggleState     = "bufferToggleState"
	KeyTheme                 = "theme"

	// KeyInstalled records when first-run setup ran. It is never cleared.
	KeyInstalled = "installed"
)

const (
	BufferCapacity          = 10
	MaxCollectionNameLength = 100
	MaxPromptsPerCollection = 1000
)

// Timestamp is a point in time in Unix milliseconds, the unit used by exported
// collection files.
type Timestamp int64

func TimestampOf(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t))
}

// UnmarshalJSON accepts integral or fractional numbers and null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	*t = Timestamp(math.Round(f))
	return nil
}

// Prompt is a saved snippet. It is either bare (stored as a plain JSON string, no
// metadata) or a record with an added time and a done flag. Use Normalize to get
// the record form.
type Prompt struct {
	Text  string
	Added Timestamp
	Done  bool

	bare bool
}

type promptRecord struct {
	Text  string    `json:"text"`
	Added Timestamp `json:"added"`
	Done  bool      `json:"done"`
}

// BarePrompt returns a prompt in the plain-string representation.
func BarePrompt(text string) Prompt {
	return Prompt{Text: text, bare: true}
}

// NewPrompt returns a prompt in record form.
func NewPrompt(text string, added Timestamp, done bool) Prompt {
	return Prompt{Text: text, Added: added, Done: done}
}

func (p Prompt) IsBare() bool {
	return p.bare
}

// Normalize converts a bare prompt to record form, stamping it with now.
// Record prompts are returned unchanged.
func (p Prompt) Normalize(now Timestamp) Prompt {
	if !p.bare {
		return p
	}
	return Prompt{Text: p.Text, Added: now}
}

func (p Prompt) MarshalJSON() ([]byte, error) {
	if p.bare {
		return json.Marshal(p.Text)
	}
	return json.Marshal(promptRecord{Text: p.Text, Added: p.Added, Done: p.Done})
}

func (p *Prompt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*p = BarePrompt(text)
		return nil
	}
	var rec promptRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	*p = NewPrompt(rec.Text, rec.Added, rec.Done)
	return nil
}

// Collection is a named, ordered group of prompts.
type Collection struct {
	Name    string    `json:"name"`
	Created Timestamp `json:"created"`
	Updated Timestamp `json:"updated"`
	Prompts []Prompt  `json:"prompts"`
}

// HasDone reports whether any prompt is marked done.
func (c Collection) HasDone() bool {
	for _, p := range c.Prompts {
		if p.Done {
			return true
		}
	}
	return false
}

// Texts returns every prompt's text in order.
func (c Collection) Texts() []string {
	out := make([]string, len(c.Prompts))
	for i, p := range c.Prompts {
		out[i] = p.Text
	}
	return out
}

func (c Collection) clone() Collection {
	prompts := make([]Prompt, len(c.Prompts))
	copy(prompts, c.Prompts)
	c.Prompts = prompts
	return c
}

// Theme is the persisted color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Toggles are the persisted expand/collapse preferences of the two views.
type Toggles struct {
	Buffer     bool `json:"bufferToggleState"`
	Collection bool `json:"collectionToggleState"`
}

// State is every persisted key read at once, for re-rendering after a write.
type State struct {
	Buffer        []string     `json:"buffer"`
	Collections   []Collection `json:"collections"`
	ActiveIndex   *int         `json:"activeCollectionIndex"`
	Toggles       Toggles      `json:"toggles"`
	Theme         Theme        `json:"theme,omitempty"`
	ThemeExplicit bool         `json:"themeExplicit"`
}
