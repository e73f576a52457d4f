package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// ConflictPolicy decides what happens when an imported collection's name is
// already in use.
type ConflictPolicy string

const (
	// ConflictOverwrite replaces the existing collection in place.
	ConflictOverwrite ConflictPolicy = "overwrite"
	// ConflictRename appends the import under a " (n)" suffixed name.
	ConflictRename ConflictPolicy = "rename"
	// ConflictReject fails with a DuplicateError so the caller can ask the user.
	ConflictReject ConflictPolicy = "reject"
)

func (p ConflictPolicy) Valid() bool {
	switch p {
	case ConflictOverwrite, ConflictRename, ConflictReject:
		return true
	}
	return false
}

// Format is an export document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "txt"
)

// ParseCollectionJSON decodes an exported collection document and validates it.
func ParseCollectionJSON(data []byte, now time.Time) (Collection, error) {
	var candidate any
	if err := json.Unmarshal(data, &candidate); err != nil {
		return Collection{}, invalid("invalid collection JSON: %v", err)
	}
	return ValidateImportedCollection(candidate, now)
}

// ValidateImportedCollection checks a decoded JSON value against the collection
// shape and returns it normalized: every prompt in record form with trimmed text,
// missing added/created/updated stamps filled with now, done coerced to a bool.
func ValidateImportedCollection(candidate any, now time.Time) (Collection, error) {
	obj, ok := candidate.(map[string]any)
	if !ok {
		return Collection{}, invalid("collection must be a JSON object")
	}

	name, _ := obj["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return Collection{}, invalid("collection must have a non-empty name")
	}
	if utf8.RuneCountInString(name) > MaxCollectionNameLength {
		return Collection{}, invalid("collection name is longer than %d characters", MaxCollectionNameLength)
	}

	entries, ok := obj["prompts"].([]any)
	if !ok {
		return Collection{}, invalid("collection must have a prompts array")
	}
	if len(entries) > MaxPromptsPerCollection {
		return Collection{}, invalid("collection has %d prompts, the limit is %d", len(entries), MaxPromptsPerCollection)
	}

	stamp := TimestampOf(now)
	prompts := make([]Prompt, 0, len(entries))
	for i, entry := range entries {
		switch v := entry.(type) {
		case string:
			text := strings.TrimSpace(v)
			if text == "" {
				return Collection{}, invalid("prompt %d is empty", i)
			}
			prompts = append(prompts, NewPrompt(text, stamp, false))
		case map[string]any:
			text, _ := v["text"].(string)
			text = strings.TrimSpace(text)
			if text == "" {
				return Collection{}, invalid("prompt %d has no text", i)
			}
			added, ok := timestampValue(v["added"])
			if !ok {
				added = stamp
			}
			prompts = append(prompts, NewPrompt(text, added, truthy(v["done"])))
		default:
			return Collection{}, invalid("prompt %d must be a string or an object with text", i)
		}
	}

	created, ok := timestampValue(obj["created"])
	if !ok {
		created = stamp
	}
	updated, ok := timestampValue(obj["updated"])
	if !ok {
		updated = stamp
	}
	return Collection{Name: name, Created: created, Updated: updated, Prompts: prompts}, nil
}

// MergeImportedCollection returns existing with imported added according to
// policy, plus the index the import ended up at. existing is not modified.
func MergeImportedCollection(existing []Collection, imported Collection, policy ConflictPolicy) ([]Collection, int, error) {
	out := make([]Collection, len(existing), len(existing)+1)
	copy(out, existing)

	idx := indexByName(out, imported.Name)
	if idx < 0 {
		return append(out, imported), len(out), nil
	}
	switch policy {
	case ConflictOverwrite:
		out[idx] = imported
		return out, idx, nil
	case ConflictRename:
		imported.Name = UniqueName(out, imported.Name)
		return append(out, imported), len(out), nil
	case ConflictReject:
		return nil, 0, duplicate("a collection named %q already exists", imported.Name)
	default:
		return nil, 0, invalid("unknown conflict policy %q", policy)
	}
}

// UniqueName returns name with the smallest " (n)" suffix, n >= 1, that no
// collection uses. The base is shortened when needed to stay within the name limit.
func UniqueName(cols []Collection, name string) string {
	for n := 1; ; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if room := MaxCollectionNameLength - utf8.RuneCountInString(suffix); len(base) > room {
			base = base[:room]
		}
		candidate := string(base) + suffix
		if indexByName(cols, candidate) < 0 {
			return candidate
		}
	}
}

// ImportCollection parses data, validates it and merges it into the stored
// collections in a single write. Nothing is written when any step fails.
func (m *Manager) ImportCollection(ctx context.Context, data []byte, policy ConflictPolicy) (Collection, int, error) {
	if !policy.Valid() {
		return Collection{}, 0, invalid("unknown conflict policy %q", policy)
	}
	imported, err := ParseCollectionJSON(data, m.now())
	if err != nil {
		return Collection{}, 0, err
	}
	cols, err := m.Collections(ctx)
	if err != nil {
		return Collection{}, 0, err
	}
	merged, idx, err := MergeImportedCollection(cols, imported, policy)
	if err != nil {
		return Collection{}, 0, err
	}
	if err := m.store.Set(ctx, map[string]any{KeyCollections: merged}); err != nil {
		return Collection{}, 0, err
	}
	return merged[idx], idx, nil
}

// ExportJSON serializes the collection structure as stored.
func ExportJSON(c Collection) ([]byte, error) {
	if c.Prompts == nil {
		c.Prompts = []Prompt{}
	}
	return json.Marshal(c)
}

// ExportText renders the collection name followed by one prompt text per line.
// Done flags and timestamps are dropped.
func ExportText(c Collection) string {
	lines := append([]string{c.Name}, c.Texts()...)
	return strings.Join(lines, "\n")
}

// Export renders c in the given format.
func Export(c Collection, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportJSON(c)
	case FormatText:
		return []byte(ExportText(c)), nil
	default:
		return nil, invalid("unsupported export format %q", format)
	}
}

// ExportFileName is the suggested file name for an exported collection.
func ExportFileName(c Collection, format Format) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(c.Name)
	return name + "." + string(format)
}

// ExportedFile is one rendered collection document.
type ExportedFile struct {
	Name string
	Data []byte
}

// ExportAll renders every stored collection.
func (m *Manager) ExportAll(ctx context.Context, format Format) ([]ExportedFile, error) {
	cols, err := m.Collections(ctx)
	if err != nil {
		return nil, err
	}
	files := make([]ExportedFile, 0, len(cols))
	used := make(map[string]bool, len(cols))
	for _, c := range cols {
		data, err := Export(c, format)
		if err != nil {
			return nil, err
		}
		name := uniqueFileName(used, ExportFileName(c, format), format)
		used[name] = true
		files = append(files, ExportedFile{Name: name, Data: data})
	}
	return files, nil
}

// uniqueFileName adds the smallest " (n)" suffix before the extension that keeps
// name out of used. Different collection names can map to the same file name.
func uniqueFileName(used map[string]bool, name string, format Format) string {
	if !used[name] {
		return name
	}
	base := strings.TrimSuffix(name, "."+string(format))
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d).%s", base, n, format)
		if !used[candidate] {
			return candidate
		}
	}
}

func timestampValue(v any) (Timestamp, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return Timestamp(math.Round(f)), true
}

// truthy coerces a decoded JSON value to a bool the way a loosely typed exporter
// would have meant it.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}
