package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"prompt-collector/prompt"
)

type fakeClipboard struct {
	text     string
	failures int
	writes   int
}

func (c *fakeClipboard) ReadAll() (string, error) {
	return c.text, nil
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.writes++
	if c.failures > 0 {
		c.failures--
		return errors.New("clipboard busy")
	}
	c.text = text
	return nil
}

// useTempStore points every command at a fresh file store.
func useTempStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.json")
	t.Setenv("PROMPT_STORE", "file")
	t.Setenv("PROMPT_DATA_FILE", path)
	t.Setenv("PROMPT_THEME_SYSTEM_DARK", "false")
	t.Setenv("PROMPT_CLIPBOARD_RETRIES", "2")
	clipboardRetryDelay = 0
	return path
}

func run(t *testing.T, clip Clipboard, args ...string) (string, error) {
	t.Helper()
	root, a := newRootCmd(clip)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := execute(root, a)
	return out.String(), err
}

func mustRun(t *testing.T, clip Clipboard, args ...string) string {
	t.Helper()
	out, err := run(t, clip, args...)
	require.NoError(t, err, out)
	return out
}

func TestFirstRunSeedsDefaultCollection(t *testing.T) {
	useTempStore(t)
	clip := &fakeClipboard{}

	out := mustRun(t, clip, "active")
	require.Contains(t, out, prompt.DefaultCollectionName)
	require.Contains(t, out, "(active)")

	// A second start leaves the seeded state alone.
	out = mustRun(t, clip, "collection")
	require.Contains(t, out, "Collections (1)")
}

func TestBufferCommands(t *testing.T) {
	useTempStore(t)
	clip := &fakeClipboard{}

	mustRun(t, clip, "buffer", "add", "first", "prompt")
	out := mustRun(t, clip, "buffer", "add", "second")
	require.Less(t, strings.Index(out, "second"), strings.Index(out, "first prompt"))

	_, err := run(t, clip, "buffer", "add", "second")
	require.Error(t, err)

	out = mustRun(t, clip, "buffer", "edit", "1", "first edited")
	require.Less(t, strings.Index(out, "first edited"), strings.Index(out, "second"))

	out = mustRun(t, clip, "buffer", "delete", "0")
	require.NotContains(t, out, "first edited")

	_, err = run(t, clip, "buffer", "delete", "x")
	require.Error(t, err)
}

func TestBufferPasteAndCopy(t *testing.T) {
	useTempStore(t)
	clip := &fakeClipboard{text: "from clipboard"}

	out := mustRun(t, clip, "buffer", "paste")
	require.Contains(t, out, "from clipboard")

	clip.text = "   "
	_, err := run(t, clip, "buffer", "paste")
	require.Error(t, err)

	clip.failures = 2
	mustRun(t, clip, "buffer", "copy", "0")
	require.Equal(t, "from clipboard", clip.text)
	require.Equal(t, 3, clip.writes)
}

func TestCopyGivesUpAfterRetries(t *testing.T) {
	clipboardRetryDelay = 0
	clip := &fakeClipboard{failures: 5}
	err := copyText(clip, "x", 2)
	require.Error(t, err)
	require.Equal(t, 3, clip.writes)
}

func TestCollectionCommands(t *testing.T) {
	useTempStore(t)
	clip := &fakeClipboard{}

	mustRun(t, clip, "collection", "create", "Work")
	out := mustRun(t, clip, "collection", "add", "1", "write", "the", "report")
	require.Contains(t, out, "[ ] write the report")

	out = mustRun(t, clip, "collection", "done", "1", "0")
	require.Contains(t, out, "[x] write the report")
	out = mustRun(t, clip, "collection", "done", "--undo", "1", "0")
	require.Contains(t, out, "[ ] write the report")

	mustRun(t, clip, "collection", "add", "1", "second")
	out = mustRun(t, clip, "collection", "move", "1", "1", "0")
	require.Less(t, strings.Index(out, "second"), strings.Index(out, "write the report"))

	out = mustRun(t, clip, "collection", "rename", "1", "Office")
	require.Contains(t, out, "Office")

	_, err := run(t, clip, "collection", "create", "Office")
	require.Error(t, err)

	mustRun(t, clip, "collection", "copy", "1", "0")
	require.Equal(t, "second", clip.text)

	out = mustRun(t, clip, "collection", "delete", "1")
	require.Contains(t, out, "Collections (1)")
}

func TestSaveToCollectionActivatesNewCollection(t *testing.T) {
	useTempStore(t)
	clip := &fakeClipboard{}

	out := mustRun(t, clip, "collection", "save", "  Ideas ", "a new idea")
	require.Contains(t, out, `Created collection "Ideas"`)
	require.Contains(t, out, "(active)")

	out = mustRun(t, clip, "active", "add", "another")
	require.Contains(t, out, "Ideas")
	require.Contains(t, out, "another")
}

func TestActiveClearAndSet(t *testing.T) {
	useTempStore(t)
	clip := &fakeClipboard{text: "pasted prompt"}

	out := mustRun(t, clip, "active", "set", "none")
	require.Contains(t, out, "No active collection")

	// The cleared selection survives the next start.
	out = mustRun(t, clip, "collection")
	require.Contains(t, out, "Collections (1)")
	require.NotContains(t, out, "* 0")
	_, err := run(t, clip, "active", "add", "x")
	require.Error(t, err)

	mustRun(t, clip, "collection", "create", "Second")
	_, err = run(t, clip, "active", "set", "5")
	require.Error(t, err)

	out = mustRun(t, clip, "active", "set", "0")
	require.Contains(t, out, "(active)")
	out = mustRun(t, clip, "active", "paste")
	require.Contains(t, out, "pasted prompt")
}

func TestExportImportRoundTrip(t *testing.T) {
	useTempStore(t)
	clip := &fakeClipboard{}
	dir := t.TempDir()
	file := filepath.Join(dir, "first.json")

	mustRun(t, clip, "export", "0", "--out", file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), prompt.DefaultCollectionName)

	out := mustRun(t, clip, "import", file)
	require.Contains(t, out, `"`+prompt.DefaultCollectionName+` (1)" as collection 1 with 5 prompts`)

	_, err = run(t, clip, "import", "--conflict", "reject", file)
	require.Error(t, err)

	out = mustRun(t, clip, "export", "--all", "--format", "txt", "--out", filepath.Join(dir, "all"))
	require.Contains(t, out, "Wrote")
	entries, err := os.ReadDir(filepath.Join(dir, "all"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestSearchCommand(t *testing.T) {
	useTempStore(t)
	clip := &fakeClipboard{}
	mustRun(t, clip, "buffer", "add", "Explain recursion")

	out := mustRun(t, clip, "search", "EXPLAIN")
	require.Contains(t, out, "2 results")
	require.Contains(t, out, "Collection: "+prompt.DefaultCollectionName)
}

func TestThemeCommands(t *testing.T) {
	useTempStore(t)
	clip := &fakeClipboard{}

	require.Equal(t, "light (system)\n", mustRun(t, clip, "theme"))
	require.Equal(t, "dark\n", mustRun(t, clip, "theme", "toggle"))
	require.Equal(t, "dark\n", mustRun(t, clip, "theme"))

	_, err := run(t, clip, "theme", "set", "sepia")
	require.Error(t, err)

	require.Equal(t, "light (system)\n", mustRun(t, clip, "theme", "clear"))
}

func TestToggleCommand(t *testing.T) {
	useTempStore(t)
	clip := &fakeClipboard{}

	require.Equal(t, "buffer collapsed\n", mustRun(t, clip, "toggle", "buffer"))
	require.Equal(t, "collection collapsed\n", mustRun(t, clip, "toggle", "collection", "off"))

	out := mustRun(t, clip, "state")
	require.NotContains(t, out, "Buffer (")
	require.NotContains(t, out, "Collections (")
	require.Contains(t, out, "buffer collapsed")

	_, err := run(t, clip, "toggle", "sidebar")
	require.Error(t, err)
}

func TestEditModeShowsFullText(t *testing.T) {
	useTempStore(t)
	clip := &fakeClipboard{}
	long := strings.Repeat("word ", 20)

	out := mustRun(t, clip, "buffer", "add", long)
	require.Contains(t, out, "...")

	out = mustRun(t, clip, "--edit", "buffer")
	require.Contains(t, out, strings.TrimSpace(long))
}

func TestSQLiteBackend(t *testing.T) {
	t.Setenv("PROMPT_STORE", "sqlite")
	t.Setenv("PROMPT_SQLITE_PATH", filepath.Join(t.TempDir(), "nested", "prompts.db"))
	t.Setenv("PROMPT_THEME_SYSTEM_DARK", "true")
	clip := &fakeClipboard{}

	mustRun(t, clip, "buffer", "add", "kept in sqlite")
	out := mustRun(t, clip, "buffer")
	require.Contains(t, out, "kept in sqlite")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 50))
	require.Equal(t, "a b", truncate("a\n  b", 50))
	require.Equal(t, "abc...", truncate("abcdef", 3))
}

func TestDeletingActiveDefaultCollectionSticks(t *testing.T) {
	useTempStore(t)
	clip := &fakeClipboard{}

	mustRun(t, clip, "collection", "create", "Work")
	mustRun(t, clip, "collection", "delete", "0")

	out := mustRun(t, clip, "collection")
	require.Contains(t, out, "Collections (1)")
	require.Contains(t, out, "Work")
	require.NotContains(t, out, prompt.DefaultCollectionName)
}

func TestStoreClosedAfterFailedCommand(t *testing.T) {
	t.Setenv("PROMPT_STORE", "sqlite")
	t.Setenv("PROMPT_SQLITE_PATH", filepath.Join(t.TempDir(), "prompts.db"))
	t.Setenv("PROMPT_THEME_SYSTEM_DARK", "false")

	root, a := newRootCmd(&fakeClipboard{})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"buffer", "delete", "9"})

	require.Error(t, execute(root, a))
	require.Nil(t, a.closer, "store should be released after a failed command")
}
