package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"prompt-collector/prompt"
)

// previewLength is how many characters of a prompt a list shows outside edit mode.
const previewLength = 50

// renderOptions is everything a render call depends on besides the data.
type renderOptions struct {
	Theme    prompt.Theme
	EditMode bool
}

type palette struct {
	title  lipgloss.Style
	index  lipgloss.Style
	text   lipgloss.Style
	done   lipgloss.Style
	muted  lipgloss.Style
	active lipgloss.Style
}

func paletteFor(theme prompt.Theme) palette {
	fg, dim, accent := lipgloss.Color("235"), lipgloss.Color("245"), lipgloss.Color("25")
	if theme == prompt.ThemeDark {
		fg, dim, accent = lipgloss.Color("252"), lipgloss.Color("244"), lipgloss.Color("39")
	}
	return palette{
		title:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		index:  lipgloss.NewStyle().Foreground(dim),
		text:   lipgloss.NewStyle().Foreground(fg),
		done:   lipgloss.NewStyle().Foreground(dim).Strikethrough(true),
		muted:  lipgloss.NewStyle().Foreground(dim).Italic(true),
		active: lipgloss.NewStyle().Bold(true).Foreground(accent),
	}
}

type renderer struct {
	opts renderOptions
	p    palette
}

func newRenderer(opts renderOptions) renderer {
	return renderer{opts: opts, p: paletteFor(opts.Theme)}
}

// preview shortens text to previewLength runes unless edit mode is on.
func (r renderer) preview(text string) string {
	if r.opts.EditMode {
		return text
	}
	return truncate(text, previewLength)
}

func truncate(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

func (r renderer) buffer(entries []string) string {
	var b strings.Builder
	b.WriteString(r.p.title.Render(fmt.Sprintf("Buffer (%d/%d)", len(entries), prompt.BufferCapacity)))
	if len(entries) == 0 {
		b.WriteString("\n  " + r.p.muted.Render("empty"))
	}
	for i, text := range entries {
		fmt.Fprintf(&b, "\n  %s %s", r.p.index.Render(fmt.Sprintf("%2d", i)), r.p.text.Render(r.preview(text)))
	}
	return b.String()
}

func (r renderer) collections(cols []prompt.Collection, active *int) string {
	var b strings.Builder
	b.WriteString(r.p.title.Render(fmt.Sprintf("Collections (%d)", len(cols))))
	if len(cols) == 0 {
		b.WriteString("\n  " + r.p.muted.Render("none"))
	}
	for i, c := range cols {
		marker := " "
		name := r.p.text.Render(c.Name)
		if active != nil && *active == i {
			marker = "*"
			name = r.p.active.Render(c.Name)
		}
		fmt.Fprintf(&b, "\n %s%s %s %s", marker, r.p.index.Render(fmt.Sprintf("%2d", i)), name,
			r.p.muted.Render(fmt.Sprintf("(%d prompts)", len(c.Prompts))))
	}
	return b.String()
}

func (r renderer) collection(c prompt.Collection, index int, active bool) string {
	var b strings.Builder
	title := fmt.Sprintf("%d. %s", index, c.Name)
	if active {
		title += " (active)"
	}
	b.WriteString(r.p.title.Render(title))
	if len(c.Prompts) == 0 {
		b.WriteString("\n  " + r.p.muted.Render("no prompts"))
	}
	for i, p := range c.Prompts {
		check, style := "[ ]", r.p.text
		if p.Done {
			check, style = "[x]", r.p.done
		}
		fmt.Fprintf(&b, "\n  %s %s %s", r.p.index.Render(fmt.Sprintf("%2d", i)), check, style.Render(r.preview(p.Text)))
	}
	return b.String()
}

func (r renderer) searchResults(term string, results []prompt.SearchResult) string {
	var b strings.Builder
	b.WriteString(r.p.title.Render(fmt.Sprintf("%d results for %q", len(results), term)))
	for _, res := range results {
		loc := "buffer"
		if res.CollectionIndex >= 0 {
			loc = fmt.Sprintf("%d/%d", res.CollectionIndex, res.PromptIndex)
		}
		fmt.Fprintf(&b, "\n  %s %s %s", r.p.index.Render(loc), r.p.text.Render(r.preview(res.Text)), r.p.muted.Render(res.Source))
	}
	return b.String()
}

func (r renderer) settings(st prompt.State) string {
	source := "system"
	if st.ThemeExplicit {
		source = "saved"
	}
	return r.p.title.Render("Settings") +
		fmt.Sprintf("\n  theme %s %s", st.Theme, r.p.muted.Render("("+source+")")) +
		fmt.Sprintf("\n  buffer %s", onOff(st.Toggles.Buffer)) +
		fmt.Sprintf("\n  collection %s", onOff(st.Toggles.Collection))
}

func onOff(expanded bool) string {
	if expanded {
		return "expanded"
	}
	return "collapsed"
}
