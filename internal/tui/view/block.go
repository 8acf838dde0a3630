package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/glabrego/termfolio/internal/browser"
	"github.com/glabrego/termfolio/internal/render"
	tuitheme "github.com/glabrego/termfolio/internal/tui/theme"
)

type BlockParams struct {
	Width int
	// Focus indexes block.Actions(); -1 focuses nothing.
	Focus    int
	Theme    tuitheme.Theme
	Markdown MarkdownFunc
}

// Rendered is a block laid out as display lines. ActionLines[i] is the line
// holding the i-th entry of block.Actions().
type Rendered struct {
	Lines       []string
	ActionLines []int
}

type blockWriter struct {
	th          tuitheme.Theme
	width       int
	focus       int
	markdown    MarkdownFunc
	lines       []string
	actionLines []int
}

// RenderBlock lays out a browser block. Actions are drawn in the order
// block.Actions() lists them.
func RenderBlock(b browser.Block, p BlockParams) Rendered {
	width := p.Width
	if width < 20 {
		width = 20
	}
	md := p.Markdown
	if md == nil {
		md = func(text string, width int) []string { return render.Wrap(text, width) }
	}
	w := &blockWriter{th: p.Theme, width: width, focus: p.Focus, markdown: md}

	w.header(b)
	if b.Message != "" {
		w.wrapped(b.Message, "")
	}
	if b.MessageAction != nil {
		w.line(w.action(b.MessageAction.Label, w.th.Link))
	}
	w.items(b)
	w.hits(b)
	w.detail(b)
	return Rendered{Lines: w.lines, ActionLines: w.actionLines}
}

func (w *blockWriter) header(b browser.Block) {
	back := w.action("← "+b.Back.Label, w.th.MetaValue)
	w.line(back + "  " + w.th.Title.Render(b.Title))
	rule := ansi.StringWidth(b.Title) + ansi.StringWidth(b.Back.Label) + 4
	w.line(w.th.MetaLabel.Render(strings.Repeat("─", min(rule, w.width))))

	if len(b.Badges) > 0 {
		parts := make([]string, 0, len(b.Badges)+1)
		for _, badge := range b.Badges {
			parts = append(parts, w.action(badge.Label, w.th.Badge))
		}
		if b.ClearAll != nil {
			parts = append(parts, w.action(b.ClearAll.Label, w.th.Link))
		}
		w.line(w.th.MetaLabel.Render("Tags:") + " " + strings.Join(parts, " "))
	}
	w.blank()
}

// action renders one focusable label and records the line it lands on. It
// must be called while composing that line.
func (w *blockWriter) action(label string, style lipgloss.Style) string {
	idx := len(w.actionLines)
	w.actionLines = append(w.actionLines, len(w.lines))
	if idx == w.focus {
		return w.th.ActiveLine.Render("▸ " + label)
	}
	return style.Render(label)
}

func (w *blockWriter) line(s string) {
	if ansi.StringWidth(s) > w.width {
		s = ansi.Truncate(s, w.width, "…")
	}
	w.lines = append(w.lines, s)
}

func (w *blockWriter) blank() {
	w.lines = append(w.lines, "")
}

func (w *blockWriter) wrapped(text, indent string) {
	for _, l := range render.Wrap(text, w.width-ansi.StringWidth(indent)) {
		w.line(indent + l)
	}
}
