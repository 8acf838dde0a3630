package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/termfolio/internal/browser"
)

func (w *blockWriter) items(b browser.Block) {
	for i, item := range b.Items {
		if i > 0 {
			w.blank()
		}
		title := "• " + w.action(item.Entry.Title, w.th.Link)
		if b.ShowsDates && item.Entry.Date != "" {
			title += "  " + w.th.MetaLabel.Render(item.Entry.Date)
		}
		w.line(title)
		if desc := strings.TrimSpace(item.Entry.Description); desc != "" {
			w.wrapped(desc, "  ")
		}
		if len(item.Tags) > 0 {
			w.line("  " + w.chips(item.Tags))
		}
	}
}

func (w *blockWriter) hits(b browser.Block) {
	for i, hit := range b.Hits {
		if i > 0 {
			w.blank()
		}
		title := "• " + w.action(hit.Entry.Title, w.th.Link)
		count := len(hit.Lines)
		noun := "matches"
		if count == 1 {
			noun = "match"
		}
		w.line(title + "  " + w.th.MetaLabel.Render(fmt.Sprintf("%d %s", count, noun)))
		for _, m := range hit.Lines {
			w.line("  " + w.th.MetaLabel.Render(fmt.Sprintf("%4d:", m.Number)) + " " + Highlight(m.Text, m.Spans, w.th.Match))
		}
	}
}

func (w *blockWriter) chips(chips []browser.TagChip) string {
	parts := make([]string, 0, len(chips))
	for _, chip := range chips {
		style := w.th.Tag
		if chip.Selected {
			style = w.th.TagOn
		}
		parts = append(parts, w.action("#"+chip.Name, style))
	}
	return strings.Join(parts, " ")
}

// Highlight styles every span of text. Spans are byte offsets, sorted and
// non-overlapping; out-of-range spans are ignored.
func Highlight(text string, spans []browser.Span, style lipgloss.Style) string {
	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s.Start < pos || s.End > len(text) || s.Start >= s.End {
			continue
		}
		b.WriteString(text[pos:s.Start])
		b.WriteString(style.Render(text[s.Start:s.End]))
		pos = s.End
	}
	b.WriteString(text[pos:])
	return b.String()
}
