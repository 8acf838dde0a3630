package view

import "github.com/glabrego/termfolio/internal/browser"

// MarkdownFunc renders Markdown into display lines of at most width columns.
type MarkdownFunc func(markdown string, width int) []string

func (w *blockWriter) detail(b browser.Block) {
	if b.Entry != nil && b.ShowsDates && b.Entry.Date != "" {
		w.line(w.th.MetaLabel.Render("Date:") + " " + w.th.MetaValue.Render(b.Entry.Date))
	}
	if len(b.EntryTags) > 0 {
		w.line(w.th.MetaLabel.Render("Tags:") + " " + w.chips(b.EntryTags))
	}
	if b.Markdown != "" {
		w.blank()
		for _, l := range w.markdown(b.Markdown, w.width) {
			w.line(l)
		}
	}
	if b.Truncated {
		w.line(w.th.MetaLabel.Render("…"))
	}
	if b.ReadFull != nil {
		w.blank()
		w.line(w.action(b.ReadFull.Label+" →", w.th.Link))
	}
}
