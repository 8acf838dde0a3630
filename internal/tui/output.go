package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/glabrego/termfolio/internal/browser"
	"github.com/glabrego/termfolio/internal/command"
	"github.com/glabrego/termfolio/internal/render"
	"github.com/glabrego/termfolio/internal/tui/view"
)

const promptSymbol = "➜"

// outputItem is one command and its result on the output surface.
type outputItem struct {
	echo    string
	result  command.Result
	pending string
}

type targetKind int

const (
	targetAction targetKind = iota
	targetLink
	targetCommand
)

// target is one focusable element of the laid out output.
type target struct {
	kind    targetKind
	line    int
	action  browser.Action
	url     string
	command string
}

type mdKey struct {
	markdown string
	style    string
	width    int
}

// layout renders the output surface and collects its focusable targets in
// display order.
func (m Model) layout() ([]string, []target) {
	var lines []string
	var targets []target
	width := m.contentWidth()

	for _, item := range m.output {
		if item.echo != "" {
			lines = append(lines, m.theme.Prompt.Render(promptSymbol)+" "+m.theme.Echo.Render(item.echo))
		}
		res := item.result
		switch {
		case item.pending != "":
			lines = append(lines, m.theme.MetaLabel.Render(command.Placeholder))
		case res.Kind == command.KindNotFound:
			lines = append(lines, m.theme.StateWarn.Render(res.Text))
		case res.Kind == command.KindBlock && res.Block != nil:
			offset := len(targets)
			focus := -1
			if m.focus >= offset && m.focus < offset+len(res.Block.Actions()) {
				focus = m.focus - offset
			}
			out := view.RenderBlock(*res.Block, view.BlockParams{
				Width:    width,
				Focus:    focus,
				Theme:    m.theme,
				Markdown: m.renderMarkdown,
			})
			for i, a := range res.Block.Actions() {
				targets = append(targets, target{kind: targetAction, line: len(lines) + out.ActionLines[i], action: a})
			}
			lines = append(lines, out.Lines...)
		case res.Kind == command.KindText:
			textLines := render.Wrap(res.Text, width)
			for _, t := range m.textTargets(res.Name, textLines) {
				if len(targets) == m.focus {
					textLines[t.line] = m.theme.ActiveLine.Render("▸ " + ansi.Strip(textLines[t.line]))
				}
				t.line += len(lines)
				targets = append(targets, t)
			}
			lines = append(lines, textLines...)
		}
		if item.echo != "" || res.Kind != command.KindSuppressed {
			lines = append(lines, "")
		}
	}
	return lines, targets
}

// textTargets finds the links in a command's text output: contact URLs and
// the command names listed by help. Line numbers are relative to textLines.
func (m Model) textTargets(name string, textLines []string) []target {
	var out []target
	switch name {
	case "contacts":
		for _, link := range render.Links(m.app.Profile.ContactsHTML()) {
			for i, l := range textLines {
				if strings.Contains(l, link.Text) {
					out = append(out, target{kind: targetLink, line: i, url: link.URL})
					break
				}
			}
		}
	case "help":
		for i, l := range textLines {
			fields := strings.Fields(l)
			if len(fields) < 2 || !strings.HasPrefix(l, fields[0]+"  ") {
				continue
			}
			if e, ok := m.app.Registry.Lookup(fields[0]); ok && !e.Internal {
				out = append(out, target{kind: targetCommand, line: i, command: fields[0]})
			}
		}
	}
	return out
}

func (m Model) renderMarkdown(markdown string, width int) []string {
	k := mdKey{markdown: markdown, style: render.StyleFor(m.theme.Name), width: width}
	if lines, ok := m.mdCache[k]; ok {
		return lines
	}
	lines := m.app.Markdown.Lines(markdown, k.style, width)
	m.mdCache[k] = lines
	return lines
}
