// Package render turns entry content and profile snippets into terminal text.
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/glabrego/termfolio/internal/logger"
)

const (
	StyleDark  = "dark"
	StyleLight = "light"
	StylePlain = "notty"
)

// StyleFor maps a theme name to a glamour style.
func StyleFor(theme string) string {
	switch strings.ToLower(theme) {
	case "light":
		return StyleLight
	case "plain", "notty":
		return StylePlain
	default:
		return StyleDark
	}
}

type rendererKey struct {
	style string
	width int
}

// Markdown renders Markdown to ANSI text. Renderers are built per style and
// width on first use and reused; glamour renderers are not safe for
// concurrent use, so rendering is serialized.
type Markdown struct {
	mu        sync.Mutex
	renderers map[rendererKey]*glamour.TermRenderer
}

func NewMarkdown() *Markdown {
	return &Markdown{renderers: make(map[rendererKey]*glamour.TermRenderer)}
}

func (m *Markdown) Render(markdown, style string, width int) (string, error) {
	if width < 20 {
		width = 20
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := rendererKey{style: style, width: width}
	r, ok := m.renderers[key]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("create markdown renderer: %w", err)
		}
		m.renderers[key] = r
	}

	out, err := r.Render(StripHTMLBlocks(markdown))
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// Lines renders markdown and splits it into display lines. When rendering
// fails the raw text is wrapped instead.
func (m *Markdown) Lines(markdown, style string, width int) []string {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}
	out, err := m.Render(markdown, style, width)
	if err != nil {
		logger.Warn("markdown rendering failed, showing raw text", "err", err)
		return Wrap(StripHTMLBlocks(markdown), width)
	}
	return TrimBlankLines(strings.Split(strings.TrimRight(out, "\n"), "\n"))
}
