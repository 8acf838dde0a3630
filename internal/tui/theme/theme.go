package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/termfolio/internal/storage"
)

type Theme struct {
	Name string

	Title      lipgloss.Style
	TabActive  lipgloss.Style
	TabIdle    lipgloss.Style
	Prompt     lipgloss.Style
	Echo       lipgloss.Style
	ActiveLine lipgloss.Style
	Link       lipgloss.Style
	Tag        lipgloss.Style
	TagOn      lipgloss.Style
	Badge      lipgloss.Style
	Match      lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style
}

// Dark is the default palette (Catppuccin Mocha).
func Dark() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpBlue := lipgloss.Color("#89b4fa")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")
	cpBase := lipgloss.Color("#1e1e2e")

	return Theme{
		Name:       storage.ThemeDark,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		TabActive:  lipgloss.NewStyle().Bold(true).Foreground(cpBase).Background(cpGreen).Padding(0, 1),
		TabIdle:    lipgloss.NewStyle().Foreground(cpSubtext1).Background(cpSurface0).Padding(0, 1),
		Prompt:     lipgloss.NewStyle().Bold(true).Foreground(cpGreen),
		Echo:       lipgloss.NewStyle().Foreground(cpSubtext1),
		ActiveLine: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		Link:       lipgloss.NewStyle().Underline(true).Foreground(cpBlue),
		Tag:        lipgloss.NewStyle().Foreground(cpTeal),
		TagOn:      lipgloss.NewStyle().Bold(true).Foreground(cpBase).Background(cpTeal),
		Badge:      lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Match:      lipgloss.NewStyle().Bold(true).Foreground(cpBase).Background(cpYellow),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),
	}
}

// Light is the Catppuccin Latte counterpart of Dark.
func Light() Theme {
	ltMauve := lipgloss.Color("#8839ef")
	ltRed := lipgloss.Color("#d20f39")
	ltPeach := lipgloss.Color("#fe640b")
	ltYellow := lipgloss.Color("#df8e1d")
	ltGreen := lipgloss.Color("#40a02b")
	ltTeal := lipgloss.Color("#179299")
	ltBlue := lipgloss.Color("#1e66f5")
	ltLavender := lipgloss.Color("#7287fd")
	ltText := lipgloss.Color("#4c4f69")
	ltSubtext1 := lipgloss.Color("#5c5f77")
	ltOverlay1 := lipgloss.Color("#8c8fa1")
	ltSurface0 := lipgloss.Color("#ccd0da")
	ltBase := lipgloss.Color("#eff1f5")

	return Theme{
		Name:       storage.ThemeLight,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(ltMauve),
		TabActive:  lipgloss.NewStyle().Bold(true).Foreground(ltBase).Background(ltGreen).Padding(0, 1),
		TabIdle:    lipgloss.NewStyle().Foreground(ltSubtext1).Background(ltSurface0).Padding(0, 1),
		Prompt:     lipgloss.NewStyle().Bold(true).Foreground(ltGreen),
		Echo:       lipgloss.NewStyle().Foreground(ltSubtext1),
		ActiveLine: lipgloss.NewStyle().Background(ltSurface0).Foreground(ltText),
		Link:       lipgloss.NewStyle().Underline(true).Foreground(ltBlue),
		Tag:        lipgloss.NewStyle().Foreground(ltTeal),
		TagOn:      lipgloss.NewStyle().Bold(true).Foreground(ltBase).Background(ltTeal),
		Badge:      lipgloss.NewStyle().Foreground(ltLavender).Background(ltSurface0).Padding(0, 1),
		Match:      lipgloss.NewStyle().Bold(true).Foreground(ltBase).Background(ltYellow),
		MetaLabel:  lipgloss.NewStyle().Foreground(ltOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(ltSubtext1),
		StateIdle:  lipgloss.NewStyle().Foreground(ltGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(ltRed),
		StateLoad:  lipgloss.NewStyle().Foreground(ltPeach),
	}
}

// ForName returns the theme stored under name, falling back to Dark.
func ForName(name string) Theme {
	if name == storage.ThemeLight {
		return Light()
	}
	return Dark()
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
