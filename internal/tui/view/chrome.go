package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/glabrego/termfolio/internal/nav"
	tuitheme "github.com/glabrego/termfolio/internal/tui/theme"
)

const ClockLayout = "15:04 Mon 02 Jan"

// Tabs renders the section bar, "1:Home 2:Blogs ..." with the active
// section highlighted.
func Tabs(active nav.Section, th tuitheme.Theme) string {
	parts := make([]string, 0, len(nav.Sections()))
	for i, s := range nav.Sections() {
		label := fmt.Sprintf("%d:%s", i+1, s.Label())
		if s == active {
			parts = append(parts, th.TabActive.Render(label))
		} else {
			parts = append(parts, th.TabIdle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// StatusLine puts the location on the left and the clock on the right.
func StatusLine(location string, now time.Time, width int, th tuitheme.Theme) string {
	left := th.MetaLabel.Render("at") + " " + th.MetaValue.Render(location)
	right := th.MetaValue.Render(now.Format(ClockLayout))
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func TipLine(tip string, th tuitheme.Theme) string {
	if tip == "" {
		return ""
	}
	return th.MetaLabel.Render("tip") + " " + th.MetaValue.Render(tip)
}

// Toolbar lists the keys that matter in the current mode.
func Toolbar(mode nav.Mode, input nav.InputState) string {
	switch {
	case mode == nav.ModeTUI:
		return "tab/j/k focus | enter activate | esc back | o open | y copy location | F1-F5 sections | ctrl+c quit"
	case input == nav.InputEnabled:
		return "enter run | up/down history | tab focus links | ctrl+l clear | F1-F5 sections | alt+left/right back/forward | ctrl+c quit"
	default:
		return "tab focus links | enter activate | F1-F5 sections | alt+left/right back/forward | y copy location | ctrl+c quit"
	}
}

// Message renders the status panel: a transient status, a warning, or the
// loading state.
func Message(loading bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	stateLabel := th.StateIdle.Render("state")
	if loading {
		state = "loading"
		stateLabel = th.StateLoad.Render("state")
	}
	if warning != "" {
		state = "warning"
		stateLabel = th.StateWarn.Render("state")
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if warning != "" {
		main = warning
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
