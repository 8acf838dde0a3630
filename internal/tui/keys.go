package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/termfolio/internal/nav"
)

type keyMap struct {
	Quit      key.Binding
	Sections  [5]key.Binding
	Back      key.Binding
	Forward   key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Down      key.Binding
	Up        key.Binding
	Activate  key.Binding
	Escape    key.Binding
	Clear     key.Binding
	Copy      key.Binding
	Open      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
}

func defaultKeyMap() keyMap {
	km := keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Back:      key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("alt+←", "back")),
		Forward:   key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("alt+→", "forward")),
		NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next link")),
		PrevFocus: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous link")),
		Down:      key.NewBinding(key.WithKeys("j", "down")),
		Up:        key.NewBinding(key.WithKeys("k", "up")),
		Activate:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy location")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
		PageUp:    key.NewBinding(key.WithKeys("pgup")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown")),
	}
	fkeys := [...]string{"f1", "f2", "f3", "f4", "f5"}
	for i := range km.Sections {
		km.Sections[i] = key.NewBinding(key.WithKeys(fkeys[i], "alt+"+string(rune('1'+i))))
	}
	return km
}

// section reports which section a key switches to, if any.
func (km keyMap) section(msg tea.KeyMsg) (nav.Section, bool) {
	sections := nav.Sections()
	for i, b := range km.Sections {
		if key.Matches(msg, b) {
			return sections[i], true
		}
	}
	return nav.Home, false
}
