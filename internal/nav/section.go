// Package nav tracks which section is shown, whether the content browser has
// taken over the terminal, and the address that mirrors both.
package nav

type Section int

const (
	Home Section = iota
	Blogs
	Projects
	Contacts
	Terminal
)

var sectionNames = [...]string{"home", "blogs", "projects", "contacts", "terminal"}

var sectionLabels = [...]string{"Home", "Blogs", "Projects", "Contacts", "Terminal"}

func Sections() []Section {
	return []Section{Home, Blogs, Projects, Contacts, Terminal}
}

func (s Section) String() string {
	if s < Home || s > Terminal {
		return "unknown"
	}
	return sectionNames[s]
}

func (s Section) Label() string {
	if s < Home || s > Terminal {
		return "?"
	}
	return sectionLabels[s]
}

// Fragment is the address fragment selecting s. Home has none.
func (s Section) Fragment() string {
	if s == Home {
		return ""
	}
	return s.String()
}

// ParseSection maps an address fragment to its section. Unknown fragments
// resolve to Home with ok=false.
func ParseSection(fragment string) (Section, bool) {
	if fragment == "" {
		return Home, true
	}
	for i, name := range sectionNames {
		if name == fragment && Section(i) != Home {
			return Section(i), true
		}
	}
	return Home, false
}

// SectionByName resolves a section from its name, e.g. "home".
func SectionByName(name string) (Section, bool) {
	for i, n := range sectionNames {
		if n == name {
			return Section(i), true
		}
	}
	return Home, false
}

type InputState int

const (
	InputEnabled InputState = iota
	InputDisabled
	InputHidden
)

func (i InputState) String() string {
	switch i {
	case InputEnabled:
		return "enabled"
	case InputDisabled:
		return "disabled"
	case InputHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Input is the prompt availability of the section in normal mode.
func (s Section) Input() InputState {
	switch s {
	case Terminal:
		return InputEnabled
	case Blogs, Projects:
		return InputHidden
	default:
		return InputDisabled
	}
}

// DefaultCommands are run, in order, every time the section is entered.
func (s Section) DefaultCommands() []string {
	switch s {
	case Home:
		return []string{"name", "image", "bio", "contacts", "experience", "education"}
	case Blogs:
		return []string{"blogs"}
	case Projects:
		return []string{"projects"}
	case Contacts:
		return []string{"contacts"}
	default:
		return nil
	}
}

type Mode int

const (
	ModeNormal Mode = iota
	ModeTUI
)

func (m Mode) String() string {
	if m == ModeTUI {
		return "tui"
	}
	return "normal"
}
