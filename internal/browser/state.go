package browser

import (
	"slices"

	"github.com/glabrego/termfolio/internal/content"
)

type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModePreview
	ModeTagFiltered
	ModeSearchResults
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeDetail:
		return "detail"
	case ModePreview:
		return "preview"
	case ModeTagFiltered:
		return "tag-filtered"
	case ModeSearchResults:
		return "search-results"
	default:
		return "unknown"
	}
}

type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterTag
	FilterSearch
)

// Filter is the one-off narrowing applied on top of the selected tag set.
type Filter struct {
	Kind  FilterKind
	Value string
}

func (f Filter) Active() bool {
	return f.Kind != FilterNone
}

// Spec parameterizes a Browser for one collection.
type Spec struct {
	Kind       content.Kind
	Title      string
	Noun       string
	TagParam   string
	Searchable bool
	Dated      bool
}

var (
	Blogs = Spec{
		Kind:       content.KindBlogs,
		Title:      "My Blogs",
		Noun:       "Blog",
		TagParam:   "tags",
		Searchable: true,
		Dated:      true,
	}
	Projects = Spec{
		Kind:     content.KindProjects,
		Title:    "My Projects",
		Noun:     "Project",
		TagParam: "projectTags",
	}
)

func (s Spec) plural() string {
	return string(s.Kind)
}

// State is a snapshot of a browser's position. SelectedTags is in selection
// order.
type State struct {
	Mode          Mode
	SelectedTags  []string
	ActiveEntryID string
	ActiveFilter  Filter
}

// tagSet holds the selected tags in selection order, which is also the order
// they are written back to the location.
type tagSet []string

func (t tagSet) has(tag string) bool {
	return slices.Contains(t, tag)
}

func (t tagSet) with(tag string) tagSet {
	if t.has(tag) {
		return t
	}
	return append(slices.Clone(t), tag)
}

func (t tagSet) without(tag string) tagSet {
	return slices.DeleteFunc(slices.Clone(t), func(s string) bool { return s == tag })
}

func (t tagSet) list() []string {
	return slices.Clone([]string(t))
}
