package browser

import (
	"github.com/glabrego/termfolio/internal/content"
)

type ActionKind int

const (
	ActionShowList ActionKind = iota
	ActionOpen
	ActionPreview
	ActionFilterByTag
	ActionToggleTag
	ActionRemoveTag
	ActionClearTags
	ActionSearch
	ActionBackToList
	// ActionExit leaves the browser entirely; the caller decides what that
	// means for the current section.
	ActionExit
)

func (k ActionKind) String() string {
	switch k {
	case ActionShowList:
		return "show-list"
	case ActionOpen:
		return "open"
	case ActionPreview:
		return "preview"
	case ActionFilterByTag:
		return "filter-by-tag"
	case ActionToggleTag:
		return "toggle-tag"
	case ActionRemoveTag:
		return "remove-tag"
	case ActionClearTags:
		return "clear-tags"
	case ActionSearch:
		return "search"
	case ActionBackToList:
		return "back-to-list"
	case ActionExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Action is a focusable element of a Block. Arg holds the entry id, tag or
// search pattern depending on Kind.
type Action struct {
	Kind       ActionKind
	Collection content.Kind
	Arg        string
	Label      string
}

type TagChip struct {
	Name     string
	Selected bool
	Action   Action
}

type Item struct {
	Entry content.Entry
	Open  Action
	Tags  []TagChip
}

type Hit struct {
	Entry content.Entry
	Open  Action
	Lines []LineMatch
}

// Block is one self-contained rendering of a browser state.
type Block struct {
	Kind  content.Kind
	Mode  Mode
	Title string
	Back  Action

	// Badges has one removal action per selected tag; ClearAll is set only
	// when Badges is non-empty.
	Badges   []Action
	ClearAll *Action

	Items   []Item
	Hits    []Hit
	Pattern string

	Message       string
	MessageAction *Action

	Entry      *content.Entry
	EntryTags  []TagChip
	Markdown   string
	ReadFull   *Action
	Truncated  bool
	ShowsDates bool

	Err error
}

// Actions lists every focusable action in display order.
func (b Block) Actions() []Action {
	out := []Action{b.Back}
	out = append(out, b.Badges...)
	if b.ClearAll != nil {
		out = append(out, *b.ClearAll)
	}
	if b.MessageAction != nil {
		out = append(out, *b.MessageAction)
	}
	for _, item := range b.Items {
		out = append(out, item.Open)
		for _, chip := range item.Tags {
			out = append(out, chip.Action)
		}
	}
	for _, hit := range b.Hits {
		out = append(out, hit.Open)
	}
	for _, chip := range b.EntryTags {
		out = append(out, chip.Action)
	}
	if b.ReadFull != nil {
		out = append(out, *b.ReadFull)
	}
	return out
}

// IDs returns the ids of the listed entries, or of the search hits.
func (b Block) IDs() []string {
	ids := make([]string, 0, len(b.Items)+len(b.Hits))
	for _, item := range b.Items {
		ids = append(ids, item.Entry.ID)
	}
	for _, hit := range b.Hits {
		ids = append(ids, hit.Entry.ID)
	}
	return ids
}
