// Package browser implements the list, filter, search and detail views shared
// by every content collection.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/glabrego/termfolio/internal/content"
	"github.com/glabrego/termfolio/internal/logger"
)

var (
	ErrNotFound           = errors.New("entry not found")
	ErrContentUnavailable = errors.New("content unavailable")
	ErrNotSearchable      = errors.New("collection is not searchable")
	ErrUnknownAction      = errors.New("unknown browser action")
)

const DefaultPreviewLines = 10

type Source interface {
	Index(ctx context.Context) []content.Entry
	Find(ctx context.Context, id string) (content.Entry, bool)
	Content(ctx context.Context, filename string) (string, bool)
}

// Location is the query-string side of the current address. An empty value
// removes the parameter.
type Location interface {
	QueryParam(name string) string
	SetQueryParam(ctx context.Context, name, value string)
}

// Browser holds the view state of one collection. Operations may run off the
// UI goroutine, so every one of them takes the lock for its whole duration.
type Browser struct {
	spec     Spec
	source   Source
	location Location

	mu       sync.Mutex
	mode     Mode
	selected tagSet
	activeID string
	filter   Filter
}

func New(spec Spec, source Source, location Location) *Browser {
	return &Browser{
		spec:     spec,
		source:   source,
		location: location,
	}
}

func (b *Browser) Spec() Spec {
	return b.spec
}

func (b *Browser) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{
		Mode:          b.mode,
		SelectedTags:  b.selected.list(),
		ActiveEntryID: b.activeID,
		ActiveFilter:  b.filter,
	}
}

// List renders the collection under the selected tags and any active one-off
// filter.
func (b *Browser) List(ctx context.Context) Block {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loadTags()
	b.activeID = ""
	return b.render(ctx)
}

// ShowList drops the one-off filter and renders the list. Selected tags stay.
func (b *Browser) ShowList(ctx context.Context) Block {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loadTags()
	b.filter = Filter{}
	b.activeID = ""
	return b.render(ctx)
}

func (b *Browser) BackToList(ctx context.Context) Block {
	return b.List(ctx)
}

func (b *Browser) ToggleTag(ctx context.Context, tag string) Block {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loadTags()
	if tag = normalizeTag(tag); tag != "" {
		if b.selected.has(tag) {
			b.selected = b.selected.without(tag)
		} else {
			b.selected = b.selected.with(tag)
		}
		b.storeTags(ctx)
	}
	b.activeID = ""
	return b.render(ctx)
}

func (b *Browser) RemoveTag(ctx context.Context, tag string) Block {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loadTags()
	b.selected = b.selected.without(normalizeTag(tag))
	b.storeTags(ctx)
	b.activeID = ""
	return b.render(ctx)
}

func (b *Browser) ClearTags(ctx context.Context) Block {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = nil
	b.storeTags(ctx)
	b.activeID = ""
	return b.render(ctx)
}

// FilterByTag narrows the list to entries with a tag containing tag.
func (b *Browser) FilterByTag(ctx context.Context, tag string) Block {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loadTags()
	b.filter = Filter{Kind: FilterTag, Value: tag}
	b.activeID = ""
	return b.render(ctx)
}

// Search lists the entries whose content matches pattern, with the matching
// lines of each.
func (b *Browser) Search(ctx context.Context, pattern string) Block {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.spec.Searchable {
		block := b.newBlock(b.mode, b.spec.Title)
		block.Message = fmt.Sprintf("Search is not available for %s.", b.spec.plural())
		block.Err = ErrNotSearchable
		return block
	}
	b.loadTags()
	b.filter = Filter{Kind: FilterSearch, Value: pattern}
	b.activeID = ""
	return b.render(ctx)
}

// Open renders the full content of one entry.
func (b *Browser) Open(ctx context.Context, id string) Block {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loadTags()

	entry, ok := b.source.Find(ctx, id)
	if !ok {
		return b.notFound(ModeDetail, id)
	}
	b.activeID = id

	body, ok := b.body(ctx, entry)
	if !ok {
		return b.unavailable(ModeDetail, fmt.Sprintf("Error Loading %s", b.spec.Noun), id)
	}

	block := b.newBlock(ModeDetail, entry.Title)
	block.Entry = &entry
	block.EntryTags = b.chips(entry, ActionFilterByTag)
	block.Markdown = body
	return block
}

// Preview renders the first lines of an entry with a link to the full text.
// The previewed entry does not become the active one.
func (b *Browser) Preview(ctx context.Context, id string, lines int) Block {
	if lines <= 0 {
		lines = DefaultPreviewLines
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loadTags()

	entry, ok := b.source.Find(ctx, id)
	if !ok {
		return b.notFound(ModePreview, id)
	}
	body, ok := b.body(ctx, entry)
	if !ok {
		return b.unavailable(ModePreview, "Error Loading Preview", id)
	}

	head, truncated := headLines(body, lines)
	block := b.newBlock(ModePreview, "Preview: "+entry.Title)
	block.Entry = &entry
	block.EntryTags = b.chips(entry, ActionFilterByTag)
	block.Markdown = head
	block.Truncated = truncated
	block.ReadFull = &Action{Kind: ActionOpen, Collection: b.spec.Kind, Arg: entry.ID, Label: "Read Full"}
	return block
}

// Head returns the first lines of an entry's raw text, or a message saying
// why it could not. It does not change the view state.
func (b *Browser) Head(ctx context.Context, id string, lines int) string {
	if lines <= 0 {
		lines = DefaultPreviewLines
	}
	entry, ok := b.source.Find(ctx, id)
	if !ok {
		return b.notFoundText(id)
	}
	body, ok := b.body(ctx, entry)
	if !ok {
		return b.unavailableText(id)
	}
	head, _ := headLines(body, lines)
	return head
}

// Entries returns the collection in index order.
func (b *Browser) Entries(ctx context.Context) []content.Entry {
	return b.source.Index(ctx)
}

var actionTable = map[ActionKind]func(*Browser, context.Context, Action) Block{
	ActionShowList:    func(b *Browser, ctx context.Context, _ Action) Block { return b.ShowList(ctx) },
	ActionOpen:        func(b *Browser, ctx context.Context, a Action) Block { return b.Open(ctx, a.Arg) },
	ActionPreview:     func(b *Browser, ctx context.Context, a Action) Block { return b.Preview(ctx, a.Arg, 0) },
	ActionFilterByTag: func(b *Browser, ctx context.Context, a Action) Block { return b.FilterByTag(ctx, a.Arg) },
	ActionToggleTag:   func(b *Browser, ctx context.Context, a Action) Block { return b.ToggleTag(ctx, a.Arg) },
	ActionRemoveTag:   func(b *Browser, ctx context.Context, a Action) Block { return b.RemoveTag(ctx, a.Arg) },
	ActionClearTags:   func(b *Browser, ctx context.Context, _ Action) Block { return b.ClearTags(ctx) },
	ActionSearch:      func(b *Browser, ctx context.Context, a Action) Block { return b.Search(ctx, a.Arg) },
	ActionBackToList:  func(b *Browser, ctx context.Context, _ Action) Block { return b.BackToList(ctx) },
}

// Handle dispatches an activated action. ActionExit is not a browser
// transition and yields ErrUnknownAction.
func (b *Browser) Handle(ctx context.Context, a Action) (Block, error) {
	fn, ok := actionTable[a.Kind]
	if !ok {
		return Block{}, fmt.Errorf("%w: %s", ErrUnknownAction, a.Kind)
	}
	logger.Debug("browser action", "kind", b.spec.Kind, "action", a.Kind, "arg", a.Arg)
	return fn(b, ctx, a), nil
}

func (b *Browser) render(ctx context.Context) Block {
	switch b.filter.Kind {
	case FilterTag:
		return b.renderTagJump(ctx, b.filter.Value)
	case FilterSearch:
		return b.renderSearch(ctx, b.filter.Value)
	default:
		entries := FilterByTags(b.source.Index(ctx), b.selected.list())
		return b.listBlock(ModeList, entries)
	}
}

func (b *Browser) renderTagJump(ctx context.Context, tag string) Block {
	matching := FilterByTagJump(b.source.Index(ctx), tag)
	if len(matching) == 0 {
		block := b.newBlock(ModeTagFiltered, fmt.Sprintf("No %s found with tag: %s", b.spec.plural(), tag))
		block.Message = fmt.Sprintf("No %s found with tag '%s'.", b.spec.plural(), tag)
		return block
	}
	return b.listBlock(ModeTagFiltered, FilterByTags(matching, b.selected.list()))
}

func (b *Browser) renderSearch(ctx context.Context, pattern string) Block {
	var hits []Hit
	for _, entry := range FilterByTags(b.source.Index(ctx), b.selected.list()) {
		if entry.Filename == "" {
			continue
		}
		text, ok := b.source.Content(ctx, entry.Filename)
		if !ok {
			continue
		}
		matches := SearchContent(text, pattern, MaxMatchesPerEntry)
		if len(matches) == 0 {
			continue
		}
		hits = append(hits, Hit{Entry: entry, Open: b.openAction(entry), Lines: matches})
	}

	if len(hits) == 0 {
		block := b.newBlock(ModeSearchResults, "No results for: "+pattern)
		block.Pattern = pattern
		block.Message = fmt.Sprintf("No matches found for '%s' in %s.", pattern, b.spec.plural())
		return block
	}
	block := b.newBlock(ModeSearchResults, fmt.Sprintf("Search results for '%s'", pattern))
	block.Pattern = pattern
	block.Hits = hits
	return block
}

func (b *Browser) listBlock(mode Mode, entries []content.Entry) Block {
	block := b.newBlock(mode, b.spec.Title)
	if len(entries) == 0 {
		if len(b.selected) > 0 {
			block.Message = fmt.Sprintf("No %s found with the selected tags.", b.spec.plural())
		} else {
			block.Message = fmt.Sprintf("No %s available.", b.spec.plural())
		}
		return block
	}
	block.Items = make([]Item, 0, len(entries))
	for _, entry := range entries {
		block.Items = append(block.Items, Item{
			Entry: entry,
			Open:  b.openAction(entry),
			Tags:  b.chips(entry, ActionToggleTag),
		})
	}
	return block
}

// newBlock records mode as the current one and fills the parts every block
// shares: header and filter badges.
func (b *Browser) newBlock(mode Mode, title string) Block {
	b.mode = mode
	block := Block{
		Kind:       b.spec.Kind,
		Mode:       mode,
		Title:      title,
		ShowsDates: b.spec.Dated,
	}
	if mode == ModeDetail || mode == ModePreview {
		block.Back = Action{Kind: ActionBackToList, Collection: b.spec.Kind, Label: "Back"}
	} else {
		block.Back = Action{Kind: ActionExit, Collection: b.spec.Kind, Label: "Back"}
	}
	tags := b.selected.list()
	if len(tags) == 0 {
		return block
	}
	block.Badges = make([]Action, 0, len(tags))
	for _, tag := range tags {
		block.Badges = append(block.Badges, Action{Kind: ActionRemoveTag, Collection: b.spec.Kind, Arg: tag, Label: tag + " ✕"})
	}
	block.ClearAll = &Action{Kind: ActionClearTags, Collection: b.spec.Kind, Label: "Clear All"}
	return block
}

func (b *Browser) notFound(mode Mode, id string) Block {
	block := b.newBlock(mode, b.spec.Noun+" Not Found")
	block.Message = b.notFoundText(id)
	block.MessageAction = &Action{
		Kind:       ActionShowList,
		Collection: b.spec.Kind,
		Label:      fmt.Sprintf("Click here to see available %s", b.spec.plural()),
	}
	block.Err = fmt.Errorf("%w: %s %q", ErrNotFound, b.spec.Kind, id)
	return block
}

func (b *Browser) unavailable(mode Mode, title, id string) Block {
	block := b.newBlock(mode, title)
	block.Message = b.unavailableText(id)
	block.Err = fmt.Errorf("%w: %s %q", ErrContentUnavailable, b.spec.Kind, id)
	return block
}

func (b *Browser) notFoundText(id string) string {
	return fmt.Sprintf("%s '%s' not found.", b.spec.Noun, id)
}

func (b *Browser) unavailableText(id string) string {
	return fmt.Sprintf("Failed to load %s content for '%s'.", strings.ToLower(b.spec.Noun), id)
}

func (b *Browser) openAction(entry content.Entry) Action {
	return Action{Kind: ActionOpen, Collection: b.spec.Kind, Arg: entry.ID, Label: entry.Title}
}

func (b *Browser) chips(entry content.Entry, kind ActionKind) []TagChip {
	chips := make([]TagChip, 0, len(entry.Tags))
	for _, tag := range entry.Tags {
		selected := b.selected.has(strings.ToLower(tag))
		chips = append(chips, TagChip{
			Name:     tag,
			Selected: selected && kind == ActionToggleTag,
			Action:   Action{Kind: kind, Collection: b.spec.Kind, Arg: tag, Label: tag},
		})
	}
	return chips
}

// body returns the raw text of entry. Collections without a date (projects)
// fall back to the description when there is no readable content file.
func (b *Browser) body(ctx context.Context, entry content.Entry) (string, bool) {
	if entry.Filename != "" {
		if text, ok := b.source.Content(ctx, entry.Filename); ok && text != "" {
			return text, true
		}
	}
	if b.spec.Dated {
		return "", false
	}
	return fmt.Sprintf("### About This %s\n\n%s", b.spec.Noun, entry.Description), true
}

func (b *Browser) loadTags() {
	b.selected = tagSet(ParseTags(b.location.QueryParam(b.spec.TagParam)))
}

func (b *Browser) storeTags(ctx context.Context) {
	b.location.SetQueryParam(ctx, b.spec.TagParam, FormatTags(b.selected))
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func headLines(text string, n int) (string, bool) {
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text, false
	}
	return strings.Join(lines[:n], "\n"), true
}
