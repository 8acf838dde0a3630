package browser

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glabrego/termfolio/internal/content"
)

type fakeSource struct {
	entries  []content.Entry
	contents map[string]string
	fetches  map[string]int
}

func (s *fakeSource) Index(context.Context) []content.Entry {
	return append([]content.Entry(nil), s.entries...)
}

func (s *fakeSource) Find(_ context.Context, id string) (content.Entry, bool) {
	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return content.Entry{}, false
}

func (s *fakeSource) Content(_ context.Context, filename string) (string, bool) {
	if s.fetches == nil {
		s.fetches = map[string]int{}
	}
	s.fetches[filename]++
	text, ok := s.contents[filename]
	return text, ok
}

type fakeLocation struct {
	query url.Values
}

func newFakeLocation(raw string) *fakeLocation {
	q, _ := url.ParseQuery(raw)
	return &fakeLocation{query: q}
}

func (l *fakeLocation) QueryParam(name string) string {
	return l.query.Get(name)
}

func (l *fakeLocation) SetQueryParam(_ context.Context, name, value string) {
	if value == "" {
		l.query.Del(name)
		return
	}
	l.query.Set(name, value)
}

func blogSource() *fakeSource {
	return &fakeSource{
		entries: []content.Entry{
			{ID: "a", Title: "A", Date: "2024-01-01", Tags: []string{"x", "y"}, Filename: "a.md"},
			{ID: "b", Title: "B", Date: "2024-02-01", Tags: []string{"Y", "golang"}, Filename: "b.md"},
			{ID: "c", Title: "C", Date: "2024-03-01", Tags: []string{"linux"}, Filename: "c.md"},
		},
		contents: map[string]string{
			"a.md": "# A\nhello World\nsecond line",
			"b.md": "# B\nnothing here\n",
			"c.md": "# C\nworld one\nworld two\nworld three\nworld four\nworld five\nworld six",
		},
	}
}

func TestList_RendersEveryEntryInIndexOrder(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	block := b.List(context.Background())

	assert.Equal(t, ModeList, block.Mode)
	assert.Equal(t, "My Blogs", block.Title)
	assert.Equal(t, []string{"a", "b", "c"}, block.IDs())
	assert.Equal(t, ActionExit, block.Back.Kind)
	assert.Empty(t, block.Badges)
	assert.Nil(t, block.ClearAll)
}

func TestList_ReadsSelectedTagsFromLocation(t *testing.T) {
	loc := newFakeLocation("tags=Y")
	b := New(Blogs, blogSource(), loc)
	block := b.List(context.Background())

	assert.Equal(t, []string{"a", "b"}, block.IDs())
	assert.Equal(t, []string{"y"}, b.State().SelectedTags)
	require.Len(t, block.Badges, 1)
	assert.Equal(t, ActionRemoveTag, block.Badges[0].Kind)
	assert.Equal(t, "y", block.Badges[0].Arg)
	require.NotNil(t, block.ClearAll)
}

func TestList_EmptyStates(t *testing.T) {
	b := New(Blogs, &fakeSource{}, newFakeLocation(""))
	assert.Equal(t, "No blogs available.", b.List(context.Background()).Message)

	b = New(Projects, blogSource(), newFakeLocation("projectTags=nope"))
	assert.Equal(t, "No projects found with the selected tags.", b.List(context.Background()).Message)
}

func TestToggleTag_TwiceRestoresSetAndLocation(t *testing.T) {
	loc := newFakeLocation("tags=x&other=1")
	before := loc.query.Encode()
	b := New(Blogs, blogSource(), loc)
	ctx := context.Background()

	block := b.ToggleTag(ctx, "Golang")
	assert.Equal(t, "x,golang", loc.QueryParam("tags"))
	assert.Empty(t, block.IDs())
	assert.Equal(t, "No blogs found with the selected tags.", block.Message)

	block = b.ToggleTag(ctx, "golang")
	assert.Equal(t, before, loc.query.Encode())
	assert.Equal(t, []string{"x"}, b.State().SelectedTags)
	assert.Equal(t, []string{"a"}, block.IDs())
}

func TestToggleTag_TwiceKeepsUnsortedQuery(t *testing.T) {
	loc := newFakeLocation("tags=y,x")
	before := loc.query.Encode()
	b := New(Blogs, blogSource(), loc)
	ctx := context.Background()

	b.ToggleTag(ctx, "golang")
	assert.Equal(t, "y,x,golang", loc.QueryParam("tags"))
	assert.Equal(t, []string{"y", "x", "golang"}, b.State().SelectedTags)

	b.ToggleTag(ctx, "golang")
	assert.Equal(t, before, loc.query.Encode())

	block := b.RemoveTag(ctx, "y")
	assert.Equal(t, "x", loc.QueryParam("tags"))
	require.Len(t, block.Badges, 1)
	assert.Equal(t, "x", block.Badges[0].Arg)
}

func TestToggleTag_MarksSelectedChips(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	block := b.ToggleTag(context.Background(), "y")

	require.Len(t, block.Items, 2)
	chips := block.Items[1].Tags
	require.Len(t, chips, 2)
	assert.Equal(t, "Y", chips[0].Name)
	assert.True(t, chips[0].Selected)
	assert.False(t, chips[1].Selected)
	assert.Equal(t, ActionToggleTag, chips[0].Action.Kind)
}

func TestRemoveAndClearTags(t *testing.T) {
	loc := newFakeLocation("tags=x,y")
	b := New(Blogs, blogSource(), loc)
	ctx := context.Background()

	b.RemoveTag(ctx, "X")
	assert.Equal(t, "y", loc.QueryParam("tags"))

	block := b.ClearTags(ctx)
	assert.False(t, loc.query.Has("tags"))
	assert.Equal(t, []string{"a", "b", "c"}, block.IDs())
}

func TestFilterByTag_UsesSubstringMatch(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	block := b.FilterByTag(context.Background(), "LIN")

	assert.Equal(t, ModeTagFiltered, block.Mode)
	assert.Equal(t, []string{"c"}, block.IDs())
	assert.Equal(t, Filter{Kind: FilterTag, Value: "LIN"}, b.State().ActiveFilter)
}

func TestFilterByTag_NoResultsStaysTagFiltered(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	block := b.FilterByTag(context.Background(), "z")

	assert.Equal(t, ModeTagFiltered, block.Mode)
	assert.Equal(t, ModeTagFiltered, b.State().Mode)
	assert.Empty(t, block.IDs())
	assert.Equal(t, "No blogs found with tag: z", block.Title)
	assert.Equal(t, "No blogs found with tag 'z'.", block.Message)
}

func TestFilterByTag_RespectsSelectedTags(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation("tags=x"))
	block := b.FilterByTag(context.Background(), "y")
	assert.Equal(t, []string{"a"}, block.IDs())
}

func TestShowList_ClearsFilterButKeepsTags(t *testing.T) {
	loc := newFakeLocation("tags=y")
	b := New(Blogs, blogSource(), loc)
	ctx := context.Background()

	b.FilterByTag(ctx, "golang")
	block := b.ShowList(ctx)

	assert.Equal(t, ModeList, block.Mode)
	assert.False(t, b.State().ActiveFilter.Active())
	assert.Equal(t, "y", loc.QueryParam("tags"))
	assert.Equal(t, []string{"a", "b"}, block.IDs())
}

func TestToggleTag_KeepsActiveFilter(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	ctx := context.Background()

	b.FilterByTag(ctx, "y")
	block := b.ToggleTag(ctx, "golang")

	assert.Equal(t, ModeTagFiltered, block.Mode)
	assert.Equal(t, []string{"b"}, block.IDs())
}

func TestSearch_SingleMatch(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	block := b.Search(context.Background(), "hello")

	assert.Equal(t, ModeSearchResults, block.Mode)
	require.Len(t, block.Hits, 1)
	hit := block.Hits[0]
	assert.Equal(t, "a", hit.Entry.ID)
	require.Len(t, hit.Lines, 1)
	assert.Equal(t, 2, hit.Lines[0].Number)
	assert.Equal(t, "hello World", hit.Lines[0].Text)
	assert.Equal(t, []Span{{Start: 0, End: 5}}, hit.Lines[0].Spans)
	assert.Equal(t, ActionOpen, hit.Open.Kind)
}

func TestSearch_CapsMatchesPerEntryAndKeepsIndexOrder(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	block := b.Search(context.Background(), "WORLD")

	require.Len(t, block.Hits, 2)
	assert.Equal(t, "a", block.Hits[0].Entry.ID)
	assert.Equal(t, "c", block.Hits[1].Entry.ID)
	assert.Len(t, block.Hits[1].Lines, MaxMatchesPerEntry)
	assert.Equal(t, 2, block.Hits[1].Lines[0].Number)
}

func TestSearch_RespectsSelectedTags(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation("tags=linux"))
	block := b.Search(context.Background(), "world")
	require.Len(t, block.Hits, 1)
	assert.Equal(t, "c", block.Hits[0].Entry.ID)
}

func TestSearch_NoMatches(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	block := b.Search(context.Background(), "absent")

	assert.Equal(t, ModeSearchResults, block.Mode)
	assert.Empty(t, block.Hits)
	assert.Equal(t, "No matches found for 'absent' in blogs.", block.Message)
}

func TestSearch_ProjectsAreNotSearchable(t *testing.T) {
	b := New(Projects, blogSource(), newFakeLocation(""))
	block := b.Search(context.Background(), "world")
	assert.True(t, errors.Is(block.Err, ErrNotSearchable))
	assert.False(t, b.State().ActiveFilter.Active())
}

func TestOpen_Detail(t *testing.T) {
	src := blogSource()
	b := New(Blogs, src, newFakeLocation(""))
	block := b.Open(context.Background(), "a")

	require.NoError(t, block.Err)
	assert.Equal(t, ModeDetail, block.Mode)
	assert.Equal(t, "A", block.Title)
	assert.Equal(t, ActionBackToList, block.Back.Kind)
	assert.Equal(t, "# A\nhello World\nsecond line", block.Markdown)
	require.Len(t, block.EntryTags, 2)
	assert.Equal(t, ActionFilterByTag, block.EntryTags[0].Action.Kind)
	assert.Equal(t, "a", b.State().ActiveEntryID)
}

func TestOpen_MissingEntry(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	block := b.Open(context.Background(), "missing")

	assert.True(t, errors.Is(block.Err, ErrNotFound))
	assert.Equal(t, "Blog Not Found", block.Title)
	assert.Equal(t, "Blog 'missing' not found.", block.Message)
	require.NotNil(t, block.MessageAction)
	assert.Equal(t, ActionShowList, block.MessageAction.Kind)
	assert.Contains(t, block.Actions(), *block.MessageAction)
}

func TestOpen_ContentFailure(t *testing.T) {
	src := blogSource()
	delete(src.contents, "a.md")
	b := New(Blogs, src, newFakeLocation(""))
	block := b.Open(context.Background(), "a")

	assert.True(t, errors.Is(block.Err, ErrContentUnavailable))
	assert.Equal(t, "Error Loading Blog", block.Title)
	assert.Equal(t, "Failed to load blog content for 'a'.", block.Message)
}

func TestOpen_ProjectFallsBackToDescription(t *testing.T) {
	src := &fakeSource{entries: []content.Entry{{ID: "p", Title: "P", Description: "A tool.", Tags: []string{"go"}}}}
	b := New(Projects, src, newFakeLocation(""))
	block := b.Open(context.Background(), "p")

	require.NoError(t, block.Err)
	assert.Equal(t, "### About This Project\n\nA tool.", block.Markdown)
}

func TestPreview_TruncatesWithoutActivating(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	block := b.Preview(context.Background(), "c", 2)

	assert.Equal(t, ModePreview, block.Mode)
	assert.Equal(t, "Preview: C", block.Title)
	assert.Equal(t, "# C\nworld one", block.Markdown)
	assert.True(t, block.Truncated)
	require.NotNil(t, block.ReadFull)
	assert.Equal(t, Action{Kind: ActionOpen, Collection: content.KindBlogs, Arg: "c", Label: "Read Full"}, *block.ReadFull)
	assert.Empty(t, b.State().ActiveEntryID)
}

func TestHead(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	ctx := context.Background()

	assert.Equal(t, "# A\nhello World", b.Head(ctx, "a", 2))
	assert.Equal(t, "Blog 'zzz' not found.", b.Head(ctx, "zzz", 2))
	assert.Equal(t, ModeList, b.State().Mode)
}

func TestBackToList_FromDetail(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	ctx := context.Background()
	b.Open(ctx, "a")

	block := b.BackToList(ctx)
	assert.Equal(t, ModeList, block.Mode)
	assert.Empty(t, b.State().ActiveEntryID)
}

func TestHandle_DispatchesThroughTable(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation(""))
	ctx := context.Background()

	block, err := b.Handle(ctx, Action{Kind: ActionOpen, Arg: "b"})
	require.NoError(t, err)
	assert.Equal(t, ModeDetail, block.Mode)

	block, err = b.Handle(ctx, block.Back)
	require.NoError(t, err)
	assert.Equal(t, ModeList, block.Mode)

	_, err = b.Handle(ctx, block.Back)
	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestBlockActions_Order(t *testing.T) {
	b := New(Blogs, blogSource(), newFakeLocation("tags=y"))
	block := b.List(context.Background())

	var kinds []ActionKind
	for _, a := range block.Actions() {
		kinds = append(kinds, a.Kind)
	}
	assert.Equal(t, []ActionKind{
		ActionExit,
		ActionRemoveTag, ActionClearTags,
		ActionOpen, ActionToggleTag, ActionToggleTag,
		ActionOpen, ActionToggleTag, ActionToggleTag,
	}, kinds)
}
