package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glabrego/termfolio/internal/browser"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	entries := []Entry{
		{Name: "ping", Handler: Static("pong"), Description: "Replies with pong"},
		{Name: "empty", Handler: Static(""), Description: "Prints nothing"},
		{Name: "echo", Handler: Func(func(args []string) Result {
			return Text(strings.Join(args, " "))
		}), Internal: true},
		{Name: "clear", Handler: Static(""), Description: "Clears the output", Effect: EffectClear},
		{Name: SilentName, Handler: Static("ignored"), Internal: true},
		{Name: "slow", Handler: Func(func(args []string) Result {
			return Defer(func(context.Context) (Result, error) {
				return Text("done " + strings.Join(args, ",")), nil
			})
		}), Modal: true},
		{Name: "broken", Handler: Func(func([]string) Result {
			return Defer(func(context.Context) (Result, error) {
				return Result{}, errors.New("fetch failed")
			})
		})},
		{Name: "panics", Handler: Func(func([]string) Result {
			return Defer(func(context.Context) (Result, error) {
				panic("boom")
			})
		})},
	}
	for _, e := range entries {
		require.NoError(t, r.Register(e))
	}
	return r
}

func TestRegister_RejectsDuplicatesAndEmptyNames(t *testing.T) {
	r := newTestRegistry(t)

	err := r.Register(Entry{Name: "ping", Handler: Static("again")})
	assert.True(t, errors.Is(err, ErrDuplicate))
	e, _ := r.Lookup("ping")
	assert.Equal(t, Static("pong"), e.Handler)

	assert.True(t, errors.Is(r.Register(Entry{Name: " ", Handler: Static("")}), ErrEmptyName))
	assert.True(t, errors.Is(r.Register(Entry{Name: "nil"}), ErrNoHandler))
}

func TestExecute_UnknownIsDistinctFromEmptyText(t *testing.T) {
	r := newTestRegistry(t)

	missing := r.Execute("nope")
	assert.Equal(t, KindNotFound, missing.Kind)
	assert.Equal(t, NotFoundMessage, missing.Text)

	empty := r.Execute("empty")
	assert.Equal(t, KindText, empty.Kind)
	assert.Equal(t, "", empty.Text)
}

func TestExecute_StaticAndFunc(t *testing.T) {
	r := newTestRegistry(t)

	res := r.Execute("  ping  ")
	assert.Equal(t, KindText, res.Kind)
	assert.Equal(t, "pong", res.Text)
	assert.Equal(t, "  ping  ", res.Input)
	assert.Equal(t, "ping", res.Name)

	res = r.Execute("echo a   b c")
	assert.Equal(t, "a b c", res.Text)
}

func TestExecute_SuppressedNames(t *testing.T) {
	r := newTestRegistry(t)

	cleared := r.Execute("clear")
	assert.Equal(t, KindSuppressed, cleared.Kind)
	assert.Equal(t, EffectClear, cleared.Effect)

	assert.Equal(t, KindSuppressed, r.Execute(":").Kind)
	assert.Equal(t, KindSuppressed, r.Execute("   ").Kind)
}

func TestExecute_DeferredReturnsPlaceholder(t *testing.T) {
	r := newTestRegistry(t)

	res := r.Execute("slow x y")
	require.Equal(t, KindDeferred, res.Kind)
	assert.Equal(t, Placeholder, res.Text)
	assert.True(t, res.Pending())
	assert.True(t, res.Modal)

	final := Resolve(context.Background(), res)
	assert.Equal(t, KindText, final.Kind)
	assert.Equal(t, "done x,y", final.Text)
	assert.Equal(t, "slow x y", final.Input)
	assert.True(t, final.Modal)
}

func TestResolve_ErrorsAreTaggedWithInput(t *testing.T) {
	r := newTestRegistry(t)

	final := Resolve(context.Background(), r.Execute("broken now"))
	assert.Equal(t, KindText, final.Kind)
	assert.Equal(t, "Error: fetch failed", final.Text)
	assert.Equal(t, "broken now", final.Input)
	assert.EqualError(t, final.Err, "fetch failed")

	final = Resolve(context.Background(), r.Execute("panics"))
	assert.Equal(t, "Error: boom", final.Text)
}

func TestResolve_PassesThroughSettledResults(t *testing.T) {
	res := Text("hi")
	assert.Equal(t, res, Resolve(context.Background(), res))
}

func TestBlockResult_CarriesBlockError(t *testing.T) {
	res := BlockResult(browser.Block{Title: "Blog Not Found", Err: browser.ErrNotFound})
	assert.Equal(t, KindBlock, res.Kind)
	require.NotNil(t, res.Block)
	assert.Equal(t, "Blog Not Found", res.Block.Title)
	assert.True(t, errors.Is(res.Err, browser.ErrNotFound))
}

func TestHelp_ListsPublicCommandsInOrder(t *testing.T) {
	r := newTestRegistry(t)

	want := "Available commands:\n\n" +
		"ping                 Replies with pong\n" +
		"empty                Prints nothing\n" +
		"clear                Clears the output"
	assert.Equal(t, want, r.Help())
}

func TestNames_IncludesInternal(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, []string{"ping", "empty", "echo", "clear", ":", "slow", "broken", "panics"}, r.Names())
}
