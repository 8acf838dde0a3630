package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/termfolio/internal/browser"
	"github.com/glabrego/termfolio/internal/command"
	"github.com/glabrego/termfolio/internal/nav"
)

const deferredTimeout = 15 * time.Second

// ActionHandler is the part of a content browser the TUI drives.
type ActionHandler interface {
	Handle(ctx context.Context, a browser.Action) (browser.Block, error)
}

// DeferredResultMsg carries a resolved command result back to the model
// together with the token taken when the command was issued.
type DeferredResultMsg struct {
	Token  nav.Token
	Result command.Result
}

type BrowserActionMsg struct {
	Token  nav.Token
	Action browser.Action
	Block  browser.Block
}

type BrowserActionErrorMsg struct {
	Token nav.Token
	Err   error
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

type ClockTickMsg struct {
	Now time.Time
}

type TipTickMsg struct{}

type ClearStatusMsg struct {
	ID int
}

func ResolveCmd(tok nav.Token, res command.Result) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deferredTimeout)
		defer cancel()
		return DeferredResultMsg{Token: tok, Result: command.Resolve(nav.WithToken(ctx, tok), res)}
	}
}

func BrowserActionCmd(tok nav.Token, h ActionHandler, a browser.Action) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deferredTimeout)
		defer cancel()

		block, err := h.Handle(nav.WithToken(ctx, tok), a)
		if err != nil {
			return BrowserActionErrorMsg{Token: tok, Err: err}
		}
		return BrowserActionMsg{Token: tok, Action: a, Block: block}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened " + url, Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, link copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open link or copy it to clipboard")}
	}
}

func CopyCmd(text string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(text); err == nil {
				return OpenURLSuccessMsg{Status: "Copied " + text}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy to clipboard")}
	}
}

// ClockCmd fires at the start of the next minute.
func ClockCmd(now time.Time) tea.Cmd {
	next := now.Truncate(time.Minute).Add(time.Minute)
	return tea.Tick(next.Sub(now), func(t time.Time) tea.Msg {
		return ClockTickMsg{Now: t}
	})
}

func TipCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TipTickMsg{}
	})
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
