package nav

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/glabrego/termfolio/internal/logger"
)

// State is the navigation state. Epoch counts output resets; a deferred
// result issued under an older epoch is stale.
type State struct {
	Section Section
	Mode    Mode
	Epoch   uint64
}

// Token is the navigation snapshot taken when a deferred request is issued.
type Token struct {
	ID      string
	Section Section
	Mode    Mode
	Epoch   uint64
}

// Transition describes what a section change requires of the front-end.
type Transition struct {
	From      Section
	To        Section
	ExitedTUI bool
	Input     InputState
	Commands  []string
	Location  Location
}

// Coordinator owns the navigation state and the location history. Content
// browsers read and write the query string through it from background
// commands, so all methods are safe for concurrent use.
type Coordinator struct {
	mu      sync.Mutex
	state   State
	history *History
}

func NewCoordinator(start Location) *Coordinator {
	return &Coordinator{history: NewHistory(start)}
}

// Start routes the initial location without adding a history entry.
func (c *Coordinator) Start() Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	section, ok := ParseSection(c.history.Current().Fragment)
	if !ok {
		logger.Debug("unknown section fragment, routing home", "fragment", c.history.Current().Fragment)
	}
	return c.switchLocked(section, false)
}

// Switch shows section. push adds a history entry when the address changes.
func (c *Coordinator) Switch(section Section, push bool) Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.switchLocked(section, push)
}

func (c *Coordinator) Back() (Transition, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	loc, ok := c.history.Back()
	if !ok {
		return Transition{}, false
	}
	section, _ := ParseSection(loc.Fragment)
	return c.switchLocked(section, false), true
}

func (c *Coordinator) Forward() (Transition, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	loc, ok := c.history.Forward()
	if !ok {
		return Transition{}, false
	}
	section, _ := ParseSection(loc.Fragment)
	return c.switchLocked(section, false), true
}

func (c *Coordinator) switchLocked(section Section, push bool) Transition {
	t := Transition{From: c.state.Section, To: section}
	c.state.Section = section
	if c.state.Mode == ModeTUI {
		c.state.Mode = ModeNormal
		t.ExitedTUI = true
	}
	c.state.Epoch++

	current := c.history.Current()
	next := current.WithFragment(section.Fragment())
	switch {
	case next.Equal(current):
	case push:
		c.history.Push(next)
	default:
		c.history.Replace(next)
	}

	t.Input = section.Input()
	t.Commands = section.DefaultCommands()
	t.Location = c.history.Current()
	logger.Debug("section switch", "from", t.From, "to", t.To, "push", push, "epoch", c.state.Epoch)
	return t
}

// EnterTUI switches to the full-surface browser view. It is only allowed in
// the terminal section.
func (c *Coordinator) EnterTUI() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Section != Terminal {
		return false
	}
	c.state.Mode = ModeTUI
	return true
}

// ExitTUI restores the prompt and resets the output.
func (c *Coordinator) ExitTUI() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Mode != ModeTUI {
		return false
	}
	c.state.Mode = ModeNormal
	c.state.Epoch++
	return true
}

// Clear records an output reset.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Epoch++
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Input is the prompt availability right now.
func (c *Coordinator) Input() InputState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Mode == ModeTUI {
		return InputHidden
	}
	return c.state.Section.Input()
}

func (c *Coordinator) Location() Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Current()
}

func (c *Coordinator) Token() Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Token{
		ID:      uuid.NewString(),
		Section: c.state.Section,
		Mode:    c.state.Mode,
		Epoch:   c.state.Epoch,
	}
}

// Accept reports whether a result requested under tok may still be shown.
func (c *Coordinator) Accept(tok Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ok := c.currentLocked(tok)
	if !ok {
		logger.Debug("discarding stale result", "request", tok.ID, "section", tok.Section, "epoch", tok.Epoch, "current_epoch", c.state.Epoch)
	}
	return ok
}

func (c *Coordinator) currentLocked(tok Token) bool {
	return tok.Epoch == c.state.Epoch && tok.Section == c.state.Section
}

func (c *Coordinator) QueryParam(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Current().Query.Get(name)
}

// SetQueryParam rewrites the current history entry in place. The write is
// dropped when ctx carries a request token that is no longer current.
func (c *Coordinator) SetQueryParam(ctx context.Context, name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tok, ok := TokenFrom(ctx); ok && !c.currentLocked(tok) {
		logger.Debug("discarding stale location write", "request", tok.ID, "param", name, "epoch", tok.Epoch, "current_epoch", c.state.Epoch)
		return
	}
	c.history.Replace(c.history.Current().WithQueryParam(name, value))
}
