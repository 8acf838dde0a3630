// Package command maps command names to handlers and executes input lines.
package command

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicate = errors.New("command already registered")
	ErrEmptyName = errors.New("command name is empty")
	ErrNoHandler = errors.New("command has no handler")
)

// SilentName is the command that runs nothing and renders nothing.
const SilentName = ":"

const helpColumnWidth = 20

type Handler interface {
	Handle(args []string) Result
}

// Static is a handler that always returns the same text.
type Static string

func (s Static) Handle([]string) Result {
	return Text(string(s))
}

type Func func(args []string) Result

func (f Func) Handle(args []string) Result {
	return f(args)
}

type Entry struct {
	Name        string
	Handler     Handler
	Description string
	// Internal entries are hidden from the help listing.
	Internal bool
	// Modal entries produce a content browser view.
	Modal  bool
	Effect Effect
}

// Registry is filled once at startup and read-only afterwards.
type Registry struct {
	entries map[string]Entry
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

func (r *Registry) Register(e Entry) error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if e.Handler == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, e.Name)
	}
	if _, ok := r.entries[e.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, e.Name)
	}
	r.entries[e.Name] = e
	r.order = append(r.order, e.Name)
	return nil
}

func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names lists every registered name in registration order, internal ones
// included.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Execute runs one input line. Deferred results come back pending with the
// placeholder text; the caller resolves them off the UI goroutine.
func (r *Registry) Execute(line string) Result {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Result{Kind: KindSuppressed, Input: line}
	}
	name, args := fields[0], fields[1:]

	e, ok := r.entries[name]
	if !ok {
		return Result{Kind: KindNotFound, Text: NotFoundMessage, Input: line, Name: name}
	}

	res := e.Handler.Handle(args)
	if name == SilentName || e.Effect == EffectClear {
		res = Suppressed()
	}
	res.Input = line
	res.Name = name
	res.Modal = e.Modal
	res.Effect = e.Effect
	return res
}

// Help lists public commands with a description, in registration order.
func (r *Registry) Help() string {
	var b strings.Builder
	b.WriteString("Available commands:\n\n")
	for _, name := range r.order {
		e := r.entries[name]
		if e.Internal || e.Description == "" {
			continue
		}
		fmt.Fprintf(&b, "%-*s %s\n", helpColumnWidth, name, e.Description)
	}
	return strings.TrimSpace(b.String())
}
