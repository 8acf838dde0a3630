package command

import (
	"context"
	"fmt"

	"github.com/glabrego/termfolio/internal/browser"
)

type Kind int

const (
	// KindNotFound marks an unknown command. It is distinct from a Text
	// result whose text is empty.
	KindNotFound Kind = iota
	KindText
	KindBlock
	KindDeferred
	// KindSuppressed renders nothing at all, not even a placeholder.
	KindSuppressed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindText:
		return "text"
	case KindBlock:
		return "block"
	case KindDeferred:
		return "deferred"
	case KindSuppressed:
		return "suppressed"
	default:
		return "unknown"
	}
}

// Effect is a side effect the front-end applies after rendering a result.
type Effect int

const (
	EffectNone Effect = iota
	EffectClear
	EffectReset
	EffectTheme
)

const (
	Placeholder     = "Loading..."
	NotFoundMessage = "Command not found. Type 'help' for available commands."
)

type Deferred func(ctx context.Context) (Result, error)

type Result struct {
	Kind     Kind
	Text     string
	Block    *browser.Block
	Deferred Deferred
	Err      error

	// Filled in by Execute from the input line and the matched entry.
	Input  string
	Name   string
	Modal  bool
	Effect Effect
}

func Text(text string) Result {
	return Result{Kind: KindText, Text: text}
}

func BlockResult(block browser.Block) Result {
	return Result{Kind: KindBlock, Block: &block, Err: block.Err}
}

// Defer wraps work that must not run on the UI goroutine. Execute leaves it
// pending; Resolve runs it.
func Defer(fn Deferred) Result {
	return Result{Kind: KindDeferred, Text: Placeholder, Deferred: fn}
}

func Suppressed() Result {
	return Result{Kind: KindSuppressed}
}

func (r Result) Pending() bool {
	return r.Kind == KindDeferred && r.Deferred != nil
}

// Resolve runs a deferred result to completion. A handler error becomes a
// text result "Error: <msg>" with Err set. Any other result is returned as is.
func Resolve(ctx context.Context, r Result) Result {
	if !r.Pending() {
		return r
	}
	out, err := run(ctx, r.Deferred)
	if err != nil {
		out = Result{Kind: KindText, Text: "Error: " + err.Error(), Err: err}
	}
	if out.Kind == KindDeferred {
		// Nested deferral is flattened rather than handed back as pending.
		out = Resolve(ctx, out)
	}
	out.Input = r.Input
	out.Name = r.Name
	out.Modal = r.Modal
	out.Effect = r.Effect
	return out
}

func run(ctx context.Context, fn Deferred) (out Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
	}()
	return fn(ctx)
}
