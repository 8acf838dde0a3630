// Package shell is the line-mode front-end: a readline prompt over the same
// command registry the TUI uses. Blocks are printed once as text.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/glabrego/termfolio/internal/app"
	"github.com/glabrego/termfolio/internal/command"
	"github.com/glabrego/termfolio/internal/content"
	"github.com/glabrego/termfolio/internal/logger"
	"github.com/glabrego/termfolio/internal/render"
	tuitheme "github.com/glabrego/termfolio/internal/tui/theme"
	"github.com/glabrego/termfolio/internal/tui/view"
)

const (
	prompt         = "➜ "
	defaultWidth   = 80
	resolveTimeout = 15 * time.Second
)

// ErrNotFound is returned by Exec for an unknown command.
var ErrNotFound = errors.New("command not found")

type Shell struct {
	app   *app.App
	in    io.Reader
	out   io.Writer
	isTTY bool
	width int
}

// New builds a shell on in and out. TTY detection only applies when in is
// os.Stdin; any other reader runs the plain line loop.
func New(a *app.App, in io.Reader, out io.Writer) *Shell {
	s := &Shell{app: a, in: in, out: out, width: defaultWidth}
	if f, ok := in.(*os.File); ok && f == os.Stdin {
		fd := int(f.Fd())
		s.isTTY = term.IsTerminal(fd)
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			s.width = w
		}
	}
	return s
}

func (s *Shell) Run(ctx context.Context) error {
	if s.isTTY {
		return s.runInteractive(ctx)
	}
	return s.runPlain(ctx)
}

func (s *Shell) runInteractive(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		AutoComplete:      s.completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdin:             io.NopCloser(s.in),
		Stdout:            s.out,
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	for _, line := range s.app.History.Entries() {
		if err := rl.SaveHistory(line); err != nil {
			logger.Debug("could not seed readline history", "err", err)
		}
	}
	fmt.Fprintf(s.out, "%s\nType 'help' for available commands, 'exit' to quit.\n\n", s.app.Profile.Name)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !s.handle(ctx, line) {
			return nil
		}
	}
}

func (s *Shell) runPlain(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		if !s.handle(ctx, scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// handle runs one line typed at the prompt and reports whether to keep going.
func (s *Shell) handle(ctx context.Context, line string) bool {
	switch strings.TrimSpace(line) {
	case "":
		return true
	case "exit", "quit":
		return false
	}
	if _, err := s.Exec(ctx, line, true); err != nil && !errors.Is(err, ErrNotFound) {
		logger.Warn("command failed", "line", line, "err", err)
	}
	return true
}

// Exec runs line through the registry, waits for deferred work and prints
// the result. record adds the line to the command history.
func (s *Shell) Exec(ctx context.Context, line string, record bool) (command.Result, error) {
	var res command.Result
	if record {
		res = s.app.Submit(line)
	} else {
		res = s.app.Registry.Execute(line)
	}
	if res.Pending() {
		rctx, cancel := context.WithTimeout(ctx, resolveTimeout)
		res = command.Resolve(rctx, res)
		cancel()
	}

	if res.Effect == command.EffectClear {
		if s.isTTY {
			termenv.NewOutput(s.out).ClearScreen()
		}
		return res, nil
	}

	if res.Kind == command.KindSuppressed {
		return res, nil
	}
	if text := s.Format(res); text != "" {
		fmt.Fprintln(s.out, text)
	}
	if res.Kind == command.KindNotFound {
		return res, ErrNotFound
	}
	return res, res.Err
}

// Format renders a result the way the shell prints it. Markdown is only
// styled when the shell runs on a terminal.
func (s *Shell) Format(res command.Result) string {
	switch res.Kind {
	case command.KindText, command.KindNotFound:
		return strings.Join(render.Wrap(res.Text, s.width), "\n")
	case command.KindBlock:
		if res.Block == nil {
			return ""
		}
		params := view.BlockParams{Width: s.width, Focus: -1, Theme: s.theme()}
		if s.isTTY {
			style := render.StyleFor(s.app.Theme())
			params.Markdown = func(md string, width int) []string {
				return s.app.Markdown.Lines(md, style, width)
			}
		}
		return strings.Join(view.RenderBlock(*res.Block, params).Lines, "\n")
	}
	return ""
}

func (s *Shell) theme() tuitheme.Theme {
	return tuitheme.ForName(s.app.Theme())
}

func (s *Shell) completer() *readline.PrefixCompleter {
	kinds := func() []readline.PrefixCompleterInterface {
		return []readline.PrefixCompleterInterface{
			readline.PcItem(string(content.KindBlogs)),
			readline.PcItem(string(content.KindProjects)),
		}
	}
	var items []readline.PrefixCompleterInterface
	for _, name := range s.app.Registry.Names() {
		switch name {
		case command.SilentName:
			continue
		case "ls", "find":
			items = append(items, readline.PcItem(name, kinds()...))
		case "open":
			var contacts []readline.PrefixCompleterInterface
			for _, c := range s.app.Profile.Contacts {
				if c.URL != "" {
					contacts = append(contacts, readline.PcItem(strings.ToLower(c.Label)))
				}
			}
			items = append(items, readline.PcItem(name, contacts...))
		default:
			items = append(items, readline.PcItem(name))
		}
	}
	items = append(items, readline.PcItem("exit"))
	return readline.NewPrefixCompleter(items...)
}
