package app

import (
	"context"
	"fmt"
	"time"

	"github.com/glabrego/termfolio/internal/browser"
	"github.com/glabrego/termfolio/internal/command"
	"github.com/glabrego/termfolio/internal/content"
	"github.com/glabrego/termfolio/internal/history"
	"github.com/glabrego/termfolio/internal/logger"
	"github.com/glabrego/termfolio/internal/nav"
	"github.com/glabrego/termfolio/internal/profile"
	"github.com/glabrego/termfolio/internal/render"
	"github.com/glabrego/termfolio/internal/storage"
)

const storeTimeout = 5 * time.Second

type PreferenceStore interface {
	LoadTheme(ctx context.Context) (string, error)
	SaveTheme(ctx context.Context, theme string) error
	LoadHistory(ctx context.Context) ([]string, error)
	SaveHistory(ctx context.Context, lines []string) error
	Reset(ctx context.Context) error
}

type Options struct {
	Profile   profile.Profile
	Fetcher   content.Fetcher
	Store     PreferenceStore
	Start     nav.Location
	HeadLines int
	// OpenURL opens a link outside the terminal. Nil disables the open command.
	OpenURL func(string) error
}

// App is the application context: every long-lived component, built once and
// handed to the front-ends.
type App struct {
	Profile  profile.Profile
	Registry *command.Registry
	History  *history.History
	Nav      *nav.Coordinator
	Markdown *render.Markdown

	store     PreferenceStore
	browsers  map[content.Kind]*browser.Browser
	theme     string
	headLines int
	openURL   func(string) error
}

func New(ctx context.Context, opts Options) (*App, error) {
	if opts.HeadLines <= 0 {
		opts.HeadLines = browser.DefaultPreviewLines
	}
	a := &App{
		Profile:   opts.Profile,
		Registry:  command.NewRegistry(),
		Nav:       nav.NewCoordinator(opts.Start),
		Markdown:  render.NewMarkdown(),
		store:     opts.Store,
		headLines: opts.HeadLines,
		openURL:   opts.OpenURL,
		theme:     storage.ThemeDark,
	}

	theme, err := opts.Store.LoadTheme(ctx)
	if err != nil {
		logger.Warn("could not load theme preference, using default", "err", err)
	} else {
		a.theme = theme
	}
	lines, err := opts.Store.LoadHistory(ctx)
	if err != nil {
		logger.Warn("could not load command history", "err", err)
	}
	a.History = history.New(lines, a.saveHistory)

	a.browsers = map[content.Kind]*browser.Browser{
		content.KindBlogs:    browser.New(browser.Blogs, content.NewRepository(content.KindBlogs, opts.Fetcher), a.Nav),
		content.KindProjects: browser.New(browser.Projects, content.NewRepository(content.KindProjects, opts.Fetcher), a.Nav),
	}

	if err := a.registerCommands(); err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}
	return a, nil
}

func (a *App) Browser(kind content.Kind) (*browser.Browser, bool) {
	b, ok := a.browsers[kind]
	return b, ok
}

func (a *App) Theme() string {
	return a.theme
}

// Submit records line in the history and executes it.
func (a *App) Submit(line string) command.Result {
	if err := a.History.Add(line); err != nil {
		logger.Warn("could not save command history", "err", err)
	}
	return a.Registry.Execute(line)
}

// ToggleTheme flips between dark and light and persists the choice.
func (a *App) ToggleTheme(ctx context.Context) (string, error) {
	next := storage.ThemeLight
	if a.theme == storage.ThemeLight {
		next = storage.ThemeDark
	}
	if err := a.store.SaveTheme(ctx, next); err != nil {
		return a.theme, fmt.Errorf("save theme: %w", err)
	}
	a.theme = next
	return next, nil
}

// Reset clears every stored preference and the in-memory history.
func (a *App) Reset(ctx context.Context) error {
	if err := a.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset preferences: %w", err)
	}
	a.History.Clear()
	a.theme = storage.ThemeDark
	return nil
}

func (a *App) saveHistory(lines []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	return a.store.SaveHistory(ctx, lines)
}
