package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gobwas/glob"

	"github.com/glabrego/termfolio/internal/browser"
	"github.com/glabrego/termfolio/internal/command"
	"github.com/glabrego/termfolio/internal/content"
	"github.com/glabrego/termfolio/internal/profile"
	"github.com/glabrego/termfolio/internal/render"
	"github.com/glabrego/termfolio/internal/storage"
)

const (
	usageLs      = "Usage: ls <blogs|projects> [pattern]"
	usageCat     = "Usage: cat <blog-id> [blogs|projects]\nUse blogs command to see available blogs."
	usageHead    = "Usage: head <blog-id> [lines]\nUse blogs command to see available blogs."
	usageGrep    = "Usage: grep <pattern> blogs"
	usageGrepAll = "Usage: grep <pattern> blogs\nSearch for text in all blogs."
	usageFind    = "Usage: find <blogs|projects> -tag <tag-name>\nFind entries by tag."
	usagePreview = "Usage: preview <blog-id> [lines]"
	usageOpen    = "Usage: open <contact>"
)

func (a *App) registerCommands() error {
	p := a.Profile
	entries := []command.Entry{
		{Name: "help", Handler: command.Func(func([]string) command.Result {
			return command.Text(a.Registry.Help())
		}), Description: "Displays a list of available commands"},
		{Name: "name", Handler: command.Static(p.Name), Description: "Displays my name"},
		{Name: "bio", Handler: command.Static(render.HTMLText(p.Bio)), Description: "Shows my bio"},
		{Name: "image", Handler: command.Static(render.HTMLText(p.ImageHTML())), Description: "Displays my image"},
		{Name: "contacts", Handler: command.Static(render.HTMLText(p.ContactsHTML())), Description: "Shows my contact details"},
		{Name: "experience", Handler: command.Static(profile.Bullets(p.Experience)), Description: "Lists my professional experience"},
		{Name: "projects", Handler: a.listHandler(content.KindProjects), Description: "Shows my projects with interactive interface", Modal: true},
		{Name: "education", Handler: command.Static(profile.Bullets(p.Education)), Description: "Lists my educational qualifications"},
		{Name: "blogs", Handler: a.listHandler(content.KindBlogs), Description: "Shows my blogs with interactive interface", Modal: true},
		{Name: "ls", Handler: command.Func(a.ls), Internal: true, Modal: true},
		{Name: "cat", Handler: command.Func(a.cat), Internal: true, Modal: true},
		{Name: "head", Handler: command.Func(a.head), Internal: true},
		{Name: "grep", Handler: command.Func(a.grep), Internal: true, Modal: true},
		{Name: "find", Handler: command.Func(a.find), Internal: true, Modal: true},
		{Name: "preview", Handler: command.Func(a.preview), Internal: true, Modal: true},
		{Name: "hobbies", Handler: command.Static(profile.Bullets(p.Hobbies)), Description: "Lists my hobbies"},
		{Name: "history", Handler: command.Func(func([]string) command.Result {
			return command.Text(strings.Join(a.History.Entries(), "\n"))
		}), Description: "Fetches the history of input commands"},
		{Name: "clear", Handler: command.Static(""), Description: "Clears the terminal output (Ctrl + L does the same)", Effect: command.EffectClear},
		{Name: "ping", Handler: command.Static("pong"), Description: "Checks if the terminal is active and responds with 'pong'"},
		{Name: "toggle_theme", Handler: command.Func(a.toggleTheme), Description: "Switch between light and dark themes", Effect: command.EffectTheme},
		{Name: "reset", Handler: command.Func(a.reset), Description: "Reset the theme preference and command history", Effect: command.EffectReset},
		{Name: "open", Handler: command.Func(a.open), Description: "Opens one of my contact links in your browser"},
		{Name: command.SilentName, Handler: command.Static(""), Internal: true},
	}
	for _, e := range entries {
		if err := a.Registry.Register(e); err != nil {
			return err
		}
	}
	return nil
}

// collection resolves a collection argument, defaulting to blogs when empty.
func (a *App) collection(arg string) (*browser.Browser, bool) {
	if arg == "" {
		arg = string(content.KindBlogs)
	}
	return a.Browser(content.Kind(arg))
}

func deferBlock(fn func(ctx context.Context) browser.Block) command.Result {
	return command.Defer(func(ctx context.Context) (command.Result, error) {
		return command.BlockResult(fn(ctx)), nil
	})
}

func (a *App) listHandler(kind content.Kind) command.Handler {
	return command.Func(func([]string) command.Result {
		b, _ := a.Browser(kind)
		return deferBlock(b.ShowList)
	})
}

func (a *App) ls(args []string) command.Result {
	if len(args) == 0 || len(args) > 2 {
		return command.Text(usageLs)
	}
	b, ok := a.Browser(content.Kind(args[0]))
	if !ok {
		return command.Text(usageLs)
	}
	if len(args) == 1 {
		return deferBlock(b.ShowList)
	}
	g, err := glob.Compile(args[1])
	if err != nil {
		return command.Text(usageLs)
	}
	return deferBlock(func(ctx context.Context) browser.Block {
		block := b.ShowList(ctx)
		if len(block.Items) == 0 {
			return block
		}
		items := block.Items[:0:0]
		for _, item := range block.Items {
			if g.Match(item.Entry.ID) {
				items = append(items, item)
			}
		}
		block.Items = items
		if len(items) == 0 {
			block.Message = fmt.Sprintf("No %s match '%s'.", b.Spec().Kind, args[1])
		}
		return block
	})
}

func (a *App) cat(args []string) command.Result {
	if len(args) == 0 || len(args) > 2 {
		return command.Text(usageCat)
	}
	var kind string
	if len(args) == 2 {
		kind = args[1]
	}
	b, ok := a.collection(kind)
	if !ok {
		return command.Text(usageCat)
	}
	id := args[0]
	return deferBlock(func(ctx context.Context) browser.Block { return b.Open(ctx, id) })
}

func (a *App) head(args []string) command.Result {
	if len(args) == 0 || len(args) > 2 {
		return command.Text(usageHead)
	}
	lines := a.headLines
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err == nil && n > 0 {
			lines = n
		}
	}
	b, _ := a.Browser(content.KindBlogs)
	id := args[0]
	return command.Defer(func(ctx context.Context) (command.Result, error) {
		return command.Text(b.Head(ctx, id, lines)), nil
	})
}

func (a *App) grep(args []string) command.Result {
	if len(args) == 0 {
		return command.Text(usageGrepAll)
	}
	if len(args) != 2 || args[1] != string(content.KindBlogs) {
		return command.Text(usageGrep)
	}
	b, _ := a.Browser(content.KindBlogs)
	pattern := args[0]
	return deferBlock(func(ctx context.Context) browser.Block { return b.Search(ctx, pattern) })
}

func (a *App) find(args []string) command.Result {
	if len(args) != 3 || args[1] != "-tag" || args[2] == "" {
		return command.Text(usageFind)
	}
	b, ok := a.Browser(content.Kind(args[0]))
	if !ok {
		return command.Text(usageFind)
	}
	tag := args[2]
	return deferBlock(func(ctx context.Context) browser.Block { return b.FilterByTag(ctx, tag) })
}

func (a *App) preview(args []string) command.Result {
	if len(args) == 0 || len(args) > 2 {
		return command.Text(usagePreview)
	}
	lines := a.headLines
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return command.Text(usagePreview)
		}
		lines = n
	}
	b, _ := a.Browser(content.KindBlogs)
	id := args[0]
	return deferBlock(func(ctx context.Context) browser.Block { return b.Preview(ctx, id, lines) })
}

func (a *App) toggleTheme([]string) command.Result {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	theme, err := a.ToggleTheme(ctx)
	if err != nil {
		return command.Result{Kind: command.KindText, Text: "Error: " + err.Error(), Err: err}
	}
	if theme == storage.ThemeLight {
		return command.Text("Switched to Light Theme.")
	}
	return command.Text("Switched to Dark Theme.")
}

func (a *App) reset([]string) command.Result {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := a.Reset(ctx); err != nil {
		return command.Result{Kind: command.KindText, Text: "Error: " + err.Error(), Err: err}
	}
	return command.Text("Theme preference and command history have been reset.")
}

func (a *App) open(args []string) command.Result {
	if len(args) != 1 {
		return command.Text(usageOpen + "\n" + a.contactLabels())
	}
	c, ok := a.Profile.Contact(args[0])
	if !ok || c.URL == "" {
		return command.Text(fmt.Sprintf("Unknown contact '%s'. %s", args[0], a.contactLabels()))
	}
	if a.openURL == nil {
		return command.Text(c.URL)
	}
	if err := a.openURL(c.URL); err != nil {
		return command.Result{Kind: command.KindText, Text: "Error: " + err.Error(), Err: err}
	}
	return command.Text("Opening " + c.URL)
}

func (a *App) contactLabels() string {
	labels := make([]string, 0, len(a.Profile.Contacts))
	for _, c := range a.Profile.Contacts {
		if c.URL != "" {
			labels = append(labels, strings.ToLower(c.Label))
		}
	}
	return "Available: " + strings.Join(labels, ", ")
}
