package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/termfolio/internal/app"
	"github.com/glabrego/termfolio/internal/browser"
	"github.com/glabrego/termfolio/internal/command"
	"github.com/glabrego/termfolio/internal/history"
	"github.com/glabrego/termfolio/internal/logger"
	"github.com/glabrego/termfolio/internal/nav"
	tuiactions "github.com/glabrego/termfolio/internal/tui/actions"
	"github.com/glabrego/termfolio/internal/tui/platform"
	tuistate "github.com/glabrego/termfolio/internal/tui/state"
	tuitheme "github.com/glabrego/termfolio/internal/tui/theme"
	"github.com/glabrego/termfolio/internal/tui/view"
)

const (
	DisabledInputMessage = "Input disabled in this pane. Switch to 5:Terminal to use commands."
	TUIExitMessage       = "TUI mode exited. Type 'help' for available commands."

	defaultTipInterval = 20 * time.Second
	defaultStatusTTL   = 4 * time.Second
	// tabs, status line, rule, prompt, message panel, toolbar, tip line
	chromeLines = 7
)

type scrollMode int

const (
	scrollKeep scrollMode = iota
	scrollTop
	scrollBottom
)

type Options struct {
	TipInterval time.Duration
	OpenURL     func(string) error
	CopyText    func(string) error
	Now         func() time.Time
}

type Model struct {
	app      *app.App
	keys     keyMap
	input    textinput.Model
	viewport viewport.Model
	theme    tuitheme.Theme

	output  []outputItem
	targets []target
	focus   int
	mdCache map[mdKey][]string

	width       int
	height      int
	now         time.Time
	nowFn       func() time.Time
	tips        []string
	tipIndex    int
	tipInterval time.Duration
	loading     int
	status      string
	statusID    int
	statusTTL   time.Duration
	warning     string
	openURLFn   func(string) error
	copyFn      func(string) error
	startCmds   []tea.Cmd
}

// NewModel routes the app's start location and runs the first section's
// commands. Deferred work is started by Init.
func NewModel(a *app.App, opts Options) Model {
	if opts.TipInterval <= 0 {
		opts.TipInterval = defaultTipInterval
	}
	if opts.OpenURL == nil {
		opts.OpenURL = platform.OpenURLInBrowser
	}
	if opts.CopyText == nil {
		opts.CopyText = platform.CopyToClipboard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ti := textinput.New()
	ti.Prompt = promptSymbol + " "
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		app:         a,
		keys:        defaultKeyMap(),
		input:       ti,
		viewport:    viewport.New(80, 17),
		theme:       tuitheme.ForName(a.Theme()),
		focus:       -1,
		mdCache:     make(map[mdKey][]string),
		width:       80,
		height:      24,
		nowFn:       opts.Now,
		now:         opts.Now(),
		tips:        a.Profile.Tips,
		tipInterval: opts.TipInterval,
		statusTTL:   defaultStatusTTL,
		openURLFn:   opts.OpenURL,
		copyFn:      opts.CopyText,
	}
	m.applyTheme()
	m.startCmds = m.applyTransition(a.Nav.Start())
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := append([]tea.Cmd{
		tuiactions.ClockCmd(m.now),
		tuiactions.TipCmd(m.tipInterval),
	}, m.startCmds...)
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(3, msg.Height-chromeLines)
		m.input.Width = max(10, msg.Width-4)
		m.refresh(scrollKeep)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tuiactions.DeferredResultMsg:
		m.loading = max(0, m.loading-1)
		if !m.app.Nav.Accept(msg.Token) {
			return m, nil
		}
		return m.deliver(msg.Token.ID, msg.Result)
	case tuiactions.BrowserActionMsg:
		m.loading = max(0, m.loading-1)
		if !m.app.Nav.Accept(msg.Token) {
			return m, nil
		}
		return m.showBrowserBlock(msg.Block)
	case tuiactions.BrowserActionErrorMsg:
		m.loading = max(0, m.loading-1)
		m.warning = msg.Err.Error()
		return m, nil
	case tuiactions.OpenURLSuccessMsg:
		return m, m.setStatus(msg.Status)
	case tuiactions.OpenURLErrorMsg:
		m.warning = msg.Err.Error()
		return m, nil
	case tuiactions.ClockTickMsg:
		m.now = msg.Now
		return m, tuiactions.ClockCmd(msg.Now)
	case tuiactions.TipTickMsg:
		m.tipIndex = tuistate.NextTip(m.tipIndex, len(m.tips))
		return m, tuiactions.TipCmd(m.tipInterval)
	case tuiactions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		t, ok := m.app.Nav.Back()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.applyTransition(t)...)
	case key.Matches(msg, m.keys.Forward):
		t, ok := m.app.Nav.Forward()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.applyTransition(t)...)
	case key.Matches(msg, m.keys.NextFocus):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.moveFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if s, ok := m.keys.section(msg); ok {
		return m, tea.Batch(m.applyTransition(m.app.Nav.Switch(s, true))...)
	}

	if m.inputActive() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Activate):
		return m.activate()
	case key.Matches(msg, m.keys.Escape):
		return m.escape()
	case key.Matches(msg, m.keys.Copy):
		return m, tuiactions.CopyCmd(m.app.Nav.Location().String(), m.copyFn)
	case key.Matches(msg, m.keys.Open):
		if t, ok := m.focused(); ok && t.kind == targetLink {
			return m, tuiactions.OpenURLCmd(t.url, m.openURLFn, m.copyFn)
		}
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		if m.app.Nav.Input() == nav.InputEnabled {
			m.clearOutput()
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes && m.app.Nav.Input() == nav.InputDisabled {
		return m, m.setStatus(DisabledInputMessage)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Activate):
		line := m.input.Value()
		m.input.SetValue("")
		return m.submit(line, true)
	case key.Matches(msg, m.keys.Clear):
		m.clearOutput()
		return m, nil
	case msg.Type == tea.KeyUp:
		if line, ok := m.app.History.Recall(history.Up); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return m, nil
	case msg.Type == tea.KeyDown:
		line, _ := m.app.History.Recall(history.Down)
		m.input.SetValue(line)
		m.input.CursorEnd()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs one command line. record adds it to the command history; the
// section's own commands are not recorded or echoed.
func (m Model) submit(line string, record bool) (tea.Model, tea.Cmd) {
	var res command.Result
	echo := ""
	if record {
		res = m.app.Submit(line)
		echo = strings.TrimSpace(line)
	} else {
		res = m.app.Registry.Execute(line)
	}

	if res.Kind == command.KindSuppressed {
		if res.Effect == command.EffectClear {
			m.clearOutput()
		}
		return m, nil
	}

	if res.Pending() {
		tok := m.app.Nav.Token()
		m.output = append(m.output, outputItem{echo: echo, result: res, pending: tok.ID})
		m.loading++
		m.refresh(scrollBottom)
		return m, tuiactions.ResolveCmd(tok, res)
	}

	m.output = append(m.output, outputItem{echo: echo, result: res})
	return m.applyEffect(res)
}

// deliver replaces the placeholder issued under id with its result.
func (m Model) deliver(id string, res command.Result) (tea.Model, tea.Cmd) {
	idx := -1
	for i, item := range m.output {
		if item.pending == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		logger.Debug("no placeholder for deferred result", "request", id)
		return m, nil
	}
	m.output[idx].result = res
	m.output[idx].pending = ""

	state := m.app.Nav.State()
	if res.Kind == command.KindBlock && res.Modal && state.Section == nav.Terminal && state.Mode == nav.ModeNormal {
		return m.enterTUI(res)
	}
	return m.applyEffect(res)
}

func (m Model) applyEffect(res command.Result) (tea.Model, tea.Cmd) {
	switch res.Effect {
	case command.EffectTheme:
		m.theme = tuitheme.ForName(m.app.Theme())
		m.applyTheme()
	case command.EffectReset:
		m.theme = tuitheme.ForName(m.app.Theme())
		m.applyTheme()
		cmds := m.applyTransition(m.app.Nav.Switch(nav.Home, true))
		cmds = append(cmds, m.setStatus(res.Text))
		return m, tea.Batch(cmds...)
	}
	m.refresh(scrollBottom)
	return m, nil
}

// enterTUI hands the whole output surface to a browser block.
func (m Model) enterTUI(res command.Result) (tea.Model, tea.Cmd) {
	m.app.Nav.EnterTUI()
	res.Input = ""
	m.output = []outputItem{{result: res}}
	m.input.Blur()
	m.focus = -1
	m.refresh(scrollTop)
	m.moveFocus(1)
	if len(m.targets) > 1 {
		m.moveFocus(1)
	}
	return m, nil
}

// showBrowserBlock puts a browser transition result in place of the block
// that produced it.
func (m Model) showBrowserBlock(block browser.Block) (tea.Model, tea.Cmd) {
	res := command.BlockResult(block)
	res.Modal = true
	state := m.app.Nav.State()
	if state.Section == nav.Terminal && state.Mode == nav.ModeNormal {
		return m.enterTUI(res)
	}
	for i := len(m.output) - 1; i >= 0; i-- {
		if m.output[i].result.Kind == command.KindBlock {
			m.output[i].result = res
			m.refresh(scrollKeep)
			return m, nil
		}
	}
	m.output = append(m.output, outputItem{result: res})
	m.refresh(scrollKeep)
	return m, nil
}

func (m Model) activate() (tea.Model, tea.Cmd) {
	t, ok := m.focused()
	if !ok {
		return m, nil
	}
	switch t.kind {
	case targetLink:
		return m, tuiactions.OpenURLCmd(t.url, m.openURLFn, m.copyFn)
	case targetCommand:
		m.focus = -1
		if m.app.Nav.Input() == nav.InputEnabled {
			m.input.Focus()
		}
		return m.submit(t.command, true)
	}
	return m.runAction(t.action)
}

func (m Model) runAction(a browser.Action) (tea.Model, tea.Cmd) {
	if a.Kind == browser.ActionExit {
		return m.exitBrowser()
	}
	b, ok := m.app.Browser(a.Collection)
	if !ok {
		m.warning = "unknown collection: " + string(a.Collection)
		return m, nil
	}
	m.loading++
	m.warning = ""
	return m, tuiactions.BrowserActionCmd(m.app.Nav.Token(), b, a)
}

// exitBrowser leaves the content browser: the terminal drops back to the
// prompt, the blogs and projects panes switch to the terminal.
func (m Model) exitBrowser() (tea.Model, tea.Cmd) {
	if m.app.Nav.ExitTUI() {
		m.output = []outputItem{{result: command.Text(TUIExitMessage)}}
		m.focus = -1
		m.input.Focus()
		m.refresh(scrollBottom)
		return m, nil
	}
	switch m.app.Nav.State().Section {
	case nav.Blogs, nav.Projects:
		return m, tea.Batch(m.applyTransition(m.app.Nav.Switch(nav.Terminal, true))...)
	}
	return m, nil
}

func (m Model) escape() (tea.Model, tea.Cmd) {
	if m.app.Nav.State().Mode == nav.ModeTUI {
		if block := m.currentBlock(); block != nil {
			return m.runAction(block.Back)
		}
		return m.exitBrowser()
	}
	m.focus = -1
	if m.app.Nav.Input() == nav.InputEnabled {
		m.input.Focus()
	}
	m.refresh(scrollKeep)
	return m, nil
}

// applyTransition resets the surface for a section change and starts the
// section's commands.
func (m *Model) applyTransition(t nav.Transition) []tea.Cmd {
	m.output = nil
	m.focus = -1
	m.warning = ""
	m.input.SetValue("")
	if t.Input == nav.InputEnabled {
		m.input.Focus()
	} else {
		m.input.Blur()
	}

	var cmds []tea.Cmd
	for _, name := range t.Commands {
		res := m.app.Registry.Execute(name)
		if res.Pending() {
			tok := m.app.Nav.Token()
			m.output = append(m.output, outputItem{result: res, pending: tok.ID})
			m.loading++
			cmds = append(cmds, tuiactions.ResolveCmd(tok, res))
			continue
		}
		m.output = append(m.output, outputItem{result: res})
	}
	m.refresh(scrollTop)
	return cmds
}

func (m *Model) clearOutput() {
	m.app.Nav.Clear()
	m.output = nil
	m.focus = -1
	m.refresh(scrollTop)
}

func (m *Model) moveFocus(delta int) {
	if len(m.targets) == 0 {
		return
	}
	m.focus = tuistate.CycleFocus(m.focus, len(m.targets), delta)
	m.input.Blur()
	m.refresh(scrollKeep)
	line := m.targets[m.focus].line
	if m.app.Nav.State().Mode == nav.ModeTUI {
		// the browser owns the surface, keep the focused action mid-screen
		start, _ := tuistate.CenteredWindow(m.viewport.TotalLineCount(), line, m.viewport.Height)
		m.viewport.SetYOffset(start)
		return
	}
	m.viewport.SetYOffset(tuistate.ScrollToLine(m.viewport.YOffset, line, m.viewport.Height))
}

func (m Model) focused() (target, bool) {
	if m.focus < 0 || m.focus >= len(m.targets) {
		return target{}, false
	}
	return m.targets[m.focus], true
}

func (m Model) currentBlock() *browser.Block {
	for i := len(m.output) - 1; i >= 0; i-- {
		if res := m.output[i].result; res.Kind == command.KindBlock && res.Block != nil {
			return res.Block
		}
	}
	return nil
}

func (m Model) inputActive() bool {
	return m.focus < 0 && m.app.Nav.Input() == nav.InputEnabled
}

func (m *Model) refresh(scroll scrollMode) {
	lines, targets := m.layout()
	m.targets = targets
	if m.focus >= len(targets) {
		m.focus = tuistate.ClampCursor(m.focus, len(targets))
		if len(targets) == 0 {
			m.focus = -1
		}
		lines, _ = m.layout()
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	switch scroll {
	case scrollTop:
		m.viewport.GotoTop()
	case scrollBottom:
		m.viewport.GotoBottom()
	}
}

func (m *Model) setStatus(status string) tea.Cmd {
	m.statusID++
	m.status = status
	return tuiactions.ClearStatusCmd(m.statusID, m.statusTTL)
}

func (m *Model) applyTheme() {
	m.input.PromptStyle = m.theme.Prompt
	m.input.TextStyle = m.theme.Echo
	m.input.PlaceholderStyle = m.theme.MetaLabel
}

func (m Model) contentWidth() int {
	if m.width <= 4 {
		return 76
	}
	return m.width - 2
}

func (m Model) View() string {
	var b strings.Builder
	state := m.app.Nav.State()
	input := m.app.Nav.Input()

	b.WriteString(view.Tabs(state.Section, m.theme))
	b.WriteString("\n")
	b.WriteString(view.StatusLine(m.app.Nav.Location().String(), m.now, m.width, m.theme))
	b.WriteString("\n")
	b.WriteString(m.theme.MetaLabel.Render(strings.Repeat("─", max(1, m.width))))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	switch input {
	case nav.InputEnabled:
		b.WriteString(m.input.View())
	case nav.InputDisabled:
		b.WriteString(m.theme.MetaLabel.Render(promptSymbol + " (input disabled)"))
	}
	b.WriteString("\n")
	b.WriteString(view.Message(m.loading > 0, m.status, m.warning, m.theme))
	b.WriteString("\n")
	b.WriteString(m.theme.MetaLabel.Render(view.Toolbar(state.Mode, input)))
	b.WriteString("\n")
	if len(m.tips) > 0 {
		b.WriteString(view.TipLine(m.tips[m.tipIndex%len(m.tips)], m.theme))
	}
	return b.String()
}
