package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sant0-9/quill/internal/clipboard"
	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/logging"
	"github.com/sant0-9/quill/internal/prompts"
	"github.com/sant0-9/quill/internal/rewrite"
)

type view int

const (
	viewEditor view = iota
	viewSetup
	viewSettings
	viewHelp
)

// Options configures the application
type Options struct {
	Config     *config.Config
	ConfigPath string
	// NeedsSetup shows the first-run wizard before the editor
	NeedsSetup bool
	Logger     *zap.Logger
	Clipboard  rewrite.Clipboard
	// Generator replaces the client built from Config
	Generator rewrite.Generator
}

type App struct {
	width    int
	height   int
	view     view
	state    *state
	quitting bool

	// gen serves requests; it is the client unless overridden
	gen               rewrite.Generator
	generatorOverride bool
}

func NewApp(opts Options) *App {
	s := newState()
	s.config = opts.Config
	if s.config == nil {
		s.config = config.DefaultConfig()
	}
	s.configPath = opts.ConfigPath
	s.needsSetup = opts.NeedsSetup
	s.log = logging.OrNop(opts.Logger)

	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.System{}
	}

	a := &App{view: viewEditor, state: s}

	if opts.Generator != nil {
		a.gen = opts.Generator
		a.generatorOverride = true
	}
	a.buildClient()

	s.ctrl = rewrite.NewController(a.gen, clip, s.log)
	if kind, err := prompts.ParseAction(s.config.DefaultAction); err == nil {
		_ = s.ctrl.SelectAction(kind)
	}
	if prompts.IsLanguage(s.config.TargetLanguage) {
		s.ctrl.SetTargetLanguage(prompts.NextLanguage(s.config.TargetLanguage, 0))
	}

	if s.needsSetup {
		a.view = viewSetup
	}
	s.input.Focus()

	return a
}

// buildClient (re)creates the text generation client from the current
// config. An unknown provider leaves the client unconfigured.
func (a *App) buildClient() {
	client, err := llm.NewClient(a.state.config, a.state.log)
	if err != nil {
		a.state.log.Error("cannot create client", zap.Error(err))
		a.state.providerError = err
		fallback := config.DefaultConfig()
		fallback.APIKey = ""
		client, _ = llm.NewClient(fallback, a.state.log)
	}
	a.state.client = client
	a.state.providerReady = false
	if a.generatorOverride {
		return
	}
	a.gen = client
	if a.state.ctrl != nil {
		a.state.ctrl.SetGenerator(client)
	}
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	return tea.Batch(
		tea.WindowSize(),
		textarea.Blink,
		a.testProvider(),
	)
}

// testProvider pings the provider in the background. Unconfigured clients
// are not pinged.
func (a *App) testProvider() tea.Cmd {
	client := a.state.client
	if client == nil || !client.Configured() {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}
		return providerReadyMsg{}
	}
}

// generate runs one request outside the event loop
func (a *App) generate(prompt string) tea.Cmd {
	gen := a.gen
	return func() tea.Msg {
		text, err := gen.Generate(context.Background(), prompt)
		return generationDoneMsg{text: text, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if handled {
			return a, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

	case generationDoneMsg:
		a.state.ctrl.Finish(msg.text, msg.err)
		a.refreshOutput()
		return a, nil

	case copyResetMsg:
		a.state.ctrl.ResetCopyLabel(msg.token)
		return a, nil

	case spinner.TickMsg:
		if !a.state.ctrl.State().Loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.state.setupStep = 0
		a.state.settingsError = nil
		a.state.apiKeyInput.Reset()
		a.state.apiKeyInput.Blur()
		a.view = viewEditor
		a.buildClient()
		a.state.input.Focus()
		return a, tea.Batch(textarea.Blink, a.testProvider())

	case settingsSavedMsg:
		a.state.settingsMode = ""
		a.state.settingsSelected = 0
		a.state.settingsError = nil
		a.state.apiKeyInput.Reset()
		a.state.apiKeyInput.Blur()
		a.buildClient()
		return a, a.testProvider()

	case setupErrorMsg:
		a.state.settingsError = msg.error
		a.state.log.Error("saving config failed", zap.Error(msg.error))
		return a, nil

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = nil
		return a, nil

	case providerErrorMsg:
		a.state.providerError = msg.error
		return a, nil
	}

	// Update text inputs based on view
	switch {
	case a.view == viewSetup && a.state.setupStep == 1,
		a.view == viewSettings && a.state.settingsMode == "apikey":
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewEditor && !a.state.ctrl.State().Loading:
		var cmd tea.Cmd
		a.state.input, cmd = a.state.input.Update(msg)
		a.state.ctrl.SetInput(a.state.input.Value())
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// handleKey processes global and view keys. handled reports that the key
// must not reach the text inputs.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Quit) {
		switch {
		case a.view == viewHelp:
			a.view = viewEditor
			return nil, true
		case a.view == viewSettings:
			return a.settingsBack(), true
		case a.view == viewSetup && a.state.setupStep == 1:
			// Go back to provider selection
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
			return nil, true
		case a.view == viewSetup && msg.String() == "esc":
			// Skipping setup leaves the client unconfigured
			a.state.needsSetup = false
			a.view = viewEditor
			a.state.input.Focus()
			return textarea.Blink, true
		}
		a.quitting = true
		return tea.Quit, true
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewHelp:
		return nil, true
	}

	return a.handleEditorKey(msg)
}

func (a *App) handleEditorKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	ctrl := a.state.ctrl

	switch {
	case key.Matches(msg, keys.Help):
		a.view = viewHelp
		return nil, true

	case key.Matches(msg, keys.Settings):
		a.openSettings()
		return nil, true

	case key.Matches(msg, keys.Submit):
		return a.submit(), true

	case key.Matches(msg, keys.Copy):
		token, ok := ctrl.CopyToClipboard()
		if !ok {
			return nil, true
		}
		return tea.Tick(rewrite.CopyLabelDelay, func(time.Time) tea.Msg {
			return copyResetMsg{token: token}
		}), true

	case key.Matches(msg, keys.NextAction):
		_ = ctrl.SelectAction(prompts.NextAction(ctrl.State().Action, 1))
		return nil, true

	case key.Matches(msg, keys.PrevAction):
		_ = ctrl.SelectAction(prompts.NextAction(ctrl.State().Action, -1))
		return nil, true

	case key.Matches(msg, keys.Language):
		ctrl.SetTargetLanguage(prompts.NextLanguage(ctrl.State().TargetLanguage, 1))
		return nil, true

	case key.Matches(msg, keys.Diff):
		a.state.showDiff = !a.state.showDiff
		a.refreshOutput()
		return nil, true

	case key.Matches(msg, keys.ScrollUp):
		a.state.output.ViewUp()
		return nil, true

	case key.Matches(msg, keys.ScrollDown):
		a.state.output.ViewDown()
		return nil, true
	}

	for i, b := range keys.Actions {
		if key.Matches(msg, b) && i < len(prompts.Actions) {
			_ = ctrl.SelectAction(prompts.Actions[i].Kind)
			return nil, true
		}
	}

	return nil, false
}

// submit starts a request unless one is already running
func (a *App) submit() tea.Cmd {
	ctrl := a.state.ctrl
	if ctrl.State().Loading {
		return nil
	}

	ctrl.SetInput(a.state.input.Value())
	prompt, ok := ctrl.Begin()
	a.refreshOutput()
	if !ok {
		return nil
	}

	a.state.log.Info("processing text",
		zap.String("action", ctrl.State().Action.String()),
		zap.String("language", ctrl.State().TargetLanguage))

	return tea.Batch(a.state.spinner.Tick, a.generate(prompt))
}

func (a *App) resize() {
	w := min(90, a.width-4)
	if w < 20 {
		w = 20
	}
	h := (a.height - 14) / 2
	if h < 3 {
		h = 3
	}
	a.state.input.SetWidth(w - 4)
	a.state.input.SetHeight(h)
	a.state.output.Width = w - 4
	a.state.output.Height = h
	a.refreshOutput()
}

type generationDoneMsg struct {
	text string
	err  error
}
type copyResetMsg struct{ token int }
type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type settingsSavedMsg struct{}
type providerReadyMsg struct{}
type providerErrorMsg struct{ error }

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderEditor()
	}
}
