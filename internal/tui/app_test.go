package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/quill/internal/clipboard"
	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/prompts"
	"github.com/sant0-9/quill/internal/rewrite"
)

type fakeGenerator struct {
	prompts []string
	text    string
	err     error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func newTestApp(t *testing.T, gen *fakeGenerator, needsSetup bool) (*App, *clipboard.Memory) {
	t.Helper()
	clip := &clipboard.Memory{}
	cfg := config.DefaultConfig()
	a := NewApp(Options{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		NeedsSetup: needsSetup,
		Clipboard:  clip,
		Generator:  gen,
	})
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return a, clip
}

// collect runs cmd and every command it batches, returning the messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func send(a *App, msg tea.Msg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

func typeText(a *App, text string) {
	send(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// run submits the input and delivers the generation result
func run(t *testing.T, a *App) {
	t.Helper()
	cmd := send(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	require.True(t, a.state.ctrl.State().Loading)

	var done bool
	for _, msg := range collect(cmd) {
		if m, ok := msg.(generationDoneMsg); ok {
			send(a, m)
			done = true
		}
	}
	require.True(t, done, "generation result delivered")
}

func TestSubmitProcessesText(t *testing.T) {
	gen := &fakeGenerator{text: "  Hello, world.  "}
	a, _ := newTestApp(t, gen, false)

	typeText(a, "hello world")
	run(t, a)

	require.Len(t, gen.prompts, 1)
	assert.Equal(t, prompts.Build(prompts.ActionImprove, "hello world", "English"), gen.prompts[0])

	s := a.state.ctrl.State()
	assert.Equal(t, "Hello, world.", s.Output)
	assert.False(t, s.Loading)
	assert.Contains(t, a.state.output.View(), "Hello, world.")
}

func TestSubmitIgnoredWhileLoading(t *testing.T) {
	gen := &fakeGenerator{text: "done"}
	a, _ := newTestApp(t, gen, false)

	typeText(a, "text")
	first := send(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, first)

	assert.Nil(t, send(a, tea.KeyMsg{Type: tea.KeyCtrlS}))

	collect(first)
	assert.Len(t, gen.prompts, 1)
}

func TestSubmitEmptyInput(t *testing.T) {
	gen := &fakeGenerator{text: "never"}
	a, _ := newTestApp(t, gen, false)

	typeText(a, "   ")
	cmd := send(a, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd)
	assert.Empty(t, gen.prompts)
	assert.Equal(t, rewrite.ErrEmptyInput.Error(), a.state.ctrl.State().Err)
	assert.Contains(t, a.View(), rewrite.ErrEmptyInput.Error())
}

func TestSubmitFailureShowsError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("error communicating with the AI service, please try again")}
	a, _ := newTestApp(t, gen, false)

	typeText(a, "text")
	run(t, a)

	s := a.state.ctrl.State()
	assert.Equal(t, gen.err.Error(), s.Err)
	assert.Empty(t, s.Output)
	assert.Equal(t, "Check your connection and try again", errorHint(s.Err))
}

func TestActionKeys(t *testing.T) {
	a, _ := newTestApp(t, &fakeGenerator{}, false)
	ctrl := a.state.ctrl

	send(a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, prompts.Actions[1].Kind, ctrl.State().Action)

	send(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	send(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, prompts.Actions[len(prompts.Actions)-1].Kind, ctrl.State().Action)

	send(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3"), Alt: true})
	assert.Equal(t, prompts.Actions[2].Kind, ctrl.State().Action)

	send(a, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, prompts.Languages[1], ctrl.State().TargetLanguage)

	// app keys never reach the editor
	assert.Empty(t, a.state.input.Value())
}

func TestTranslateUsesSelectedLanguage(t *testing.T) {
	gen := &fakeGenerator{text: "Hola"}
	a, _ := newTestApp(t, gen, false)

	require.NoError(t, a.state.ctrl.SelectAction(prompts.ActionTranslate))
	send(a, tea.KeyMsg{Type: tea.KeyCtrlL})
	typeText(a, "Hello")
	run(t, a)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], prompts.Languages[1])
	assert.Contains(t, a.View(), "-> "+prompts.Languages[1])
}

func TestCopyRevertsLabel(t *testing.T) {
	a, clip := newTestApp(t, &fakeGenerator{text: "result"}, false)

	// nothing to copy yet
	assert.Nil(t, send(a, tea.KeyMsg{Type: tea.KeyCtrlY}))
	assert.Zero(t, clip.Writes)

	typeText(a, "input")
	run(t, a)

	cmd := send(a, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	assert.Equal(t, "result", clip.Text)
	assert.Equal(t, rewrite.CopiedLabel, a.state.ctrl.State().CopyLabel)
	assert.Contains(t, a.View(), rewrite.CopiedLabel)

	// waits for the label delay
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	reset, ok := msgs[0].(copyResetMsg)
	require.True(t, ok)

	send(a, reset)
	assert.Equal(t, rewrite.CopyLabel, a.state.ctrl.State().CopyLabel)
}

func TestDiffToggle(t *testing.T) {
	a, _ := newTestApp(t, &fakeGenerator{text: "the quick red fox"}, false)

	typeText(a, "the quick brown fox")
	run(t, a)

	send(a, tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.True(t, a.state.showDiff)
	ins, del := rewrite.Stats(rewrite.Diff("the quick brown fox", "the quick red fox"))
	assert.Contains(t, a.state.output.View(), fmt.Sprintf("+%d -%d", ins, del))

	send(a, tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.False(t, a.state.showDiff)
}

func TestSetupSkip(t *testing.T) {
	a, _ := newTestApp(t, &fakeGenerator{}, true)
	require.Equal(t, viewSetup, a.view)

	send(a, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, viewEditor, a.view)
	assert.False(t, a.quitting)
}

func TestSetupSavesConfig(t *testing.T) {
	a, _ := newTestApp(t, &fakeGenerator{}, true)

	cmd := send(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, a.state.setupStep)
	assert.Equal(t, config.Providers[0].ID, a.state.config.Provider)

	typeText(a, "secret-key-123")
	cmd = send(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	require.IsType(t, setupCompleteMsg{}, msgs[0])
	send(a, msgs[0])

	assert.Equal(t, viewEditor, a.view)
	assert.True(t, a.state.client.Configured())

	saved, err := config.Load(a.state.configPath)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "secret-key-123", saved.APIKey)
}

func TestSettingsChangeModel(t *testing.T) {
	a, _ := newTestApp(t, &fakeGenerator{}, false)

	send(a, tea.KeyMsg{Type: tea.KeyF2})
	require.Equal(t, viewSettings, a.view)

	send(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	require.Equal(t, "model", a.state.settingsMode)
	send(a, tea.KeyMsg{Type: tea.KeyDown})
	cmd := send(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	provider := config.GetProvider(a.state.config.Provider)
	assert.Equal(t, provider.Models[1], a.state.config.Model)

	for _, msg := range collect(cmd) {
		send(a, msg)
	}
	assert.Empty(t, a.state.settingsMode)

	send(a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewEditor, a.view)
}

func TestHelpView(t *testing.T) {
	a, _ := newTestApp(t, &fakeGenerator{}, false)

	send(a, tea.KeyMsg{Type: tea.KeyF1})
	require.Equal(t, viewHelp, a.view)
	assert.Contains(t, a.View(), "Summarize")

	send(a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewEditor, a.view)
}

func TestQuit(t *testing.T) {
	a, _ := newTestApp(t, &fakeGenerator{}, false)

	cmd := send(a, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.Contains(t, collect(cmd), tea.Msg(tea.QuitMsg{}))
	assert.True(t, a.quitting)
	assert.Empty(t, a.View())
}

func TestTokenHint(t *testing.T) {
	assert.Empty(t, tokenHint("   ", "gemini-2.5-flash"))
	assert.Equal(t, "~3 tokens", tokenHint("hello world", "gemini-2.5-flash"))
	assert.Equal(t, 1000000, getContextLimit("Gemini-2.5-Pro"))
	assert.Equal(t, 8000, getContextLimit("unknown"))
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "Not set", maskKey(""))
	assert.Equal(t, "****", maskKey("short"))
	assert.Equal(t, "abcd****wxyz", maskKey("abcdefghuvwxyz"))
}
