package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/rewrite"
)

type state struct {
	// Config
	config     *config.Config
	configPath string
	needsSetup bool
	log        *zap.Logger

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Settings state
	settingsMode     string
	settingsSelected int
	settingsError    error

	// Editor
	ctrl     *rewrite.Controller
	input    textarea.Model
	output   viewport.Model
	spinner  spinner.Model
	showDiff bool

	// Provider
	client        *llm.Client
	providerReady bool
	providerError error
}

func newState() *state {
	input := textarea.New()
	input.Placeholder = "Paste or type the text to rewrite..."
	input.CharLimit = 0
	input.ShowLineNumbers = false
	input.SetWidth(70)
	input.SetHeight(8)

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styleSpinner

	return &state{
		input:       input,
		output:      viewport.New(70, 8),
		apiKeyInput: apiKey,
		spinner:     spin,
	}
}
