package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/quill/internal/config"
)

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case "provider":
		return a.renderSettingsProvider()
	case "model":
		return a.renderSettingsModel()
	case "apikey":
		return a.renderSettingsAPIKey()
	default:
		return a.renderSettingsMain()
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Current config
	provider := config.GetProvider(a.state.config.Provider)
	providerName := a.state.config.Provider
	if provider != nil {
		providerName = provider.Name
	}

	maskedKey := maskKey(a.state.config.APIKey)
	if a.state.config.APIKeyFromEnv() {
		maskedKey += " (from environment)"
	}

	configLines := []string{
		fmt.Sprintf("  Provider: %s", providerName),
		fmt.Sprintf("  Model:    %s", a.state.config.Model),
		fmt.Sprintf("  API Key:  %s", maskedKey),
		fmt.Sprintf("  Action:   %s", a.state.ctrl.State().Action.Label()),
		fmt.Sprintf("  Language: %s", a.state.ctrl.State().TargetLanguage),
	}

	configBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	// Actions
	actions := []string{
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
		"  [d] Save current action and language as default",
		"  [r] Reset setup",
	}
	actionsBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionsBox))
	b.WriteString("\n\n")

	if err := a.state.settingsError; err != nil {
		msg := styleError.Render(truncate(err.Error(), 60))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, msg))
		b.WriteString("\n\n")
	}

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsProvider() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Select Provider")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var lines []string
	for i, p := range config.Providers {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s", cursor, p.Name)
		if i == a.state.settingsSelected {
			line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsModel() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Select Model")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	provider := config.GetProvider(a.state.config.Provider)
	if provider == nil {
		desc := styleSubtitle.Render("No provider selected")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
		return a.centerVertically(b.String())
	}

	providerDesc := styleSubtitle.Render(fmt.Sprintf("Provider: %s", provider.Name))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, providerDesc))
	b.WriteString("\n\n")

	var lines []string
	for i, model := range provider.Models {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		// Mark current model
		current := ""
		if model == a.state.config.Model {
			current = " (current)"
		}
		line := fmt.Sprintf("%s%s%s", cursor, model, current)
		if i == a.state.settingsSelected {
			line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Update API Key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	desc := styleSubtitle.Render("Enter your new API key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(50).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Enter] Save  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

// maskKey hides all but the ends of an API key
func maskKey(k string) string {
	switch {
	case k == "":
		return "Not set"
	case len(k) > 8:
		return k[:4] + "****" + k[len(k)-4:]
	default:
		return "****"
	}
}

func (a *App) openSettings() {
	a.view = viewSettings
	a.state.settingsMode = ""
	a.state.settingsSelected = 0
	a.state.settingsError = nil
	a.state.input.Blur()
}

// settingsBack leaves a sub-mode, or the settings view itself
func (a *App) settingsBack() tea.Cmd {
	if a.state.settingsMode != "" {
		a.state.settingsMode = ""
		a.state.settingsSelected = 0
		a.state.apiKeyInput.Reset()
		a.state.apiKeyInput.Blur()
		return nil
	}
	a.view = viewEditor
	a.state.input.Focus()
	return textarea.Blink
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.state.settingsMode {
	case "":
		switch msg.String() {
		case "p":
			a.state.settingsMode = "provider"
			a.state.settingsSelected = 0
		case "m":
			a.state.settingsMode = "model"
			a.state.settingsSelected = 0
		case "k":
			a.state.settingsMode = "apikey"
			a.state.apiKeyInput.Reset()
			a.state.apiKeyInput.Focus()
			return textinput.Blink, true
		case "d":
			s := a.state.ctrl.State()
			a.state.config.DefaultAction = s.Action.String()
			a.state.config.TargetLanguage = s.TargetLanguage
			return a.saveConfig(settingsSavedMsg{}), true
		case "r":
			a.state.settingsMode = ""
			a.state.setupStep = 0
			a.state.selectedProvider = 0
			a.state.needsSetup = true
			a.view = viewSetup
		}
		return nil, true

	case "provider":
		return a.handleSettingsList(msg, len(config.Providers), func(i int) tea.Cmd {
			p := config.Providers[i]
			a.state.config.Provider = p.ID
			a.state.config.Model = p.DefaultModel
			return a.saveConfig(settingsSavedMsg{})
		}), true

	case "model":
		provider := config.GetProvider(a.state.config.Provider)
		if provider == nil {
			return nil, true
		}
		return a.handleSettingsList(msg, len(provider.Models), func(i int) tea.Cmd {
			a.state.config.Model = provider.Models[i]
			return a.saveConfig(settingsSavedMsg{})
		}), true

	case "apikey":
		if key.Matches(msg, keys.Enter) {
			value := strings.TrimSpace(a.state.apiKeyInput.Value())
			if value == "" {
				return nil, true
			}
			a.state.config.APIKey = value
			return a.saveConfig(settingsSavedMsg{}), true
		}
	}

	return nil, false
}

func (a *App) handleSettingsList(msg tea.KeyMsg, n int, pick func(int) tea.Cmd) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		if a.state.settingsSelected > 0 {
			a.state.settingsSelected--
		}
	case key.Matches(msg, keys.Down):
		if a.state.settingsSelected < n-1 {
			a.state.settingsSelected++
		}
	case key.Matches(msg, keys.Enter):
		if n == 0 {
			return nil
		}
		return pick(a.state.settingsSelected)
	}
	return nil
}
