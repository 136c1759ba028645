package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/quill/internal/prompts"
	"github.com/sant0-9/quill/internal/rewrite"
)

const logo = `
 ▄▄▄▄  █  █ ▀█▀ █    █
 █  █  █  █  █  █    █
 ▀▀▀█▄ ▀▄▄▀ ▄█▄ █▄▄▄ █▄▄▄
`

func (a *App) renderEditor() string {
	s := a.state.ctrl.State()
	w := min(90, a.width-4)

	var b strings.Builder

	header := lipgloss.JoinVertical(
		lipgloss.Center,
		styleLogo.Render(logo),
		styleSubtitle.Render("Rewrite text with AI"),
	)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.renderTabs(s)))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(w).
		BorderForeground(colorSecondary).
		Render(a.state.input.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n")

	outputStyle := styleBox.Copy().Width(w).BorderForeground(colorPrimary)
	var output string
	if s.Loading {
		output = a.state.spinner.View() + " Processing..."
		outputStyle = outputStyle.BorderForeground(colorSecondary)
	} else {
		output = a.state.output.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, outputStyle.Render(output)))
	b.WriteString("\n")

	if s.Err != "" {
		line := styleError.Render(truncate(s.Err, w))
		if hint := errorHint(s.Err); hint != "" {
			line += "  " + styleSubtitle.Render(hint)
		}
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.renderStatusBar(s)))

	return b.String()
}

func (a *App) renderTabs(s rewrite.State) string {
	tabs := make([]string, 0, len(prompts.Actions)+1)
	for _, act := range prompts.Actions {
		if act.Kind == s.Action {
			tabs = append(tabs, styleTabActive.Render(act.Label))
		} else {
			tabs = append(tabs, styleTab.Render(act.Label))
		}
	}
	if s.Action == prompts.ActionTranslate {
		tabs = append(tabs, styleSubtitle.Render("-> "+s.TargetLanguage))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
}

func (a *App) renderStatusBar(s rewrite.State) string {
	var provider string
	switch {
	case !a.state.client.Configured():
		provider = styleError.Render("no API key")
	case a.state.providerError != nil:
		provider = styleError.Render(a.state.client.ProviderName() + " unreachable")
	case a.state.providerReady:
		provider = lipgloss.NewStyle().Foreground(colorSuccess).Render(a.state.client.ProviderName())
	default:
		provider = a.state.client.ProviderName()
	}

	parts := []string{provider}
	if hint := tokenHint(s.Input, a.state.client.Model()); hint != "" {
		parts = append(parts, hint)
	}
	parts = append(parts,
		"[ctrl+s] Run",
		fmt.Sprintf("[ctrl+y] %s", s.CopyLabel),
		"[tab] Action",
		"[f1] Help",
	)
	if s.Action == prompts.ActionTranslate {
		parts = append(parts, "[ctrl+l] Language")
	}
	return styleStatusBar.Render(strings.Join(parts, "  "))
}

// refreshOutput syncs the output viewport with the controller state
func (a *App) refreshOutput() {
	s := a.state.ctrl.State()
	if s.Output == "" {
		a.state.output.SetContent(styleSubtitle.Render("The result will appear here."))
		return
	}

	width := a.state.output.Width
	if !a.state.showDiff {
		a.state.output.SetContent(lipgloss.NewStyle().Width(width).Render(s.Output))
		a.state.output.GotoTop()
		return
	}

	changes := rewrite.Diff(strings.TrimSpace(s.Input), s.Output)
	var b strings.Builder
	for _, c := range changes {
		switch c.Kind {
		case rewrite.Insert:
			b.WriteString(styleInsert.Render(c.Text))
		case rewrite.Delete:
			b.WriteString(styleDelete.Render(c.Text))
		default:
			b.WriteString(c.Text)
		}
	}
	ins, del := rewrite.Stats(changes)
	b.WriteString("\n\n")
	b.WriteString(styleSubtitle.Render(fmt.Sprintf("+%d -%d", ins, del)))

	a.state.output.SetContent(lipgloss.NewStyle().Width(width).Render(b.String()))
	a.state.output.GotoTop()
}

// errorHint suggests a fix for common failures
func errorHint(msg string) string {
	errLower := strings.ToLower(msg)

	switch {
	case strings.Contains(errLower, "api key"):
		return "Set QUILL_API_KEY or press [f2] to open settings"
	case strings.Contains(errLower, "clipboard"):
		return "Install xclip, xsel or wl-clipboard"
	case strings.Contains(errLower, "ai service"):
		return "Check your connection and try again"
	}
	return ""
}
