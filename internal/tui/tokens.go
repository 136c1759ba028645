package tui

import (
	"fmt"
	"strings"
)

// estimateTokens returns approximate token count (~4 chars per token)
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// getContextLimit returns the context window size for a model
func getContextLimit(model string) int {
	model = strings.ToLower(model)

	switch {
	case strings.Contains(model, "gemini"):
		return 1000000
	case strings.Contains(model, "claude"):
		return 200000
	case strings.Contains(model, "gpt-4o"), strings.Contains(model, "gpt-4-turbo"):
		return 128000
	case strings.Contains(model, "llama-3"), strings.Contains(model, "llama3"):
		return 128000
	case strings.Contains(model, "mixtral"):
		return 32000
	}

	return 8000
}

// tokenHint renders the estimated prompt size, flagging input that would
// not fit the model context.
func tokenHint(text, model string) string {
	n := estimateTokens(strings.TrimSpace(text))
	if n == 0 {
		return ""
	}
	limit := getContextLimit(model)
	if n > limit {
		return styleError.Render(fmt.Sprintf("~%d tokens (limit %d)", n, limit))
	}
	return fmt.Sprintf("~%d tokens", n)
}
