package prompts

import (
	"fmt"
	"strings"
)

// ActionKind is one of the fixed rewriting operations
type ActionKind int

const (
	ActionImprove ActionKind = iota
	ActionParaphrase
	ActionSummarize
	ActionSimplify
	ActionAcademize
	ActionTranslate
)

// Action describes how an ActionKind is offered to the user
type Action struct {
	Kind  ActionKind
	ID    string
	Label string
}

// Actions in display order
var Actions = []Action{
	{Kind: ActionImprove, ID: "improve", Label: "Improve"},
	{Kind: ActionParaphrase, ID: "paraphrase", Label: "Paraphrase"},
	{Kind: ActionSummarize, ID: "summarize", Label: "Summarize"},
	{Kind: ActionSimplify, ID: "simplify", Label: "Simplify"},
	{Kind: ActionAcademize, ID: "academize", Label: "Academize"},
	{Kind: ActionTranslate, ID: "translate", Label: "Translate"},
}

// Languages offered as translation targets
var Languages = []string{
	"English", "Spanish", "French", "German", "Italian", "Polish", "Russian", "Chinese", "Japanese",
}

// DefaultLanguage is the initial translation target
const DefaultLanguage = "English"

// Valid reports whether k is a member of the enumeration
func (k ActionKind) Valid() bool {
	return k >= ActionImprove && k <= ActionTranslate
}

func (k ActionKind) String() string {
	for _, a := range Actions {
		if a.Kind == k {
			return a.ID
		}
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Label returns the human readable name of the action
func (k ActionKind) Label() string {
	for _, a := range Actions {
		if a.Kind == k {
			return a.Label
		}
	}
	return k.String()
}

// ParseAction looks up an action by its id (case-insensitive)
func ParseAction(id string) (ActionKind, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, a := range Actions {
		if a.ID == id {
			return a.Kind, nil
		}
	}
	return 0, fmt.Errorf("unknown action: %q", id)
}

// NextAction returns the action after k in display order, wrapping around.
// A negative step moves backwards.
func NextAction(k ActionKind, step int) ActionKind {
	idx := 0
	for i, a := range Actions {
		if a.Kind == k {
			idx = i
			break
		}
	}
	n := len(Actions)
	idx = ((idx+step)%n + n) % n
	return Actions[idx].Kind
}

// IsLanguage reports whether lang is one of the supported targets
func IsLanguage(lang string) bool {
	for _, l := range Languages {
		if strings.EqualFold(l, lang) {
			return true
		}
	}
	return false
}

// NextLanguage cycles through Languages starting from lang
func NextLanguage(lang string, step int) string {
	idx := 0
	for i, l := range Languages {
		if strings.EqualFold(l, lang) {
			idx = i
			break
		}
	}
	n := len(Languages)
	return Languages[((idx+step)%n+n)%n]
}

const resultOnly = "Return only the %s, without any additional comments or explanations."

// Build constructs the prompt for kind. targetLanguage is only used by
// ActionTranslate.
func Build(kind ActionKind, text, targetLanguage string) string {
	var instruction, result, heading string

	switch kind {
	case ActionTranslate:
		instruction = fmt.Sprintf("Translate the following text into %s.", targetLanguage)
		result = "translated text"
		heading = "Text to translate"
	case ActionImprove:
		instruction = "Improve the following text: fix grammar, style, clarity and flow. Keep the original meaning."
		result = "improved text"
		heading = "Text to improve"
	case ActionSimplify:
		instruction = "Simplify the following text so it is easier to understand. Keep the original meaning."
		result = "simplified text"
		heading = "Text to simplify"
	case ActionAcademize:
		instruction = "Give the following text a formal, academic character. Keep the original meaning."
		result = "edited text"
		heading = "Text to academize"
	case ActionParaphrase:
		instruction = "Paraphrase the following text using different words while keeping the same meaning."
		result = "paraphrased text"
		heading = "Text to paraphrase"
	case ActionSummarize:
		instruction = "Summarize the following text."
		result = "summary"
		heading = "Text to summarize"
	default:
		return ""
	}

	return fmt.Sprintf("%s %s\n\n%s:\n\"%s\"", instruction, fmt.Sprintf(resultOnly, result), heading, text)
}
