package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	text := "Go makes it easy to build simple, reliable software."

	tests := []struct {
		kind     ActionKind
		fragment string
	}{
		{ActionTranslate, "Translate the following text into German."},
		{ActionImprove, "fix grammar, style, clarity and flow"},
		{ActionSimplify, "easier to understand"},
		{ActionAcademize, "formal, academic character"},
		{ActionParaphrase, "using different words"},
		{ActionSummarize, "Summarize the following text."},
	}

	require.Len(t, tests, len(Actions))

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := Build(tt.kind, text, "German")
			assert.Contains(t, got, text)
			assert.Contains(t, got, tt.fragment)
			assert.Contains(t, got, "without any additional comments")
		})
	}
}

func TestBuildUsesLanguageOnlyForTranslate(t *testing.T) {
	assert.Contains(t, Build(ActionTranslate, "hola", "Japanese"), "Japanese")
	assert.NotContains(t, Build(ActionImprove, "hola", "Japanese"), "Japanese")
}

func TestBuildKeepsTextVerbatim(t *testing.T) {
	text := "line one\nline \"two\""
	assert.Contains(t, Build(ActionSummarize, text, ""), text)
}

func TestBuildUnknownAction(t *testing.T) {
	assert.Empty(t, Build(ActionKind(42), "text", "English"))
	assert.False(t, ActionKind(42).Valid())
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		got, err := ParseAction(a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.Kind, got)
	}

	got, err := ParseAction("  TRANSLATE ")
	require.NoError(t, err)
	assert.Equal(t, ActionTranslate, got)

	_, err = ParseAction("rhyme")
	assert.Error(t, err)
}

func TestNextAction(t *testing.T) {
	assert.Equal(t, ActionParaphrase, NextAction(ActionImprove, 1))
	assert.Equal(t, ActionImprove, NextAction(ActionTranslate, 1))
	assert.Equal(t, ActionTranslate, NextAction(ActionImprove, -1))
}

func TestNextLanguage(t *testing.T) {
	assert.Equal(t, "Spanish", NextLanguage("English", 1))
	assert.Equal(t, "English", NextLanguage("Japanese", 1))
	assert.Equal(t, "Japanese", NextLanguage("english", -1))
	assert.True(t, IsLanguage("polish"))
	assert.False(t, IsLanguage("Klingon"))
}
