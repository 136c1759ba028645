package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/quill/internal/config"
)

func TestReadInput(t *testing.T) {
	text, err := readInput(strings.NewReader("ignored"), []string{"from args"})
	require.NoError(t, err)
	assert.Equal(t, "from args", text)

	text, err = readInput(strings.NewReader("from stdin\n\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", text)
}

func TestActionsCommand(t *testing.T) {
	cfg = config.DefaultConfig()
	cfg.DefaultAction = "summarize"

	var out bytes.Buffer
	cmd := actionsCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "* summarize")
	assert.Contains(t, out.String(), "translate")
	assert.Contains(t, out.String(), "Languages: English, Spanish")
}
