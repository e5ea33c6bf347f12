package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_VisualWins(t *testing.T) {
	t.Setenv("VISUAL", "code -w")
	t.Setenv("EDITOR", "nano")

	cmd, err := Command("p.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "-w", "p.md"}, cmd.Args)
}

func TestCommand_EditorFallback(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "nano")

	cmd, err := Command("p.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"nano", "p.md"}, cmd.Args)
}

func TestCommand_DefaultVi(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	cmd, err := Command("p.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"vi", "p.md"}, cmd.Args)
}

func TestCommand_Blank(t *testing.T) {
	t.Setenv("VISUAL", "   ")
	_, err := Command("p.md")
	assert.Error(t, err)
}

func TestOpen_ReportsFailure(t *testing.T) {
	t.Setenv("VISUAL", "false")
	assert.Error(t, Open("p.md"))
}
