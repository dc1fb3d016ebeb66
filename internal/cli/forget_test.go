package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForgetCommand(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := executeCommand("teach", "open notepad", "/usr/bin/notepad", "--config", cfg)
	require.NoError(t, err)

	out, err := executeCommand("forget", "open", "notepad", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Forgot: open notepad")

	out, err = executeCommand("commands", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No learned commands.")
}

func TestForgetCommand_NotFound(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := executeCommand("forget", "open notepad", "--config", cfg)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "not_found")
}
