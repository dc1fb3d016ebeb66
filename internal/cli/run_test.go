package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRun(t *testing.T, input string, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"run"}, args...))
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestRunCommand_GreetingThenExit(t *testing.T) {
	cfg := writeTestConfig(t)

	out := executeRun(t, "nova hello\ngoodbye nova\n", "--config", cfg, "--no-history")

	assert.Contains(t, out, "Nova: Nova is online. How can I help you?")
	assert.Contains(t, out, "Nova: Hello! How can I help you?")
	assert.Contains(t, out, "Nova: Goodbye")
}

func TestRunCommand_EndOfInput(t *testing.T) {
	cfg := writeTestConfig(t)

	// Closed stdin ends the session cleanly.
	out := executeRun(t, "", "--config", cfg, "--no-history")
	assert.Contains(t, out, "Nova: Goodbye")
}

func TestRunCommand_IgnoresWithoutWakeWord(t *testing.T) {
	cfg := writeTestConfig(t)

	out := executeRun(t, "open gmail\n", "--config", cfg, "--no-history")
	assert.NotContains(t, out, "Opening Gmail")
}

func TestRunCommand_RecordsHistory(t *testing.T) {
	cfg := writeTestConfig(t)

	executeRun(t, "nova hello\n", "--config", cfg)

	out, err := executeCommand("history", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "nova hello")
	assert.Contains(t, out, "session started")
}

func TestRunCommand_RejectsArgs(t *testing.T) {
	_, err := executeCommand("run", "extra")
	require.Error(t, err)
}
