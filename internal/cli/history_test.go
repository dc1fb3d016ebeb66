package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savan-goti/NovaAssistant/internal/history"
)

func TestHistoryCommand_Empty(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := executeCommand("history", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "No history yet.\n", out)
}

func TestHistoryCommand_ShowsEntries(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	cfgPath := filepath.Join(dir, "nova.yaml")
	content := fmt.Sprintf("paths:\n  commands_file: %s\n  history_db: %s\n  log_file: %s\n",
		filepath.Join(dir, "learned_commands.json"),
		dbPath,
		filepath.Join(dir, "nova_log.txt"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	log, err := history.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, log.Append(context.Background(), history.SourceUser, "nova hello"))
	require.NoError(t, log.Append(context.Background(), history.SourceNova, "Hello! How can I help you?"))
	require.NoError(t, log.Close())

	out, err := executeCommand("history", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "nova hello")
	assert.Contains(t, out, "Hello! How can I help you?")
	assert.Contains(t, out, "[user")
	assert.Contains(t, out, "[nova")
}

func TestHistoryCommand_Limit(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	cfgPath := filepath.Join(dir, "nova.yaml")
	content := fmt.Sprintf("paths:\n  commands_file: %s\n  history_db: %s\n  log_file: %s\n",
		filepath.Join(dir, "learned_commands.json"),
		dbPath,
		filepath.Join(dir, "nova_log.txt"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	log, err := history.Open(dbPath)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, log.Append(context.Background(), history.SourceSystem,
			fmt.Sprintf("event %d", i)))
	}
	require.NoError(t, log.Close())

	out, err := executeCommand("history", "--config", cfgPath, "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "event 4")
	assert.Contains(t, out, "event 3")
	assert.NotContains(t, out, "event 2")
}
