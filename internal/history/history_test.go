package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestLog_AppendAndRecent(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, SourceUser, "open notepad"))
	require.NoError(t, l.Append(ctx, SourceNova, "Opening notepad"))
	require.NoError(t, l.Append(ctx, SourceSystem, "executor: launch /usr/bin/notepad"))

	entries, err := l.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, SourceSystem, entries[0].Source)
	assert.Equal(t, SourceUser, entries[2].Source)
	assert.Equal(t, "open notepad", entries[2].Message)

	for _, e := range entries {
		assert.Equal(t, l.Session(), e.SessionID)
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestLog_RecentLimit(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, l.Append(ctx, SourceUser, "utterance"))
	}

	entries, err := l.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLog_UnknownSourceRejected(t *testing.T) {
	l := openTestLog(t)

	err := l.Append(context.Background(), "ghost", "boo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown interaction source")
}

func TestLog_ReopenSameFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Append(context.Background(), SourceUser, "hello"))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	entries, err := second.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	// Sessions differ across runs.
	assert.NotEqual(t, second.Session(), entries[0].SessionID)
}
