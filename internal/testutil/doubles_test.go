package testutil

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savan-goti/NovaAssistant/internal/action"
	"github.com/savan-goti/NovaAssistant/internal/voice"
)

func TestScriptedListener_PlaysBackInOrder(t *testing.T) {
	l := NewScriptedListener(voice.Silence()).Script("open chrome", "goodbye")
	ctx := context.Background()

	assert.Equal(t, voice.KindSilence, l.Capture(ctx).Kind)

	r := l.Capture(ctx)
	require.Equal(t, voice.KindHeard, r.Kind)
	assert.Equal(t, "open chrome", r.Text)

	assert.Equal(t, "goodbye", l.Capture(ctx).Text)

	// Exhausted script behaves like closed input.
	r = l.Capture(ctx)
	require.Equal(t, voice.KindFailure, r.Kind)
	assert.ErrorIs(t, r.Err, io.EOF)
}

func TestScriptedListener_CancelledContext(t *testing.T) {
	l := NewScriptedListener().Script("hello")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := l.Capture(ctx)
	require.Equal(t, voice.KindFailure, r.Kind)
	assert.ErrorIs(t, r.Err, context.Canceled)
}

func TestRecordingSpeaker(t *testing.T) {
	s := &RecordingSpeaker{}
	ctx := context.Background()

	require.NoError(t, s.Say(ctx, "Hello! How can I help you?"))
	require.NoError(t, s.Say(ctx, "Goodbye"))
	assert.Equal(t, []string{"Hello! How can I help you?", "Goodbye"}, s.Said())

	s.Err = errors.New("speaker broken")
	assert.Error(t, s.Say(ctx, "anything"))
}

func TestFakeExecutor_RecordsCalls(t *testing.T) {
	f := NewFakeExecutor()

	require.NoError(t, f.OpenURL("https://mail.google.com"))
	require.NoError(t, f.Launch("/usr/bin/notepad"))
	require.NoError(t, f.PressCombo("alt", "F4"))
	require.NoError(t, f.Shutdown(5*time.Second))

	assert.Equal(t, []string{
		"open-url https://mail.google.com",
		"launch /usr/bin/notepad",
		"key-combo alt F4",
		"shutdown 5s",
	}, f.Calls())
}

func TestFakeExecutor_InjectedFailure(t *testing.T) {
	f := NewFakeExecutor()
	f.Fail["launch"] = errors.New("no such file")

	err := f.Launch("spotify")
	require.Error(t, err)
	assert.True(t, action.IsExecError(err))

	// The failed call is still recorded.
	assert.Equal(t, []string{"launch spotify"}, f.Calls())
}

func TestFakeExecutor_Battery(t *testing.T) {
	f := NewFakeExecutor()
	f.BatteryStatus = action.BatteryStatus{Percent: 82, Plugged: true}

	got, err := f.Battery()
	require.NoError(t, err)
	assert.Equal(t, 82, got.Percent)
	assert.True(t, got.Plugged)
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 6, 15, 15, 4, 0, 0, time.UTC)
	clock := FixedClock(at)
	assert.Equal(t, at, clock())
	assert.Equal(t, at, clock())
}
