// Package testutil provides in-memory collaborator doubles for testing
// the assistant loop without a microphone, speakers, or a desktop.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/savan-goti/NovaAssistant/internal/action"
	"github.com/savan-goti/NovaAssistant/internal/voice"
)

// ScriptedListener plays back a fixed sequence of capture results. Once
// the script runs out, every further capture fails with io.EOF, which
// ends the loop the same way closed stdin does.
type ScriptedListener struct {
	mu      sync.Mutex
	results []voice.CaptureResult
}

// NewScriptedListener creates a listener that yields the given results
// in order.
func NewScriptedListener(results ...voice.CaptureResult) *ScriptedListener {
	return &ScriptedListener{results: results}
}

// Script appends utterances as heard captures.
func (l *ScriptedListener) Script(utterances ...string) *ScriptedListener {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, u := range utterances {
		l.results = append(l.results, voice.Heard(u))
	}
	return l
}

// Capture pops the next scripted result.
func (l *ScriptedListener) Capture(ctx context.Context) voice.CaptureResult {
	if err := ctx.Err(); err != nil {
		return voice.Failed(err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.results) == 0 {
		return voice.Failed(io.EOF)
	}
	next := l.results[0]
	l.results = l.results[1:]
	return next
}

// RecordingSpeaker collects everything the assistant says.
type RecordingSpeaker struct {
	mu   sync.Mutex
	said []string

	// Err, when set, is returned from every Say call.
	Err error
}

// Say records the text.
func (s *RecordingSpeaker) Say(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.said = append(s.said, text)
	return s.Err
}

// Said returns a copy of everything spoken so far, in order.
func (s *RecordingSpeaker) Said() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.said...)
}

// FakeExecutor records OS actions instead of performing them. Failures
// are injected per operation name via Fail.
type FakeExecutor struct {
	mu    sync.Mutex
	calls []string

	// Fail maps an operation ("launch", "open-url", ...) to the error
	// its method returns.
	Fail map[string]error

	// BatteryStatus is returned by Battery when no failure is injected.
	BatteryStatus action.BatteryStatus

	// ScreenshotPath is returned by Screenshot.
	ScreenshotPath string
}

// NewFakeExecutor creates an executor with no injected failures.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		Fail:           map[string]error{},
		ScreenshotPath: "screenshot_20240101_120000.png",
	}
}

func (f *FakeExecutor) record(op string, args ...any) error {
	f.mu.Lock()
	call := op
	for _, a := range args {
		call += fmt.Sprintf(" %v", a)
	}
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if err := f.Fail[op]; err != nil {
		return &action.ExecError{Op: op, Cause: err}
	}
	return nil
}

// Calls returns a copy of the recorded calls, in order.
func (f *FakeExecutor) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FakeExecutor) OpenURL(url string) error { return f.record("open-url", url) }

func (f *FakeExecutor) Launch(path string) error { return f.record("launch", path) }

func (f *FakeExecutor) PressKey(key string) error { return f.record("key-press", key) }

func (f *FakeExecutor) PressCombo(keys ...string) error {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return f.record("key-combo", args...)
}

func (f *FakeExecutor) Screenshot() (string, error) {
	if err := f.record("screenshot"); err != nil {
		return "", err
	}
	return f.ScreenshotPath, nil
}

func (f *FakeExecutor) Battery() (action.BatteryStatus, error) {
	if err := f.record("battery"); err != nil {
		return action.BatteryStatus{}, err
	}
	return f.BatteryStatus, nil
}

func (f *FakeExecutor) Shutdown(delay time.Duration) error {
	return f.record("shutdown", delay)
}

// FixedClock returns the same instant on every call, so spoken times
// and dates are stable in golden output.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
