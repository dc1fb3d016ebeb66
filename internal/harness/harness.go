package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/savan-goti/NovaAssistant/internal/action"
	"github.com/savan-goti/NovaAssistant/internal/assistant"
	"github.com/savan-goti/NovaAssistant/internal/dispatch"
	"github.com/savan-goti/NovaAssistant/internal/store"
	"github.com/savan-goti/NovaAssistant/internal/testutil"
	"github.com/savan-goti/NovaAssistant/internal/voice"
)

// Wall time is pinned so spoken times and dates are stable in golden
// transcripts.
var scenarioClock = time.Date(2024, 6, 15, 15, 4, 0, 0, time.UTC)

// Result captures everything observable about one scenario run.
type Result struct {
	Name string

	// Transcript interleaves user, nova, and system lines in the order
	// they happened.
	Transcript []string

	// Calls lists the executor operations performed, in order.
	Calls []string

	// Learned is the final content of the command store, in storage
	// order.
	Learned []store.Command
}

// Run replays a scenario and returns its result. The assistant runs to
// completion: the script ending behaves like closed input.
func Run(sc Scenario) (*Result, error) {
	st := store.New(afero.NewMemMapFs(), "learned_commands.json")
	for _, lc := range sc.Learned {
		if err := st.Put(lc.Trigger, lc.Action); err != nil {
			return nil, fmt.Errorf("seed learned command %q: %w", lc.Trigger, err)
		}
	}

	exec := testutil.NewFakeExecutor()
	exec.BatteryStatus = action.BatteryStatus{
		Percent: sc.Battery.Percent,
		Plugged: sc.Battery.Plugged,
	}
	for _, op := range sc.Fail {
		exec.Fail[op] = errors.New("injected failure")
	}

	captures := make([]voice.CaptureResult, 0, len(sc.Script))
	for _, line := range sc.Script {
		if line == "" {
			captures = append(captures, voice.Silence())
			continue
		}
		captures = append(captures, voice.Heard(line))
	}
	listener := testutil.NewScriptedListener(captures...)

	wake := sc.WakeWord
	if wake == "" {
		wake = "nova"
	}

	rec := &transcript{}
	a := assistant.New(listener, &testutil.RecordingSpeaker{}, dispatch.New(st), st, exec,
		assistant.WithWakeWord(wake),
		assistant.WithHistory(rec),
		assistant.WithClock(testutil.FixedClock(scenarioClock)),
		assistant.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	if err := a.Run(context.Background()); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	return &Result{
		Name:       sc.Name,
		Transcript: rec.lines,
		Calls:      exec.Calls(),
		Learned:    st.All(),
	}, nil
}

// Render produces the deterministic text form compared against golden
// files.
func (r *Result) Render() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Name)

	b.WriteString("\ntranscript:\n")
	for _, line := range r.Transcript {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	b.WriteString("\ncalls:\n")
	if len(r.Calls) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, call := range r.Calls {
		fmt.Fprintf(&b, "  %s\n", call)
	}

	b.WriteString("\nlearned:\n")
	if len(r.Learned) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, c := range r.Learned {
		fmt.Fprintf(&b, "  %s -> %s\n", c.Trigger, c.Action)
	}
	return []byte(b.String())
}

// transcript records conversation lines through the assistant's
// history hook.
type transcript struct {
	lines []string
}

func (t *transcript) Append(_ context.Context, source, message string) error {
	t.lines = append(t.lines, source+": "+message)
	return nil
}
