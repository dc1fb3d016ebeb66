package voice

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ConsoleListener reads utterances line by line from a reader. It
// stands in for the microphone when none is wired up and doubles as the
// collaborator for piped input.
type ConsoleListener struct {
	scanner *bufio.Scanner
	out     io.Writer

	// Calibrated tracks the one-shot ambient-noise calibration a real
	// microphone collaborator performs on its first capture.
	Calibrated bool
}

// NewConsoleListener creates a listener reading from in and writing
// prompts to out.
func NewConsoleListener(in io.Reader, out io.Writer) *ConsoleListener {
	return &ConsoleListener{scanner: bufio.NewScanner(in), out: out}
}

// Capture reads one line. A blank line maps to silence, end of input to
// failure.
func (l *ConsoleListener) Capture(ctx context.Context) CaptureResult {
	if err := ctx.Err(); err != nil {
		return Failed(err)
	}

	if !l.Calibrated {
		fmt.Fprintln(l.out, "Calibrating for ambient noise...")
		l.Calibrated = true
	}
	fmt.Fprint(l.out, "Listening... ")

	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return Failed(err)
		}
		return Failed(io.EOF)
	}

	text := strings.TrimSpace(l.scanner.Text())
	if text == "" {
		return Silence()
	}
	return Heard(text)
}

// ConsoleSpeaker prints responses instead of speaking them.
type ConsoleSpeaker struct {
	Out io.Writer
}

// Say writes the response prefixed with the assistant name.
func (s *ConsoleSpeaker) Say(_ context.Context, text string) error {
	_, err := fmt.Fprintf(s.Out, "Nova: %s\n", text)
	return err
}

// ExecSpeaker shells out to an external text-to-speech binary, passing
// the text as the single argument. The call blocks until playback ends.
type ExecSpeaker struct {
	Command string
}

// Say runs the configured TTS command.
func (s *ExecSpeaker) Say(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, s.Command, text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tts %q: %w", s.Command, err)
	}
	return nil
}
