// Package voice defines the speech collaborator contracts.
//
// Audio capture, transcription, and playback are external concerns; the
// core only sees a Listener that yields typed capture results and a
// Speaker that utters a line of text. Both calls block.
package voice

import "context"

// CaptureKind classifies the outcome of a capture call.
type CaptureKind int

const (
	// KindHeard means an utterance was transcribed.
	KindHeard CaptureKind = iota

	// KindSilence means the capture timed out or nothing was understood.
	// The loop treats this as "no utterance", not an error.
	KindSilence

	// KindFailure means the capture collaborator itself failed.
	KindFailure
)

// String returns the kind name for logging.
func (k CaptureKind) String() string {
	switch k {
	case KindHeard:
		return "heard"
	case KindSilence:
		return "silence"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// CaptureResult is the typed outcome of one capture call.
// Text is set only for KindHeard; Err only for KindFailure.
type CaptureResult struct {
	Kind CaptureKind
	Text string
	Err  error
}

// Heard builds a successful capture result.
func Heard(text string) CaptureResult {
	return CaptureResult{Kind: KindHeard, Text: text}
}

// Silence builds a no-speech result.
func Silence() CaptureResult {
	return CaptureResult{Kind: KindSilence}
}

// Failed builds a failed capture result.
func Failed(err error) CaptureResult {
	return CaptureResult{Kind: KindFailure, Err: err}
}

// Listener captures one utterance per call, blocking until speech ends,
// the capture times out, or the context is cancelled.
type Listener interface {
	Capture(ctx context.Context) CaptureResult
}

// Speaker utters one line of text, blocking until playback finishes.
type Speaker interface {
	Say(ctx context.Context, text string) error
}
