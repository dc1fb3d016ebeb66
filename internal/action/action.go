// Package action defines the OS-level executor collaborators.
//
// Executors are deliberately thin: one external call each, no retries.
// The loop reacts to failures by speaking a generic apology and logging
// the cause, so every error carries its operation name.
package action

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind tags an action string by shape.
type Kind int

const (
	// KindWebOpen is a URL to open in the browser.
	KindWebOpen Kind = iota

	// KindLaunch is a filesystem path to an executable.
	KindLaunch
)

// Classify tags an action string by its shape: a URL scheme prefix
// means web-open, anything else is an executable path.
func Classify(action string) Kind {
	if i := strings.Index(action, "://"); i > 0 {
		scheme := action[:i]
		alpha := true
		for _, r := range scheme {
			if r < 'a' || r > 'z' {
				alpha = false
				break
			}
		}
		if alpha {
			return KindWebOpen
		}
	}
	return KindLaunch
}

// ValidateShape checks that a taught action looks like something an
// executor can run: a web URL, a Windows executable, or a path with a
// separator in it. Returns the reason on rejection.
func ValidateShape(action string) (ok bool, reason string) {
	action = strings.TrimSpace(action)
	if action == "" {
		return false, "action cannot be empty"
	}
	if strings.HasPrefix(action, "http") {
		return true, ""
	}
	if strings.HasSuffix(action, ".exe") {
		return true, ""
	}
	if strings.ContainsAny(action, `/\`) {
		return true, ""
	}
	return false, "the action should be a program path or web URL"
}

// ExecError wraps an executor failure with the operation that failed.
type ExecError struct {
	Op    string // "open-url", "launch", "key-press", ...
	Cause error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *ExecError) Unwrap() error {
	return e.Cause
}

// IsExecError reports whether err is an executor failure.
func IsExecError(err error) bool {
	var ee *ExecError
	return errors.As(err, &ee)
}

// BatteryStatus is the result of a battery query.
type BatteryStatus struct {
	Percent int
	Plugged bool
}

// Executor is the set of OS actions an intent can resolve to.
// Implementations block until the underlying call returns.
type Executor interface {
	// OpenURL opens a URL in the default browser.
	OpenURL(url string) error

	// Launch starts an executable and returns without waiting for it.
	Launch(path string) error

	// PressKey presses a single logical key (e.g. "volumeup").
	PressKey(key string) error

	// PressCombo presses a key combination (e.g. "alt", "f4").
	PressCombo(keys ...string) error

	// Screenshot captures the screen and returns the stored file path.
	Screenshot() (string, error)

	// Battery reports charge level and whether power is plugged in.
	Battery() (BatteryStatus, error)

	// Shutdown powers the machine off after the given delay.
	Shutdown(delay time.Duration) error
}
