package action

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/browser"
)

// keyNames maps logical key names to X11 keysyms for xdotool.
var keyNames = map[string]string{
	"volumeup":   "XF86AudioRaiseVolume",
	"volumedown": "XF86AudioLowerVolume",
	"volumemute": "XF86AudioMute",
}

// System executes actions against the local machine. Each method is a
// single external call; callers own retry and reporting policy.
type System struct {
	// ScreenshotDir receives capture files. Empty means the working
	// directory.
	ScreenshotDir string

	// now is injectable for screenshot filenames in tests.
	now func() time.Time
}

// NewSystem creates a System executor.
func NewSystem(screenshotDir string) *System {
	return &System{ScreenshotDir: screenshotDir, now: time.Now}
}

// OpenURL opens the URL in the default browser.
func (s *System) OpenURL(url string) error {
	if err := browser.OpenURL(url); err != nil {
		return &ExecError{Op: "open-url", Cause: err}
	}
	return nil
}

// Launch starts the executable and does not wait for it to exit.
func (s *System) Launch(path string) error {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return &ExecError{Op: "launch", Cause: err}
	}
	// Reap the child when it exits so it doesn't linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

// PressKey presses one logical key via xdotool (or its macOS stand-in).
func (s *System) PressKey(key string) error {
	if name, ok := keyNames[key]; ok {
		key = name
	}
	if err := pressKeys(key); err != nil {
		return &ExecError{Op: "key-press", Cause: err}
	}
	return nil
}

// PressCombo presses a key combination, e.g. PressCombo("alt", "F4").
func (s *System) PressCombo(keys ...string) error {
	if err := pressKeys(strings.Join(keys, "+")); err != nil {
		return &ExecError{Op: "key-combo", Cause: err}
	}
	return nil
}

func pressKeys(spec string) error {
	return exec.Command("xdotool", "key", spec).Run()
}

// Screenshot captures the screen to a timestamped PNG and returns its
// path.
func (s *System) Screenshot() (string, error) {
	name := fmt.Sprintf("screenshot_%s.png", s.now().Format("20060102_150405"))
	path := name
	if s.ScreenshotDir != "" {
		path = s.ScreenshotDir + string(os.PathSeparator) + name
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		cmd = exec.Command("screencapture", "-x", path)
	} else {
		cmd = exec.Command("scrot", path)
	}
	if err := cmd.Run(); err != nil {
		return "", &ExecError{Op: "screenshot", Cause: err}
	}
	return path, nil
}

// Battery reads charge state from sysfs. Machines without a battery
// report an error, which the loop speaks as "unavailable".
func (s *System) Battery() (BatteryStatus, error) {
	const supply = "/sys/class/power_supply/BAT0"

	capData, err := os.ReadFile(supply + "/capacity")
	if err != nil {
		return BatteryStatus{}, &ExecError{Op: "battery", Cause: err}
	}
	percent, err := strconv.Atoi(strings.TrimSpace(string(capData)))
	if err != nil {
		return BatteryStatus{}, &ExecError{Op: "battery", Cause: err}
	}

	statusData, err := os.ReadFile(supply + "/status")
	if err != nil {
		return BatteryStatus{}, &ExecError{Op: "battery", Cause: err}
	}
	status := strings.TrimSpace(string(statusData))

	return BatteryStatus{
		Percent: percent,
		Plugged: status == "Charging" || status == "Full",
	}, nil
}

// Shutdown powers off after the delay. The delay is delegated to a
// shell sleep so the call returns immediately.
func (s *System) Shutdown(delay time.Duration) error {
	seconds := int(delay.Seconds())

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("shutdown", "/s", "/t", strconv.Itoa(seconds))
	} else {
		cmd = exec.Command("sh", "-c",
			fmt.Sprintf("sleep %d && shutdown -h now", seconds))
	}
	if err := cmd.Start(); err != nil {
		return &ExecError{Op: "shutdown", Cause: err}
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
