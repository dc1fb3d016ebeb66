// Package harness replays scripted conversations against the assistant
// with in-memory collaborators, producing a deterministic transcript
// for golden-file comparison.
package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one scripted conversation.
type Scenario struct {
	// Name uniquely identifies the scenario; the golden file carries
	// the same name.
	Name string `yaml:"name"`

	// Description explains what the scenario exercises.
	Description string `yaml:"description,omitempty"`

	// WakeWord overrides the default wake word.
	WakeWord string `yaml:"wake_word,omitempty"`

	// Learned seeds the command store before the conversation starts.
	Learned []LearnedCommand `yaml:"learned,omitempty"`

	// Battery sets the reading the fake executor reports.
	Battery BatterySpec `yaml:"battery,omitempty"`

	// Fail lists executor operations that fail when called
	// (e.g. "launch", "open-url").
	Fail []string `yaml:"fail,omitempty"`

	// Script holds the utterances in order. An empty string is heard
	// as silence.
	Script []string `yaml:"script"`
}

// LearnedCommand seeds one stored command.
type LearnedCommand struct {
	Trigger string `yaml:"trigger"`
	Action  string `yaml:"action"`
}

// BatterySpec is the charge reading the fake executor reports.
type BatterySpec struct {
	Percent int  `yaml:"percent"`
	Plugged bool `yaml:"plugged"`
}

// LoadScenario reads and validates one scenario file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if sc.Name == "" {
		return Scenario{}, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(sc.Script) == 0 {
		return Scenario{}, fmt.Errorf("scenario %s: script must not be empty", path)
	}
	return sc, nil
}

// LoadScenarios reads every *.yaml scenario under dir, sorted by file
// name.
func LoadScenarios(dir string) ([]Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]Scenario, 0, len(paths))
	for _, path := range paths {
		sc, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}
