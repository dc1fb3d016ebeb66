// Package config loads assistant settings from a YAML file.
//
// Every field has a working default, so a missing config file is not an
// error. Unknown keys are rejected to catch typos early.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full assistant configuration.
type Config struct {
	// WakeWord gates the main loop: utterances without it are ignored
	// (exit phrases excepted).
	WakeWord string `yaml:"wake_word"`

	Listen ListenConfig `yaml:"listen"`
	Match  MatchConfig  `yaml:"match"`
	Paths  PathsConfig  `yaml:"paths"`
	Speech SpeechConfig `yaml:"speech"`
}

// ListenConfig tunes the audio-capture collaborator.
type ListenConfig struct {
	// TimeoutSeconds is the longest wait for speech to start.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// PhraseLimitSeconds caps the length of a single captured phrase.
	PhraseLimitSeconds int `yaml:"phrase_limit_seconds"`

	// PauseThreshold is seconds of silence that end a phrase.
	PauseThreshold float64 `yaml:"pause_threshold"`

	// EnergyThreshold is the minimum audio energy treated as speech.
	EnergyThreshold int `yaml:"energy_threshold"`
}

// MatchConfig sets the fuzzy-matching bars.
type MatchConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	ExitThreshold       float64 `yaml:"exit_threshold"`
}

// PathsConfig locates the assistant's files.
type PathsConfig struct {
	CommandsFile string `yaml:"commands_file"`
	HistoryDB    string `yaml:"history_db"`
	LogFile      string `yaml:"log_file"`
}

// SpeechConfig selects the text-to-speech collaborator.
type SpeechConfig struct {
	// TTSCommand is an external TTS binary (e.g. "espeak", "say").
	// Empty means responses are printed instead of spoken.
	TTSCommand string `yaml:"tts_command"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		WakeWord: "nova",
		Listen: ListenConfig{
			TimeoutSeconds:     10,
			PhraseLimitSeconds: 5,
			PauseThreshold:     0.8,
			EnergyThreshold:    300,
		},
		Match: MatchConfig{
			SimilarityThreshold: 0.75,
			ExitThreshold:       0.8,
		},
		Paths: PathsConfig{
			CommandsFile: "learned_commands.json",
			HistoryDB:    "nova_history.db",
			LogFile:      "nova_log.txt",
		},
	}
}

// Load reads a config file, applying defaults for absent fields.
// A missing file returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // reject typos like "wakeword:"
	if err := dec.Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.WakeWord == "" {
		return fmt.Errorf("wake_word must not be empty")
	}
	if c.Match.SimilarityThreshold < 0 || c.Match.SimilarityThreshold > 1 {
		return fmt.Errorf("match.similarity_threshold must be in [0,1], got %v", c.Match.SimilarityThreshold)
	}
	if c.Match.ExitThreshold < 0 || c.Match.ExitThreshold > 1 {
		return fmt.Errorf("match.exit_threshold must be in [0,1], got %v", c.Match.ExitThreshold)
	}
	if c.Paths.CommandsFile == "" {
		return fmt.Errorf("paths.commands_file must not be empty")
	}
	return nil
}
