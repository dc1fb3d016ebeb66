// Package store persists the learned trigger -> action table.
//
// The backing file is a flat JSON object, UTF-8, indented with four
// spaces, mapping trigger phrases to action strings. Absence of the
// file is equivalent to an empty table. A file that fails to parse is
// treated as empty and logged; it is never partially repaired.
//
// The store is owned by a single goroutine (the assistant loop), so no
// locking is performed. Every successful Put re-persists the full table
// synchronously before returning.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/savan-goti/NovaAssistant/internal/trigger"
)

// Command is one learned trigger -> action pair.
//
// The action is tagged implicitly by shape: a string with a URL scheme
// is opened in the browser, anything else is launched as an executable
// path. See action.Classify.
type Command struct {
	Trigger string `json:"trigger"`
	Action  string `json:"action"`
}

// ValidationError reports why a trigger or action was rejected.
// The Reason is phrased for speaking back to the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Store holds the learned-command table and its backing file.
type Store struct {
	fs   afero.Fs
	path string

	commands map[string]string
	order    []string // triggers in storage order
}

// New creates a Store backed by the given filesystem and path.
// Call Load before first use.
func New(fs afero.Fs, path string) *Store {
	return &Store{
		fs:       fs,
		path:     path,
		commands: make(map[string]string),
	}
}

// Open creates a Store on the OS filesystem and loads it.
func Open(path string) (*Store, error) {
	s := New(afero.NewOsFs(), path)
	if _, err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the backing file into memory, replacing the current table.
// Returns the number of commands loaded.
//
// A missing file yields an empty table. A malformed file yields an
// empty table and a logged diagnostic; Load does not fail for that.
// The returned error covers genuine I/O failures only.
func (s *Store) Load() (int, error) {
	s.commands = make(map[string]string)
	s.order = nil

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read learned commands: %w", err)
	}

	commands, order, err := parseTable(data)
	if err != nil {
		slog.Warn("learned commands file corrupted, starting empty",
			"path", s.path,
			"error", err,
		)
		return 0, nil
	}

	s.commands = commands
	s.order = order
	return len(order), nil
}

// Save overwrites the backing file with the full current table.
func (s *Store) Save() error {
	data, err := marshalTable(s.commands, s.order)
	if err != nil {
		return fmt.Errorf("encode learned commands: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("write learned commands: %w", err)
	}
	return nil
}

// Put validates, inserts (or overwrites) and persists a learned command.
//
// A trigger that fails validation or an empty action returns a
// *ValidationError and leaves both the table and the backing file
// untouched. On persistence failure the in-memory insert is rolled
// back so memory and file stay consistent.
func (s *Store) Put(trig, action string) error {
	if ok, reason := trigger.Validate(trig); !ok {
		return &ValidationError{Reason: reason}
	}
	if action == "" {
		return &ValidationError{Reason: "action cannot be empty"}
	}

	prev, existed := s.commands[trig]
	s.commands[trig] = action
	if !existed {
		s.order = append(s.order, trig)
	}

	if err := s.Save(); err != nil {
		if existed {
			s.commands[trig] = prev
		} else {
			delete(s.commands, trig)
			s.order = s.order[:len(s.order)-1]
		}
		return err
	}
	return nil
}

// Delete removes a learned command and persists the change.
// Reports whether the trigger was present.
func (s *Store) Delete(trig string) (bool, error) {
	if _, ok := s.commands[trig]; !ok {
		return false, nil
	}
	delete(s.commands, trig)
	for i, tr := range s.order {
		if tr == trig {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if err := s.Save(); err != nil {
		return true, err
	}
	return true, nil
}

// Get returns the action for a trigger.
func (s *Store) Get(trig string) (string, bool) {
	action, ok := s.commands[trig]
	return action, ok
}

// All returns the learned commands in storage order.
// The learned dispatch tier iterates this slice, so the order is part
// of the matching semantics: first match wins.
func (s *Store) All() []Command {
	out := make([]Command, 0, len(s.order))
	for _, tr := range s.order {
		out = append(out, Command{Trigger: tr, Action: s.commands[tr]})
	}
	return out
}

// Len returns the number of learned commands.
func (s *Store) Len() int {
	return len(s.order)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// parseTable decodes the backing file, preserving key order.
// Any deviation from a flat string-to-string object is an error; the
// caller treats that as corruption and starts empty.
func parseTable(data []byte) (map[string]string, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("parse: top-level value is not an object")
	}

	commands := make(map[string]string)
	var order []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("parse key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("parse: object key is not a string")
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("parse value for %q: %w", key, err)
		}
		val, ok := valTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("value for %q is not a string", key)
		}
		if key == "" || val == "" {
			return nil, nil, fmt.Errorf("empty trigger or action")
		}

		if _, seen := commands[key]; !seen {
			order = append(order, key)
		}
		commands[key] = val
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}

	return commands, order, nil
}

// marshalTable encodes the table as a four-space-indented JSON object
// in storage order, without HTML escaping.
func marshalTable(commands map[string]string, order []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, tr := range order {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n    ")
		key, err := marshalString(tr)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(": ")
		val, err := marshalString(commands[tr])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	if len(order) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
