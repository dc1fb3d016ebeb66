// Package trigger holds the acceptance rules for user-taught trigger
// phrases. A trigger that passes Validate is safe to store: long enough
// to be distinctive, more words than noise, and not something the
// matcher would fire on constantly.
package trigger

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// MinLength is the minimum trimmed trigger length in characters.
	MinLength = 3

	// MinWords is the minimum number of whitespace-separated words.
	MinWords = 2
)

// stopWords are filler words a trigger cannot consist of exclusively.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true,
}

// Validate checks whether a phrase is acceptable as a learned trigger.
//
// Rules are evaluated in a fixed order and the first failing rule's
// reason is returned; accepted triggers return ("", true) with an empty
// reason. Validate is pure and performs no I/O.
func Validate(phrase string) (ok bool, reason string) {
	phrase = strings.TrimSpace(phrase)

	if len([]rune(phrase)) < MinLength {
		return false, fmt.Sprintf("trigger too short: minimum %d characters", MinLength)
	}

	if isAllDigits(phrase) {
		return false, "trigger cannot be only numbers"
	}

	words := strings.Fields(phrase)
	if len(words) < MinWords {
		return false, fmt.Sprintf("trigger needs at least %d words", MinWords)
	}

	if digitCount(phrase)*2 > len([]rune(phrase)) {
		return false, "trigger contains too many numbers"
	}

	allStop := true
	for _, w := range words {
		if !stopWords[w] {
			allStop = false
			break
		}
	}
	if allStop {
		return false, "trigger cannot be only common words"
	}

	return true, ""
}

// isAllDigits reports whether s is non-empty and consists of digits only.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
