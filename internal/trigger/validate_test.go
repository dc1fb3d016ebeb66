package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Accepts(t *testing.T) {
	for _, phrase := range []string{
		"open notepad",
		"search google",
		"launch my editor",
		"  open notepad  ", // surrounding whitespace is ignored
	} {
		t.Run(phrase, func(t *testing.T) {
			ok, reason := Validate(phrase)
			assert.True(t, ok)
			assert.Empty(t, reason)
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	testCases := []struct {
		name   string
		phrase string
		reason string
	}{
		{"digits only and short", "89", "trigger too short: minimum 3 characters"},
		{"single short word", "hi", "trigger too short: minimum 3 characters"},
		{"single character", "a", "trigger too short: minimum 3 characters"},
		{"digits only", "1234", "trigger cannot be only numbers"},
		{"single word", "open123", "trigger needs at least 2 words"},
		{"mostly digits", "go 12345", "trigger contains too many numbers"},
		{"stop words only", "the and", "trigger cannot be only common words"},
		{"empty", "", "trigger too short: minimum 3 characters"},
		{"whitespace only", "   ", "trigger too short: minimum 3 characters"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := Validate(tc.phrase)
			assert.False(t, ok)
			assert.Equal(t, tc.reason, reason)
		})
	}
}

// The first failing rule wins: a digits-only phrase long enough to pass
// the length check reports the digits rule, not the word-count rule it
// would also fail.
func TestValidate_FirstFailureWins(t *testing.T) {
	ok, reason := Validate("12345")
	assert.False(t, ok)
	assert.Equal(t, "trigger cannot be only numbers", reason)
}
