// Package text canonicalizes transcribed utterances before matching.
//
// Speech-to-text output is noisy: casing varies, punctuation appears
// mid-phrase, and contractions come through collapsed ("whats", "dont").
// Normalize maps all of that onto a single canonical form so the
// dispatcher and the learned-command table compare like with like.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// contractions maps collapsed speech-to-text forms back to full words.
// Pairs are applied in declaration order, each as a literal whole-string
// substring replacement.
//
// KNOWN QUIRK: replacement is not word-boundary aware, so a key occurring
// inside an unrelated word is rewritten too ("time" contains "im" and
// becomes "ti ame"). Stored triggers were taught against this behavior,
// so the semantics must not change.
var contractions = []struct {
	old string
	new string
}{
	{"whats", "what is"},
	{"wheres", "where is"},
	{"hows", "how is"},
	{"im", "i am"},
	{"youre", "you are"},
	{"dont", "do not"},
	{"cant", "can not"},
	{"wont", "will not"},
}

// foldAccents strips combining marks so accented transcriptions compare
// equal to their plain-ASCII spelling ("café" -> "cafe").
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a raw utterance.
//
// Steps, in order: lowercase, trim, fold accents, drop runes that are
// neither word characters nor whitespace, collapse whitespace runs to a
// single space, then apply the contraction table.
//
// Normalize is pure and idempotent: Normalize(Normalize(x)) == Normalize(x).
// Empty input yields the empty string.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ToLower(strings.TrimSpace(raw))

	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}

	// Keep word characters and whitespace only. Underscore counts as a
	// word character, matching the trigger phrases already in stores.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	s = strings.Join(strings.Fields(b.String()), " ")

	for _, c := range contractions {
		s = strings.ReplaceAll(s, c.old, c.new)
	}

	return strings.TrimSpace(s)
}
