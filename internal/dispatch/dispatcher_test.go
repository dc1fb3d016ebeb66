package dispatch

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savan-goti/NovaAssistant/internal/store"
)

func newTestStore(t *testing.T, commands ...[2]string) *store.Store {
	t.Helper()
	st := store.New(afero.NewMemMapFs(), "learned_commands.json")
	for _, c := range commands {
		require.NoError(t, st.Put(c[0], c[1]))
	}
	return st
}

func TestDispatch_EmptyUtterance(t *testing.T) {
	d := New(newTestStore(t))
	in := d.Dispatch("")
	assert.Equal(t, IntentUnknown, in.Kind)
	assert.Equal(t, "empty", in.Rule)
}

func TestDispatch_ExitPhrases(t *testing.T) {
	d := New(newTestStore(t))

	testCases := []struct {
		utterance string
		exit      bool
	}{
		{"stop", true},
		{"goodbye", true},
		{"nova stop", true},
		{"please stop", true}, // contains an exit phrase
		{"shut down", true},   // contained in "shut down nova"
		{"nova please", false},
		{"stop and search cats", true}, // exit wins over every other tier
	}

	for _, tc := range testCases {
		t.Run(tc.utterance, func(t *testing.T) {
			got := d.Dispatch(tc.utterance).Kind == IntentExit
			assert.Equal(t, tc.exit, got)
		})
	}
}

func TestDispatch_LearningPhrases(t *testing.T) {
	d := New(newTestStore(t))

	for _, u := range []string{
		"learn new command",
		"i want to learn something",
		"enter learning mode",
	} {
		assert.Equal(t, IntentStartLearning, d.Dispatch(u).Kind, u)
	}
}

func TestDispatch_LearnedBeatsBuiltin(t *testing.T) {
	st := newTestStore(t, [2]string{"open chrome", "/usr/local/bin/chromium"})
	d := New(st)

	in := d.Dispatch("open chrome")
	require.Equal(t, IntentLearned, in.Kind)
	assert.Equal(t, "open chrome", in.Trigger)
	assert.Equal(t, "/usr/local/bin/chromium", in.Action)
}

func TestDispatch_ExitBeatsLearned(t *testing.T) {
	st := newTestStore(t, [2]string{"stop nova", "/bin/true"})
	d := New(st)

	assert.Equal(t, IntentExit, d.Dispatch("stop nova").Kind)
}

func TestDispatch_LearnedStorageOrder(t *testing.T) {
	st := newTestStore(t,
		[2]string{"open editor one", "/usr/bin/vim"},
		[2]string{"open editor two", "/usr/bin/emacs"},
	)
	d := New(st)

	// "open editor" is contained in both triggers; the one stored first
	// wins.
	in := d.Dispatch("open editor")
	require.Equal(t, IntentLearned, in.Kind)
	assert.Equal(t, "/usr/bin/vim", in.Action)
}

func TestDispatch_FuzzyLearnedTrigger(t *testing.T) {
	st := newTestStore(t, [2]string{"open notepad", "/usr/bin/notepad"})
	d := New(st)

	// A typo that is not a plain substring still clears the ratio bar.
	in := d.Dispatch("opn notepad")
	require.Equal(t, IntentLearned, in.Kind)
	assert.Equal(t, "open notepad", in.Trigger)
}

func TestDispatch_SearchQuery(t *testing.T) {
	d := New(newTestStore(t))

	testCases := []struct {
		utterance  string
		query      string
		needsQuery bool
	}{
		{"search golang generics", "golang generics", false},
		{"google weather in paris", "weather in paris", false},
		{"search", "", true},
		{"google", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.utterance, func(t *testing.T) {
			in := d.Dispatch(tc.utterance)
			require.Equal(t, IntentWebSearch, in.Kind)
			assert.Equal(t, tc.query, in.Query)
			assert.Equal(t, tc.needsQuery, in.NeedsQuery)
		})
	}
}

func TestDispatch_PlayQuery(t *testing.T) {
	d := New(newTestStore(t))

	in := d.Dispatch("play despacito")
	require.Equal(t, IntentMediaPlay, in.Kind)
	assert.Equal(t, "despacito", in.Query)
	assert.False(t, in.NeedsQuery)

	in = d.Dispatch("play")
	require.Equal(t, IntentMediaPlay, in.Kind)
	assert.True(t, in.NeedsQuery)
}

func TestDispatch_GreetingSubstringQuirk(t *testing.T) {
	d := New(newTestStore(t))

	// "hi" matches inside words; the rule is a plain substring check.
	assert.Equal(t, IntentGreeting, d.Dispatch("this is fine").Kind)
}

func TestDispatch_Trace(t *testing.T) {
	st := newTestStore(t, [2]string{"open notepad", "/usr/bin/notepad"})
	d := New(st)

	utterances := []string{
		"hello there",
		"what is the time",
		"what is the date today",
		"open chrome",
		"open spotify",
		"open gmail",
		"check battery status",
		"search golang generics",
		"google",
		"play despacito",
		"play",
		"take a screenshot",
		"turn the volume up",
		"decrease volume",
		"mute the sound",
		"close window",
		"shutdown the computer",
		"open notepad",
		"please open notepad",
		"learn new command",
		"stop nova",
		"",
		"make me a sandwich",
	}

	var b strings.Builder
	for _, u := range utterances {
		fmt.Fprintf(&b, "%q -> %s\n", u, formatIntent(d.Dispatch(u)))
	}

	g := goldie.New(t)
	g.Assert(t, "dispatch_trace", []byte(b.String()))
}

func formatIntent(in Intent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "kind=%s rule=%q", in.Kind, in.Rule)
	if in.App != "" {
		fmt.Fprintf(&b, " app=%q", in.App)
	}
	if in.Trigger != "" {
		fmt.Fprintf(&b, " trigger=%q", in.Trigger)
	}
	if in.Action != "" {
		fmt.Fprintf(&b, " action=%q", in.Action)
	}
	if in.FallbackURL != "" {
		fmt.Fprintf(&b, " fallback=%q", in.FallbackURL)
	}
	if in.URL != "" {
		fmt.Fprintf(&b, " url=%q", in.URL)
	}
	if in.Kind == IntentWebSearch || in.Kind == IntentMediaPlay {
		fmt.Fprintf(&b, " query=%q needsQuery=%t", in.Query, in.NeedsQuery)
	}
	if in.Key != "" {
		fmt.Fprintf(&b, " key=%q", in.Key)
	}
	if len(in.Keys) > 0 {
		fmt.Fprintf(&b, " keys=%q", strings.Join(in.Keys, "+"))
	}
	return b.String()
}
