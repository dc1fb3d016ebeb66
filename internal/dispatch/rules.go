package dispatch

import "strings"

// rule is one built-in command. Rules are evaluated in declared order
// and the first match wins.
type rule struct {
	name  string
	match func(u string) bool
	build func(u string) Intent
}

func containsAny(u string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(u, s) {
			return true
		}
	}
	return false
}

// searchQuery strips the command words from a search utterance and
// returns what remains as the query.
func searchQuery(u string) string {
	u = strings.ReplaceAll(u, "search", "")
	u = strings.ReplaceAll(u, "google", "")
	return strings.TrimSpace(u)
}

// playQuery strips the play verb from a media utterance.
func playQuery(u string) string {
	return strings.TrimSpace(strings.ReplaceAll(u, "play", ""))
}

const chromePath = `C:\Program Files\Google\Chrome\Application\chrome.exe`

// builtinRules is the fixed command table. Order matters: "open chrome"
// must be tried before the generic search rule, and "shutdown" comes
// last so "shut down nova" has already been caught by the exit tier.
var builtinRules = []rule{
	{
		name:  "greeting",
		match: func(u string) bool { return containsAny(u, "hello", "hi", "hey") },
		build: func(string) Intent { return Intent{Kind: IntentGreeting, Rule: "greeting"} },
	},
	{
		name:  "tell time",
		match: func(u string) bool { return strings.Contains(u, "time") },
		build: func(string) Intent { return Intent{Kind: IntentTellTime, Rule: "tell time"} },
	},
	{
		name:  "tell date",
		match: func(u string) bool { return containsAny(u, "date", "today") },
		build: func(string) Intent { return Intent{Kind: IntentTellDate, Rule: "tell date"} },
	},
	{
		name: "open chrome",
		match: func(u string) bool {
			return strings.Contains(u, "chrome") && strings.Contains(u, "open")
		},
		build: func(string) Intent {
			return Intent{
				Kind:   IntentLaunchApp,
				Rule:   "open chrome",
				App:    "Chrome",
				Action: chromePath,
			}
		},
	},
	{
		name: "open spotify",
		match: func(u string) bool {
			return strings.Contains(u, "spotify") && strings.Contains(u, "open")
		},
		build: func(string) Intent {
			return Intent{
				Kind:        IntentLaunchApp,
				Rule:        "open spotify",
				App:         "Spotify",
				Action:      "spotify",
				FallbackURL: "https://open.spotify.com",
			}
		},
	},
	{
		name: "open gmail",
		match: func(u string) bool {
			return containsAny(u, "gmail", "email") && containsAny(u, "open", "write")
		},
		build: func(string) Intent {
			return Intent{
				Kind: IntentOpenURL,
				Rule: "open gmail",
				App:  "Gmail",
				URL:  "https://mail.google.com",
			}
		},
	},
	{
		name:  "battery",
		match: func(u string) bool { return strings.Contains(u, "battery") },
		build: func(string) Intent { return Intent{Kind: IntentBattery, Rule: "battery"} },
	},
	{
		name:  "web search",
		match: func(u string) bool { return containsAny(u, "search", "google") },
		build: func(u string) Intent {
			q := searchQuery(u)
			return Intent{
				Kind:       IntentWebSearch,
				Rule:       "web search",
				Query:      q,
				NeedsQuery: len(q) < 2,
			}
		},
	},
	{
		name:  "media play",
		match: func(u string) bool { return strings.Contains(u, "play") },
		build: func(u string) Intent {
			q := playQuery(u)
			return Intent{
				Kind:       IntentMediaPlay,
				Rule:       "media play",
				Query:      q,
				NeedsQuery: len(q) <= 1,
			}
		},
	},
	{
		name:  "screenshot",
		match: func(u string) bool { return containsAny(u, "screenshot", "screen shot") },
		build: func(string) Intent { return Intent{Kind: IntentScreenshot, Rule: "screenshot"} },
	},
	{
		name:  "volume up",
		match: func(u string) bool { return containsAny(u, "volume up", "increase volume") },
		build: func(string) Intent {
			return Intent{Kind: IntentPressKey, Rule: "volume up", Key: "volumeup"}
		},
	},
	{
		name:  "volume down",
		match: func(u string) bool { return containsAny(u, "volume down", "decrease volume") },
		build: func(string) Intent {
			return Intent{Kind: IntentPressKey, Rule: "volume down", Key: "volumedown"}
		},
	},
	{
		name:  "mute",
		match: func(u string) bool { return containsAny(u, "mute", "unmute") },
		build: func(string) Intent {
			return Intent{Kind: IntentPressKey, Rule: "mute", Key: "volumemute"}
		},
	},
	{
		name:  "close window",
		match: func(u string) bool { return containsAny(u, "close window", "close this") },
		build: func(string) Intent {
			return Intent{Kind: IntentPressCombo, Rule: "close window", Keys: []string{"alt", "F4"}}
		},
	},
	{
		name:  "shutdown",
		match: func(u string) bool { return containsAny(u, "shutdown", "shut down") },
		build: func(string) Intent { return Intent{Kind: IntentShutdown, Rule: "shutdown"} },
	},
}
