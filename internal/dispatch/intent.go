package dispatch

// IntentKind classifies the dispatcher's decision.
type IntentKind int

const (
	// IntentUnknown means no tier matched. This is a normal outcome:
	// the loop answers that the command can be taught.
	IntentUnknown IntentKind = iota

	// IntentExit terminates the loop.
	IntentExit

	// IntentStartLearning enters the learning flow.
	IntentStartLearning

	// IntentLearned executes a stored command; Trigger and Action are set.
	IntentLearned

	// IntentGreeting answers a greeting.
	IntentGreeting

	// IntentTellTime speaks the current time.
	IntentTellTime

	// IntentTellDate speaks today's date.
	IntentTellDate

	// IntentLaunchApp starts a desktop application; Action holds the
	// path, FallbackURL an optional web fallback.
	IntentLaunchApp

	// IntentOpenURL opens a fixed URL; URL is set.
	IntentOpenURL

	// IntentBattery speaks charge level and plug state.
	IntentBattery

	// IntentWebSearch opens a web search; Query may be empty, in which
	// case NeedsQuery is set and the loop asks a follow-up.
	IntentWebSearch

	// IntentMediaPlay opens a media search; Query as above.
	IntentMediaPlay

	// IntentScreenshot captures the screen.
	IntentScreenshot

	// IntentPressKey presses one logical key; Key is set.
	IntentPressKey

	// IntentPressCombo presses a key combination; Keys is set.
	IntentPressCombo

	// IntentShutdown requests a machine shutdown; the loop asks for
	// confirmation before acting.
	IntentShutdown
)

var kindNames = map[IntentKind]string{
	IntentUnknown:       "unknown",
	IntentExit:          "exit",
	IntentStartLearning: "start-learning",
	IntentLearned:       "learned",
	IntentGreeting:      "greeting",
	IntentTellTime:      "tell-time",
	IntentTellDate:      "tell-date",
	IntentLaunchApp:     "launch-app",
	IntentOpenURL:       "open-url",
	IntentBattery:       "battery",
	IntentWebSearch:     "web-search",
	IntentMediaPlay:     "media-play",
	IntentScreenshot:    "screenshot",
	IntentPressKey:      "press-key",
	IntentPressCombo:    "press-combo",
	IntentShutdown:      "shutdown",
}

// String returns the kind name used in logs and traces.
func (k IntentKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Intent is the dispatcher's resolved decision, consumed by the loop
// and the executors. Only the fields relevant to Kind are populated.
type Intent struct {
	Kind IntentKind

	// Rule names the matched rule for logs and traces
	// (e.g. "exit", "learned", "open chrome").
	Rule string

	// App is the display name used in spoken replies ("Chrome").
	App string

	// Trigger and Action carry the matched learned command.
	Trigger string
	Action  string

	// FallbackURL is opened if launching Action fails.
	FallbackURL string

	// URL is the fixed target for IntentOpenURL.
	URL string

	// Query is the extracted search/play query; NeedsQuery marks it as
	// missing or too short, requiring a follow-up prompt.
	Query      string
	NeedsQuery bool

	// Key / Keys identify the key press for the key intents.
	Key  string
	Keys []string
}
