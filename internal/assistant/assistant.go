// Package assistant runs the interaction loop: capture an utterance,
// gate it on the wake word, dispatch it, perform the resulting action,
// and speak the reply.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/savan-goti/NovaAssistant/internal/action"
	"github.com/savan-goti/NovaAssistant/internal/dispatch"
	"github.com/savan-goti/NovaAssistant/internal/history"
	"github.com/savan-goti/NovaAssistant/internal/store"
	"github.com/savan-goti/NovaAssistant/internal/text"
	"github.com/savan-goti/NovaAssistant/internal/trigger"
	"github.com/savan-goti/NovaAssistant/internal/voice"
)

// Spoken replies. Kept as constants so tests and the loop cannot
// drift apart.
const (
	ReplyOnline        = "Nova is online. How can I help you?"
	ReplyYes           = "Yes?"
	ReplyGreeting      = "Hello! How can I help you?"
	ReplyGoodbye       = "Goodbye"
	ReplyUnknown       = "I don't know that command yet. You can teach me by saying learn new command."
	ReplyDidNotCatch   = "Sorry, I didn't catch that."
	ReplyLearnedRun    = "Executing learned command"
	ReplyActionFailed  = "Sorry, I couldn't run that command."
	ReplyOkay          = "Okay"
	ReplyAskTrigger    = "What should the trigger phrase be?"
	ReplyAskAction     = "What should it do? Say a program path or web address."
	ReplyLearnCancel   = "Learning cancelled."
	ReplySaveFailed    = "Sorry, I couldn't save that command."
	ReplyAskSearch     = "What should I search for?"
	ReplyAskPlay       = "What should I play?"
	ReplySearchCancel  = "Search cancelled."
	ReplyShotSaved     = "Screenshot saved."
	ReplyShotFailed    = "Sorry, the screenshot failed."
	ReplyBatteryFailed = "Sorry, I couldn't read the battery status."
	ReplyConfirmOff    = "Are you sure you want to shut down the computer?"
	ReplyShuttingDown  = "Shutting down in 5 seconds."
	ReplyOffCancelled  = "Shutdown cancelled."
)

const (
	searchURL = "https://www.google.com/search?q="
	playURL   = "https://www.youtube.com/results?search_query="

	shutdownDelay = 5 * time.Second
)

// errQuit signals a clean end of the loop from inside a handler.
var errQuit = errors.New("quit")

// HistoryWriter records one side of the conversation. *history.Log
// satisfies it; a nil writer disables recording.
type HistoryWriter interface {
	Append(ctx context.Context, source, message string) error
}

// Assistant owns the loop state and its collaborators.
type Assistant struct {
	wake       string
	listener   voice.Listener
	speaker    voice.Speaker
	dispatcher *dispatch.Dispatcher
	store      *store.Store
	exec       action.Executor
	hist       HistoryWriter
	log        *slog.Logger
	now        func() time.Time
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithWakeWord sets the wake word (normalized before matching).
func WithWakeWord(w string) Option {
	return func(a *Assistant) { a.wake = text.Normalize(w) }
}

// WithHistory records utterances and replies to the given writer.
func WithHistory(h HistoryWriter) Option {
	return func(a *Assistant) { a.hist = h }
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *Assistant) { a.log = log }
}

// WithClock overrides wall time for spoken times and dates.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// New wires an Assistant.
func New(listener voice.Listener, speaker voice.Speaker, d *dispatch.Dispatcher,
	st *store.Store, exec action.Executor, opts ...Option) *Assistant {
	a := &Assistant{
		wake:       "nova",
		listener:   listener,
		speaker:    speaker,
		dispatcher: d,
		store:      st,
		exec:       exec,
		log:        slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run drives the loop until the user exits, input ends, or the context
// is cancelled. A clean exit returns nil.
func (a *Assistant) Run(ctx context.Context) error {
	a.say(ctx, ReplyOnline)
	a.record(ctx, history.SourceSystem, "session started")

	for {
		res := a.listener.Capture(ctx)
		switch res.Kind {
		case voice.KindSilence:
			continue

		case voice.KindFailure:
			if errors.Is(res.Err, io.EOF) || ctx.Err() != nil {
				a.say(ctx, ReplyGoodbye)
				a.record(ctx, history.SourceSystem, "session ended")
				return nil
			}
			a.log.Warn("capture failed", slog.Any("error", res.Err))
			a.say(ctx, ReplyDidNotCatch)
			continue
		}

		a.record(ctx, history.SourceUser, res.Text)
		heard := text.Normalize(res.Text)

		command, ok := a.gate(ctx, heard)
		if !ok {
			continue
		}

		if err := a.handle(ctx, command); err != nil {
			if errors.Is(err, errQuit) {
				a.record(ctx, history.SourceSystem, "session ended")
				return nil
			}
			return err
		}
	}
}

// gate applies the wake word. It returns the command portion of the
// utterance, or ok=false when this capture should be ignored.
//
// A bare wake word gets a "Yes?" and one follow-up capture. An
// utterance without the wake word is ignored unless it is an exit
// command, so "stop nova" always works.
func (a *Assistant) gate(ctx context.Context, heard string) (string, bool) {
	if heard == a.wake {
		a.say(ctx, ReplyYes)
		res := a.listen(ctx)
		if res.Kind != voice.KindHeard {
			return "", false
		}
		a.record(ctx, history.SourceUser, res.Text)
		return text.Normalize(res.Text), true
	}

	if strings.Contains(heard, a.wake) {
		return strings.TrimSpace(strings.ReplaceAll(heard, a.wake, "")), true
	}

	if a.dispatcher.Dispatch(heard).Kind == dispatch.IntentExit {
		return heard, true
	}

	a.log.Debug("ignored, no wake word", slog.String("heard", heard))
	return "", false
}

func (a *Assistant) handle(ctx context.Context, command string) error {
	in := a.dispatcher.Dispatch(command)

	switch in.Kind {
	case dispatch.IntentUnknown:
		a.say(ctx, ReplyUnknown)

	case dispatch.IntentExit:
		a.say(ctx, ReplyGoodbye)
		return errQuit

	case dispatch.IntentStartLearning:
		a.learn(ctx)

	case dispatch.IntentLearned:
		a.say(ctx, ReplyLearnedRun)
		a.perform(ctx, in.Action, "")

	case dispatch.IntentGreeting:
		a.say(ctx, ReplyGreeting)

	case dispatch.IntentTellTime:
		a.say(ctx, "The time is "+a.now().Format("03:04 PM"))

	case dispatch.IntentTellDate:
		a.say(ctx, "Today is "+a.now().Format("January 2, 2006"))

	case dispatch.IntentLaunchApp:
		a.say(ctx, "Opening "+in.App)
		a.perform(ctx, in.Action, in.FallbackURL)

	case dispatch.IntentOpenURL:
		a.say(ctx, "Opening "+in.App)
		a.openURL(ctx, in.URL)

	case dispatch.IntentBattery:
		a.battery(ctx)

	case dispatch.IntentWebSearch:
		a.search(ctx, in)

	case dispatch.IntentMediaPlay:
		a.play(ctx, in)

	case dispatch.IntentScreenshot:
		a.screenshot(ctx)

	case dispatch.IntentPressKey:
		if err := a.exec.PressKey(in.Key); err != nil {
			a.actionFailed(ctx, err)
			return nil
		}
		a.say(ctx, ReplyOkay)

	case dispatch.IntentPressCombo:
		if err := a.exec.PressCombo(in.Keys...); err != nil {
			a.actionFailed(ctx, err)
			return nil
		}
		a.say(ctx, ReplyOkay)

	case dispatch.IntentShutdown:
		return a.confirmShutdown(ctx)
	}
	return nil
}

// perform runs a launch-or-open action string. A launch failure falls
// back to the URL when one is given.
func (a *Assistant) perform(ctx context.Context, act, fallbackURL string) {
	if action.Classify(act) == action.KindWebOpen {
		a.openURL(ctx, act)
		return
	}
	if err := a.exec.Launch(act); err != nil {
		if fallbackURL != "" {
			a.log.Warn("launch failed, opening fallback",
				slog.String("action", act), slog.Any("error", err))
			a.openURL(ctx, fallbackURL)
			return
		}
		a.actionFailed(ctx, err)
	}
}

func (a *Assistant) openURL(ctx context.Context, u string) {
	if err := a.exec.OpenURL(u); err != nil {
		a.actionFailed(ctx, err)
	}
}

func (a *Assistant) battery(ctx context.Context) {
	st, err := a.exec.Battery()
	if err != nil {
		a.log.Warn("battery query failed", slog.Any("error", err))
		a.say(ctx, ReplyBatteryFailed)
		return
	}
	reply := fmt.Sprintf("Battery is at %d percent", st.Percent)
	if st.Plugged {
		reply += " and plugged in"
	} else {
		reply += " and running on battery"
	}
	a.say(ctx, reply)
}

// search opens a web search, asking a follow-up when the utterance
// carried no query.
func (a *Assistant) search(ctx context.Context, in dispatch.Intent) {
	query := in.Query
	if in.NeedsQuery {
		a.say(ctx, ReplyAskSearch)
		res := a.listen(ctx)
		if res.Kind != voice.KindHeard {
			a.say(ctx, ReplySearchCancel)
			return
		}
		a.record(ctx, history.SourceUser, res.Text)
		query = text.Normalize(res.Text)
		if query == "" {
			a.say(ctx, ReplySearchCancel)
			return
		}
	}
	a.say(ctx, "Searching for "+query)
	a.openURL(ctx, searchURL+url.QueryEscape(query))
}

// play opens a media search. With no query it only prompts; the next
// utterance goes through the normal loop.
func (a *Assistant) play(ctx context.Context, in dispatch.Intent) {
	if in.NeedsQuery {
		a.say(ctx, ReplyAskPlay)
		return
	}
	a.say(ctx, "Playing "+in.Query)
	a.openURL(ctx, playURL+url.QueryEscape(in.Query))
}

func (a *Assistant) screenshot(ctx context.Context) {
	path, err := a.exec.Screenshot()
	if err != nil {
		a.log.Warn("screenshot failed", slog.Any("error", err))
		a.say(ctx, ReplyShotFailed)
		return
	}
	a.log.Info("screenshot captured", slog.String("path", path))
	a.say(ctx, ReplyShotSaved)
}

// learn runs the two-step teaching flow: ask for a trigger phrase,
// then for the action. The trigger is normalized like any utterance;
// the action keeps the raw text because normalizing would mangle URLs
// and paths.
func (a *Assistant) learn(ctx context.Context) {
	a.say(ctx, ReplyAskTrigger)
	res := a.listen(ctx)
	if res.Kind != voice.KindHeard {
		a.say(ctx, ReplyLearnCancel)
		return
	}
	a.record(ctx, history.SourceUser, res.Text)
	trig := text.Normalize(res.Text)

	if ok, reason := trigger.Validate(trig); !ok {
		a.say(ctx, "That won't work: "+reason)
		a.say(ctx, ReplyLearnCancel)
		return
	}

	a.say(ctx, ReplyAskAction)
	res = a.listen(ctx)
	if res.Kind != voice.KindHeard {
		a.say(ctx, ReplyLearnCancel)
		return
	}
	a.record(ctx, history.SourceUser, res.Text)
	act := strings.TrimSpace(res.Text)

	if ok, reason := action.ValidateShape(act); !ok {
		a.say(ctx, "That won't work: "+reason)
		a.say(ctx, ReplyLearnCancel)
		return
	}

	if err := a.store.Put(trig, act); err != nil {
		var ve *store.ValidationError
		if errors.As(err, &ve) {
			a.say(ctx, "That won't work: "+ve.Reason)
			a.say(ctx, ReplyLearnCancel)
			return
		}
		a.log.Error("saving learned command failed", slog.Any("error", err))
		a.say(ctx, ReplySaveFailed)
		return
	}

	a.log.Info("learned command",
		slog.String("trigger", trig), slog.String("action", act))
	a.say(ctx, "Got it. Say "+trig+" to run it.")
}

// confirmShutdown asks before powering off. Anything containing yes,
// sure, or ok confirms; everything else cancels.
func (a *Assistant) confirmShutdown(ctx context.Context) error {
	a.say(ctx, ReplyConfirmOff)
	res := a.listen(ctx)
	if res.Kind != voice.KindHeard {
		a.say(ctx, ReplyOffCancelled)
		return nil
	}
	a.record(ctx, history.SourceUser, res.Text)
	answer := text.Normalize(res.Text)

	if !containsAny(answer, "yes", "sure", "ok") {
		a.say(ctx, ReplyOffCancelled)
		return nil
	}

	a.say(ctx, ReplyShuttingDown)
	if err := a.exec.Shutdown(shutdownDelay); err != nil {
		a.actionFailed(ctx, err)
		return nil
	}
	a.record(ctx, history.SourceSystem, "shutdown scheduled")
	return errQuit
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// listen captures one follow-up utterance, bypassing the wake gate.
func (a *Assistant) listen(ctx context.Context) voice.CaptureResult {
	return a.listener.Capture(ctx)
}

func (a *Assistant) actionFailed(ctx context.Context, err error) {
	a.log.Error("action failed", slog.Any("error", err))
	a.say(ctx, ReplyActionFailed)
}

func (a *Assistant) say(ctx context.Context, reply string) {
	if err := a.speaker.Say(ctx, reply); err != nil {
		a.log.Warn("speaking failed", slog.Any("error", err))
	}
	a.record(ctx, history.SourceNova, reply)
}

func (a *Assistant) record(ctx context.Context, source, message string) {
	if a.hist == nil {
		return
	}
	if err := a.hist.Append(ctx, source, message); err != nil {
		a.log.Warn("history append failed", slog.Any("error", err))
	}
}
