// Package dispatch resolves a normalized utterance to an Intent.
//
// Resolution is tiered: exit phrases, then the learning entry phrases,
// then learned commands in storage order, then the built-in rule table
// in declared order. The first tier that matches wins, so a learned
// trigger can never shadow "stop nova", and a built-in can never shadow
// something the user taught.
package dispatch

import (
	"log/slog"

	"github.com/savan-goti/NovaAssistant/internal/fuzzy"
	"github.com/savan-goti/NovaAssistant/internal/store"
)

// exitPhrases end the session. Matched at the stricter exit threshold
// so an accidental "stop" inside a longer command does not kill the
// loop unless it really is close.
var exitPhrases = []string{
	"stop",
	"exit",
	"quit",
	"goodbye",
	"bye",
	"shut down nova",
	"stop nova",
	"nova stop",
	"close nova",
	"turn off",
}

// learningPhrases enter the learning flow.
var learningPhrases = []string{
	"learn new command",
	"learning mode",
	"teach you",
	"learn something",
}

// CommandSource yields learned commands in storage order.
type CommandSource interface {
	All() []store.Command
}

// Dispatcher resolves utterances against the learned store and the
// built-in rules.
type Dispatcher struct {
	commands      CommandSource
	threshold     float64
	exitThreshold float64
	rules         []rule
	log           *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithThreshold overrides the similarity threshold for learning
// phrases and learned triggers.
func WithThreshold(t float64) Option {
	return func(d *Dispatcher) { d.threshold = t }
}

// WithExitThreshold overrides the similarity threshold for exit
// phrases.
func WithExitThreshold(t float64) Option {
	return func(d *Dispatcher) { d.exitThreshold = t }
}

// WithLogger sets the logger for dispatch decisions.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// New creates a Dispatcher over the given learned-command source.
func New(commands CommandSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		commands:      commands,
		threshold:     fuzzy.DefaultThreshold,
		exitThreshold: fuzzy.ExitThreshold,
		rules:         builtinRules,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch resolves a normalized utterance. An empty utterance resolves
// to IntentUnknown.
func (d *Dispatcher) Dispatch(utterance string) Intent {
	if utterance == "" {
		return Intent{Kind: IntentUnknown, Rule: "empty"}
	}

	for _, phrase := range exitPhrases {
		if fuzzy.Similar(utterance, phrase, d.exitThreshold) {
			return d.resolved(utterance, Intent{Kind: IntentExit, Rule: "exit"})
		}
	}

	for _, phrase := range learningPhrases {
		if fuzzy.Similar(utterance, phrase, d.threshold) {
			return d.resolved(utterance, Intent{Kind: IntentStartLearning, Rule: "start-learning"})
		}
	}

	if d.commands != nil {
		for _, cmd := range d.commands.All() {
			if fuzzy.Similar(utterance, cmd.Trigger, d.threshold) {
				return d.resolved(utterance, Intent{
					Kind:    IntentLearned,
					Rule:    "learned",
					Trigger: cmd.Trigger,
					Action:  cmd.Action,
				})
			}
		}
	}

	for _, r := range d.rules {
		if r.match(utterance) {
			return d.resolved(utterance, r.build(utterance))
		}
	}

	return Intent{Kind: IntentUnknown, Rule: "unknown"}
}

func (d *Dispatcher) resolved(utterance string, in Intent) Intent {
	d.log.Debug("dispatched",
		slog.String("utterance", utterance),
		slog.String("kind", in.Kind.String()),
		slog.String("rule", in.Rule))
	return in
}
