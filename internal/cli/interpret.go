package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/savan-goti/NovaAssistant/internal/dispatch"
	"github.com/savan-goti/NovaAssistant/internal/text"
)

// NewInterpretCommand creates the interpret command.
func NewInterpretCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interpret <utterance>...",
		Short: "Resolve an utterance without performing the action",
		Long: `Resolve an utterance exactly as the loop would, printing the decision
instead of performing it. Useful for checking why a phrase does or does
not match a command.

Example:
  nova interpret open chrome
  nova interpret "search golang generics" --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return interpretUtterance(rootOpts, strings.Join(args, " "), cmd)
		},
	}

	return cmd
}

// interpretResult is the printable form of a dispatch decision.
type interpretResult struct {
	Utterance  string `json:"utterance"`
	Normalized string `json:"normalized"`
	Kind       string `json:"kind"`
	Rule       string `json:"rule"`
	App        string `json:"app,omitempty"`
	Trigger    string `json:"trigger,omitempty"`
	Action     string `json:"action,omitempty"`
	URL        string `json:"url,omitempty"`
	Query      string `json:"query,omitempty"`
	NeedsQuery bool   `json:"needs_query,omitempty"`
}

func (r interpretResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "utterance:  %s\n", r.Utterance)
	fmt.Fprintf(&b, "normalized: %s\n", r.Normalized)
	fmt.Fprintf(&b, "kind:       %s\n", r.Kind)
	fmt.Fprintf(&b, "rule:       %s", r.Rule)
	if r.Trigger != "" {
		fmt.Fprintf(&b, "\ntrigger:    %s", r.Trigger)
	}
	if r.Action != "" {
		fmt.Fprintf(&b, "\naction:     %s", r.Action)
	}
	if r.URL != "" {
		fmt.Fprintf(&b, "\nurl:        %s", r.URL)
	}
	if r.Query != "" || r.NeedsQuery {
		fmt.Fprintf(&b, "\nquery:      %s", r.Query)
	}
	return b.String()
}

func interpretUtterance(opts *RootOptions, utterance string, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	dispatcher := dispatch.New(st,
		dispatch.WithThreshold(cfg.Match.SimilarityThreshold),
		dispatch.WithExitThreshold(cfg.Match.ExitThreshold),
	)

	normalized := text.Normalize(utterance)
	in := dispatcher.Dispatch(normalized)

	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
	return formatter.Success(interpretResult{
		Utterance:  utterance,
		Normalized: normalized,
		Kind:       in.Kind.String(),
		Rule:       in.Rule,
		App:        in.App,
		Trigger:    in.Trigger,
		Action:     in.Action,
		URL:        in.URL,
		Query:      in.Query,
		NeedsQuery: in.NeedsQuery,
	})
}
