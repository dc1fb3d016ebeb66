package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/savan-goti/NovaAssistant/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent interactions",
		Long: `Show recent interactions from the history database, newest first.

Example:
  nova history
  nova history --limit 50 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of interactions to show")

	return cmd
}

// historyEntry is the printable form of one interaction.
type historyEntry struct {
	Timestamp string `json:"timestamp"`
	Session   string `json:"session"`
	Source    string `json:"source"`
	Message   string `json:"message"`
}

func showHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	hist, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer hist.Close()

	entries, err := hist.Recent(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	if opts.Format == "json" {
		out := make([]historyEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, historyEntry{
				Timestamp: e.Timestamp.Format("2006-01-02 15:04:05"),
				Session:   e.SessionID,
				Source:    e.Source,
				Message:   e.Message,
			})
		}
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(out)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  [%-6s] %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Source, e.Message)
	}
	return nil
}
