package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/savan-goti/NovaAssistant/internal/text"
)

// NewForgetCommand creates the forget command.
func NewForgetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forget <trigger>...",
		Short: "Remove a learned command",
		Long: `Remove a learned command by its trigger phrase. The phrase is
normalized before lookup, so it can be given exactly as it would be
spoken.

Example:
  nova forget open notepad`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return forgetCommand(rootOpts, strings.Join(args, " "), cmd)
		},
	}

	return cmd
}

func forgetCommand(opts *RootOptions, rawTrigger string, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	trig := text.Normalize(rawTrigger)

	removed, err := st.Delete(trig)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to remove command", err)
	}
	if !removed {
		msg := fmt.Sprintf("no learned command %q", trig)
		_ = formatter.Error("not_found", msg)
		return NewExitError(ExitFailure, msg)
	}

	return formatter.Success(fmt.Sprintf("Forgot: %s", trig))
}
