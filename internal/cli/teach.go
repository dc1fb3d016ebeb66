package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/savan-goti/NovaAssistant/internal/action"
	"github.com/savan-goti/NovaAssistant/internal/store"
	"github.com/savan-goti/NovaAssistant/internal/text"
)

// NewTeachCommand creates the teach command.
func NewTeachCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teach <trigger> <action>",
		Short: "Teach a command without the voice flow",
		Long: `Teach a command directly from the shell. The trigger is normalized
exactly like a spoken phrase; the action is stored verbatim.

Example:
  nova teach "open notepad" /usr/bin/notepad
  nova teach "check my mail" https://mail.example.com`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return teachCommand(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func teachCommand(opts *RootOptions, rawTrigger, act string, cmd *cobra.Command) error {
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

	if ok, reason := action.ValidateShape(act); !ok {
		_ = formatter.Error("rejected", reason)
		return NewExitError(ExitFailure, reason)
	}

	if err := st.Put(trig, act); err != nil {
		var ve *store.ValidationError
		if errors.As(err, &ve) {
			_ = formatter.Error("rejected", ve.Reason)
			return NewExitError(ExitFailure, ve.Reason)
		}
		return WrapExitError(ExitCommandError, "failed to save command", err)
	}

	return formatter.Success(fmt.Sprintf("Learned: %s -> %s", trig, act))
}
