package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCommandsCommand creates the commands command.
func NewCommandsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List learned commands",
		Long: `List learned commands in the order they were taught, which is also
the order they are matched in.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCommands(rootOpts, cmd)
		},
	}

	return cmd
}

func listCommands(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	commands := st.All()

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(commands)
	}

	if len(commands) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No learned commands.")
		return nil
	}
	for _, c := range commands {
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", c.Trigger, c.Action)
	}
	return nil
}
