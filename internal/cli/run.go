package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/savan-goti/NovaAssistant/internal/assistant"
	"github.com/savan-goti/NovaAssistant/internal/dispatch"
	"github.com/savan-goti/NovaAssistant/internal/history"
	"github.com/savan-goti/NovaAssistant/internal/voice"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	NoHistory bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the assistant loop",
		Long: `Start the assistant loop on the console.

Utterances are read line by line from standard input, standing in for
the microphone. Commands must carry the wake word; replies are printed,
or spoken when a tts_command is configured.

Example:
  nova run
  nova run --config ./nova.yaml --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssistant(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "disable the interaction history database")

	return cmd
}

func runAssistant(opts *RunOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	closeLog := setupLogging(opts.Verbose, cfg.Paths.LogFile)
	defer closeLog()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	slog.Info("learned commands loaded",
		slog.String("path", st.Path()), slog.Int("count", st.Len()))

	var options []assistant.Option
	options = append(options,
		assistant.WithWakeWord(cfg.WakeWord),
		assistant.WithLogger(slog.Default()),
	)

	if !opts.NoHistory {
		hist, err := history.Open(cfg.Paths.HistoryDB)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open history database", err)
		}
		defer func() {
			if closeErr := hist.Close(); closeErr != nil {
				slog.Error("error closing history database", "error", closeErr)
			}
		}()
		slog.Info("history ready",
			slog.String("path", cfg.Paths.HistoryDB),
			slog.String("session", hist.Session()))
		options = append(options, assistant.WithHistory(hist))
	}

	listener := voice.NewConsoleListener(cmd.InOrStdin(), cmd.OutOrStdout())

	var speaker voice.Speaker
	if cfg.Speech.TTSCommand != "" {
		speaker = &voice.ExecSpeaker{Command: cfg.Speech.TTSCommand}
	} else {
		speaker = &voice.ConsoleSpeaker{Out: cmd.OutOrStdout()}
	}

	dispatcher := dispatch.New(st,
		dispatch.WithThreshold(cfg.Match.SimilarityThreshold),
		dispatch.WithExitThreshold(cfg.Match.ExitThreshold),
		dispatch.WithLogger(slog.Default()),
	)

	a := assistant.New(listener, speaker, dispatcher, st,
		newExecutor(), options...)

	// Graceful shutdown on Ctrl-C. The command's context is honored so
	// tests can cancel from outside.
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	slog.Info("assistant starting", slog.String("wake_word", cfg.WakeWord))
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl-C to stop.")

	if err := a.Run(ctx); err != nil {
		return WrapExitError(ExitFailure, "assistant error", err)
	}

	slog.Info("assistant stopped")
	return nil
}
