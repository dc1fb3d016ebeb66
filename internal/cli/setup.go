package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/savan-goti/NovaAssistant/internal/action"
	"github.com/savan-goti/NovaAssistant/internal/config"
	"github.com/savan-goti/NovaAssistant/internal/store"
)

func newExecutor() action.Executor {
	return action.NewSystem("")
}

// setupLogging installs the default slog handler. When logFile is
// non-empty, log lines are teed to it in addition to stderr. The
// returned func closes the file.
func setupLogging(verbose bool, logFile string) func() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	out := io.Writer(os.Stderr)
	closer := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			slog.Warn("cannot open log file, logging to stderr only",
				slog.String("path", logFile), slog.Any("error", err))
		} else {
			out = io.MultiWriter(os.Stderr, f)
			closer = func() { _ = f.Close() }
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})))
	return closer
}

func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}

func openStore(cfg config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.Paths.CommandsFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open learned commands", err)
	}
	return st, nil
}
