package cliutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wandb/wandb/graphkit/internal/config"
	"github.com/wandb/wandb/graphkit/internal/observability"
	"github.com/wandb/wandb/graphkit/internal/version"
)

// AnnotationInteractive marks commands that take over the terminal.
//
// Their logs are discarded unless --debug-log is set.
const AnnotationInteractive = "graphkit/interactive"

const debugLogEnv = "GRAPHKIT_DEBUG_LOG"

// Runtime is the state shared by all subcommands.
//
// Flags are registered with AddFlags and the rest is filled in by Init,
// which the root command runs before any subcommand.
type Runtime struct {
	ConfigPath string
	DebugLog   string
	Verbose    bool

	Fs     afero.Fs
	Config *config.Manager
	Logger *observability.CoreLogger

	reporter *observability.Reporter
	closers  []io.Closer
}

func NewRuntime(fs afero.Fs) *Runtime {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Runtime{Fs: fs, Logger: observability.NewNoOpLogger()}
}

// AddFlags registers the global flags on a root command's persistent set.
func (r *Runtime) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&r.ConfigPath, "config", "", "config file (default is $XDG_CONFIG_HOME/graphkit/config.yaml)")
	flags.StringVar(&r.DebugLog, "debug-log", os.Getenv(debugLogEnv), "write JSON debug logs to this file")
	flags.BoolVarP(&r.Verbose, "verbose", "v", false, "log debug messages")
}

// Init loads the configuration and sets up logging and error reporting
// for cmd.
func (r *Runtime) Init(cmd *cobra.Command) error {
	handler, err := r.logHandler(cmd)
	if err != nil {
		return err
	}
	bootstrap := observability.NewCoreLogger(slog.New(handler), nil)

	cfg, err := config.NewManager(config.ManagerParams{
		Fs:     r.Fs,
		Path:   r.ConfigPath,
		Logger: bootstrap,
	})
	if err != nil {
		return err
	}
	r.Config = cfg

	reporter, err := observability.NewReporter(observability.ReporterParams{
		DSN:         cfg.SentryDSN(),
		Release:     version.Version,
		Environment: version.Environment(),
	})
	if err != nil {
		bootstrap.Warn(fmt.Sprintf("cliutil: error reporting disabled: %v", err))
	}
	r.reporter = reporter

	r.Logger = observability.NewCoreLogger(slog.New(handler), &observability.CoreLoggerParams{
		Reporter: reporter,
		Tags: observability.Tags{
			"command": cmd.CommandPath(),
			"version": version.Version,
		},
	})
	r.Logger.Debug("cliutil: runtime initialized", "config", cfg.Path())
	return nil
}

// logHandler picks where logs go: a JSON debug file if requested,
// nowhere for interactive commands, otherwise stderr.
func (r *Runtime) logHandler(cmd *cobra.Command) (slog.Handler, error) {
	level := slog.LevelInfo
	if r.Verbose {
		level = slog.LevelDebug
	}

	if r.DebugLog != "" {
		file, err := r.Fs.OpenFile(r.DebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cliutil: opening debug log: %v", err)
		}
		r.closers = append(r.closers, file)
		return slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}), nil
	}

	if cmd.Annotations[AnnotationInteractive] == "true" {
		return slog.NewTextHandler(io.Discard, nil), nil
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:           log.Level(level),
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return logger, nil
}

// Close flushes pending error reports and closes the debug log.
func (r *Runtime) Close() error {
	if r.reporter != nil {
		r.reporter.Flush(2 * time.Second)
	}

	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	r.closers = nil
	return errors.Join(errs...)
}
