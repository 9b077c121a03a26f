package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/activitycal/internal/config"
	"github.com/idilsaglam/activitycal/internal/log"
	"github.com/idilsaglam/activitycal/internal/store/jsonstore"
	"github.com/idilsaglam/activitycal/internal/tracker"
	"github.com/idilsaglam/activitycal/internal/ui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile  string
	EnvFile     string
	DataFile    string
	JournalFile string
	Theme       string
	Locale      string
	LogLevel    string
	Format      string // "text" | "json"
	NoColor     bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// app is what PersistentPreRunE builds for the subcommands.
type app struct {
	cfg *config.Config
	log *log.Logger
	svc *tracker.Service
	now func() time.Time

	opts    *RootOptions
	logFile io.Closer
}

// Option customises the root command.
type Option func(*app)

// WithClock fixes "today".
func WithClock(now func() time.Time) Option {
	return func(a *app) { a.now = now }
}

// NewRootCommand creates the root command for the activitycal CLI.
func NewRootCommand(options ...Option) *cobra.Command {
	opts := &RootOptions{}
	a := &app{opts: opts, now: time.Now}
	for _, o := range options {
		o(a)
	}

	cmd := &cobra.Command{
		Use:   "activitycal",
		Short: "Record daily activities on a calendar",
		Long: `activitycal keeps a calendar of what you did each day, tagged with
coloured categories, in a plain JSON file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// help and shell completion never touch the store
			if cmd.Name() == "help" || (cmd.HasParent() && cmd.Parent().Name() == "completion") {
				return nil
			}
			if !contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.ConfigFile, "config", "", "config file (default ./"+config.DefaultConfigFile+")")
	f.StringVar(&opts.EnvFile, "env-file", "", "env file (default ./"+config.DefaultEnvFile+")")
	f.StringVar(&opts.DataFile, "data", "", "activities document")
	f.StringVar(&opts.JournalFile, "journal", "", "journal document")
	f.StringVar(&opts.Theme, "theme", "", "output theme (classic|neon|mono)")
	f.StringVar(&opts.Locale, "locale", "", "calendar language (en|fr)")
	f.StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	f.StringVar(&opts.Format, "format", "text", "output format (text|json)")
	f.BoolVar(&opts.NoColor, "no-color", false, "disable colours")

	cmd.AddCommand(newTUICommand(a))
	cmd.AddCommand(newCalCommand(a))
	cmd.AddCommand(newListCommand(a))
	cmd.AddCommand(newAddCommand(a))
	cmd.AddCommand(newEditCommand(a))
	cmd.AddCommand(newRemoveCommand(a))
	cmd.AddCommand(newCategoryCommand(a))
	cmd.AddCommand(newStatsCommand(a))
	cmd.AddCommand(newExportCommand(a))

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Sources{ConfigFile: a.opts.ConfigFile, EnvFile: a.opts.EnvFile})
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	cfg.Merge(config.Config{
		DataFile:    a.opts.DataFile,
		JournalFile: a.opts.JournalFile,
		LogLevel:    a.opts.LogLevel,
		Theme:       a.opts.Theme,
		Locale:      a.opts.Locale,
	})
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "config", err)
	}
	a.cfg = cfg

	ui.SetTheme(cfg.Theme)
	if a.opts.NoColor {
		ui.SetColorForcing(false, true)
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	out := cmd.ErrOrStderr()
	if cfg.LogFile != "" {
		lf, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return WrapExitError(ExitFailure, "open log file", err)
		}
		a.logFile = lf
		out = lf
	}
	a.log = log.New(log.Config{Level: level, Component: "activitycal", Output: out})
	log.SetDefault(a.log)

	st, err := jsonstore.Open(cfg.DataFile, cfg.JournalFile, jsonstore.WithLogger(a.log))
	if err != nil {
		return WrapExitError(ExitFailure, "open store", err)
	}
	a.svc = tracker.New(st, a.log)
	a.log.Debug("store ready", "data", st.Path(), "journal", st.JournalPath())
	return nil
}

func (a *app) teardown() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
