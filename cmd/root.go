package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jackchuka/gitsweep/internal/config"
	"github.com/jackchuka/gitsweep/internal/diskusage"
	"github.com/jackchuka/gitsweep/internal/model"
	"github.com/jackchuka/gitsweep/internal/progress"
	"github.com/jackchuka/gitsweep/internal/report"
	"github.com/jackchuka/gitsweep/internal/scanner"
	"github.com/jackchuka/gitsweep/internal/status"
	"github.com/jackchuka/gitsweep/internal/sweep"
	"github.com/jackchuka/gitsweep/tui"
)

// Set by the linker.
var version = "dev"

var (
	cfgFile string
	cfg     *config.Config
)

var flags struct {
	force      bool
	dryRun     bool
	confirm    bool
	format     string
	noProgress bool
	verbose    bool
	quiet      bool
}

var rootCmd = &cobra.Command{
	Use:   "gitsweep [path]",
	Short: "Run git clean across every repository under a directory",
	Long: `
  gitsweep finds git repositories below a directory and removes
  untracked and ignored files from each one with "git clean -fdx".

  Repositories with untracked files are skipped unless --force is
  given, so work that was never added to git is left alone. Use
  --dry-run to see what would be cleaned.`,
	Args:          cobra.MaximumNArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSweep,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/gitsweep/config.yaml)")

	f := rootCmd.Flags()
	f.IntP("depth", "d", 3, "how many directory levels below the root to search")
	f.IntP("jobs", "j", 1, "repositories to process at once")
	f.Bool("measure-size", true, "measure reclaimed disk space")
	f.BoolVarP(&flags.force, "force", "f", false, "clean repositories even when they have untracked files")
	f.BoolVarP(&flags.dryRun, "dry-run", "n", false, "only report what would be cleaned")
	f.BoolVarP(&flags.confirm, "confirm", "i", false, "ask before cleaning each repository")
	f.StringVar(&flags.format, "format", report.FormatText, "summary format: text, yaml or json")
	f.BoolVar(&flags.noProgress, "no-progress", false, "do not show progress")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log debug output")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "only log warnings and errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath()
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config file only when given
	f := rootCmd.Flags()
	if f.Changed("depth") {
		cfg.MaxDepth, _ = f.GetInt("depth")
	}
	if f.Changed("jobs") {
		cfg.Jobs, _ = f.GetInt("jobs")
	}
	if f.Changed("measure-size") {
		cfg.MeasureSize, _ = f.GetBool("measure-size")
	}
}

func newLogger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	switch {
	case flags.verbose:
		level = log.DebugLevel
	case flags.quiet:
		level = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
		Prefix:          "gitsweep",
	})
}

// newBackend returns the status checker and cleaner. Cleaning always goes
// through the git binary.
func newBackend(c *config.Config) (sweep.StatusChecker, sweep.Cleaner) {
	git := status.NewGitReader(c.StatusTimeout, c.CleanTimeout)
	if c.Backend == config.BackendGoGit {
		return status.NewGoGitReader(c.StatusTimeout), git
	}
	return git, git
}

func runSweep(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := cfg.Root
	if len(args) > 0 {
		path = args[0]
	}
	root, err := config.ResolveRoot(path)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	logger := newLogger(stderr)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	checker, cleaner := newBackend(cfg)
	s := sweep.New(scanner.NewWalker(cfg), checker, cleaner, diskusage.NewSizer(model.MarkerDir), logger)

	opts := sweep.Options{
		Root:        root,
		Depth:       cfg.MaxDepth,
		Force:       flags.force,
		Simulate:    flags.dryRun,
		MeasureSize: cfg.MeasureSize,
		Workers:     cfg.Jobs,
	}
	if flags.confirm {
		opts.Confirm = newPrompter(cmd.InOrStdin(), stderr)
	}

	var ui *tui.Progress
	switch {
	case flags.noProgress || flags.quiet:
	case opts.Confirm == nil && stderr == os.Stderr && isatty.IsTerminal(os.Stderr.Fd()):
		var in io.Reader
		if isatty.IsTerminal(os.Stdin.Fd()) {
			in = os.Stdin
		}
		ui = tui.NewProgress(stderr, in, cancel)
		logger.SetOutput(ui)
		s.Sink = ui
		ui.Start()
	default:
		s.Sink = progress.LogSink(logger)
	}

	logger.Debug("starting sweep", "root", root, "depth", opts.Depth, "force", opts.Force,
		"dry-run", opts.Simulate, "jobs", opts.Workers, "backend", cfg.Backend)

	summary, runErr := s.Run(ctx, opts)

	if ui != nil {
		err := ui.Stop()
		logger.SetOutput(stderr)
		if err != nil {
			logger.Warn("progress display", "error", err)
		}
	}

	if summary == nil {
		return runErr
	}

	if err := report.Write(cmd.OutOrStdout(), summary, flags.format); err != nil {
		return err
	}

	switch {
	case runErr != nil:
		return fmt.Errorf("sweep interrupted: %w", runErr)
	case summary.HasFailures():
		return fmt.Errorf("%d of %d repositories failed", len(summary.Failed), summary.Found)
	}
	return nil
}
