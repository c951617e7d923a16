package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NewTec-GmbH/lobster-rust/internal/analysis"
	"github.com/NewTec-GmbH/lobster-rust/internal/config"
	"github.com/NewTec-GmbH/lobster-rust/internal/lobster"
	"github.com/NewTec-GmbH/lobster-rust/internal/visitor"
	"github.com/NewTec-GmbH/lobster-rust/internal/watcher"
)

// ErrActivityUnsupported is returned for --activity.
var ErrActivityUnsupported = errors.New("activity traces are not supported")

var (
	cfgFile      string
	verbose      bool
	libFlag      bool
	onlyTagged   bool
	activityFlag bool
	progressFlag bool
	watchFlag    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lobster-rust [dir] [out]",
	Short: "Extract a LOBSTER implementation trace from Rust sources",
	Long: `lobster-rust walks a Rust crate, starting at main.rs (or lib.rs with --lib),
follows every module declaration and writes all functions and structs together
with their lobster-trace and lobster-exclude annotations as LOBSTER
interchange file.

Examples:
  # Analyze ./src/main.rs and write rust.lobster
  lobster-rust

  # Analyze a library crate
  lobster-rust --lib crates/core/src core.lobster

  # Only emit annotated items
  lobster-rust --only-tagged-functions

  # Regenerate the output whenever a .rs file changes
  lobster-rust --watch
`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().BoolVarP(&libFlag, "lib", "l", false, "Parse lib.rs as crate root instead of main.rs")
	rootCmd.Flags().BoolVar(&onlyTagged, "only-tagged-functions", false, "Only emit items with lobster-trace or lobster-exclude annotations")
	rootCmd.Flags().BoolVar(&activityFlag, "activity", false, "Generate an activity trace instead of an implementation trace (unsupported)")
	rootCmd.Flags().BoolVar(&progressFlag, "progress", false, "Show a progress bar on stderr")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the source directory and rerun the analysis on changes")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if activityFlag {
		return ErrActivityUnsupported
	}

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	applyArgs(cfg, args)
	if cmd.Flags().Changed("lib") {
		cfg.Lib = libFlag
	}
	if cmd.Flags().Changed("only-tagged-functions") {
		cfg.OnlyTagged = onlyTagged
	}

	logger := newLogger(cmd.ErrOrStderr(), verbose)

	var progress visitor.ProgressReporter
	if progressFlag {
		bar := NewCLIProgressReporter(cmd.ErrOrStderr(), cfg.SourceDir)
		defer bar.Finish()
		progress = bar
	}

	n, err := executeAnalysis(cfg, logger, progress)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Written %d items to %s\n", n, cfg.Output)

	if !watchFlag {
		return nil
	}
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return watchAndRerun(ctx, cfg, logger, cmd.OutOrStdout())
}

// watchAndRerun reruns the whole analysis after every batch of changes until
// ctx is cancelled. Failed runs are logged and keep the previous output.
func watchAndRerun(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	w, err := watcher.New(cfg.SourceDir, watcher.DefaultDebounce, logger)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.SourceDir, err)
	}
	defer w.Stop()

	err = w.Start(ctx, func(files []string) {
		logger.Info("source files changed", "count", len(files))
		n, err := executeAnalysis(cfg, logger, nil)
		if err != nil {
			logger.Error("analysis failed", "error", err)
			return
		}
		fmt.Fprintf(out, "Written %d items to %s\n", n, cfg.Output)
	})
	if err != nil {
		return err
	}

	logger.Info("watching for changes", "dir", cfg.SourceDir)
	<-w.Done()
	return nil
}

// loadConfig loads the config file given with --config, or the one in the
// working directory.
func loadConfig(file string) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	loader := config.NewLoader(wd)
	if file != "" {
		loader = config.NewFileLoader(wd, file)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// applyArgs lets the positional arguments override the configured paths.
func applyArgs(cfg *config.Config, args []string) {
	if len(args) > 0 {
		cfg.SourceDir = args[0]
	}
	if len(args) > 1 {
		cfg.Output = args[1]
	}
}

// executeAnalysis runs the analysis and writes the interchange file. It
// returns the number of records written.
func executeAnalysis(cfg *config.Config, logger *slog.Logger, progress visitor.ProgressReporter) (int, error) {
	res, err := analysis.Run(cfg.ToAnalysisOptions(logger, progress))
	if err != nil {
		return 0, err
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	if err := lobster.Write(f, res.Document); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to write output file: %w", err)
	}
	return len(res.Document.Data), nil
}

// newLogger writes text logs to w. verbose enables debug output.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
