// Package cmd provides the root command and CLI setup for splint.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/splint/internal/adapter"
	"github.com/mouse-blink/splint/internal/controller"
	"github.com/mouse-blink/splint/internal/domain"
	m "github.com/mouse-blink/splint/internal/model"
)

const (
	appName           = "splint"
	defaultReportsDir = ".splint-reports"
	watchDebounce     = 200 * time.Millisecond
)

// errLintFailed signals a run that produced failing diagnostics. It carries
// no message of its own; the report has already been printed.
var errLintFailed = errors.New("lint failed")

// errParseFailed signals a run where some files could not be tokenized. Their
// rules never ran, so the run cannot pass.
var errParseFailed = errors.New("files could not be parsed")

// workflow is built from the parsed flags on first use unless a test has
// already set it.
var workflow domain.Workflow

// runCargoCheck forwards `cargo check` output after the analyzer messages.
var runCargoCheck = func(cmd *cobra.Command) error {
	check := exec.CommandContext(cmd.Context(), "cargo", "check", "--quiet", "--workspace",
		"--message-format=json", "--all-targets")
	check.Stdout = cmd.OutOrStdout()
	check.Stderr = cmd.ErrOrStderr()

	return check.Run()
}

var (
	rulesFlag      string
	quietFlag      bool
	analyzeFlag    bool
	formatFlag     string
	parallelFlag   int
	excludeFlags   []string
	noCacheFlag    bool
	clearCacheFlag bool
	saveFlag       bool
	reportsFlag    string
	tuiFlag        bool
	verboseFlag    int
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

const rootLongDescription = `Splint is a simple linter to avoid pain in your codebases.

Rules are token patterns loaded from splint.json, splint.toml or splint.yaml
(or their dot-prefixed variants) in the working directory, or from the file
given with -r.

Supports path patterns:
  - src/main.rs    lint a single file
  - ./...          recursively lint the current directory
  - 'src/*.rs'     lint files matching a glob`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "splint [files...]",
		Short:         "A simple linter to avoid pain in your codebases",
		Long:          rootLongDescription,
		Version:       "1.0.0",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			switch outputFormat() {
			case controller.FormatText, controller.FormatJSON, controller.FormatRustc:
				return nil
			default:
				return fmt.Errorf("unknown format %q (expected text, json or rustc)", formatFlag)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := currentWorkflow(cmd).Lint(cmd.Context(), lintArgs(args))
			if err != nil {
				return err
			}

			if analyzeFlag {
				return runCargoCheck(cmd)
			}

			if report.AnyFailure {
				return errLintFailed
			}

			if failures := report.ParseFailures(); len(failures) > 0 {
				return fmt.Errorf("%w: %d of %d", errParseFailed, len(failures), len(report.Files))
			}

			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&rulesFlag, "rules", "r", "", "the rules to lint against (json|toml|yaml)")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "quiet mode")
	flags.BoolVarP(&analyzeFlag, "analyze", "a", false, "rust-analyzer mode: print compiler messages and run cargo check")
	flags.StringVar(&formatFlag, "format", controller.FormatText, "output format: text, json or rustc")
	flags.IntVarP(&parallelFlag, "parallel", "p", 0, "number of parallel workers (0 uses all CPUs)")
	flags.StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	flags.BoolVar(&noCacheFlag, "no-cache", false, "do not read or write the diagnostic cache")
	flags.BoolVar(&clearCacheFlag, "clear-cache", false, "drop every cached diagnostic before linting")
	flags.BoolVar(&saveFlag, "save", false, "save the report for the view command")
	flags.StringVar(&reportsFlag, "reports", defaultReportsDir, "directory reports are saved to and viewed from")
	flags.BoolVar(&tuiFlag, "tui", false, "browse results interactively when attached to a terminal")
	flags.CountVarP(&verboseFlag, "verbose", "v", "log progress to stderr (repeat for debug output)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	if !errors.Is(err, errLintFailed) && !quietFlag {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}

	stop()
	os.Exit(1)
}

func currentWorkflow(cmd *cobra.Command) domain.Workflow {
	if workflow == nil {
		workflow = newWorkflow(cmd)
	}

	return workflow
}

func newWorkflow(cmd *cobra.Command) domain.Workflow {
	logger := newLogger(cmd.ErrOrStderr(), verboseFlag)
	tty := controller.IsTTY(cmd.OutOrStdout())

	ui := controller.NewUI(cmd, controller.Options{
		Format:      outputFormat(),
		Interactive: tuiFlag && tty,
		Color:       tty && os.Getenv("NO_COLOR") == "",
		Quiet:       quietFlag,
	})

	deps := domain.Deps{
		FS:         adapter.NewLocalSourceFSAdapter(),
		Tokenizers: adapter.NewDefaultTokenizerRegistry(),
		Loader:     adapter.NewFileRuleLoader(),
		Reports:    adapter.NewReportStore(),
		Watcher:    adapter.NewFSWatcher(watchDebounce, logger),
		UI:         ui,
		Logger:     logger,
	}

	if !noCacheFlag || clearCacheFlag {
		cache, err := adapter.OpenDiskCache(appName)
		if err != nil {
			logger.Warn("diagnostic cache disabled", "error", err)
		} else {
			deps.Cache = cache
		}
	}

	return domain.NewWorkflow(deps)
}

func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelWarn

	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func outputFormat() string {
	if analyzeFlag {
		return controller.FormatRustc
	}

	return formatFlag
}

func lintArgs(args []string) domain.LintArgs {
	return domain.LintArgs{
		Paths:      parsePaths(args),
		Exclude:    excludeFlags,
		Rules:      m.Path(rulesFlag),
		Threads:    parallelFlag,
		UseCache:   !noCacheFlag,
		ClearCache: clearCacheFlag,
		Save:       saveFlag,
		Reports:    m.Path(reportsFlag),
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
