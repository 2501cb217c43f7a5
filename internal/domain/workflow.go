package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/splint/internal/adapter"
	"github.com/mouse-blink/splint/internal/controller"
	m "github.com/mouse-blink/splint/internal/model"
)

// ErrNoFiles is returned when the given paths resolve to no lintable file.
var ErrNoFiles = errors.New("no files provided")

// ErrUnknownRule is returned when a rule name is not in the rule set.
var ErrUnknownRule = errors.New("unknown rule")

// LintArgs configures a lint run.
type LintArgs struct {
	Paths   []m.Path
	Exclude []string
	// Rules is the rules file; empty means the default lookup in the
	// working directory.
	Rules    m.Path
	Threads  int
	UseCache bool
	// ClearCache drops every cached diagnostic before linting.
	ClearCache bool
	Save       bool
	Reports    m.Path
}

// RulesArgs configures the rules listing.
type RulesArgs struct {
	Rules m.Path
	// Names limits the listing to these rules; empty lists every rule.
	Names []string
}

// ViewArgs configures viewing a saved report.
type ViewArgs struct {
	Reports m.Path
}

// WatchArgs configures watch mode.
type WatchArgs struct {
	LintArgs
}

// Workflow defines the linting operations exposed to the CLI.
type Workflow interface {
	Lint(ctx context.Context, args LintArgs) (m.Report, error)
	Rules(args RulesArgs) error
	View(args ViewArgs) error
	Watch(ctx context.Context, args WatchArgs) error
}

// Deps are the adapters a workflow is built from. Cache may be nil.
type Deps struct {
	FS         adapter.SourceFSAdapter
	Tokenizers adapter.Tokenizer
	Loader     adapter.RuleLoader
	Reports    adapter.ReportStore
	Cache      adapter.DiagnosticCache
	Watcher    adapter.Watcher
	UI         controller.UI
	Logger     *slog.Logger
}

type workflow struct {
	Deps
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(deps Deps) Workflow {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	return &workflow{Deps: deps}
}

// Lint loads the rules, lints every file and displays the report.
func (w *workflow) Lint(ctx context.Context, args LintArgs) (m.Report, error) {
	start := time.Now()

	set, err := w.loadRuleSet(args.Rules)
	if err != nil {
		return m.Report{}, err
	}

	files, err := w.collectFiles(args.Paths, args.Exclude)
	if err != nil {
		return m.Report{}, err
	}

	if err := w.clearCache(args.ClearCache); err != nil {
		return m.Report{}, err
	}

	if err := w.UI.Start(controller.WithLintMode()); err != nil {
		return m.Report{}, fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.UI.Close()

	report, err := w.lintFiles(ctx, set, files, args.Threads, args.UseCache)
	if err != nil {
		return m.Report{}, err
	}

	report.Duration = time.Since(start)

	if args.Save {
		if err := w.Reports.SaveReport(args.Reports, report); err != nil {
			return report, fmt.Errorf("failed to save report: %w", err)
		}
	}

	if err := w.UI.DisplayReport(report); err != nil {
		return report, fmt.Errorf("failed to display report: %w", err)
	}

	w.UI.Wait()

	return report, nil
}

// Rules compiles the rule set and lists it.
func (w *workflow) Rules(args RulesArgs) error {
	set, err := w.loadRuleSet(args.Rules)
	if err != nil {
		return err
	}

	rules := set.Rules()

	if len(args.Names) > 0 {
		rules = make([]*CompiledRule, 0, len(args.Names))

		for _, name := range args.Names {
			rule, ok := set.Rule(name)
			if !ok {
				return fmt.Errorf("%w %q", ErrUnknownRule, name)
			}

			rules = append(rules, rule)
		}
	}

	summaries := make([]m.RuleSummary, 0, len(rules))
	for _, rule := range rules {
		summaries = append(summaries, rule.Summary())
	}

	if err := w.UI.Start(controller.WithViewMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.UI.Close()

	if err := w.UI.DisplayRules(summaries); err != nil {
		return fmt.Errorf("failed to display rules: %w", err)
	}

	w.UI.Wait()

	return nil
}

// View displays a previously saved report.
func (w *workflow) View(args ViewArgs) error {
	report, err := w.Reports.LoadReport(args.Reports)
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	if err := w.UI.Start(controller.WithViewMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.UI.Close()

	if err := w.UI.DisplayReport(report); err != nil {
		return fmt.Errorf("failed to display report: %w", err)
	}

	w.UI.Wait()

	return nil
}

// Watch lints all files once, then re-lints each file when it changes until
// ctx is cancelled or the user closes the UI.
func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	set, err := w.loadRuleSet(args.Rules)
	if err != nil {
		return err
	}

	files, err := w.collectFiles(args.Paths, args.Exclude)
	if err != nil {
		return err
	}

	if err := w.clearCache(args.ClearCache); err != nil {
		return err
	}

	if err := w.UI.Start(controller.WithWatchMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.UI.Close()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-w.UI.Done():
			cancel()
		case <-watchCtx.Done():
		}
	}()

	start := time.Now()

	report, err := w.lintFiles(watchCtx, set, files, args.Threads, args.UseCache)
	if err != nil {
		return ignoreCanceled(err)
	}

	report.Duration = time.Since(start)

	if err := w.UI.DisplayReport(report); err != nil {
		return fmt.Errorf("failed to display report: %w", err)
	}

	paths := make([]m.Path, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}

	// Content hash per file as of its last lint. The watcher calls back from
	// a single goroutine.
	hashes := make(map[m.Path]string, len(report.Files))
	for _, f := range report.Files {
		hashes[f.Path] = f.Hash
	}

	err = w.Watcher.Watch(watchCtx, paths, func(path m.Path) {
		if hash, err := w.FS.HashFile(path); err == nil && hash == hashes[path] {
			w.Logger.Debug("unchanged", "path", path)
			return
		}

		result, err := w.lintFile(watchCtx, set, m.File{Path: path}, args.UseCache)
		if err != nil {
			w.Logger.Error("re-lint failed", "path", path, "error", err)
			return
		}

		hashes[path] = result.Hash

		if err := w.UI.DisplayFileResult(result); err != nil {
			w.Logger.Error("display failed", "path", path, "error", err)
		}
	})

	return ignoreCanceled(err)
}

func (w *workflow) clearCache(drop bool) error {
	if !drop || w.Cache == nil {
		return nil
	}

	if err := w.Cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	w.Logger.Info("cache cleared")

	return nil
}

func (w *workflow) loadRuleSet(path m.Path) (*RuleSet, error) {
	if path == "" {
		found, err := w.Loader.Find(".")
		if err != nil {
			return nil, err
		}

		path = found
	}

	w.Logger.Debug("loading rules", "path", path)

	defs, err := w.Loader.Load(path)
	if err != nil {
		return nil, &m.ConfigError{Path: path, Err: err}
	}

	set, err := CompileRuleSet(defs)
	if err != nil {
		return nil, &m.ConfigError{Path: path, Err: err}
	}

	w.Logger.Info("rules loaded", "path", path, "rules", set.Len())

	return set, nil
}

func (w *workflow) collectFiles(paths []m.Path, exclude []string) ([]m.File, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	excludes := make([]*regexp.Regexp, 0, len(exclude))

	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	files, err := w.FS.Get(paths, w.Tokenizers.Extensions())
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}

	kept := files[:0]

	for _, f := range files {
		if matchesAny(excludes, string(f.Path)) {
			w.Logger.Debug("excluded", "path", f.Path)
			continue
		}

		kept = append(kept, f)
	}

	if len(kept) == 0 {
		return nil, ErrNoFiles
	}

	return kept, nil
}

// lintFiles lints files on a bounded worker pool. Results are discarded when
// ctx is cancelled.
func (w *workflow) lintFiles(ctx context.Context, set *RuleSet, files []m.File, threads int, useCache bool) (m.Report, error) {
	start := time.Now()

	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	w.Logger.Info("linting", "files", len(files), "threads", threads)

	collector := NewCollector()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(threads, len(files)))

	for _, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result, err := w.lintFile(gctx, set, file, useCache)
			if err != nil {
				return err
			}

			collector.Add(result)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return m.Report{}, err
	}

	if err := ctx.Err(); err != nil {
		return m.Report{}, err
	}

	return collector.Report(time.Since(start)), nil
}

// lintFile lints one file. Unreadable files are errors; files that fail to
// tokenize produce a result carrying the parse error.
func (w *workflow) lintFile(ctx context.Context, set *RuleSet, file m.File, useCache bool) (m.FileResult, error) {
	content, err := w.FS.ReadFile(file.Path)
	if err != nil {
		return m.FileResult{}, fmt.Errorf("couldn't read source file %s: %w", file.Path, err)
	}

	hash := adapter.HashBytes(content)
	result := m.FileResult{Path: file.Path, Hash: hash, Diagnostics: []m.Diagnostic{}}

	key := adapter.CacheKey(set.Fingerprint(), file.Path, hash)

	if useCache && w.Cache != nil {
		diags, ok, err := w.Cache.Get(key)
		if err != nil {
			w.Logger.Warn("cache read failed", "path", file.Path, "error", err)
		}

		if ok {
			if diags != nil {
				result.Diagnostics = diags
			}

			result.Cached = true

			return result, nil
		}
	}

	src, err := w.Tokenizers.Tokenize(ctx, file.Path, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return m.FileResult{}, ctxErr
		}

		w.Logger.Debug("tokenize failed", "path", file.Path, "error", err)
		result.ParseError = err.Error()

		return result, nil
	}

	diags, err := LintTokens(set, FileScan{
		Path:     file.Path,
		Content:  content,
		Tokens:   Flatten(src.Trees),
		Comments: src.Comments,
	})
	if err != nil {
		return m.FileResult{}, fmt.Errorf("failed to lint %s: %w", file.Path, err)
	}

	result.Diagnostics = diags

	if useCache && w.Cache != nil {
		if err := w.Cache.Put(key, diags); err != nil {
			w.Logger.Warn("cache write failed", "path", file.Path, "error", err)
		}
	}

	return result, nil
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}

	return false
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
