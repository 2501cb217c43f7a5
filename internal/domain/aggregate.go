package domain

import (
	"sort"
	"sync"
	"time"

	m "github.com/mouse-blink/splint/internal/model"
)

// FileScan is everything needed to turn the matches of one file into
// diagnostics.
type FileScan struct {
	Path     m.Path
	Content  []byte
	Tokens   []m.Token
	Comments []m.Comment
}

// LintTokens runs the whole core pipeline on an already tokenized file.
func LintTokens(set *RuleSet, scan FileScan) ([]m.Diagnostic, error) {
	matches := Scan(set, scan.Tokens)
	ignores := buildIgnoreIndex(scan.Comments, scan.Tokens, scan.Content)

	return BuildDiagnostics(scan, matches, ignores)
}

// BuildDiagnostics converts matches into diagnostics ordered by span start,
// ties broken by rule declaration order. Matches suppressed by an ignore
// directive never become diagnostics.
func BuildDiagnostics(scan FileScan, matches []Match, ignores ignoreIndex) ([]m.Diagnostic, error) {
	type entry struct {
		diag  m.Diagnostic
		order int
		start int
	}

	lineStarts := computeLineStarts(scan.Content)
	entries := make([]entry, 0, len(matches))

	for _, match := range matches {
		span, err := ResolveSpan(match.Rule, scan.Tokens, match)
		if err != nil {
			return nil, err
		}

		if ignores.ignores(match.Rule.Name, span.Start.Line) {
			continue
		}

		entries = append(entries, entry{
			diag: m.Diagnostic{
				Rule:     match.Rule.Name,
				Severity: match.Rule.Severity,
				Message:  match.Rule.Description,
				Help:     match.Rule.Help,
				More:     match.Rule.More,
				Span:     span,
				File:     scan.Path,
				Line:     lineText(scan.Content, lineStarts, span.Start.Line),
			},
			order: match.Rule.Order,
			start: match.Start,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.diag.Span.Start.Offset != b.diag.Span.Start.Offset {
			return a.diag.Span.Start.Offset < b.diag.Span.Start.Offset
		}

		if a.order != b.order {
			return a.order < b.order
		}

		if a.diag.Rule != b.diag.Rule {
			return a.diag.Rule < b.diag.Rule
		}

		return a.start < b.start
	})

	out := make([]m.Diagnostic, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.diag)
	}

	return out, nil
}

// Collector accumulates per-file results from concurrent workers.
type Collector struct {
	mu    sync.Mutex
	files map[m.Path]m.FileResult
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{files: make(map[m.Path]m.FileResult)}
}

// Add records the result of one file. A second result for the same path
// replaces the first.
func (c *Collector) Add(result m.FileResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files[result.Path] = result
}

// Report returns the files sorted by path together with the run outcome.
func (c *Collector) Report(elapsed time.Duration) m.Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	files := make([]m.FileResult, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}

	return Summarize(files, elapsed)
}

// Summarize orders files by path and computes the fail/warning counts.
func Summarize(files []m.FileResult, elapsed time.Duration) m.Report {
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	report := m.Report{Files: files, Duration: elapsed}

	for _, f := range files {
		for _, d := range f.Diagnostics {
			if d.Severity == m.SeverityFail {
				report.Fails++
				report.AnyFailure = true
			} else {
				report.Warnings++
			}
		}
	}

	return report
}
