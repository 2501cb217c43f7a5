package controller

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/splint/internal/model"
)

// SimpleUI implements UI by writing plain or coloured text to the command's
// output stream.
type SimpleUI struct {
	cmd     *cobra.Command
	colors  palette
	quiet   bool
	mode    StartMode
	watched int
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, color, quiet bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, colors: newPalette(color), quiet: quiet}
}

// Start initializes the UI.
func (s *SimpleUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options)
	s.mode = cfg.mode

	if s.mode == ModeWatch {
		s.printf("%s\n", s.colors.muted.Sprint("Watching for changes, press Ctrl+C to stop"))
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// Wait returns immediately; text output does not wait for the user.
func (s *SimpleUI) Wait() {}

// DisplayReport prints every diagnostic followed by the run summary.
func (s *SimpleUI) DisplayReport(report m.Report) error {
	out := s.cmd.OutOrStdout()

	for _, file := range report.Files {
		s.writeFileResult(out, file)
	}

	if s.mode == ModeView {
		s.printf("%s", fileTable(report))
	}

	if s.quiet {
		return nil
	}

	s.printSummary(report.Fails, report.Warnings)
	s.printf("Finished linting %d files in %s\n", len(report.Files), formatDuration(report.Duration))

	return nil
}

// Done returns nil; there is nothing for the user to close.
func (s *SimpleUI) Done() <-chan struct{} {
	return nil
}

// DisplayFileResult prints the diagnostics of one re-linted file.
func (s *SimpleUI) DisplayFileResult(result m.FileResult) error {
	s.watched++

	s.printf("%s\n", s.colors.muted.Sprintf("[%d] %s", s.watched, result.Path))
	s.writeFileResult(s.cmd.OutOrStdout(), result)

	if !s.quiet {
		s.printSummary(countSeverities(result.Diagnostics))
	}

	return nil
}

// DisplayRules prints the compiled rule table.
func (s *SimpleUI) DisplayRules(rules []m.RuleSummary) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Rule", "Level", "Pattern", "Range", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	fails := 0

	for _, rule := range rules {
		if rule.Severity == m.SeverityFail {
			fails++
		}

		table.Append([]string{
			rule.Name,
			rule.Severity.String(),
			rule.Pattern,
			fmt.Sprintf("%d..%d", rule.Range[0], rule.Range[1]),
			rule.Description,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Rules %d", len(rules)),
		fmt.Sprintf("%d failing", fails),
		"", "", "",
	})

	table.Render()
	s.printf("%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) writeFileResult(w io.Writer, result m.FileResult) {
	if result.ParseError != "" {
		_, _ = fmt.Fprintf(w, "%s: failed to parse %s: %s\n\n", s.colors.fail.Sprint("error"), result.Path, result.ParseError)
	}

	for _, d := range result.Diagnostics {
		renderDiagnostic(w, d, s.colors)
	}
}

func (s *SimpleUI) printSummary(fails, warnings int) {
	summary := fmt.Sprintf("%d fails, %d warnings", fails, warnings)

	switch {
	case fails > 0:
		summary = s.colors.fail.Sprint(summary)
	case warnings > 0:
		summary = s.colors.advise.Sprint(summary)
	}

	s.printf("%s\n", summary)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// fileTable renders the per-file counts of a report, or nothing when the
// report is clean.
func fileTable(report m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Fails", "Warnings"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	rows := 0

	for _, file := range report.Files {
		fails, warnings := countSeverities(file.Diagnostics)
		if fails == 0 && warnings == 0 && file.ParseError == "" {
			continue
		}

		table.Append([]string{string(file.Path), fmt.Sprintf("%d", fails), fmt.Sprintf("%d", warnings)})

		rows++
	}

	if rows == 0 {
		return ""
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", rows),
		fmt.Sprintf("%d", report.Fails),
		fmt.Sprintf("%d", report.Warnings),
	})

	table.Render()

	return "\n" + tableBuffer.String() + "\n"
}

func countSeverities(diags []m.Diagnostic) (fails, warnings int) {
	for _, d := range diags {
		if d.Severity == m.SeverityFail {
			fails++
		} else {
			warnings++
		}
	}

	return fails, warnings
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
