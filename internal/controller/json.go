package controller

import (
	"encoding/json"
	"fmt"
	"io"

	m "github.com/mouse-blink/splint/internal/model"
)

// JSONUI writes machine-readable output: one document per report and one
// line per streamed file result.
type JSONUI struct {
	output io.Writer
}

// NewJSONUI creates a new JSONUI.
func NewJSONUI(output io.Writer) *JSONUI {
	return &JSONUI{output: output}
}

// Start initializes the UI.
func (j *JSONUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (j *JSONUI) Close() {}

// Wait returns immediately.
func (j *JSONUI) Wait() {}

// DisplayReport writes the report as an indented JSON document.
func (j *JSONUI) DisplayReport(report m.Report) error {
	if report.Files == nil {
		report.Files = []m.FileResult{}
	}

	enc := json.NewEncoder(j.output)
	enc.SetIndent("", "  ")

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	return nil
}

// Done returns nil; there is nothing for the user to close.
func (j *JSONUI) Done() <-chan struct{} {
	return nil
}

// DisplayFileResult writes the result as a single JSON line.
func (j *JSONUI) DisplayFileResult(result m.FileResult) error {
	if result.Diagnostics == nil {
		result.Diagnostics = []m.Diagnostic{}
	}

	if err := json.NewEncoder(j.output).Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	return nil
}

// DisplayRules writes the rule summaries as a JSON array.
func (j *JSONUI) DisplayRules(rules []m.RuleSummary) error {
	if rules == nil {
		rules = []m.RuleSummary{}
	}

	enc := json.NewEncoder(j.output)
	enc.SetIndent("", "  ")

	if err := enc.Encode(rules); err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}

	return nil
}
