package controller

import (
	"fmt"

	m "github.com/mouse-blink/splint/internal/model"
)

// Message types.
type reportMsg struct {
	report m.Report
}

type fileResultMsg struct {
	result m.FileResult
}

type rulesMsg struct {
	rules []m.RuleSummary
}

// List item types.
type diagnosticItem struct {
	diagnostic m.Diagnostic
}

func (d diagnosticItem) FilterValue() string {
	return d.diagnostic.Rule + " " + string(d.diagnostic.File)
}

func (d diagnosticItem) location() string {
	return fmt.Sprintf("%s:%d:%d", d.diagnostic.File, d.diagnostic.Span.Start.Line, d.diagnostic.Span.Start.Column)
}

type ruleItem struct {
	rule m.RuleSummary
}

func (r ruleItem) FilterValue() string {
	return r.rule.Name
}
