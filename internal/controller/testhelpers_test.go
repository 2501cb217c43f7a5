package controller

import (
	"bytes"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/splint/internal/model"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return cmd, &buf
}

func unwrapDiagnostic() m.Diagnostic {
	return m.Diagnostic{
		Rule:     "unwrap",
		Severity: m.SeverityFail,
		Message:  "Avoid unwrap",
		Help:     "Use ? or expect",
		More:     "https://example.org/unwrap",
		File:     "src/main.rs",
		Line:     "    let x = y.unwrap();",
		Span: m.Span{
			Start: m.Position{Line: 3, Column: 14, Offset: 40},
			End:   m.Position{Line: 3, Column: 23, Offset: 49},
		},
	}
}

func todoDiagnostic() m.Diagnostic {
	return m.Diagnostic{
		Rule:     "todo",
		Severity: m.SeverityAdvisory,
		Message:  "Unfinished code",
		File:     "src/lib.rs",
		Line:     "todo!()",
		Span: m.Span{
			Start: m.Position{Line: 1, Column: 1, Offset: 0},
			End:   m.Position{Line: 1, Column: 5, Offset: 4},
		},
	}
}

func sampleReport() m.Report {
	return m.Report{
		Files: []m.FileResult{
			{Path: "src/lib.rs", Diagnostics: []m.Diagnostic{todoDiagnostic()}},
			{Path: "src/main.rs", Diagnostics: []m.Diagnostic{unwrapDiagnostic()}},
		},
		AnyFailure: true,
		Fails:      1,
		Warnings:   1,
		Duration:   5_000_000,
	}
}
