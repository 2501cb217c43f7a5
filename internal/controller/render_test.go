package controller

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/mouse-blink/splint/internal/model"
)

func TestRenderDiagnostic_Plain(t *testing.T) {
	var buf bytes.Buffer

	renderDiagnostic(&buf, unwrapDiagnostic(), newPalette(false))

	want := strings.Join([]string{
		"error[unwrap]: Avoid unwrap",
		" --> src/main.rs:3:14",
		"  |",
		"3 |     let x = y.unwrap();",
		"  | " + strings.Repeat(" ", 13) + strings.Repeat("^", 9),
		"  = help: Use ? or expect",
		"  = more: https://example.org/unwrap",
		"",
		"",
	}, "\n")

	assert.Equal(t, want, buf.String())
}

func TestRenderDiagnostic_AdvisoryWithoutHelp(t *testing.T) {
	var buf bytes.Buffer

	renderDiagnostic(&buf, todoDiagnostic(), newPalette(false))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "warning[todo]: Unfinished code\n"))
	assert.NotContains(t, out, "help:")
	assert.NotContains(t, out, "more:")
}

func TestCaretGeometry(t *testing.T) {
	cases := []struct {
		name       string
		line       string
		start, end m.Position
		offset     int
		width      int
	}{
		{
			name:   "ascii",
			line:   "    let x = y.unwrap();",
			start:  m.Position{Line: 1, Column: 14},
			end:    m.Position{Line: 1, Column: 23},
			offset: 13,
			width:  9,
		},
		{
			name:   "tab expands",
			line:   "\tfoo.unwrap()",
			start:  m.Position{Line: 1, Column: 5},
			end:    m.Position{Line: 1, Column: 14},
			offset: 7,
			width:  9,
		},
		{
			name:   "wide runes",
			line:   "let 名前 = x.unwrap();",
			start:  m.Position{Line: 1, Column: 15},
			end:    m.Position{Line: 1, Column: 24},
			offset: 12,
			width:  9,
		},
		{
			name:   "multi-line runs to line end",
			line:   "foo(",
			start:  m.Position{Line: 1, Column: 1},
			end:    m.Position{Line: 3, Column: 2},
			offset: 0,
			width:  4,
		},
		{
			name:   "empty highlight is one wide",
			line:   "x",
			start:  m.Position{Line: 1, Column: 2},
			end:    m.Position{Line: 1, Column: 2},
			offset: 1,
			width:  1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := m.Diagnostic{Line: tc.line, Span: m.Span{Start: tc.start, End: tc.end}}

			offset, width := caretGeometry(d)
			assert.Equal(t, tc.offset, offset, "offset")
			assert.Equal(t, tc.width, width, "width")
		})
	}
}
