package controller

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	m "github.com/mouse-blink/splint/internal/model"
)

const tabWidth = 4

// palette holds the colours used by the text renderer.
type palette struct {
	fail    *color.Color
	advise  *color.Color
	accent  *color.Color
	gutter  *color.Color
	caret   *color.Color
	muted   *color.Color
	enabled bool
}

func newPalette(enabled bool) palette {
	p := palette{
		fail:    color.New(color.FgRed, color.Bold),
		advise:  color.New(color.FgYellow, color.Bold),
		accent:  color.New(color.FgCyan),
		gutter:  color.New(color.FgBlue, color.Bold),
		caret:   color.New(color.FgRed, color.Bold),
		muted:   color.New(color.Faint),
		enabled: enabled,
	}

	for _, c := range []*color.Color{p.fail, p.advise, p.accent, p.gutter, p.caret, p.muted} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func (p palette) severity(s m.Severity) *color.Color {
	if s == m.SeverityFail {
		return p.fail
	}

	return p.advise
}

// renderDiagnostic writes a compiler-style report of d:
//
//	error[rule]: message
//	  --> file:line:col
//	   |
//	 3 |     let x = y.unwrap();
//	   |              ^^^^^^^^^
//	   = help: ...
func renderDiagnostic(w io.Writer, d m.Diagnostic, p palette) {
	sev := p.severity(d.Severity)
	_, _ = fmt.Fprintf(w, "%s: %s\n", sev.Sprintf("%s[%s]", d.Severity, d.Rule), d.Message)

	lineNo := strconv.Itoa(d.Span.Start.Line)
	pad := strings.Repeat(" ", len(lineNo))

	_, _ = fmt.Fprintf(w, "%s%s %s:%d:%d\n", pad, p.gutter.Sprint("-->"), d.File, d.Span.Start.Line, d.Span.Start.Column)

	if d.Line != "" {
		offset, width := caretGeometry(d)

		_, _ = fmt.Fprintf(w, "%s %s\n", pad, p.gutter.Sprint("|"))
		_, _ = fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprint(lineNo), p.gutter.Sprint("|"), expandTabs(d.Line))
		_, _ = fmt.Fprintf(w, "%s %s %s%s\n", pad, p.gutter.Sprint("|"), strings.Repeat(" ", offset), p.caret.Sprint(strings.Repeat("^", width)))
	}

	if d.Help != "" {
		_, _ = fmt.Fprintf(w, "%s %s %s\n", pad, p.gutter.Sprint("="), "help: "+d.Help)
	}

	if d.More != "" {
		_, _ = fmt.Fprintf(w, "%s %s %s\n", pad, p.gutter.Sprint("="), "more: "+p.accent.Sprint(d.More))
	}

	_, _ = fmt.Fprintln(w)
}

// caretGeometry returns the display column and width of the highlight on the
// first line of the diagnostic. Highlights spanning lines run to line end.
func caretGeometry(d m.Diagnostic) (int, int) {
	line := d.Line
	start := clamp(d.Span.Start.Column-1, 0, len(line))

	end := len(line)
	if d.Span.End.Line == d.Span.Start.Line {
		end = clamp(d.Span.End.Column-1, start, len(line))
	}

	offset := runewidth.StringWidth(expandTabs(line[:start]))
	width := runewidth.StringWidth(expandTabs(line[start:end]))

	if width < 1 {
		width = 1
	}

	return offset, width
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
