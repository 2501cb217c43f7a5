package domain

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/splint/internal/model"
)

func TestLintTokens_SeverityIsPerRule(t *testing.T) {
	advisory := m.RuleDef{Name: "dot", Description: "dot", Pattern: []m.PatternEntryDef{entry("Punct", ".")}}
	set := mustCompileSet(t, advisory, m.RuleDef{
		Name: "unwrap", Description: "Avoid unwrap", Fail: true, Order: 1,
		Pattern: unwrapDef().Pattern,
	})

	diags, err := LintTokens(set, scanText("a.unwrap().len()"))
	require.NoError(t, err)

	require.Len(t, diags, 3)
	assert.Equal(t, []string{"dot", "unwrap", "dot"}, ruleNames(diags))
	assert.Equal(t, m.SeverityAdvisory, diags[0].Severity)
	assert.Equal(t, m.SeverityFail, diags[1].Severity)

	report := Summarize([]m.FileResult{{Path: "test.rs", Diagnostics: diags}}, 0)
	assert.True(t, report.AnyFailure)
	assert.Equal(t, 1, report.Fails)
	assert.Equal(t, 2, report.Warnings)
}

func TestLintTokens_DiagnosticFields(t *testing.T) {
	def := unwrapDef()
	def.Help = "use expect"
	def.More = "https://example.com/unwrap"
	set := mustCompileSet(t, def)

	diags, err := LintTokens(set, scanText("fn main() {\n    let x = y.unwrap();\n}\n"))
	require.NoError(t, err)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "unwrap", d.Rule)
	assert.Equal(t, "Avoid unwrap", d.Message)
	assert.Equal(t, "use expect", d.Help)
	assert.Equal(t, "https://example.com/unwrap", d.More)
	assert.Equal(t, m.Path("test.rs"), d.File)
	assert.Equal(t, "    let x = y.unwrap();", d.Line)
	assert.Equal(t, m.Position{Line: 2, Column: 14, Offset: 25}, d.Span.Start)
	assert.Equal(t, m.Position{Line: 2, Column: 23, Offset: 34}, d.Span.End)
}

func TestBuildDiagnostics_OrderedByOffsetThenDeclaration(t *testing.T) {
	second := m.RuleDef{Name: "a-ident", Order: 1, Pattern: []m.PatternEntryDef{entry("Ident", "unwrap")}}
	first := m.RuleDef{Name: "z-ident", Order: 0, Pattern: []m.PatternEntryDef{entry("Ident", "unwrap")}}
	set := mustCompileSet(t, second, first)

	diags, err := LintTokens(set, scanText("x.unwrap()\ny.unwrap()"))
	require.NoError(t, err)

	assert.Equal(t, []string{"z-ident", "a-ident", "z-ident", "a-ident"}, ruleNames(diags))
	assert.Equal(t, 1, diags[0].Span.Start.Line)
	assert.Equal(t, 2, diags[2].Span.Start.Line)
}

func TestLintTokens_NoMatches(t *testing.T) {
	set := mustCompileSet(t, unwrapDef())

	diags, err := LintTokens(set, scanText("let x = 1;"))
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestCollector_ConcurrentAdds(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			sev := m.SeverityAdvisory
			if i%2 == 0 {
				sev = m.SeverityFail
			}

			c.Add(m.FileResult{
				Path:        m.Path(fmt.Sprintf("src/f%02d.rs", 19-i)),
				Diagnostics: []m.Diagnostic{{Rule: "r", Severity: sev}},
			})
		}()
	}

	wg.Wait()

	report := c.Report(time.Second)

	require.Len(t, report.Files, 20)
	assert.Equal(t, m.Path("src/f00.rs"), report.Files[0].Path)
	assert.Equal(t, m.Path("src/f19.rs"), report.Files[19].Path)
	assert.Equal(t, 10, report.Fails)
	assert.Equal(t, 10, report.Warnings)
	assert.True(t, report.AnyFailure)
	assert.Equal(t, time.Second, report.Duration)
}

func TestCollector_ReplacesSamePath(t *testing.T) {
	c := NewCollector()
	c.Add(m.FileResult{Path: "a.rs", Diagnostics: []m.Diagnostic{{Severity: m.SeverityFail}}})
	c.Add(m.FileResult{Path: "a.rs"})

	report := c.Report(0)

	require.Len(t, report.Files, 1)
	assert.False(t, report.AnyFailure)
	assert.Zero(t, report.Fails)
}

func TestSummarize_AdvisoryOnly(t *testing.T) {
	report := Summarize([]m.FileResult{
		{Path: "b.rs", Diagnostics: []m.Diagnostic{{Severity: m.SeverityAdvisory}}},
		{Path: "a.rs", ParseError: "unbalanced delimiters"},
	}, 0)

	assert.False(t, report.AnyFailure)
	assert.Equal(t, 1, report.Warnings)
	assert.Equal(t, m.Path("a.rs"), report.Files[0].Path)
	assert.Len(t, report.ParseFailures(), 1)
}
